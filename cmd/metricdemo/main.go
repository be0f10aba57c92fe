package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/neox5/metricgen/examples/taskmetrics"
	"github.com/neox5/metricgen/internal/export"
	"github.com/neox5/metricgen/internal/monitor"
	"github.com/neox5/metricgen/internal/server"
	"github.com/neox5/metricgen/internal/version"
	"github.com/neox5/metricgen/pkg/backend"
	"github.com/neox5/simv/clock"
	"github.com/neox5/simv/source"
	"github.com/neox5/simv/value"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:    "metricdemo",
		Usage:   "Emit generated task metrics from synthetic load",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Value: 9464,
				Usage: "prometheus scrape port",
			},
			&cli.StringFlag{
				Name:  "path",
				Value: "/metrics",
				Usage: "prometheus scrape path",
			},
			&cli.StringFlag{
				Name:  "otlp-endpoint",
				Usage: "push metrics over OTLP to this endpoint",
			},
			&cli.StringFlag{
				Name:  "otlp-protocol",
				Value: "http",
				Usage: "OTLP transport: http or grpc",
			},
			&cli.DurationFlag{
				Name:  "interval",
				Value: time.Second,
				Usage: "task emission interval",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	logLevel := slog.LevelInfo
	if cmd.Bool("debug") {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("starting metricdemo", "version", version.String())

	// Backend setup: prometheus always, OTLP push when requested.
	prom := backend.NewPrometheus()
	backends := []backend.Backend{prom}

	if endpoint := cmd.String("otlp-endpoint"); endpoint != "" {
		mp, err := export.NewMeterProvider(ctx, export.Options{
			Endpoint:    endpoint,
			Protocol:    cmd.String("otlp-protocol"),
			ServiceName: "metricdemo",
		})
		if err != nil {
			return fmt.Errorf("failed to create OTLP pipeline: %w", err)
		}
		defer func() {
			if err := mp.Shutdown(context.Background()); err != nil {
				slog.Warn("meter provider shutdown failed", "error", err)
			}
		}()
		backends = append(backends, backend.NewOTel(mp.Meter("metricdemo")))
	}

	if len(backends) == 1 {
		backend.SetDefault(prom)
	} else {
		backend.SetDefault(backend.NewFanout(backends...))
	}

	// One startup-time registration of all declared metrics.
	taskmetrics.DescribeAll()

	// Synthetic task load.
	interval := cmd.Duration("interval")
	clk := clock.NewPeriodicClock(interval)
	latency := value.New(source.NewRandomIntSource(clk, 5, 250))
	queue := value.New(source.NewRandomIntSource(clk, 0, 20))
	clk.Start()
	defer clk.Stop()

	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	mon := monitor.New(10*time.Second, logger)
	if mon != nil {
		mon.Run(shutdownCtx)
		defer mon.Wait()
	}

	srv := server.New(int(cmd.Int("port")), cmd.String("path"), prom)
	var wg sync.WaitGroup
	errChan := make(chan error, 1)
	wg.Go(func() {
		if err := srv.Start(shutdownCtx); err != nil {
			errChan <- fmt.Errorf("metrics server: %w", err)
		}
	})

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	workers := []string{"alpha", "beta"}
	i := 0
loop:
	for {
		select {
		case <-shutdownCtx.Done():
			break loop
		case err := <-errChan:
			stop()
			wg.Wait()
			return err
		case <-ticker.C:
			w := workers[i%len(workers)]
			i++
			taskmetrics.EmitTasksCompleted(w).Increment(1)
			taskmetrics.EmitQueueDepth().Set(float64(queue.Value()))
			taskmetrics.EmitTaskLatency(w, i%5 == 0).Record(float64(latency.Value()))
		}
	}

	wg.Wait()
	slog.Info("shutdown complete")
	return nil
}
