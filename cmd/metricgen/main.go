package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/neox5/metricgen/internal/app"
	"github.com/neox5/metricgen/internal/config"
	"github.com/neox5/metricgen/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:    "metricgen",
		Usage:   "Compile metric declaration files into typed emission code",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to configuration file",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "generate emission and description functions",
				ArgsUsage: "<declaration file>...",
				Action:    generate,
			},
			{
				Name:      "check",
				Usage:     "verify generated files are current",
				ArgsUsage: "<declaration file>...",
				Action:    check,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	a, paths, err := setup(cmd)
	if err != nil {
		return err
	}
	return a.Generate(paths)
}

func check(ctx context.Context, cmd *cli.Command) error {
	a, paths, err := setup(cmd)
	if err != nil {
		return err
	}
	return a.Check(paths)
}

func setup(cmd *cli.Command) (*app.App, []string, error) {
	logLevel := slog.LevelInfo
	if cmd.Bool("debug") {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("no declaration files given")
	}
	return app.New(cfg), paths, nil
}
