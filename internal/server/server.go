// Package server exposes a prometheus backend over HTTP for scraping.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/neox5/metricgen/pkg/backend"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves the backend's registry on a metrics endpoint.
type Server struct {
	addr   string
	path   string
	server *http.Server
}

// New creates an HTTP server for the given prometheus backend.
func New(port int, path string, b *backend.PrometheusBackend) *Server {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(
		b.Registry(),
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		},
	))

	addr := fmt.Sprintf(":%d", port)
	return &Server{
		addr: addr,
		path: path,
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start begins serving HTTP requests until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		slog.Info("starting metrics server", "addr", s.addr, "path", s.path)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return s.shutdown()
	}
}

// shutdown gracefully stops the server.
func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	slog.Info("shutting down metrics server")
	return s.server.Shutdown(ctx)
}
