// Package app wires the compile pipeline: config, parser, generator.
package app

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/neox5/metricgen/internal/config"
	"github.com/neox5/metricgen/internal/decl"
	"github.com/neox5/metricgen/internal/generator"
)

// App runs declaration compilation over a set of files. Each file is an
// independent block; compilation of a block either completes or fails as
// a whole.
type App struct {
	cfg    *config.Config
	parser *decl.Parser
	gen    *generator.Generator
}

// New initializes the application from configuration.
func New(cfg *config.Config) *App {
	return &App{
		cfg:    cfg,
		parser: decl.New(cfg.LabelKeys),
		gen:    generator.New(cfg),
	}
}

// Generate compiles each declaration file and writes the generated source
// next to it.
func (a *App) Generate(paths []string) error {
	for _, path := range paths {
		src, block, err := a.compile(path)
		if err != nil {
			return err
		}

		out := a.OutputPath(path)
		if err := os.WriteFile(out, src, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		slog.Info("generated", "source", path, "output", out, "metrics", len(block.Metrics))
	}
	return nil
}

// Check compiles each declaration file and verifies the generated source
// on disk is current.
func (a *App) Check(paths []string) error {
	for _, path := range paths {
		src, _, err := a.compile(path)
		if err != nil {
			return err
		}

		out := a.OutputPath(path)
		existing, err := os.ReadFile(out)
		if err != nil {
			return fmt.Errorf("%s: missing generated file: %w", path, err)
		}
		if !bytes.Equal(existing, src) {
			return fmt.Errorf("%s: generated file %s is stale, rerun metricgen generate", path, out)
		}
		slog.Debug("checked", "source", path, "output", out)
	}
	return nil
}

// OutputPath derives the generated file path for a declaration file.
func (a *App) OutputPath(src string) string {
	return strings.TrimSuffix(src, ".go") + a.cfg.OutputSuffix
}

func (a *App) compile(path string) ([]byte, *decl.Block, error) {
	block, err := a.parser.ParseFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	src, err := a.gen.Generate(block)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, block, nil
}
