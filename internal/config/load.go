package config

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"
)

// Load reads and validates a YAML configuration file. Absent fields keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// validate checks configuration consistency.
func validate(cfg *Config) error {
	if !cfg.LabelKeys.Valid() {
		return fmt.Errorf("unknown label_keys policy: %q", cfg.LabelKeys)
	}
	if !strings.HasSuffix(cfg.OutputSuffix, ".go") || cfg.OutputSuffix == ".go" {
		return fmt.Errorf("output_suffix must end in .go and be distinct from the source name: %q", cfg.OutputSuffix)
	}
	if strings.HasSuffix(cfg.OutputSuffix, "_test.go") {
		return fmt.Errorf("output_suffix must not produce test files: %q", cfg.OutputSuffix)
	}
	if cfg.BackendImport == "" {
		return fmt.Errorf("backend_import cannot be empty")
	}
	return nil
}
