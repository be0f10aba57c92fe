// Package config holds the generator configuration.
package config

import (
	"github.com/neox5/metricgen/internal/metric"
)

// DefaultBackendImport is the backend package generated code imports
// unless overridden.
const DefaultBackendImport = "github.com/neox5/metricgen/pkg/backend"

// Config controls declaration compilation.
type Config struct {
	// LabelKeys selects how parameter names become label keys: "param"
	// keeps the declared name verbatim, "snake" converts it to
	// snake_case.
	LabelKeys metric.LabelKeyPolicy `yaml:"label_keys"`

	// OutputSuffix replaces the ".go" suffix of the declaration file to
	// form the generated file path.
	OutputSuffix string `yaml:"output_suffix"`

	// BackendImport is the import path of the backend package referenced
	// by generated code.
	BackendImport string `yaml:"backend_import"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		LabelKeys:     metric.LabelKeyParam,
		OutputSuffix:  "_gen.go",
		BackendImport: DefaultBackendImport,
	}
}
