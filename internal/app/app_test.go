package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/neox5/metricgen/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const declSrc = `//go:build metricgen

package appmetrics

//metricgen:description "Total number of completed tasks."
//metricgen:unit Count
func TasksCompleted(worker string) Counter
`

func writeDecl(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metrics.go")
	require.NoError(t, os.WriteFile(path, []byte(declSrc), 0o644))
	return path
}

func TestGenerateWritesOutput(t *testing.T) {
	a := New(config.Default())
	path := writeDecl(t)

	require.NoError(t, a.Generate([]string{path}))

	out := a.OutputPath(path)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "metrics_gen.go"), out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "// Code generated by metricgen. DO NOT EDIT.")
	assert.Contains(t, string(data), "func EmitTasksCompleted(worker string) backend.Counter {")
}

func TestGenerateFailsAtomically(t *testing.T) {
	a := New(config.Default())
	path := filepath.Join(t.TempDir(), "metrics.go")
	require.NoError(t, os.WriteFile(path, []byte(`package m

//metricgen:unit Count
func Broken() Counter
`), 0o644))

	require.Error(t, a.Generate([]string{path}))

	// No partial output for a failed block.
	_, err := os.Stat(a.OutputPath(path))
	assert.True(t, os.IsNotExist(err))
}

func TestCheck(t *testing.T) {
	a := New(config.Default())
	path := writeDecl(t)

	require.Error(t, a.Check([]string{path}), "generated file does not exist yet")

	require.NoError(t, a.Generate([]string{path}))
	require.NoError(t, a.Check([]string{path}))

	// A stale generated file is reported.
	out := a.OutputPath(path)
	require.NoError(t, os.WriteFile(out, []byte("package appmetrics\n"), 0o644))
	err := a.Check([]string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stale")
}
