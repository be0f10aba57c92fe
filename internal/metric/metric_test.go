package metric

import (
	"testing"

	"github.com/neox5/metricgen/pkg/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CriticalLatency", "critical_latency"},
		{"TasksCompleted", "tasks_completed"},
		{"taskID", "task_id"},
		{"HTTPServerErrors", "http_server_errors"},
		{"queueDepth", "queue_depth"},
		{"simple", "simple"},
		{"already_snake", "already_snake"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SnakeCase(tt.in), "input %q", tt.in)
	}
}

func TestLabelKeyPolicy(t *testing.T) {
	assert.Equal(t, "taskName", LabelKeyParam.Apply("taskName"))
	assert.Equal(t, "task_name", LabelKeySnake.Apply("taskName"))

	assert.True(t, LabelKeyParam.Valid())
	assert.True(t, LabelKeySnake.Valid())
	assert.False(t, LabelKeyPolicy("camel").Valid())
}

func validDescriptor(name string) Descriptor {
	return Descriptor{
		Name:        name,
		Ident:       name,
		Description: "a metric",
		Unit:        backend.UnitCount,
		Kind:        backend.KindCounter,
		Pos:         "metrics.go:1:1",
	}
}

func TestValidateBlock(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		block := []Descriptor{validDescriptor("a"), validDescriptor("b")}
		require.NoError(t, ValidateBlock(block))
	})

	t.Run("duplicate name reports both positions", func(t *testing.T) {
		first := validDescriptor("a")
		first.Pos = "metrics.go:3:1"
		second := validDescriptor("a")
		second.Pos = "metrics.go:9:1"

		err := ValidateBlock([]Descriptor{first, second})
		require.ErrorIs(t, err, ErrDuplicateName)
		assert.Contains(t, err.Error(), "metrics.go:3:1")
		assert.Contains(t, err.Error(), "metrics.go:9:1")
	})

	t.Run("missing description", func(t *testing.T) {
		d := validDescriptor("a")
		d.Description = ""
		require.ErrorIs(t, ValidateBlock([]Descriptor{d}), ErrMissingMetadata)
	})

	t.Run("missing unit", func(t *testing.T) {
		d := validDescriptor("a")
		d.Unit = ""
		require.ErrorIs(t, ValidateBlock([]Descriptor{d}), ErrMissingMetadata)
	})

	t.Run("unknown kind", func(t *testing.T) {
		d := validDescriptor("a")
		d.Kind = "meter"
		require.ErrorIs(t, ValidateBlock([]Descriptor{d}), ErrUnsupportedKind)
	})

	t.Run("label key count mismatch", func(t *testing.T) {
		d := validDescriptor("a")
		d.Params = []Param{{Name: "worker", Type: "string"}}
		require.ErrorIs(t, ValidateBlock([]Descriptor{d}), ErrInvalidDeclaration)
	})
}
