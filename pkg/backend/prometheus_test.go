package backend_test

import (
	"strings"
	"testing"

	"github.com/neox5/metricgen/pkg/backend"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCounter(t *testing.T) {
	b := backend.NewPrometheus()
	b.Describe("tasks_completed", backend.UnitCount, backend.KindCounter, "Total number of completed tasks.")

	h := b.Emit("tasks_completed", backend.KindCounter, backend.LabelSet{{Key: "worker", Value: "alpha"}})
	h.(backend.Counter).Increment(3)

	expected := `
# HELP tasks_completed Total number of completed tasks. (unit: count)
# TYPE tasks_completed counter
tasks_completed{worker="alpha"} 3
`
	require.NoError(t, testutil.GatherAndCompare(b.Registry(), strings.NewReader(expected), "tasks_completed"))
}

func TestPrometheusGauge(t *testing.T) {
	b := backend.NewPrometheus()
	b.Describe("queue_depth", backend.UnitCount, backend.KindGauge, "Number of tasks currently queued.")

	h := b.Emit("queue_depth", backend.KindGauge, nil)
	h.(backend.Gauge).Set(69)

	expected := `
# HELP queue_depth Number of tasks currently queued. (unit: count)
# TYPE queue_depth gauge
queue_depth 69
`
	require.NoError(t, testutil.GatherAndCompare(b.Registry(), strings.NewReader(expected), "queue_depth"))
}

func TestPrometheusHistogram(t *testing.T) {
	b := backend.NewPrometheus()
	b.Describe("task_latency", backend.UnitMilliseconds, backend.KindHistogram, "Observed task latency.")

	h := b.Emit("task_latency", backend.KindHistogram, backend.LabelSet{{Key: "worker", Value: "beta"}})
	h.(backend.Histogram).Record(0.5)
	h.(backend.Histogram).Record(2.5)

	mfs, err := b.Registry().Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 1)
	assert.Equal(t, "task_latency", mfs[0].GetName())

	require.Len(t, mfs[0].GetMetric(), 1)
	m := mfs[0].GetMetric()[0]
	require.Len(t, m.GetLabel(), 1)
	assert.Equal(t, "worker", m.GetLabel()[0].GetName())
	assert.Equal(t, "beta", m.GetLabel()[0].GetValue())
	assert.Equal(t, uint64(2), m.GetHistogram().GetSampleCount())
	assert.Equal(t, 3.0, m.GetHistogram().GetSampleSum())
}

func TestPrometheusSameSeriesAccumulates(t *testing.T) {
	b := backend.NewPrometheus()
	b.Describe("tasks_completed", backend.UnitCount, backend.KindCounter, "d")

	labels := backend.LabelSet{{Key: "worker", Value: "alpha"}}
	b.Emit("tasks_completed", backend.KindCounter, labels).(backend.Counter).Increment(1)
	b.Emit("tasks_completed", backend.KindCounter, labels).(backend.Counter).Increment(1)

	mfs, err := b.Registry().Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 1)
	require.Len(t, mfs[0].GetMetric(), 1)
	assert.Equal(t, 2.0, mfs[0].GetMetric()[0].GetCounter().GetValue())
}

func TestPrometheusDescribeIdempotent(t *testing.T) {
	b := backend.NewPrometheus()
	b.Describe("m", backend.UnitCount, backend.KindCounter, "first")
	b.Describe("m", backend.UnitCount, backend.KindCounter, "first")
	// Divergent metadata is ignored; the first description wins.
	b.Describe("m", backend.UnitSeconds, backend.KindCounter, "second")

	b.Emit("m", backend.KindCounter, nil).(backend.Counter).Increment(1)

	expected := `
# HELP m first (unit: count)
# TYPE m counter
m 1
`
	require.NoError(t, testutil.GatherAndCompare(b.Registry(), strings.NewReader(expected), "m"))
}

func TestPrometheusUndescribedMetric(t *testing.T) {
	b := backend.NewPrometheus()
	b.Emit("bare", backend.KindGauge, nil).(backend.Gauge).Set(1)

	expected := `
# HELP bare bare
# TYPE bare gauge
bare 1
`
	require.NoError(t, testutil.GatherAndCompare(b.Registry(), strings.NewReader(expected), "bare"))
}
