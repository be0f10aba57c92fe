package backend_test

import (
	"context"
	"testing"

	"github.com/neox5/metricgen/pkg/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collectOne(t *testing.T, reader *sdkmetric.ManualReader) metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)
	return rm.ScopeMetrics[0].Metrics[0]
}

func TestOTelGauge(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	b := backend.NewOTel(mp.Meter("test"))

	b.Describe("critical_latency", backend.UnitCount, backend.KindGauge, "task latency")
	h := b.Emit("critical_latency", backend.KindGauge, backend.LabelSet{{Key: "task_name", Value: "build"}})
	h.(backend.Gauge).Set(69)

	m := collectOne(t, reader)
	assert.Equal(t, "critical_latency", m.Name)
	assert.Equal(t, "task latency", m.Description)
	assert.Equal(t, "1", m.Unit)

	g, ok := m.Data.(metricdata.Gauge[float64])
	require.True(t, ok)
	require.Len(t, g.DataPoints, 1)
	assert.Equal(t, 69.0, g.DataPoints[0].Value)

	v, ok := g.DataPoints[0].Attributes.Value(attribute.Key("task_name"))
	require.True(t, ok)
	assert.Equal(t, "build", v.AsString())
}

func TestOTelCounter(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	b := backend.NewOTel(mp.Meter("test"))

	b.Describe("tasks_completed", backend.UnitCount, backend.KindCounter, "Total number of completed tasks.")
	h := b.Emit("tasks_completed", backend.KindCounter, backend.LabelSet{{Key: "worker", Value: "alpha"}})
	h.(backend.Counter).Increment(1)
	h.(backend.Counter).Increment(2)

	m := collectOne(t, reader)
	assert.Equal(t, "tasks_completed", m.Name)

	sum, ok := m.Data.(metricdata.Sum[float64])
	require.True(t, ok)
	assert.True(t, sum.IsMonotonic)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, 3.0, sum.DataPoints[0].Value)
}

func TestOTelHistogram(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	b := backend.NewOTel(mp.Meter("test"))

	b.Describe("task_latency", backend.UnitMilliseconds, backend.KindHistogram, "Observed task latency.")
	h := b.Emit("task_latency", backend.KindHistogram, nil)
	h.(backend.Histogram).Record(12.5)

	m := collectOne(t, reader)
	assert.Equal(t, "ms", m.Unit)

	hist, ok := m.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
	assert.Equal(t, 12.5, hist.DataPoints[0].Sum)
}

func TestOTelDescribeIdempotent(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	b := backend.NewOTel(mp.Meter("test"))

	b.Describe("m", backend.UnitCount, backend.KindCounter, "description")
	b.Describe("m", backend.UnitCount, backend.KindCounter, "description")
	b.Emit("m", backend.KindCounter, nil).(backend.Counter).Increment(1)

	m := collectOne(t, reader)
	assert.Equal(t, "description", m.Description)
}
