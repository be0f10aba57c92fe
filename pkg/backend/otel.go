package backend

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

// OTelBackend maps Describe and Emit onto OpenTelemetry instruments.
//
// Describe creates the instrument with its description and UCUM unit;
// emitting an undescribed metric creates a bare instrument on first use.
type OTelBackend struct {
	meter otelmetric.Meter

	mu         sync.Mutex
	counters   map[string]otelmetric.Float64Counter
	gauges     map[string]otelmetric.Float64Gauge
	histograms map[string]otelmetric.Float64Histogram
}

// NewOTel creates a backend recording through the given meter.
func NewOTel(meter otelmetric.Meter) *OTelBackend {
	return &OTelBackend{
		meter:      meter,
		counters:   make(map[string]otelmetric.Float64Counter),
		gauges:     make(map[string]otelmetric.Float64Gauge),
		histograms: make(map[string]otelmetric.Float64Histogram),
	}
}

// Describe creates the instrument for the metric with its metadata
// attached. Later calls for the same name have no effect.
func (b *OTelBackend) Describe(name string, unit Unit, kind Kind, description string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	opts := []otelmetric.InstrumentOption{
		otelmetric.WithDescription(description),
		otelmetric.WithUnit(unit.UCUM()),
	}

	switch kind {
	case KindCounter:
		b.ensureCounter(name, opts...)
	case KindGauge:
		b.ensureGauge(name, opts...)
	case KindHistogram:
		b.ensureHistogram(name, opts...)
	}
}

// Emit returns a handle bound to the metric's instrument and the given
// labels converted to an attribute set.
func (b *OTelBackend) Emit(name string, kind Kind, labels LabelSet) Handle {
	attrs := make([]attribute.KeyValue, len(labels))
	for i, l := range labels {
		attrs[i] = attribute.String(l.Key, l.Value)
	}
	set := attribute.NewSet(attrs...)

	b.mu.Lock()
	defer b.mu.Unlock()

	switch kind {
	case KindCounter:
		return otelCounter{c: b.ensureCounter(name), attrs: set}
	case KindGauge:
		return otelGauge{g: b.ensureGauge(name), attrs: set}
	case KindHistogram:
		return otelHistogram{h: b.ensureHistogram(name), attrs: set}
	}
	return noopHandle{}
}

func (b *OTelBackend) ensureCounter(name string, opts ...otelmetric.InstrumentOption) otelmetric.Float64Counter {
	if c, ok := b.counters[name]; ok {
		return c
	}
	copts := make([]otelmetric.Float64CounterOption, len(opts))
	for i, o := range opts {
		copts[i] = o
	}
	c, err := b.meter.Float64Counter(name, copts...)
	if err != nil {
		slog.Warn("failed to create counter instrument", "metric", name, "error", err)
	}
	b.counters[name] = c
	return c
}

func (b *OTelBackend) ensureGauge(name string, opts ...otelmetric.InstrumentOption) otelmetric.Float64Gauge {
	if g, ok := b.gauges[name]; ok {
		return g
	}
	gopts := make([]otelmetric.Float64GaugeOption, len(opts))
	for i, o := range opts {
		gopts[i] = o
	}
	g, err := b.meter.Float64Gauge(name, gopts...)
	if err != nil {
		slog.Warn("failed to create gauge instrument", "metric", name, "error", err)
	}
	b.gauges[name] = g
	return g
}

func (b *OTelBackend) ensureHistogram(name string, opts ...otelmetric.InstrumentOption) otelmetric.Float64Histogram {
	if h, ok := b.histograms[name]; ok {
		return h
	}
	hopts := make([]otelmetric.Float64HistogramOption, len(opts))
	for i, o := range opts {
		hopts[i] = o
	}
	h, err := b.meter.Float64Histogram(name, hopts...)
	if err != nil {
		slog.Warn("failed to create histogram instrument", "metric", name, "error", err)
	}
	b.histograms[name] = h
	return h
}

type otelCounter struct {
	c     otelmetric.Float64Counter
	attrs attribute.Set
}

func (h otelCounter) Increment(delta float64) {
	if h.c == nil {
		return
	}
	h.c.Add(context.Background(), delta, otelmetric.WithAttributeSet(h.attrs))
}

type otelGauge struct {
	g     otelmetric.Float64Gauge
	attrs attribute.Set
}

func (h otelGauge) Set(v float64) {
	if h.g == nil {
		return
	}
	h.g.Record(context.Background(), v, otelmetric.WithAttributeSet(h.attrs))
}

type otelHistogram struct {
	h     otelmetric.Float64Histogram
	attrs attribute.Set
}

func (h otelHistogram) Record(v float64) {
	if h.h == nil {
		return
	}
	h.h.Record(context.Background(), v, otelmetric.WithAttributeSet(h.attrs))
}
