package backend

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusBackend maps Describe and Emit onto prometheus metric vectors
// held in a private registry.
//
// Vectors are created lazily on first emission, using the label keys of
// that emission. Describe records metadata that feeds the help text;
// prometheus has no first-class unit field, so the unit is appended to the
// help string.
type PrometheusBackend struct {
	mu   sync.Mutex
	reg  *prometheus.Registry
	meta map[string]promMetadata
	vecs map[string]prometheus.Collector
}

type promMetadata struct {
	unit        Unit
	kind        Kind
	description string
}

// NewPrometheus creates a prometheus backend with an empty registry.
func NewPrometheus() *PrometheusBackend {
	return &PrometheusBackend{
		reg:  prometheus.NewRegistry(),
		meta: make(map[string]promMetadata),
		vecs: make(map[string]prometheus.Collector),
	}
}

// Registry returns the underlying prometheus registry for scraping.
func (b *PrometheusBackend) Registry() *prometheus.Registry {
	return b.reg
}

// Describe stores metric metadata. The first call wins; a later call with
// divergent metadata is ignored with a warning.
func (b *PrometheusBackend) Describe(name string, unit Unit, kind Kind, description string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	meta := promMetadata{unit: unit, kind: kind, description: description}
	if existing, ok := b.meta[name]; ok {
		if existing != meta {
			slog.Warn("divergent metric metadata ignored", "metric", name)
		}
		return
	}
	b.meta[name] = meta
}

// Emit returns a handle bound to the labeled child of the metric's vector,
// creating and registering the vector on first use.
func (b *PrometheusBackend) Emit(name string, kind Kind, labels LabelSet) Handle {
	b.mu.Lock()
	vec, ok := b.vecs[name]
	if !ok {
		vec = b.newVec(name, kind, labels.Keys())
		b.vecs[name] = vec
		b.reg.MustRegister(vec)
	}
	b.mu.Unlock()

	values := labels.Values()
	switch v := vec.(type) {
	case *prometheus.CounterVec:
		return promCounter{v.WithLabelValues(values...)}
	case *prometheus.GaugeVec:
		return promGauge{v.WithLabelValues(values...)}
	case *prometheus.HistogramVec:
		return promHistogram{v.WithLabelValues(values...)}
	}

	// Emitted with a different kind than the vector was created with.
	slog.Warn("metric emitted with mismatched kind", "metric", name, "kind", kind)
	return noopHandle{}
}

func (b *PrometheusBackend) newVec(name string, kind Kind, keys []string) prometheus.Collector {
	help := name
	if m, ok := b.meta[name]; ok {
		help = fmt.Sprintf("%s (unit: %s)", m.description, m.unit)
	}

	switch kind {
	case KindCounter:
		return prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, keys)
	case KindGauge:
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, keys)
	default:
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: prometheus.DefBuckets,
		}, keys)
	}
}

type promCounter struct {
	c prometheus.Counter
}

func (h promCounter) Increment(delta float64) { h.c.Add(delta) }

type promGauge struct {
	g prometheus.Gauge
}

func (h promGauge) Set(v float64) { h.g.Set(v) }

type promHistogram struct {
	o prometheus.Observer
}

func (h promHistogram) Record(v float64) { h.o.Observe(v) }
