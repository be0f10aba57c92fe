// Package backend defines the metric backend surface called by generated
// code: metadata registration via Describe and sample emission via Emit.
// Implementations for prometheus and OpenTelemetry are included, along with
// a no-op backend and a fanout combinator.
package backend

import (
	"fmt"
	"sync"
)

// Kind is the category of measurement primitive.
type Kind string

const (
	KindCounter   Kind = "counter"
	KindGauge     Kind = "gauge"
	KindHistogram Kind = "histogram"
)

// Label is a single key/value pair attached to an emitted sample.
type Label struct {
	Key   string
	Value string
}

// LabelSet is an ordered sequence of labels. The order follows the declared
// parameter order of the metric; label identity is by key, not position.
type LabelSet []Label

// Keys returns the label keys in order.
func (ls LabelSet) Keys() []string {
	keys := make([]string, len(ls))
	for i, l := range ls {
		keys[i] = l.Key
	}
	return keys
}

// Values returns the label values in key order.
func (ls LabelSet) Values() []string {
	values := make([]string, len(ls))
	for i, l := range ls {
		values[i] = l.Value
	}
	return values
}

// Counter is a monotonic accumulator handle.
type Counter interface {
	Increment(delta float64)
}

// Gauge is a point-in-time value handle.
type Gauge interface {
	Set(v float64)
}

// Histogram records a distribution of observed values.
type Histogram interface {
	Record(v float64)
}

// Handle is the opaque recording surface returned by Emit. The concrete
// value implements Counter, Gauge, or Histogram according to the kind it
// was emitted with.
type Handle any

// Backend owns metric registration and recording.
type Backend interface {
	// Describe registers metadata for a metric. Repeated calls with
	// identical metadata have no further effect.
	Describe(name string, unit Unit, kind Kind, description string)

	// Emit returns a handle for the named metric with the given labels
	// attached to every recorded sample.
	Emit(name string, kind Kind, labels LabelSet) Handle
}

var (
	defaultMu      sync.RWMutex
	defaultBackend Backend = Noop{}
)

// SetDefault installs the process-wide backend used by generated code.
// Passing nil restores the no-op backend.
func SetDefault(b Backend) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if b == nil {
		b = Noop{}
	}
	defaultBackend = b
}

// Default returns the process-wide backend. Until SetDefault is called all
// metrics are discarded.
func Default() Backend {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultBackend
}

// Describe registers metric metadata with the default backend.
func Describe(name string, unit Unit, kind Kind, description string) {
	Default().Describe(name, unit, kind, description)
}

// EmitCounter emits a counter sample stream through the default backend.
func EmitCounter(name string, labels LabelSet) Counter {
	h, ok := Default().Emit(name, KindCounter, labels).(Counter)
	if !ok {
		panic(fmt.Sprintf("backend: handle for metric %q does not implement Counter", name))
	}
	return h
}

// EmitGauge emits a gauge sample stream through the default backend.
func EmitGauge(name string, labels LabelSet) Gauge {
	h, ok := Default().Emit(name, KindGauge, labels).(Gauge)
	if !ok {
		panic(fmt.Sprintf("backend: handle for metric %q does not implement Gauge", name))
	}
	return h
}

// EmitHistogram emits a histogram sample stream through the default backend.
func EmitHistogram(name string, labels LabelSet) Histogram {
	h, ok := Default().Emit(name, KindHistogram, labels).(Histogram)
	if !ok {
		panic(fmt.Sprintf("backend: handle for metric %q does not implement Histogram", name))
	}
	return h
}
