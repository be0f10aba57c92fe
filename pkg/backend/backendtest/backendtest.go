// Package backendtest provides a recording backend for tests. Every
// Describe and Emit call is logged, and emitted handles record the
// operations performed on them.
package backendtest

import (
	"sync"

	"github.com/neox5/metricgen/pkg/backend"
)

// DescribeCall is one recorded Describe invocation.
type DescribeCall struct {
	Name        string
	Unit        backend.Unit
	Kind        backend.Kind
	Description string
}

// EmitCall is one recorded Emit invocation together with the handle it
// returned.
type EmitCall struct {
	Name   string
	Kind   backend.Kind
	Labels backend.LabelSet
	Handle *Handle
}

// Handle records every operation performed on it. It implements
// backend.Counter, backend.Gauge, and backend.Histogram.
type Handle struct {
	mu         sync.Mutex
	Increments []float64
	Sets       []float64
	Records    []float64
}

func (h *Handle) Increment(delta float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Increments = append(h.Increments, delta)
}

func (h *Handle) Set(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Sets = append(h.Sets, v)
}

func (h *Handle) Record(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Records = append(h.Records, v)
}

// Recorder implements backend.Backend by recording all calls.
type Recorder struct {
	mu        sync.Mutex
	describes []DescribeCall
	emits     []EmitCall
}

// New creates an empty recorder.
func New() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Describe(name string, unit backend.Unit, kind backend.Kind, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.describes = append(r.describes, DescribeCall{
		Name:        name,
		Unit:        unit,
		Kind:        kind,
		Description: description,
	})
}

func (r *Recorder) Emit(name string, kind backend.Kind, labels backend.LabelSet) backend.Handle {
	h := &Handle{}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emits = append(r.emits, EmitCall{Name: name, Kind: kind, Labels: labels, Handle: h})
	return h
}

// DescribeCalls returns all recorded Describe calls in order.
func (r *Recorder) DescribeCalls() []DescribeCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	calls := make([]DescribeCall, len(r.describes))
	copy(calls, r.describes)
	return calls
}

// EmitCalls returns all recorded Emit calls in order.
func (r *Recorder) EmitCalls() []EmitCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	calls := make([]EmitCall, len(r.emits))
	copy(calls, r.emits)
	return calls
}
