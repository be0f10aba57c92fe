package backend

// Fanout forwards every call to each of its backends. The demo uses it to
// serve prometheus scrapes and push OTLP from the same emission calls.
type Fanout []Backend

// NewFanout combines backends into one.
func NewFanout(backends ...Backend) Fanout {
	return Fanout(backends)
}

func (f Fanout) Describe(name string, unit Unit, kind Kind, description string) {
	for _, b := range f {
		b.Describe(name, unit, kind, description)
	}
}

func (f Fanout) Emit(name string, kind Kind, labels LabelSet) Handle {
	handles := make([]Handle, len(f))
	for i, b := range f {
		handles[i] = b.Emit(name, kind, labels)
	}
	return fanoutHandle{handles: handles}
}

type fanoutHandle struct {
	handles []Handle
}

func (h fanoutHandle) Increment(delta float64) {
	for _, hh := range h.handles {
		if c, ok := hh.(Counter); ok {
			c.Increment(delta)
		}
	}
}

func (h fanoutHandle) Set(v float64) {
	for _, hh := range h.handles {
		if g, ok := hh.(Gauge); ok {
			g.Set(v)
		}
	}
}

func (h fanoutHandle) Record(v float64) {
	for _, hh := range h.handles {
		if hist, ok := hh.(Histogram); ok {
			hist.Record(v)
		}
	}
}
