package backend

// Noop discards all metric calls. It is the default backend until
// SetDefault installs a real one.
type Noop struct{}

func (Noop) Describe(string, Unit, Kind, string) {}

func (Noop) Emit(string, Kind, LabelSet) Handle { return noopHandle{} }

type noopHandle struct{}

func (noopHandle) Increment(float64) {}
func (noopHandle) Set(float64)       {}
func (noopHandle) Record(float64)    {}
