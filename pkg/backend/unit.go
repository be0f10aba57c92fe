package backend

import "fmt"

// Unit is one value of the backend's fixed unit enumeration.
type Unit string

const (
	UnitCount          Unit = "count"
	UnitPercent        Unit = "percent"
	UnitSeconds        Unit = "seconds"
	UnitMilliseconds   Unit = "milliseconds"
	UnitMicroseconds   Unit = "microseconds"
	UnitNanoseconds    Unit = "nanoseconds"
	UnitBytes          Unit = "bytes"
	UnitKibibytes      Unit = "kibibytes"
	UnitMebibytes      Unit = "mebibytes"
	UnitGibibytes      Unit = "gibibytes"
	UnitBitsPerSecond  Unit = "bits_per_second"
	UnitCountPerSecond Unit = "count_per_second"
)

// unitTokens maps declaration tokens to units. The token doubles as the
// suffix of the corresponding Unit constant name, which the generator
// relies on when it references units in generated source.
var unitTokens = []struct {
	token string
	unit  Unit
}{
	{"Count", UnitCount},
	{"Percent", UnitPercent},
	{"Seconds", UnitSeconds},
	{"Milliseconds", UnitMilliseconds},
	{"Microseconds", UnitMicroseconds},
	{"Nanoseconds", UnitNanoseconds},
	{"Bytes", UnitBytes},
	{"Kibibytes", UnitKibibytes},
	{"Mebibytes", UnitMebibytes},
	{"Gibibytes", UnitGibibytes},
	{"BitsPerSecond", UnitBitsPerSecond},
	{"CountPerSecond", UnitCountPerSecond},
}

// ParseUnit resolves a declaration token such as "Count" or "Kibibytes".
func ParseUnit(token string) (Unit, error) {
	for _, t := range unitTokens {
		if t.token == token {
			return t.unit, nil
		}
	}
	return "", fmt.Errorf("unknown unit %q", token)
}

// Token returns the declaration token for the unit, or "" if the unit is
// not part of the enumeration.
func (u Unit) Token() string {
	for _, t := range unitTokens {
		if t.unit == u {
			return t.token
		}
	}
	return ""
}

// UCUM returns the unified-code representation used by OpenTelemetry.
func (u Unit) UCUM() string {
	switch u {
	case UnitCount:
		return "1"
	case UnitPercent:
		return "%"
	case UnitSeconds:
		return "s"
	case UnitMilliseconds:
		return "ms"
	case UnitMicroseconds:
		return "us"
	case UnitNanoseconds:
		return "ns"
	case UnitBytes:
		return "By"
	case UnitKibibytes:
		return "KiBy"
	case UnitMebibytes:
		return "MiBy"
	case UnitGibibytes:
		return "GiBy"
	case UnitBitsPerSecond:
		return "bit/s"
	case UnitCountPerSecond:
		return "1/s"
	}
	return ""
}
