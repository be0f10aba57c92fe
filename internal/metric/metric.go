// Package metric holds the descriptor model shared by the declaration
// parser and the code generator.
package metric

import (
	"strings"
	"unicode"

	"github.com/neox5/metricgen/pkg/backend"
)

// Param is one declared parameter of a metric signature.
type Param struct {
	Name string
	Type string
}

// Descriptor is the validated, immutable representation of one metric
// declaration. Descriptors are built once by the parser and consumed by
// the generator.
type Descriptor struct {
	// Name is the wire name of the metric, derived from the declared
	// identifier by snake_case conversion. Unique within a block.
	Name string

	// Ident is the declared Go identifier.
	Ident string

	// Doc is the cosmetic doc text of the declaration. It is carried onto
	// the generated emission function and never interpreted.
	Doc string

	Description string
	Unit        backend.Unit
	Kind        backend.Kind

	// Params is the ordered parameter list; each becomes a label
	// dimension at emission time.
	Params []Param

	// LabelKeys has the same length and order as Params.
	LabelKeys []string

	// Pos is the file:line of the declaration, used in diagnostics.
	Pos string
}

// LabelKeyPolicy controls how a declared parameter name becomes a label
// key. The default keeps the parameter name verbatim; "snake" converts it
// to snake_case for prometheus-style label names. See DESIGN.md for why
// this is a policy rather than a fixed rule.
type LabelKeyPolicy string

const (
	LabelKeyParam LabelKeyPolicy = "param"
	LabelKeySnake LabelKeyPolicy = "snake"
)

// Valid reports whether the policy is a known value.
func (p LabelKeyPolicy) Valid() bool {
	return p == LabelKeyParam || p == LabelKeySnake
}

// Apply derives the label key for a parameter name.
func (p LabelKeyPolicy) Apply(paramName string) string {
	if p == LabelKeySnake {
		return SnakeCase(paramName)
	}
	return paramName
}

// SnakeCase converts a Go identifier to snake_case: CriticalLatency
// becomes critical_latency, taskID becomes task_id.
func SnakeCase(ident string) string {
	var b strings.Builder
	runes := []rune(ident)
	for i, r := range runes {
		if !unicode.IsUpper(r) {
			b.WriteRune(r)
			continue
		}
		if i > 0 && runes[i-1] != '_' {
			prevLower := !unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
