package metric

import (
	"fmt"

	"github.com/neox5/metricgen/pkg/backend"
)

// ValidateBlock checks cross-declaration invariants over a descriptor
// sequence. The parser calls it after building a block; the generator
// calls it again to fail fast on callers that bypassed the parser.
func ValidateBlock(block []Descriptor) error {
	seen := make(map[string]Descriptor, len(block))
	for _, d := range block {
		if prev, ok := seen[d.Name]; ok {
			return fmt.Errorf("%w: %q declared at %s and %s", ErrDuplicateName, d.Name, prev.Pos, d.Pos)
		}
		seen[d.Name] = d

		if d.Description == "" {
			return fmt.Errorf("%w: metric %q has no description", ErrMissingMetadata, d.Name)
		}
		if d.Unit == "" {
			return fmt.Errorf("%w: metric %q has no unit", ErrMissingMetadata, d.Name)
		}

		switch d.Kind {
		case backend.KindCounter, backend.KindGauge, backend.KindHistogram:
		default:
			return fmt.Errorf("%w: metric %q has kind %q", ErrUnsupportedKind, d.Name, d.Kind)
		}

		if len(d.LabelKeys) != len(d.Params) {
			return fmt.Errorf("%w: metric %q has %d label keys for %d parameters",
				ErrInvalidDeclaration, d.Name, len(d.LabelKeys), len(d.Params))
		}
	}
	return nil
}
