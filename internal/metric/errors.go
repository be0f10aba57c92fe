package metric

import "errors"

// Declaration compilation errors. Diagnostics wrap these sentinels with
// the offending declaration and position; match with errors.Is.
var (
	// ErrMissingMetadata reports an absent description or unit attribute.
	ErrMissingMetadata = errors.New("missing metadata")

	// ErrUnsupportedKind reports a return type outside Counter, Gauge,
	// and Histogram.
	ErrUnsupportedKind = errors.New("unsupported metric kind")

	// ErrBodyPresent reports a declaration with an executable body.
	ErrBodyPresent = errors.New("declaration has a body")

	// ErrDuplicateName reports two declarations sharing a metric name.
	ErrDuplicateName = errors.New("duplicate metric name")

	// ErrMalformedAttribute reports an attribute value that is not a
	// valid instance of its expected type.
	ErrMalformedAttribute = errors.New("malformed attribute")

	// ErrInvalidDeclaration reports a structurally invalid signature:
	// method receiver, variadic or unnamed parameters, multiple results,
	// or type parameters.
	ErrInvalidDeclaration = errors.New("invalid declaration")
)
