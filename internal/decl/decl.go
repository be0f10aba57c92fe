// Package decl parses metric declaration files into descriptors.
//
// A declaration file is ordinary Go syntax kept out of the build by a
// metricgen build tag: package-level bodyless functions whose return type
// names the metric kind, whose parameters become label dimensions, and
// whose doc comment carries the metricgen directives:
//
//	// Observed latency of critical tasks.
//	//
//	//metricgen:description "task latency"
//	//metricgen:unit Count
//	func CriticalLatency(taskName string) Gauge
//
// Parsing is a pure transformation; it never touches a backend.
package decl

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"

	"github.com/neox5/metricgen/internal/metric"
	"github.com/neox5/metricgen/pkg/backend"
)

// Parser turns declaration files into validated descriptor blocks.
type Parser struct {
	policy metric.LabelKeyPolicy
}

// New creates a parser using the given label-key policy.
func New(policy metric.LabelKeyPolicy) *Parser {
	if !policy.Valid() {
		policy = metric.LabelKeyParam
	}
	return &Parser{policy: policy}
}

// Block is the parsed content of one declaration file.
type Block struct {
	// Package is the declared package name, reused for generated output.
	Package string

	// Source is the base name of the declaration file.
	Source string

	// Metrics holds the descriptors in declaration order.
	Metrics []metric.Descriptor
}

// ParseFile reads and compiles one declaration file.
func (p *Parser) ParseFile(path string) (*Block, error) {
	return p.parse(path, nil)
}

// ParseSource compiles declaration source held in memory.
func (p *Parser) ParseSource(filename string, src []byte) (*Block, error) {
	return p.parse(filename, src)
}

func (p *Parser) parse(filename string, src []byte) (*Block, error) {
	// parser.ParseFile takes src as any; a typed nil []byte would be treated
	// as empty source instead of triggering a read from disk.
	var source any
	if src != nil {
		source = src
	}
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse declarations: %w", err)
	}

	block := &Block{
		Package: file.Name.Name,
		Source:  filepath.Base(filename),
	}

	for _, d := range file.Decls {
		fn, ok := d.(*ast.FuncDecl)
		if !ok {
			// Imports, consts, and types are not metric declarations.
			continue
		}
		desc, err := p.parseFunc(fset, fn)
		if err != nil {
			return nil, err
		}
		block.Metrics = append(block.Metrics, *desc)
	}

	if err := metric.ValidateBlock(block.Metrics); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) parseFunc(fset *token.FileSet, fn *ast.FuncDecl) (*metric.Descriptor, error) {
	ident := fn.Name.Name
	pos := fset.Position(fn.Pos()).String()

	if fn.Recv != nil {
		return nil, fmt.Errorf("%w: %s at %s must not have a receiver", metric.ErrInvalidDeclaration, ident, pos)
	}
	if fn.Type.TypeParams != nil {
		return nil, fmt.Errorf("%w: %s at %s must not have type parameters", metric.ErrInvalidDeclaration, ident, pos)
	}
	if fn.Body != nil {
		return nil, fmt.Errorf("%w: %s at %s must be signature-only", metric.ErrBodyPresent, ident, pos)
	}

	kind, err := parseKind(fn.Type.Results, ident, pos)
	if err != nil {
		return nil, err
	}

	params, err := parseParams(fn.Type.Params, ident, pos)
	if err != nil {
		return nil, err
	}

	attrs, doc, err := parseDirectives(fn.Doc, ident, pos)
	if err != nil {
		return nil, err
	}
	if attrs.description == "" {
		return nil, fmt.Errorf("%w: %s at %s is missing the description attribute", metric.ErrMissingMetadata, ident, pos)
	}
	if attrs.unit == "" {
		return nil, fmt.Errorf("%w: %s at %s is missing the unit attribute", metric.ErrMissingMetadata, ident, pos)
	}
	unit, err := backend.ParseUnit(attrs.unit)
	if err != nil {
		return nil, fmt.Errorf("%w: %s at %s: %v", metric.ErrMalformedAttribute, ident, pos, err)
	}

	labelKeys := make([]string, len(params))
	for i, param := range params {
		labelKeys[i] = p.policy.Apply(param.Name)
	}

	return &metric.Descriptor{
		Name:        metric.SnakeCase(ident),
		Ident:       ident,
		Doc:         doc,
		Description: attrs.description,
		Unit:        unit,
		Kind:        kind,
		Params:      params,
		LabelKeys:   labelKeys,
		Pos:         pos,
	}, nil
}

// parseKind maps the declared return type onto a metric kind. Only the
// verbatim identifiers Counter, Gauge, and Histogram are accepted.
func parseKind(results *ast.FieldList, ident, pos string) (backend.Kind, error) {
	if results == nil || len(results.List) != 1 || len(results.List[0].Names) != 0 {
		return "", fmt.Errorf("%w: %s at %s must return exactly one of Counter, Gauge, Histogram",
			metric.ErrUnsupportedKind, ident, pos)
	}

	ret, ok := results.List[0].Type.(*ast.Ident)
	if !ok {
		return "", fmt.Errorf("%w: %s at %s returns %s", metric.ErrUnsupportedKind,
			ident, pos, types.ExprString(results.List[0].Type))
	}

	switch ret.Name {
	case "Counter":
		return backend.KindCounter, nil
	case "Gauge":
		return backend.KindGauge, nil
	case "Histogram":
		return backend.KindHistogram, nil
	}
	return "", fmt.Errorf("%w: %s at %s returns %s", metric.ErrUnsupportedKind, ident, pos, ret.Name)
}

// parseParams extracts the ordered parameter list. Each parameter must be
// named and non-variadic; the type is pass-through identity.
func parseParams(fields *ast.FieldList, ident, pos string) ([]metric.Param, error) {
	if fields == nil {
		return nil, nil
	}

	var params []metric.Param
	for _, field := range fields.List {
		if _, ok := field.Type.(*ast.Ellipsis); ok {
			return nil, fmt.Errorf("%w: %s at %s has a variadic parameter", metric.ErrInvalidDeclaration, ident, pos)
		}
		if len(field.Names) == 0 {
			return nil, fmt.Errorf("%w: %s at %s has an unnamed parameter", metric.ErrInvalidDeclaration, ident, pos)
		}
		typ := types.ExprString(field.Type)
		for _, name := range field.Names {
			params = append(params, metric.Param{Name: name.Name, Type: typ})
		}
	}
	return params, nil
}
