// Package generator emits Go source from validated metric descriptors.
//
// Output is deterministic: the same block produces byte-identical source
// on every run. For each metric the generator emits a typed emission
// function and a description function, plus one block-level DescribeAll.
package generator

import (
	"bytes"
	"fmt"
	"go/format"
	"path"
	"strings"

	"github.com/neox5/metricgen/internal/config"
	"github.com/neox5/metricgen/internal/decl"
	"github.com/neox5/metricgen/internal/metric"
	"github.com/neox5/metricgen/pkg/backend"
)

// Generator produces generated source for declaration blocks.
type Generator struct {
	backendImport string
}

// New creates a generator from configuration.
func New(cfg *config.Config) *Generator {
	return &Generator{backendImport: cfg.BackendImport}
}

// Generate emits the source for one block. The block is assumed to come
// from the parser; a descriptor sequence with duplicate names is rejected
// rather than silently overwriting generated functions.
func (g *Generator) Generate(block *decl.Block) ([]byte, error) {
	if err := metric.ValidateBlock(block.Metrics); err != nil {
		return nil, fmt.Errorf("refusing to generate: %w", err)
	}

	var buf bytes.Buffer
	g.writeHeader(&buf, block)
	for i := range block.Metrics {
		g.writeEmit(&buf, &block.Metrics[i])
		g.writeDescribe(&buf, &block.Metrics[i])
	}
	g.writeDescribeAll(&buf, block)

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated source: %w", err)
	}
	return src, nil
}

func (g *Generator) writeHeader(buf *bytes.Buffer, block *decl.Block) {
	fmt.Fprintf(buf, "// Code generated by metricgen. DO NOT EDIT.\n")
	fmt.Fprintf(buf, "//\n// Source: %s\n\n", block.Source)
	fmt.Fprintf(buf, "package %s\n\n", block.Package)

	if len(block.Metrics) == 0 {
		return
	}

	alias := ""
	if path.Base(g.backendImport) != "backend" {
		alias = "backend "
	}
	if needsFmt(block.Metrics) {
		fmt.Fprintf(buf, "import (\n\t\"fmt\"\n\n\t%s%q\n)\n\n", alias, g.backendImport)
	} else {
		fmt.Fprintf(buf, "import %s%q\n\n", alias, g.backendImport)
	}
}

func (g *Generator) writeEmit(buf *bytes.Buffer, d *metric.Descriptor) {
	if d.Doc != "" {
		for _, line := range strings.Split(d.Doc, "\n") {
			if line == "" {
				fmt.Fprintf(buf, "//\n")
			} else {
				fmt.Fprintf(buf, "// %s\n", line)
			}
		}
	} else {
		fmt.Fprintf(buf, "// Emit%s emits a sample stream for the metric %q.\n", d.Ident, d.Name)
	}

	fmt.Fprintf(buf, "func Emit%s(%s) backend.%s {\n", d.Ident, paramList(d.Params), handleType(d.Kind))
	if len(d.Params) == 0 {
		fmt.Fprintf(buf, "\treturn backend.Emit%s(%q, nil)\n", handleType(d.Kind), d.Name)
	} else {
		fmt.Fprintf(buf, "\tlabels := backend.LabelSet{\n")
		for i, p := range d.Params {
			fmt.Fprintf(buf, "\t\t{Key: %q, Value: %s},\n", d.LabelKeys[i], labelValue(p))
		}
		fmt.Fprintf(buf, "\t}\n")
		fmt.Fprintf(buf, "\treturn backend.Emit%s(%q, labels)\n", handleType(d.Kind), d.Name)
	}
	fmt.Fprintf(buf, "}\n\n")
}

func (g *Generator) writeDescribe(buf *bytes.Buffer, d *metric.Descriptor) {
	fmt.Fprintf(buf, "// Describe%s registers metadata for the metric %q.\n", d.Ident, d.Name)
	fmt.Fprintf(buf, "func Describe%s() {\n", d.Ident)
	fmt.Fprintf(buf, "\tbackend.Describe(%q, backend.Unit%s, backend.%s, %q)\n",
		d.Name, d.Unit.Token(), kindConst(d.Kind), d.Description)
	fmt.Fprintf(buf, "}\n\n")
}

func (g *Generator) writeDescribeAll(buf *bytes.Buffer, block *decl.Block) {
	fmt.Fprintf(buf, "// DescribeAll registers metadata for every metric in this block, in\n")
	fmt.Fprintf(buf, "// declaration order.\n")
	fmt.Fprintf(buf, "func DescribeAll() {\n")
	for i := range block.Metrics {
		fmt.Fprintf(buf, "\tDescribe%s()\n", block.Metrics[i].Ident)
	}
	fmt.Fprintf(buf, "}\n")
}

func needsFmt(metrics []metric.Descriptor) bool {
	for _, d := range metrics {
		for _, p := range d.Params {
			if p.Type != "string" {
				return true
			}
		}
	}
	return false
}

// paramList renders the declared parameters as a Go parameter list.
func paramList(params []metric.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + " " + p.Type
	}
	return strings.Join(parts, ", ")
}

// labelValue renders the expression converting a parameter to its label
// value. Strings pass through verbatim; everything else goes through
// fmt.Sprint.
func labelValue(p metric.Param) string {
	if p.Type == "string" {
		return p.Name
	}
	return fmt.Sprintf("fmt.Sprint(%s)", p.Name)
}

func handleType(k backend.Kind) string {
	switch k {
	case backend.KindCounter:
		return "Counter"
	case backend.KindGauge:
		return "Gauge"
	default:
		return "Histogram"
	}
}

func kindConst(k backend.Kind) string {
	return "Kind" + handleType(k)
}
