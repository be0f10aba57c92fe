package decl

import (
	"fmt"
	"go/ast"
	"strconv"
	"strings"

	"github.com/neox5/metricgen/internal/metric"
)

// directivePrefix marks metricgen directives in declaration doc comments.
const directivePrefix = "metricgen:"

type attrs struct {
	description string
	unit        string
}

// parseDirectives splits a doc comment into metricgen attributes and the
// remaining cosmetic doc text. Doc text is carried through for human
// readers and never interpreted.
func parseDirectives(doc *ast.CommentGroup, ident, pos string) (attrs, string, error) {
	var a attrs
	if doc == nil {
		return a, "", nil
	}

	var docLines []string
	for _, c := range doc.List {
		text := strings.TrimPrefix(c.Text, "//")
		trimmed := strings.TrimSpace(text)
		if !strings.HasPrefix(trimmed, directivePrefix) {
			docLines = append(docLines, strings.TrimSpace(text))
			continue
		}

		verb, arg, _ := strings.Cut(strings.TrimPrefix(trimmed, directivePrefix), " ")
		arg = strings.TrimSpace(arg)

		switch verb {
		case "description":
			if a.description != "" {
				return a, "", malformed(ident, pos, "description attribute set twice")
			}
			s, err := strconv.Unquote(arg)
			if err != nil || s == "" {
				return a, "", malformed(ident, pos, "description must be a non-empty quoted string")
			}
			a.description = s
		case "unit":
			if a.unit != "" {
				return a, "", malformed(ident, pos, "unit attribute set twice")
			}
			if arg == "" {
				return a, "", malformed(ident, pos, "unit requires a value")
			}
			a.unit = arg
		default:
			return a, "", malformed(ident, pos, fmt.Sprintf("unknown directive %q", verb))
		}
	}

	return a, strings.TrimSpace(strings.Join(docLines, "\n")), nil
}

func malformed(ident, pos, msg string) error {
	return fmt.Errorf("%w: %s at %s: %s", metric.ErrMalformedAttribute, ident, pos, msg)
}
