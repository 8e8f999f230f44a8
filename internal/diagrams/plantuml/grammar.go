// Package plantuml checks PlantUML diagram sources.
package plantuml

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/qalint/internal/core/ports/driven"
)

// Ensure Grammar implements the interface.
var _ driven.DiagramGrammar = (*Grammar)(nil)

// Grammar validates PlantUML sources.
type Grammar struct{}

// New creates a PlantUML grammar.
func New() *Grammar {
	return &Grammar{}
}

// Name returns the grammar name.
func (g *Grammar) Name() string {
	return "plantuml"
}

// Validate checks that the source is a single @startX ... @endX block
// with a non-empty body. Lines starting with ' are comments.
func (g *Grammar) Validate(source string) error {
	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")

	kind := ""
	startLine := 0
	bodyLines := 0
	closed := false

	for i, raw := range lines {
		n := i + 1
		t := strings.TrimSpace(raw)
		if t == "" || strings.HasPrefix(t, "'") {
			continue
		}
		lower := strings.ToLower(t)

		switch {
		case closed:
			return fail(n, "content after @end%s", kind)
		case strings.HasPrefix(lower, "@start"):
			if kind != "" {
				return fail(n, "@start inside an open @start%s block", kind)
			}
			kind = directiveKind(lower, "@start")
			startLine = n
		case strings.HasPrefix(lower, "@end"):
			if kind == "" {
				return fail(n, "@end without @start")
			}
			if end := directiveKind(lower, "@end"); end != kind {
				return fail(n, "@end%s does not match @start%s on line %d", end, kind, startLine)
			}
			if bodyLines == 0 {
				return fail(n, "empty @start%s block", kind)
			}
			closed = true
		case kind == "":
			return fail(n, "expected @startuml")
		default:
			bodyLines++
		}
	}

	switch {
	case kind == "":
		return fail(0, "empty diagram")
	case !closed:
		return fail(startLine, "@start%s on line %d is never closed", kind, startLine)
	}
	return nil
}

// directiveKind returns "uml" for "@startuml" or "@startuml(id=x)".
func directiveKind(lower, prefix string) string {
	rest := strings.TrimPrefix(lower, prefix)
	if i := strings.IndexAny(rest, " \t("); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

func fail(n int, format string, args ...any) error {
	return &driven.GrammarError{Line: n, Message: fmt.Sprintf(format, args...)}
}
