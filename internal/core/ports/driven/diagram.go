package driven

import "fmt"

// DiagramGrammar checks diagram sources written in one diagram language.
type DiagramGrammar interface {
	// Name returns the grammar name ("mermaid", "graphviz", "plantuml").
	Name() string

	// Validate returns nil if the source parses.
	// Failures should be returned as *GrammarError so callers can map
	// the position back to the document.
	Validate(source string) error
}

// GrammarError is a diagram parse failure.
type GrammarError struct {
	// Line is the 1-based line inside the diagram source (0 if unknown).
	Line int

	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *GrammarError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}
