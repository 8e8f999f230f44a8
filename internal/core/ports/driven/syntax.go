package driven

import "context"

// SyntaxChecker parses code samples in their declared language.
// Implementations backed by native parsers are only available in cgo builds.
type SyntaxChecker interface {
	// Available returns false when the checker is a no-op build stub.
	Available() bool

	// Supports returns true if the normalised language tag can be parsed.
	Supports(language string) bool

	// Check parses source and returns the syntax errors found.
	Check(ctx context.Context, language, source string) ([]SyntaxError, error)
}

// SyntaxError is one parse error inside a code sample.
type SyntaxError struct {
	// Line is the 1-based line inside the sample.
	Line int

	// Column is the 1-based column inside the line.
	Column int

	// Message describes the problem.
	Message string
}
