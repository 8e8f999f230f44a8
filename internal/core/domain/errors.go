package domain

import "errors"

// Domain errors represent fatal failures.
// Schema problems in a document are never errors; they are Violations.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourceUnreadable indicates the document could not be read at all.
	ErrSourceUnreadable = errors.New("source unreadable")

	// ErrUnsupportedSource indicates no loader handles the given reference.
	ErrUnsupportedSource = errors.New("unsupported source")

	// ErrUnknownRule indicates a rule name that is not registered.
	ErrUnknownRule = errors.New("unknown rule")

	// ErrViolationsFound indicates validation completed and found violations.
	// The CLI returns it so the process exits non-zero.
	ErrViolationsFound = errors.New("violations found")

	// ErrSyntaxCheckUnavailable indicates the binary was built without
	// the native parsers used for code syntax checks.
	ErrSyntaxCheckUnavailable = errors.New("syntax check unavailable")
)
