package driven

import (
	"context"

	"github.com/custodia-labs/qalint/internal/core/domain"
)

// Parser turns raw document text into the Section/Entry model.
// Parsers never fail on malformed text: shape problems are returned as
// structural violations next to whatever could be recovered.
type Parser interface {
	// Name returns the parser name for logging.
	Name() string

	// Parse reads the raw document. Settings supply the answer ignore patterns.
	Parse(ctx context.Context, raw *domain.RawDocument, settings *domain.Settings) (*ParseResult, error)
}

// ParseResult contains the output of parsing.
type ParseResult struct {
	// Document is the recovered structure.
	Document domain.Document

	// Violations are structural problems found while parsing
	// (unterminated collapsible or fenced blocks).
	Violations []domain.Violation
}
