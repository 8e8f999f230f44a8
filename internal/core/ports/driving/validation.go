package driving

import (
	"context"

	"github.com/custodia-labs/qalint/internal/core/domain"
)

// ValidationService checks Q&A documents against the document schema.
type ValidationService interface {
	// Validate parses text and runs every enabled rule.
	// Violations are returned in the report, never as errors.
	// It has no side effects.
	Validate(ctx context.Context, source string, content []byte) (*domain.Report, error)

	// ValidateSource loads a document by reference (path, "-", github://)
	// and validates it. Returns an error wrapping domain.ErrSourceUnreadable
	// if the document cannot be read.
	ValidateSource(ctx context.Context, ref string) (*domain.Report, error)

	// ValidateBatch validates many references in parallel.
	// Reports are returned in input order.
	ValidateBatch(ctx context.Context, refs []string) ([]*domain.Report, error)

	// Expand resolves directory and repository references into one
	// reference per document, keeping other references unchanged.
	Expand(ctx context.Context, refs []string) ([]string, error)

	// Load reads a document by reference without validating it.
	Load(ctx context.Context, ref string) (*domain.RawDocument, error)

	// Parse returns the parsed structure without running rules.
	Parse(ctx context.Context, source string, content []byte) (*domain.Document, error)
}
