package driven

import (
	"context"

	"github.com/custodia-labs/qalint/internal/core/domain"
)

// Rule is one named validation check.
// Rules are chained in a pipeline and can be disabled by id in config.
type Rule interface {
	// ID returns the rule id used in reports and configuration.
	ID() domain.RuleID

	// Check inspects the document and returns the violations it finds.
	// An error aborts validation and is reserved for cancellation or
	// broken dependencies, never for document problems.
	Check(ctx context.Context, doc *domain.Document, settings *domain.Settings) ([]domain.Violation, error)
}

// RulePipeline runs every enabled rule over a document.
type RulePipeline interface {
	// Run returns the combined violations of all enabled rules.
	Run(ctx context.Context, doc *domain.Document, settings *domain.Settings) ([]domain.Violation, error)
}
