package rules

import (
	"context"
	"strings"

	"github.com/custodia-labs/qalint/internal/core/domain"
)

// emptySectionRule reports section headings followed by no entries.
type emptySectionRule struct{}

func (r *emptySectionRule) ID() domain.RuleID { return domain.RuleEmptySection }

func (r *emptySectionRule) Check(_ context.Context, doc *domain.Document, _ *domain.Settings) ([]domain.Violation, error) {
	var out []domain.Violation
	for _, s := range doc.Sections {
		if len(s.Entries) > 0 {
			continue
		}
		if strings.TrimSpace(s.Title) == "" {
			out = append(out, domain.NewViolation(domain.RuleEmptySection, 0, s.Line,
				"section on line %d has no entries", s.Line))
			continue
		}
		out = append(out, domain.NewViolation(domain.RuleEmptySection, 0, s.Line,
			"section %q has no entries", s.Title))
	}
	return out, nil
}

// emptySectionTitleRule reports explicit section headings without text.
// The implicit section holding entries before the first heading is exempt.
type emptySectionTitleRule struct{}

func (r *emptySectionTitleRule) ID() domain.RuleID { return domain.RuleEmptySectionTitle }

func (r *emptySectionTitleRule) Check(_ context.Context, doc *domain.Document, _ *domain.Settings) ([]domain.Violation, error) {
	var out []domain.Violation
	for _, s := range doc.Sections {
		if s.Implicit || strings.TrimSpace(s.Title) != "" {
			continue
		}
		out = append(out, domain.NewViolation(domain.RuleEmptySectionTitle, 0, s.Line,
			"section heading on line %d has no text", s.Line))
	}
	return out, nil
}
