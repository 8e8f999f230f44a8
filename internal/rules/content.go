package rules

import (
	"context"
	"strings"

	"github.com/custodia-labs/qalint/internal/core/domain"
)

// noEntriesRule reports a document without a single numbered entry.
type noEntriesRule struct{}

func (r *noEntriesRule) ID() domain.RuleID { return domain.RuleNoEntries }

func (r *noEntriesRule) Check(_ context.Context, doc *domain.Document, _ *domain.Settings) ([]domain.Violation, error) {
	if doc.EntryCount() > 0 {
		return nil, nil
	}
	return []domain.Violation{
		domain.NewViolation(domain.RuleNoEntries, 0, 0, "no entries found"),
	}, nil
}

// emptyQuestionRule reports entries whose question line has no text.
type emptyQuestionRule struct{}

func (r *emptyQuestionRule) ID() domain.RuleID { return domain.RuleEmptyQuestion }

func (r *emptyQuestionRule) Check(_ context.Context, doc *domain.Document, _ *domain.Settings) ([]domain.Violation, error) {
	var out []domain.Violation
	for _, e := range doc.Entries() {
		if strings.TrimSpace(e.Question) == "" {
			out = append(out, domain.NewViolation(domain.RuleEmptyQuestion, e.Ordinal, e.Line,
				"entry %d has no question text", e.Ordinal))
		}
	}
	return out, nil
}

// emptyAnswerRule reports entries whose answer has no visible text.
type emptyAnswerRule struct{}

func (r *emptyAnswerRule) ID() domain.RuleID { return domain.RuleEmptyAnswer }

func (r *emptyAnswerRule) Check(_ context.Context, doc *domain.Document, _ *domain.Settings) ([]domain.Violation, error) {
	var out []domain.Violation
	for _, e := range doc.Entries() {
		if strings.TrimSpace(e.AnswerText) == "" {
			out = append(out, domain.NewViolation(domain.RuleEmptyAnswer, e.Ordinal, e.Line,
				"entry %d has no answer", e.Ordinal))
		}
	}
	return out, nil
}
