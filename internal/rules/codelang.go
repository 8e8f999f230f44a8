package rules

import (
	"context"

	"github.com/custodia-labs/qalint/internal/core/domain"
)

// unknownLanguageRule reports code blocks tagged with a language outside
// the allow-list (built-in plus languages.extra).
type unknownLanguageRule struct{}

func (r *unknownLanguageRule) ID() domain.RuleID { return domain.RuleUnknownCodeLanguage }

func (r *unknownLanguageRule) Check(_ context.Context, doc *domain.Document, settings *domain.Settings) ([]domain.Violation, error) {
	var out []domain.Violation
	for _, e := range doc.Entries() {
		for _, b := range e.CodeBlocks {
			if b.Language == "" || settings.LanguageAllowed(b.Language) {
				continue
			}
			out = append(out, domain.NewViolation(domain.RuleUnknownCodeLanguage, e.Ordinal, b.Line,
				"unknown code language %q", b.Language))
		}
	}
	return out, nil
}

// missingLanguageRule reports untagged code blocks. Opt-in through
// rules.require_code_language.
type missingLanguageRule struct{}

func (r *missingLanguageRule) ID() domain.RuleID { return domain.RuleMissingCodeLanguage }

func (r *missingLanguageRule) Check(_ context.Context, doc *domain.Document, _ *domain.Settings) ([]domain.Violation, error) {
	var out []domain.Violation
	for _, e := range doc.Entries() {
		for _, b := range e.CodeBlocks {
			if b.Language != "" {
				continue
			}
			out = append(out, domain.NewViolation(domain.RuleMissingCodeLanguage, e.Ordinal, b.Line,
				"code block has no language tag"))
		}
	}
	return out, nil
}
