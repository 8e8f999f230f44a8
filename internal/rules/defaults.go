package rules

import (
	"github.com/custodia-labs/qalint/internal/core/domain"
	"github.com/custodia-labs/qalint/internal/core/ports/driven"
)

// RegisterDefaults registers all built-in rules with the registry.
// The unterminated-* structural rules are reported by the parser and
// have no rule of their own.
func RegisterDefaults(r *Registry) {
	r.Register(domain.RuleNoEntries, func(Dependencies) (driven.Rule, error) {
		return &noEntriesRule{}, nil
	})
	r.Register(domain.RuleDuplicateOrdinal, func(Dependencies) (driven.Rule, error) {
		return &ordinalRule{id: domain.RuleDuplicateOrdinal}, nil
	})
	r.Register(domain.RuleNonContiguousOrdinal, func(Dependencies) (driven.Rule, error) {
		return &ordinalRule{id: domain.RuleNonContiguousOrdinal}, nil
	})
	r.Register(domain.RuleEmptyQuestion, func(Dependencies) (driven.Rule, error) {
		return &emptyQuestionRule{}, nil
	})
	r.Register(domain.RuleEmptyAnswer, func(Dependencies) (driven.Rule, error) {
		return &emptyAnswerRule{}, nil
	})
	r.Register(domain.RuleUnknownCodeLanguage, func(Dependencies) (driven.Rule, error) {
		return &unknownLanguageRule{}, nil
	})
	r.Register(domain.RuleMissingCodeLanguage, func(Dependencies) (driven.Rule, error) {
		return &missingLanguageRule{}, nil
	})
	r.Register(domain.RuleInvalidDiagram, buildDiagramRule)
	r.Register(domain.RuleEmptySection, func(Dependencies) (driven.Rule, error) {
		return &emptySectionRule{}, nil
	})
	r.Register(domain.RuleEmptySectionTitle, func(Dependencies) (driven.Rule, error) {
		return &emptySectionTitleRule{}, nil
	})
	r.Register(domain.RuleInvalidCodeSyntax, buildSyntaxRule)
}

// NewDefaultPipeline builds a pipeline with every built-in rule.
func NewDefaultPipeline(deps Dependencies) (*Pipeline, error) {
	registry := NewRegistry()
	RegisterDefaults(registry)

	built, err := registry.BuildAll(deps)
	if err != nil {
		return nil, err
	}
	return NewPipeline(built...), nil
}
