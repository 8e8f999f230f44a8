package rules

import (
	"context"
	"fmt"

	"github.com/custodia-labs/qalint/internal/core/domain"
	"github.com/custodia-labs/qalint/internal/core/ports/driven"
	"github.com/custodia-labs/qalint/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driven.RulePipeline = (*Pipeline)(nil)

// Pipeline runs rules in order and collects their violations.
type Pipeline struct {
	rules []driven.Rule
}

// NewPipeline creates a pipeline with the given rules.
// Rules are executed in the order provided.
func NewPipeline(rules ...driven.Rule) *Pipeline {
	return &Pipeline{
		rules: rules,
	}
}

// Run executes every rule enabled by settings and concatenates their
// violations in rule order.
func (p *Pipeline) Run(ctx context.Context, doc *domain.Document, settings *domain.Settings) ([]domain.Violation, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}
	if settings == nil {
		defaults := domain.DefaultSettings()
		settings = &defaults
	}

	var violations []domain.Violation
	for _, rule := range p.rules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !settings.RuleEnabled(rule.ID()) {
			logger.Debug("rule %s disabled", rule.ID())
			continue
		}
		found, err := rule.Check(ctx, doc, settings)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.ID(), err)
		}
		violations = append(violations, found...)
	}
	return violations, nil
}

// Add appends a rule to the pipeline.
func (p *Pipeline) Add(rule driven.Rule) {
	p.rules = append(p.rules, rule)
}

// Len returns the number of rules in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.rules)
}
