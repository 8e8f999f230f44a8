package rules

import (
	"context"
	"errors"

	"github.com/custodia-labs/qalint/internal/core/domain"
	"github.com/custodia-labs/qalint/internal/core/ports/driven"
	"github.com/custodia-labs/qalint/internal/logger"
)

// diagramRule parses every diagram block with its grammar.
type diagramRule struct {
	grammars map[string]driven.DiagramGrammar
}

func buildDiagramRule(deps Dependencies) (driven.Rule, error) {
	return &diagramRule{grammars: deps.Diagrams}, nil
}

func (r *diagramRule) ID() domain.RuleID { return domain.RuleInvalidDiagram }

func (r *diagramRule) Check(_ context.Context, doc *domain.Document, _ *domain.Settings) ([]domain.Violation, error) {
	var out []domain.Violation
	for _, e := range doc.Entries() {
		for _, b := range e.DiagramBlocks {
			name, _ := domain.DiagramGrammar(b.Language)
			grammar, ok := r.grammars[name]
			if !ok {
				logger.WarnOnce("grammar:"+name, "no grammar for %s diagrams, skipping", b.Language)
				continue
			}
			err := grammar.Validate(b.Source)
			if err == nil {
				continue
			}

			line := b.Line
			msg := err.Error()
			var gerr *driven.GrammarError
			if errors.As(err, &gerr) {
				msg = gerr.Message
				if gerr.Line > 0 {
					line = b.Line + gerr.Line
				}
			}
			out = append(out, domain.NewViolation(domain.RuleInvalidDiagram, e.Ordinal, line,
				"%s diagram: %s", b.Language, msg))
		}
	}
	return out, nil
}
