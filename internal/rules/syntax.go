package rules

import (
	"context"
	"errors"

	"github.com/custodia-labs/qalint/internal/core/domain"
	"github.com/custodia-labs/qalint/internal/core/ports/driven"
	"github.com/custodia-labs/qalint/internal/logger"
)

// syntaxRule parses code samples whose language the checker supports.
// Only the first error of each block is reported.
type syntaxRule struct {
	checker driven.SyntaxChecker
}

func buildSyntaxRule(deps Dependencies) (driven.Rule, error) {
	return &syntaxRule{checker: deps.Syntax}, nil
}

func (r *syntaxRule) ID() domain.RuleID { return domain.RuleInvalidCodeSyntax }

func (r *syntaxRule) Check(ctx context.Context, doc *domain.Document, _ *domain.Settings) ([]domain.Violation, error) {
	if r.checker == nil || !r.checker.Available() {
		logger.WarnOnce("syntax-unavailable", "code syntax checks need a cgo build, skipping")
		return nil, nil
	}

	var out []domain.Violation
	for _, e := range doc.Entries() {
		for _, b := range e.CodeBlocks {
			if !r.checker.Supports(b.Language) {
				continue
			}
			errs, err := r.checker.Check(ctx, b.Language, b.Source)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil, err
				}
				logger.Warn("syntax check of %s block on line %d failed: %v", b.Language, b.Line, err)
				continue
			}
			if len(errs) == 0 {
				continue
			}
			first := errs[0]
			out = append(out, domain.NewViolation(domain.RuleInvalidCodeSyntax, e.Ordinal, b.Line+first.Line,
				"%s syntax error at %d:%d: %s", b.Language, first.Line, first.Column, first.Message))
		}
	}
	return out, nil
}
