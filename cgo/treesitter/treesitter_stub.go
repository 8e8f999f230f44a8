//go:build !cgo

package treesitter

import (
	"context"

	"github.com/custodia-labs/qalint/internal/core/domain"
	"github.com/custodia-labs/qalint/internal/core/ports/driven"
)

// Ensure Checker implements the interface.
var _ driven.SyntaxChecker = (*Checker)(nil)

// Checker is a stub for builds without CGO.
type Checker struct{}

// New creates a stub checker.
func New() *Checker {
	return &Checker{}
}

// Available returns false: no grammars are compiled in.
func (c *Checker) Available() bool {
	return false
}

// Supports returns false for every language.
func (c *Checker) Supports(_ string) bool {
	return false
}

// Check always fails with domain.ErrSyntaxCheckUnavailable.
func (c *Checker) Check(_ context.Context, _, _ string) ([]driven.SyntaxError, error) {
	return nil, domain.ErrSyntaxCheckUnavailable
}
