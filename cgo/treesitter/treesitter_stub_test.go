//go:build !cgo

package treesitter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/qalint/internal/core/domain"
)

func TestStub(t *testing.T) {
	c := New()

	assert.False(t, c.Available())
	assert.False(t, c.Supports("js"))
	_, err := c.Check(context.Background(), "js", "const a = 1;")
	assert.ErrorIs(t, err, domain.ErrSyntaxCheckUnavailable)
}
