package treesitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrammarFor(t *testing.T) {
	name, ok := grammarFor("JSX")
	assert.True(t, ok)
	assert.Equal(t, "javascript", name)

	name, ok = grammarFor("tsx")
	assert.True(t, ok)
	assert.Equal(t, "tsx", name)

	_, ok = grammarFor("diff")
	assert.False(t, ok)
}
