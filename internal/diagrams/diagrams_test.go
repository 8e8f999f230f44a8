package diagrams

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/qalint/internal/core/domain"
)

func TestDefaults_CoverDiagramLanguages(t *testing.T) {
	grammars := Defaults()

	for _, tag := range domain.DiagramLanguages() {
		name, ok := domain.DiagramGrammar(tag)
		assert.True(t, ok, tag)
		assert.Contains(t, grammars, name, "no grammar for %s", tag)
	}
}
