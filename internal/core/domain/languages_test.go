package domain

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormaliseLanguage(t *testing.T) {
	tests := []struct {
		info string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"js", "js"},
		{"JSX", "jsx"},
		{"javascript title=\"App.js\"", "javascript"},
		{"{.ts}", "ts"},
		{"language-css", "css"},
		{"bash,", "bash"},
	}

	for _, tt := range tests {
		t.Run(tt.info, func(t *testing.T) {
			assert.Equal(t, tt.want, NormaliseLanguage(tt.info))
		})
	}
}

func TestIsKnownLanguage(t *testing.T) {
	for _, tag := range []string{"js", "jsx", "tsx", "html", "css", "json", "bash", "diff", "text", "go"} {
		assert.True(t, IsKnownLanguage(tag), tag)
	}
	assert.True(t, IsKnownLanguage("JavaScript"))
	assert.False(t, IsKnownLanguage("foobarlang"))
	assert.False(t, IsKnownLanguage(""))
}

func TestKnownLanguages_Sorted(t *testing.T) {
	langs := KnownLanguages()
	assert.True(t, sort.StringsAreSorted(langs))
	assert.Contains(t, langs, "jsx")
}

func TestDiagramGrammar(t *testing.T) {
	g, ok := DiagramGrammar("mermaid")
	assert.True(t, ok)
	assert.Equal(t, "mermaid", g)

	g, ok = DiagramGrammar("DOT")
	assert.True(t, ok)
	assert.Equal(t, "graphviz", g)

	g, ok = DiagramGrammar("puml")
	assert.True(t, ok)
	assert.Equal(t, "plantuml", g)

	_, ok = DiagramGrammar("js")
	assert.False(t, ok)
}

func TestDiagramLanguages(t *testing.T) {
	langs := DiagramLanguages()
	assert.Equal(t, []string{"dot", "graphviz", "mermaid", "plantuml", "puml"}, langs)
	for _, l := range langs {
		assert.True(t, IsDiagramLanguage(l))
		assert.False(t, IsKnownLanguage(l), "diagram tag %s must not be a code language", l)
	}
}
