package rules

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qalint/internal/core/domain"
	"github.com/custodia-labs/qalint/internal/core/ports/driven"
)

func docWith(entries ...domain.Entry) *domain.Document {
	return &domain.Document{Sections: []domain.Section{{Title: "S", Line: 1, Entries: entries}}}
}

func check(t *testing.T, rule driven.Rule, doc *domain.Document, settings *domain.Settings) []domain.Violation {
	t.Helper()
	if settings == nil {
		defaults := domain.DefaultSettings()
		settings = &defaults
	}
	vs, err := rule.Check(context.Background(), doc, settings)
	require.NoError(t, err)
	return vs
}

func TestNoEntriesRule(t *testing.T) {
	vs := check(t, &noEntriesRule{}, &domain.Document{}, nil)

	require.Len(t, vs, 1)
	assert.Equal(t, domain.KindStructural, vs[0].Kind)
	assert.Equal(t, "no entries found", vs[0].Message)
	assert.Equal(t, 0, vs[0].Ordinal)

	assert.Empty(t, check(t, &noEntriesRule{}, docWith(domain.Entry{Ordinal: 1}), nil))
}

func TestEmptyQuestionRule(t *testing.T) {
	doc := docWith(
		domain.Entry{Ordinal: 1, Line: 3, Question: "What?"},
		domain.Entry{Ordinal: 2, Line: 7, Question: "  "},
	)

	vs := check(t, &emptyQuestionRule{}, doc, nil)

	require.Len(t, vs, 1)
	assert.Equal(t, 2, vs[0].Ordinal)
	assert.Equal(t, 7, vs[0].Line)
	assert.Equal(t, domain.KindSchema, vs[0].Kind)
}

func TestEmptyAnswerRule(t *testing.T) {
	doc := docWith(
		domain.Entry{Ordinal: 1, AnswerText: "Yes."},
		domain.Entry{Ordinal: 2, Answer: "<p></p>", AnswerText: ""},
	)

	vs := check(t, &emptyAnswerRule{}, doc, nil)

	require.Len(t, vs, 1)
	assert.Equal(t, 2, vs[0].Ordinal)
	assert.Equal(t, "entry 2 has no answer", vs[0].Message)
}

func TestUnknownLanguageRule(t *testing.T) {
	doc := docWith(domain.Entry{Ordinal: 4, CodeBlocks: []domain.CodeBlock{
		{Language: "jsx", Line: 10},
		{Language: "foobarlang", Line: 20},
		{Language: "", Line: 30},
	}})

	vs := check(t, &unknownLanguageRule{}, doc, nil)

	require.Len(t, vs, 1)
	assert.Equal(t, 4, vs[0].Ordinal)
	assert.Equal(t, 20, vs[0].Line)
	assert.Equal(t, `unknown code language "foobarlang"`, vs[0].Message)

	settings := domain.DefaultSettings()
	settings.ExtraLanguages = []string{"foobarlang"}
	assert.Empty(t, check(t, &unknownLanguageRule{}, doc, &settings))
}

func TestMissingLanguageRule(t *testing.T) {
	doc := docWith(domain.Entry{Ordinal: 1, CodeBlocks: []domain.CodeBlock{
		{Language: "js", Line: 5},
		{Language: "", Line: 9},
	}})

	vs := check(t, &missingLanguageRule{}, doc, nil)

	require.Len(t, vs, 1)
	assert.Equal(t, 9, vs[0].Line)
}

func TestEmptySectionRule(t *testing.T) {
	doc := &domain.Document{Sections: []domain.Section{
		{Title: "Basics", Line: 1, Entries: []domain.Entry{{Ordinal: 1}}},
		{Title: "Later", Line: 8},
		{Title: "", Line: 12},
	}}

	vs := check(t, &emptySectionRule{}, doc, nil)

	require.Len(t, vs, 2)
	assert.Equal(t, `section "Later" has no entries`, vs[0].Message)
	assert.Equal(t, 8, vs[0].Line)
	assert.Equal(t, "section on line 12 has no entries", vs[1].Message)
}

func TestEmptySectionTitleRule(t *testing.T) {
	doc := &domain.Document{Sections: []domain.Section{
		{Implicit: true, Entries: []domain.Entry{{Ordinal: 1}}},
		{Title: "", Line: 5, Entries: []domain.Entry{{Ordinal: 2}}},
		{Title: "Named", Line: 9, Entries: []domain.Entry{{Ordinal: 3}}},
	}}

	vs := check(t, &emptySectionTitleRule{}, doc, nil)

	require.Len(t, vs, 1)
	assert.Equal(t, 5, vs[0].Line)
	assert.Equal(t, 0, vs[0].Ordinal)
}

// stubGrammar fails sources equal to bad.
type stubGrammar struct {
	name string
	bad  string
	err  error
}

func (g *stubGrammar) Name() string { return g.name }

func (g *stubGrammar) Validate(source string) error {
	if source == g.bad {
		return g.err
	}
	return nil
}

func TestDiagramRule(t *testing.T) {
	grammar := &stubGrammar{
		name: "mermaid",
		bad:  "graph XY",
		err:  &driven.GrammarError{Line: 1, Message: `invalid direction "XY"`},
	}
	rule, err := buildDiagramRule(Dependencies{Diagrams: map[string]driven.DiagramGrammar{"mermaid": grammar}})
	require.NoError(t, err)

	doc := docWith(domain.Entry{Ordinal: 6, DiagramBlocks: []domain.DiagramBlock{
		{Language: "mermaid", Source: "graph TD\n A --> B", Line: 40},
		{Language: "mermaid", Source: "graph XY", Line: 50},
		{Language: "dot", Source: "nonsense", Line: 60},
	}})

	vs := check(t, rule, doc, nil)

	require.Len(t, vs, 1)
	assert.Equal(t, 6, vs[0].Ordinal)
	assert.Equal(t, 51, vs[0].Line)
	assert.Equal(t, `mermaid diagram: invalid direction "XY"`, vs[0].Message)
}

func TestDiagramRule_PlainError(t *testing.T) {
	grammar := &stubGrammar{name: "plantuml", bad: "x", err: errors.New("broken")}
	rule, _ := buildDiagramRule(Dependencies{Diagrams: map[string]driven.DiagramGrammar{"plantuml": grammar}})

	doc := docWith(domain.Entry{Ordinal: 1, DiagramBlocks: []domain.DiagramBlock{
		{Language: "puml", Source: "x", Line: 7},
	}})

	vs := check(t, rule, doc, nil)

	require.Len(t, vs, 1)
	assert.Equal(t, 7, vs[0].Line)
	assert.Equal(t, "puml diagram: broken", vs[0].Message)
}

// stubChecker is a scripted SyntaxChecker.
type stubChecker struct {
	available bool
	errs      []driven.SyntaxError
	err       error
}

func (c *stubChecker) Available() bool          { return c.available }
func (c *stubChecker) Supports(lang string) bool { return lang == "js" }

func (c *stubChecker) Check(_ context.Context, _, _ string) ([]driven.SyntaxError, error) {
	return c.errs, c.err
}

func TestSyntaxRule(t *testing.T) {
	doc := docWith(domain.Entry{Ordinal: 3, CodeBlocks: []domain.CodeBlock{
		{Language: "js", Source: "const = ;", Line: 20},
		{Language: "diff", Source: "+ a", Line: 30},
	}})

	t.Run("unavailable", func(t *testing.T) {
		rule, _ := buildSyntaxRule(Dependencies{Syntax: &stubChecker{}})
		assert.Empty(t, check(t, rule, doc, nil))
	})

	t.Run("nil checker", func(t *testing.T) {
		rule, _ := buildSyntaxRule(Dependencies{})
		assert.Empty(t, check(t, rule, doc, nil))
	})

	t.Run("reports first error per block", func(t *testing.T) {
		rule, _ := buildSyntaxRule(Dependencies{Syntax: &stubChecker{
			available: true,
			errs: []driven.SyntaxError{
				{Line: 1, Column: 7, Message: "unexpected syntax"},
				{Line: 1, Column: 9, Message: "unexpected syntax"},
			},
		}})

		vs := check(t, rule, doc, nil)

		require.Len(t, vs, 1)
		assert.Equal(t, 21, vs[0].Line)
		assert.Equal(t, "js syntax error at 1:7: unexpected syntax", vs[0].Message)
	})

	t.Run("checker failure is skipped", func(t *testing.T) {
		rule, _ := buildSyntaxRule(Dependencies{Syntax: &stubChecker{available: true, err: errors.New("boom")}})
		assert.Empty(t, check(t, rule, doc, nil))
	})

	t.Run("cancellation aborts", func(t *testing.T) {
		rule, _ := buildSyntaxRule(Dependencies{Syntax: &stubChecker{available: true, err: context.Canceled}})
		_, err := rule.Check(context.Background(), doc, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
