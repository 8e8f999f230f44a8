package entries

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qalint/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/qalint/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/qalint/internal/core/domain"
)

func testDocument() *domain.Document {
	return &domain.Document{
		Title: "Interview Questions",
		Sections: []domain.Section{
			{
				Title: "Basics",
				Line:  3,
				Entries: []domain.Entry{
					{Ordinal: 1, Line: 5, Question: "What is a closure?"},
					{Ordinal: 2, Line: 12, Question: "What is hoisting?"},
				},
			},
			{
				Title: "Advanced",
				Line:  20,
				Entries: []domain.Entry{
					{Ordinal: 2, Line: 22, Question: "What is the event loop?"},
					{Ordinal: 4, Line: 30, Question: "What is a WeakMap?"},
				},
			},
		},
	}
}

func testReport() *domain.Report {
	return &domain.Report{
		Source:  "questions.md",
		Entries: 4,
		Violations: []domain.Violation{
			domain.NewViolation(domain.RuleDuplicateOrdinal, 2, 22, "ordinal 2 already used on line 12"),
			domain.NewViolation(domain.RuleNonContiguousOrdinal, 4, 30, "expected 3, found 4"),
			domain.NewViolation(domain.RuleEmptySection, 0, 40, "section %q has no entries", "Misc"),
		},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newLoadedView(t *testing.T) *View {
	t.Helper()
	view := NewView(styles.DefaultStyles())
	view.SetDimensions(100, 40)
	view.SetDocument(testDocument(), testReport())
	return view
}

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles())

	require.NotNil(t, view)
	assert.True(t, view.Loading())
	assert.Empty(t, view.Items())
	assert.Nil(t, view.SelectedItem())
	assert.Nil(t, view.Init())
}

func TestView_SetDocument(t *testing.T) {
	view := newLoadedView(t)

	assert.False(t, view.Loading())
	require.Len(t, view.Items(), 4)
	assert.Equal(t, 4, view.VisibleCount())
	assert.Equal(t, "Basics", view.Items()[0].Section)
	assert.Equal(t, "Advanced", view.Items()[2].Section)
}

func TestView_SetDocument_AttachesViolations(t *testing.T) {
	view := newLoadedView(t)
	items := view.Items()

	// The duplicate on line 22 belongs to the second entry numbered 2.
	assert.Empty(t, items[1].Violations)
	require.Len(t, items[2].Violations, 1)
	assert.Equal(t, domain.RuleDuplicateOrdinal, items[2].Violations[0].Rule)

	require.Len(t, items[3].Violations, 1)
	assert.Equal(t, domain.RuleNonContiguousOrdinal, items[3].Violations[0].Rule)

	require.Len(t, view.DocumentViolations(), 1)
	assert.Equal(t, domain.RuleEmptySection, view.DocumentViolations()[0].Rule)
}

func TestView_SetDocument_NilReport(t *testing.T) {
	view := NewView(styles.DefaultStyles())
	view.SetDocument(testDocument(), nil)

	assert.Len(t, view.Items(), 4)
	assert.Empty(t, view.DocumentViolations())
}

func TestView_Navigation(t *testing.T) {
	view := newLoadedView(t)

	view, _ = view.Update(keyMsg("down"))
	assert.Equal(t, 1, view.SelectedIndex())

	view, _ = view.Update(keyMsg("j"))
	view, _ = view.Update(keyMsg("j"))
	view, _ = view.Update(keyMsg("j"))
	assert.Equal(t, 3, view.SelectedIndex())

	view, _ = view.Update(keyMsg("up"))
	assert.Equal(t, 2, view.SelectedIndex())

	view, _ = view.Update(keyMsg("k"))
	view, _ = view.Update(keyMsg("k"))
	view, _ = view.Update(keyMsg("k"))
	assert.Equal(t, 0, view.SelectedIndex())
}

func TestView_NextProblem(t *testing.T) {
	view := newLoadedView(t)

	view, _ = view.Update(keyMsg("n"))
	assert.Equal(t, 2, view.SelectedIndex())

	view, _ = view.Update(keyMsg("n"))
	assert.Equal(t, 3, view.SelectedIndex())

	// Wraps around to the first entry with violations.
	view, _ = view.Update(keyMsg("n"))
	assert.Equal(t, 2, view.SelectedIndex())
}

func TestView_ProblemsOnly(t *testing.T) {
	view := newLoadedView(t)

	view, _ = view.Update(keyMsg("f"))
	assert.True(t, view.ProblemsOnly())
	assert.Equal(t, 2, view.VisibleCount())
	assert.Contains(t, view.View(), "[problems only]")

	item := view.SelectedItem()
	require.NotNil(t, item)
	assert.Equal(t, 22, item.Entry.Line)

	view, _ = view.Update(keyMsg("f"))
	assert.False(t, view.ProblemsOnly())
	assert.Equal(t, 4, view.VisibleCount())
}

func TestView_ProblemsOnly_CleanDocument(t *testing.T) {
	view := NewView(styles.DefaultStyles())
	view.SetDocument(testDocument(), &domain.Report{})

	view, _ = view.Update(keyMsg("f"))
	assert.Equal(t, 0, view.VisibleCount())
	assert.Contains(t, view.View(), "No entries with violations.")
}

func TestView_EnterSelectsEntry(t *testing.T) {
	view := newLoadedView(t)
	view, _ = view.Update(keyMsg("n"))

	_, cmd := view.Update(keyMsg("enter"))
	require.NotNil(t, cmd)

	msg := cmd()
	selected, ok := msg.(messages.EntrySelected)
	require.True(t, ok)
	assert.Equal(t, "What is the event loop?", selected.Entry.Question)
	assert.Equal(t, "Advanced", selected.Section)
	assert.Len(t, selected.Violations, 1)
}

func TestView_EnterWithoutEntries(t *testing.T) {
	view := NewView(styles.DefaultStyles())
	view.SetDocument(&domain.Document{}, nil)

	_, cmd := view.Update(keyMsg("enter"))
	assert.Nil(t, cmd)
}

func TestView_Reload(t *testing.T) {
	view := newLoadedView(t)

	view, cmd := view.Update(keyMsg("r"))
	require.NotNil(t, cmd)
	assert.True(t, view.Loading())
	assert.IsType(t, messages.ReloadRequested{}, cmd())
}

func TestView_DocumentLoaded(t *testing.T) {
	view := NewView(styles.DefaultStyles())

	view, _ = view.Update(messages.DocumentLoaded{Document: testDocument(), Report: testReport()})

	assert.False(t, view.Loading())
	assert.Len(t, view.Items(), 4)
}

func TestView_DocumentLoaded_Error(t *testing.T) {
	view := NewView(styles.DefaultStyles())
	loadErr := errors.New("file not found")

	view, _ = view.Update(messages.DocumentLoaded{Err: loadErr})

	assert.False(t, view.Loading())
	assert.Equal(t, loadErr, view.Err())
	assert.Contains(t, view.View(), "Error: file not found")
}

func TestView_ErrorOccurred(t *testing.T) {
	view := newLoadedView(t)
	view, _ = view.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, view.Err(), "boom")
}

func TestView_View(t *testing.T) {
	view := newLoadedView(t)
	out := view.View()

	assert.Contains(t, out, "Interview Questions (4)")
	assert.Contains(t, out, "Basics")
	assert.Contains(t, out, "Advanced")
	assert.Contains(t, out, "What is a closure?")
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "✗1")
	assert.Contains(t, out, "empty-section")
	assert.Contains(t, out, "[enter] open")
}

func TestView_View_Loading(t *testing.T) {
	view := NewView(styles.DefaultStyles())

	assert.Contains(t, view.View(), "Validating document...")
}

func TestView_View_NoEntries(t *testing.T) {
	view := NewView(styles.DefaultStyles())
	view.SetDocument(&domain.Document{}, nil)

	out := view.View()
	assert.Contains(t, out, "Entries (0)")
	assert.Contains(t, out, "No entries found.")
}

func TestView_View_ManyDocumentViolations(t *testing.T) {
	report := &domain.Report{}
	for i := 0; i < maxDocumentViolations+2; i++ {
		report.Violations = append(report.Violations,
			domain.NewViolation(domain.RuleEmptySection, 0, i+1, "section %d has no entries", i))
	}
	view := NewView(styles.DefaultStyles())
	view.SetDocument(testDocument(), report)

	assert.Contains(t, view.View(), "... 2 more document problems")
}

func TestView_Scroll(t *testing.T) {
	doc := &domain.Document{Sections: []domain.Section{{Title: "All"}}}
	for i := 1; i <= 50; i++ {
		doc.Sections[0].Entries = append(doc.Sections[0].Entries,
			domain.Entry{Ordinal: i, Line: i * 4, Question: "Question"})
	}
	view := NewView(styles.DefaultStyles())
	view.SetDimensions(80, 20)
	view.SetDocument(doc, nil)

	for i := 0; i < 30; i++ {
		view, _ = view.Update(keyMsg("down"))
	}

	assert.Equal(t, 30, view.SelectedIndex())
	assert.Greater(t, view.scrollOffset, 0)
	assert.Contains(t, view.View(), "of 50]")
}

func TestView_WindowSize(t *testing.T) {
	view := NewView(styles.DefaultStyles())
	view, cmd := view.Update(tea.WindowSizeMsg{Width: 120, Height: 50})

	assert.Nil(t, cmd)
	assert.Equal(t, 120, view.width)
	assert.Equal(t, 50, view.height)
}
