// Package entries provides the entry list view component for the TUI.
package entries

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/qalint/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/qalint/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/qalint/internal/core/domain"
)

// maxDocumentViolations caps the document-level violations shown above the list.
const maxDocumentViolations = 3

// Item is one entry row with the violations attached to it.
type Item struct {
	Entry      domain.Entry
	Section    string
	Violations []domain.Violation
}

// View is the entry list view.
type View struct {
	styles *styles.Styles

	items        []Item
	visible      []int
	docLevel     []domain.Violation
	title        string
	problemsOnly bool
	selected     int
	scrollOffset int
	width        int
	height       int
	err          error
	loading      bool
}

// NewView creates a new entry list view.
func NewView(s *styles.Styles) *View {
	return &View{
		styles:  s,
		loading: true,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetDocument replaces the list with the entries of doc and their violations.
func (v *View) SetDocument(doc *domain.Document, report *domain.Report) {
	v.loading = false
	v.err = nil
	v.items = nil
	v.docLevel = nil
	v.title = ""

	if doc != nil {
		v.title = doc.Title
		for _, section := range doc.Sections {
			for _, e := range section.Entries {
				v.items = append(v.items, Item{Entry: e, Section: section.Title})
			}
		}
	}
	if report != nil {
		for _, viol := range report.Violations {
			if !v.attach(viol) {
				v.docLevel = append(v.docLevel, viol)
			}
		}
	}
	v.refilter()
}

// attach adds a violation to the entry with its ordinal that starts
// closest above the violation's line. Duplicate ordinals share a number
// but not a line.
func (v *View) attach(viol domain.Violation) bool {
	if viol.Ordinal == 0 {
		return false
	}
	match := -1
	for i := range v.items {
		if v.items[i].Entry.Ordinal != viol.Ordinal {
			continue
		}
		if match < 0 {
			match = i
		}
		if v.items[i].Entry.Line <= viol.Line {
			match = i
		}
	}
	if match < 0 {
		return false
	}
	v.items[match].Violations = append(v.items[match].Violations, viol)
	return true
}

func (v *View) refilter() {
	v.visible = v.visible[:0]
	for i := range v.items {
		if v.problemsOnly && len(v.items[i].Violations) == 0 {
			continue
		}
		v.visible = append(v.visible, i)
	}
	if v.selected >= len(v.visible) {
		v.selected = max(len(v.visible)-1, 0)
	}
	v.scrollOffset = 0
	v.adjustScroll()
}

// Update handles messages for the entry list view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentLoaded:
		if msg.Err != nil {
			v.loading = false
			v.err = msg.Err
			return v, nil
		}
		v.SetDocument(msg.Document, msg.Report)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.visible)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "n":
		v.nextProblem()
	case "f":
		v.problemsOnly = !v.problemsOnly
		v.refilter()
	case "enter":
		if item := v.SelectedItem(); item != nil {
			selected := *item
			return v, func() tea.Msg {
				return messages.EntrySelected{
					Entry:      selected.Entry,
					Section:    selected.Section,
					Violations: selected.Violations,
				}
			}
		}
	case "r":
		v.loading = true
		return v, func() tea.Msg { return messages.ReloadRequested{} }
	}

	return v, nil
}

// nextProblem moves to the next entry with violations, wrapping around.
func (v *View) nextProblem() {
	n := len(v.visible)
	for step := 1; step <= n; step++ {
		i := (v.selected + step) % n
		if len(v.items[v.visible[i]].Violations) > 0 {
			v.selected = i
			v.adjustScroll()
			return
		}
	}
}

func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

func (v *View) visibleItemCount() int {
	// Title, document problems, help and status bar.
	reserved := 8 + min(len(v.docLevel), maxDocumentViolations)
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the entry list.
func (v *View) View() string {
	var b strings.Builder

	title := v.title
	if title == "" {
		title = "Entries"
	}
	b.WriteString(v.styles.Title.Render(fmt.Sprintf("%s (%d)", title, len(v.items))))
	if v.problemsOnly {
		b.WriteString(v.styles.Muted.Render("  [problems only]"))
	}
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Validating document..."))
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	for i, viol := range v.docLevel {
		if i == maxDocumentViolations {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  ... %d more document problems", len(v.docLevel)-i)))
			b.WriteString("\n")
			break
		}
		b.WriteString(v.styles.ForKind(viol.Kind).Render(fmt.Sprintf("  %s: %s", viol.Rule, viol.Message)))
		b.WriteString("\n")
	}
	if len(v.docLevel) > 0 {
		b.WriteString("\n")
	}

	if len(v.visible) == 0 {
		if v.problemsOnly {
			b.WriteString(v.styles.Success.Render("No entries with violations."))
		} else {
			b.WriteString(v.styles.Muted.Render("No entries found."))
		}
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visibleItems := v.visibleItemCount()
	section := ""
	for i := v.scrollOffset; i < len(v.visible) && i < v.scrollOffset+visibleItems; i++ {
		item := &v.items[v.visible[i]]
		if item.Section != section || i == v.scrollOffset {
			section = item.Section
			if section != "" {
				b.WriteString(v.styles.Subtitle.Render(section))
				b.WriteString("\n")
			}
		}
		b.WriteString(v.renderItem(i, item))
		b.WriteString("\n")
	}

	if len(v.visible) > visibleItems {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleItems, len(v.visible)),
			len(v.visible))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderItem(index int, item *Item) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	question := item.Entry.Question
	if question == "" {
		question = "(no question)"
	}
	maxLen := v.width - 16
	if maxLen < 20 {
		maxLen = 20
	}
	if len(question) > maxLen {
		question = question[:maxLen-3] + "..."
	}

	mark := "✓"
	if len(item.Violations) > 0 {
		mark = fmt.Sprintf("✗%d", len(item.Violations))
	}
	line := fmt.Sprintf("%s%4d. %s", indicator, item.Entry.Ordinal, question)

	if index == v.selected {
		return v.styles.Selected.Render(line) + " " + v.markStyle(item).Render(mark)
	}
	return v.styles.Normal.Render(line) + " " + v.markStyle(item).Render(mark)
}

func (v *View) markStyle(item *Item) lipgloss.Style {
	if len(item.Violations) == 0 {
		return v.styles.Success
	}
	for _, viol := range item.Violations {
		if viol.Kind == domain.KindStructural {
			return v.styles.Error
		}
	}
	return v.styles.Warning
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] open  [n] next problem  [f] problems only  [r] revalidate  [q] quit")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.adjustScroll()
}

// Items returns every entry row.
func (v *View) Items() []Item {
	return v.items
}

// VisibleCount returns the number of rows after filtering.
func (v *View) VisibleCount() int {
	return len(v.visible)
}

// DocumentViolations returns violations not tied to an entry.
func (v *View) DocumentViolations() []domain.Violation {
	return v.docLevel
}

// SelectedIndex returns the selected row among visible rows.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedItem returns the selected entry row.
func (v *View) SelectedItem() *Item {
	if v.selected < len(v.visible) {
		return &v.items[v.visible[v.selected]]
	}
	return nil
}

// ProblemsOnly reports whether clean entries are hidden.
func (v *View) ProblemsOnly() bool {
	return v.problemsOnly
}

// Loading reports whether the document is still being validated.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
