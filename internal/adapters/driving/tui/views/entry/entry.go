// Package entry provides the single entry view component for the TUI.
package entry

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/qalint/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/qalint/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/qalint/internal/core/domain"
)

// View shows one entry: its question, violations and answer.
type View struct {
	styles *styles.Styles

	entry        *domain.Entry
	section      string
	violations   []domain.Violation
	lines        []string
	scrollOffset int
	width        int
	height       int
}

// NewView creates a new entry view.
func NewView(s *styles.Styles) *View {
	return &View{styles: s}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetEntry shows an entry and its violations.
func (v *View) SetEntry(e domain.Entry, section string, violations []domain.Violation) {
	v.entry = &e
	v.section = section
	v.violations = violations
	v.scrollOffset = 0
	v.wrapContent()
}

// Update handles messages for the entry view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset = max(v.scrollOffset-v.visibleLines(), 0)
	case "pgdown", "ctrl+d":
		v.scrollOffset = min(v.scrollOffset+v.visibleLines(), v.maxScrollOffset())
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewEntries}
		}
	}

	return v, nil
}

// wrapContent lays out the answer and block list to fit the view width.
func (v *View) wrapContent() {
	v.lines = nil
	if v.entry == nil {
		return
	}

	contentWidth := v.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	raw := []string{}
	if v.entry.Collapsible && v.entry.Summary != "" {
		raw = append(raw, "▸ "+v.entry.Summary, "")
	}
	answer := strings.TrimSpace(v.entry.Answer)
	if answer == "" {
		raw = append(raw, "(no answer)")
	} else {
		raw = append(raw, strings.Split(answer, "\n")...)
	}

	for _, line := range raw {
		for len(line) > contentWidth {
			v.lines = append(v.lines, line[:contentWidth])
			line = line[contentWidth:]
		}
		v.lines = append(v.lines, line)
	}
}

func (v *View) visibleLines() int {
	// Header, question, violations, block list, help and status bar.
	reserved := 10 + len(v.violations)
	if v.entry != nil {
		reserved += len(v.entry.CodeBlocks) + len(v.entry.DiagramBlocks)
	}
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the entry view.
func (v *View) View() string {
	var b strings.Builder

	if v.entry == nil {
		b.WriteString(v.styles.Muted.Render("No entry selected."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	header := fmt.Sprintf("Entry %d", v.entry.Ordinal)
	b.WriteString(v.styles.Title.Render(header))
	if v.section != "" {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  %s, line %d", v.section, v.entry.Line)))
	} else {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  line %d", v.entry.Line)))
	}
	b.WriteString("\n\n")

	question := v.entry.Question
	if question == "" {
		question = "(no question)"
	}
	b.WriteString(v.styles.Subtitle.Render(question))
	b.WriteString("\n\n")

	if len(v.violations) == 0 {
		b.WriteString(v.styles.Success.Render("✓ no violations"))
		b.WriteString("\n")
	}
	for _, viol := range v.violations {
		loc := ""
		if viol.Line > 0 {
			loc = fmt.Sprintf("line %d: ", viol.Line)
		}
		b.WriteString(v.styles.ForKind(viol.Kind).Render(fmt.Sprintf("✗ %s%s: %s", loc, viol.Rule, viol.Message)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, cb := range v.entry.CodeBlocks {
		lang := cb.Language
		if lang == "" {
			lang = "(untagged)"
		}
		b.WriteString(v.styles.Code.Render(fmt.Sprintf("code: %s, line %d", lang, cb.Line)))
		b.WriteString("\n")
	}
	for _, db := range v.entry.DiagramBlocks {
		b.WriteString(v.styles.Code.Render(fmt.Sprintf("diagram: %s, line %d", db.Language, db.Line)))
		b.WriteString("\n")
	}
	if len(v.entry.CodeBlocks)+len(v.entry.DiagramBlocks) > 0 {
		b.WriteString("\n")
	}

	visible := v.visibleLines()
	end := min(v.scrollOffset+visible, len(v.lines))
	for _, line := range v.lines[v.scrollOffset:end] {
		b.WriteString(v.styles.Normal.Render(line))
		b.WriteString("\n")
	}
	if len(v.lines) > visible {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d lines]", v.scrollOffset+1, end, len(v.lines))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] scroll  [g/G] top/bottom  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.wrapContent()
	v.scrollOffset = min(v.scrollOffset, v.maxScrollOffset())
}

// Entry returns the displayed entry.
func (v *View) Entry() *domain.Entry {
	return v.entry
}

// ScrollOffset returns the current scroll position.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}
