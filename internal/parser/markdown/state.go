package markdown

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/qalint/internal/core/domain"
)

// state is the line-by-line parse state.
type state struct {
	doc        domain.Document
	violations []domain.Violation

	// level is the heading level that starts a section.
	level  int
	ignore []*regexp.Regexp

	entry *entryBuilder
	fence *fence

	// lines is the whole document, used to look ahead for fence closers.
	lines []string
	// last is the ordinal of the most recently closed entry.
	last int
}

// feed processes one line.
func (s *state) feed(n int, line string) {
	if s.fence != nil {
		if !s.interruptsFence(n, line) {
			s.feedFence(line)
			return
		}
		s.unterminatedFence()
	}

	if f := openFence(line, n, s.entry == nil); f != nil {
		f.owner = s.entry
		s.fence = f
		if s.entry != nil {
			s.entry.answer = append(s.entry.answer, line)
		}
		return
	}

	if indent, ordinal, rest, ok := parseEntryLine(line); ok && s.startsEntry(indent, ordinal) {
		s.beginEntry(n, ordinal, rest)
		return
	}

	if level, text, ok := parseHeading(line); ok {
		inDetails := s.entry != nil && s.entry.depth > 0
		switch {
		case level == s.level:
			s.beginSection(n, text)
			return
		case level < s.level && !inDetails:
			s.endEntry()
			if s.doc.Title == "" {
				s.doc.Title = text
			}
			return
		}
	}

	if s.entry == nil {
		return
	}
	for _, re := range s.ignore {
		if re.MatchString(line) {
			return
		}
	}
	s.entry.content(n, line)
}

// feedFence handles a line while a fenced block is open.
func (s *state) feedFence(line string) {
	f := s.fence
	if f.owner != nil {
		f.owner.answer = append(f.owner.answer, line)
	}
	if !f.closedBy(line) {
		f.body = append(f.body, trimIndent(line, f.indent))
		return
	}

	s.fence = nil
	if f.owner == nil {
		return
	}
	lang := domain.NormaliseLanguage(f.info)
	source := strings.Join(f.body, "\n")
	if domain.IsDiagramLanguage(lang) {
		f.owner.entry.DiagramBlocks = append(f.owner.entry.DiagramBlocks, domain.DiagramBlock{
			Language: lang,
			Source:   source,
			Line:     f.line,
		})
		return
	}
	f.owner.entry.CodeBlocks = append(f.owner.entry.CodeBlocks, domain.CodeBlock{
		Language: lang,
		Source:   source,
		Line:     f.line,
	})
}

// interruptsFence reports whether line ends an unclosed fence.
// The next ordinal at column 0 always does, which mirrors the <details>
// recovery in startsEntry. A section heading at column 0 does only when
// no closing line follows before the next entry or section.
func (s *state) interruptsFence(n int, line string) bool {
	f := s.fence
	if f.closedBy(line) {
		return false
	}
	if indent, ordinal, _, ok := parseEntryLine(line); ok {
		next := s.last + 1
		if f.owner != nil {
			next = f.owner.entry.Ordinal + 1
		}
		return indent == "" && ordinal == next
	}
	if !s.sectionHeading(line) {
		return false
	}
	for _, ahead := range s.lines[n:] {
		if f.closedBy(ahead) {
			return false
		}
		if indent, _, _, ok := parseEntryLine(ahead); ok && indent == "" {
			break
		}
		if s.sectionHeading(ahead) {
			break
		}
	}
	return true
}

// sectionHeading reports whether line is a section heading at column 0.
func (s *state) sectionHeading(line string) bool {
	if !strings.HasPrefix(line, "#") {
		return false
	}
	level, _, ok := parseHeading(line)
	return ok && level == s.level
}

// unterminatedFence drops the open fence and reports it.
// Its lines stay in the owner's answer but no block is recorded.
func (s *state) unterminatedFence() {
	f := s.fence
	s.fence = nil
	ordinal := 0
	if f.owner != nil {
		ordinal = f.owner.entry.Ordinal
	}
	s.violations = append(s.violations, domain.NewViolation(
		domain.RuleUnterminatedCodeBlock, ordinal, f.line,
		"code fence opened on line %d is never closed", f.line))
}

// startsEntry decides whether a numbered line begins a new entry.
// Inside an open <details> block only the next ordinal at column 0 does,
// which recovers from a missing </details>.
func (s *state) startsEntry(indent string, ordinal int) bool {
	if s.entry == nil || s.entry.depth == 0 {
		return true
	}
	return indent == "" && ordinal == s.entry.entry.Ordinal+1
}

func (s *state) beginEntry(n, ordinal int, rest string) {
	s.endEntry()
	s.currentSection()

	b := &entryBuilder{
		entry: domain.Entry{
			Ordinal: ordinal,
			Line:    n,
		},
	}
	text, _ := b.strip(n, rest)
	b.entry.Question = cleanQuestion(text)
	if b.entry.Question == "" && !b.inSummary && b.summary.Len() > 0 {
		// "1. <details><summary>Question</summary>" style.
		b.entry.Question = cleanQuestion(visibleText(b.summary.String()))
	}
	s.entry = b
}

func (s *state) beginSection(n int, title string) {
	s.endEntry()
	s.doc.Sections = append(s.doc.Sections, domain.Section{
		Title: title,
		Line:  n,
	})
}

// currentSection returns the open section, creating the implicit
// untitled one for entries that precede every heading.
func (s *state) currentSection() *domain.Section {
	if len(s.doc.Sections) == 0 {
		s.doc.Sections = append(s.doc.Sections, domain.Section{Implicit: true})
	}
	return &s.doc.Sections[len(s.doc.Sections)-1]
}

// endEntry closes the open entry and attaches it to the current section.
func (s *state) endEntry() {
	b := s.entry
	if b == nil {
		return
	}
	s.entry = nil
	s.last = b.entry.Ordinal

	if b.depth > 0 {
		s.violations = append(s.violations, domain.NewViolation(
			domain.RuleUnterminatedCollapsible, b.entry.Ordinal, b.detailsLine,
			"<details> opened on line %d is never closed", b.detailsLine))
	}

	if b.inSummary {
		// Whatever followed the open <summary> is the answer.
		s.violations = append(s.violations, domain.NewViolation(
			domain.RuleUnterminatedCollapsible, b.entry.Ordinal, b.summaryLine,
			"<summary> opened on line %d is never closed", b.summaryLine))
		b.answer = append(b.answer, b.summary.String())
		b.summary.Reset()
	}

	b.entry.Answer = strings.TrimSpace(strings.Join(b.answer, "\n"))
	b.entry.AnswerText = visibleText(b.entry.Answer)
	if b.entry.Collapsible {
		b.entry.Summary = visibleText(b.summary.String())
	}

	sec := s.currentSection()
	sec.Entries = append(sec.Entries, b.entry)
}

// finish closes whatever is still open at the end of the document.
func (s *state) finish() {
	if s.fence != nil {
		s.unterminatedFence()
	}
	s.endEntry()
}
