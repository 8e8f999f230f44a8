package markdown

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/qalint/internal/core/domain"
)

var collapsibleTag = regexp.MustCompile(`(?i)</?(?:details|summary)(?:\s[^>]*)?>`)

// entryBuilder accumulates one entry while its lines are read.
type entryBuilder struct {
	entry  domain.Entry
	answer []string

	// depth is the <details> nesting depth; only the outermost pair
	// belongs to the entry, nested ones are answer content.
	depth       int
	detailsLine int

	summary      strings.Builder
	summaryLine  int
	inSummary    bool
	summaryTaken bool
}

// content adds an answer line, removing the entry's own collapsible tags.
func (b *entryBuilder) content(n int, line string) {
	text, hadTags := b.strip(n, line)
	if hadTags && strings.TrimSpace(text) == "" {
		return
	}
	b.answer = append(b.answer, text)
}

// strip removes the outermost <details> and <summary> tags from a line,
// routing summary text to the summary buffer. It returns the remaining
// answer text and whether any tag was consumed.
func (b *entryBuilder) strip(n int, line string) (string, bool) {
	locs := collapsibleTag.FindAllStringIndex(line, -1)
	if len(locs) == 0 {
		if b.inSummary {
			b.summary.WriteString(line)
			b.summary.WriteByte('\n')
			return "", true
		}
		return line, false
	}

	var text strings.Builder
	emit := func(segment string) {
		if b.inSummary {
			b.summary.WriteString(segment)
		} else {
			text.WriteString(segment)
		}
	}

	consumed := false
	last := 0
	for _, loc := range locs {
		emit(line[last:loc[0]])
		last = loc[1]

		tag := line[loc[0]:loc[1]]
		lower := strings.ToLower(tag)
		switch {
		case strings.HasPrefix(lower, "<details"):
			b.depth++
			if b.depth == 1 {
				b.entry.Collapsible = true
				b.detailsLine = n
				consumed = true
				continue
			}
		case strings.HasPrefix(lower, "</details"):
			if b.depth == 1 {
				b.depth = 0
				consumed = true
				continue
			}
			if b.depth > 1 {
				b.depth--
			}
		case strings.HasPrefix(lower, "<summary"):
			if b.depth == 1 && !b.summaryTaken {
				b.inSummary = true
				b.summaryTaken = true
				b.summaryLine = n
				consumed = true
				continue
			}
		case strings.HasPrefix(lower, "</summary"):
			if b.inSummary {
				b.inSummary = false
				consumed = true
				continue
			}
		}
		emit(tag)
	}
	emit(line[last:])
	if b.inSummary {
		b.summary.WriteByte('\n')
	}

	return text.String(), consumed
}

// visibleText reduces Markdown/HTML to its text content.
// Markup-only bodies such as "<p></p>" become empty.
func visibleText(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
