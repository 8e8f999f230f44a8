package markdown

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/qalint/internal/core/domain"
	"github.com/custodia-labs/qalint/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

var (
	entryPattern   = regexp.MustCompile(`^( {0,3})(\d{1,9})[.)](?:[ \t]+(.*))?$`)
	headingPattern = regexp.MustCompile(`^ {0,3}(#{1,6})(?:[ \t]+(.*?))?[ \t]*$`)
	closingHashes  = regexp.MustCompile(`(^|[ \t]+)#+$`)
	fencePattern   = regexp.MustCompile("^([ \t]*)(`{3,}|~{3,})(.*)$")
)

// Parser parses Q&A Markdown documents.
type Parser struct{}

// New creates a new Markdown parser.
func New() *Parser {
	return &Parser{}
}

// Name returns the parser name.
func (p *Parser) Name() string {
	return "markdown"
}

// Parse splits the document into sections and entries.
// Unterminated <details> and fenced blocks are reported as structural
// violations; parsing continues after them.
func (p *Parser) Parse(ctx context.Context, raw *domain.RawDocument, settings *domain.Settings) (*driven.ParseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if settings == nil {
		defaults := domain.DefaultSettings()
		settings = &defaults
	}

	ignore, err := compilePatterns(settings.IgnorePatterns)
	if err != nil {
		return nil, err
	}

	lines := splitLines(raw.Content)
	st := &state{
		level:  sectionLevel(lines),
		ignore: ignore,
		lines:  lines,
	}
	st.doc.Source = raw.URI

	for i, line := range lines {
		st.feed(i+1, line)
	}
	st.finish()

	return &driven.ParseResult{
		Document:   st.doc,
		Violations: st.violations,
	}, nil
}

// compilePatterns compiles the answer ignore patterns case-insensitively.
func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("%w: ignore pattern %q: %v", domain.ErrInvalidInput, p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// splitLines splits content on newlines and drops carriage returns.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// sectionLevel returns 2 if any level-2 heading exists outside fences, else 1.
func sectionLevel(lines []string) int {
	var open *fence
	for _, line := range lines {
		if open != nil {
			if open.closedBy(line) {
				open = nil
			}
			continue
		}
		if f := openFence(line, 0, true); f != nil {
			open = f
			continue
		}
		if level, _, ok := parseHeading(line); ok && level == 2 {
			return 2
		}
	}
	return 1
}

// parseHeading matches an ATX heading and returns its level and text.
func parseHeading(line string) (int, string, bool) {
	m := headingPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}
	text := closingHashes.ReplaceAllString(m[2], "")
	return len(m[1]), stripEmphasis(text), true
}

// parseEntryLine matches a numbered entry line.
func parseEntryLine(line string) (indent string, ordinal int, rest string, ok bool) {
	m := entryPattern.FindStringSubmatch(line)
	if m == nil {
		return "", 0, "", false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, "", false
	}
	return m[1], n, m[3], true
}

// cleanQuestion removes heading markers and wrapping emphasis.
func cleanQuestion(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimLeft(text, "#")
	text = closingHashes.ReplaceAllString(strings.TrimSpace(text), "")
	return stripEmphasis(text)
}

// stripEmphasis removes **bold** or __bold__ wrapping the whole text.
func stripEmphasis(text string) string {
	text = strings.TrimSpace(text)
	for len(text) >= 4 {
		switch {
		case strings.HasPrefix(text, "**") && strings.HasSuffix(text, "**"):
			text = strings.TrimSpace(text[2 : len(text)-2])
		case strings.HasPrefix(text, "__") && strings.HasSuffix(text, "__"):
			text = strings.TrimSpace(text[2 : len(text)-2])
		default:
			return text
		}
	}
	return text
}
