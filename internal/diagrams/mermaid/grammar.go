// Package mermaid checks Mermaid diagram sources.
//
// It is a structural checker, not a renderer: it verifies the diagram
// type header, balanced brackets and quotes, block keywords against
// "end", and the shape of flowchart edges and sequence messages.
package mermaid

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/qalint/internal/core/ports/driven"
)

// Ensure Grammar implements the interface.
var _ driven.DiagramGrammar = (*Grammar)(nil)

// diagramTypes are the header keywords Mermaid accepts.
var diagramTypes = map[string]bool{
	"graph":              true,
	"flowchart":          true,
	"flowchart-elk":      true,
	"sequencediagram":    true,
	"classdiagram":       true,
	"classdiagram-v2":    true,
	"statediagram":       true,
	"statediagram-v2":    true,
	"erdiagram":          true,
	"journey":            true,
	"gantt":              true,
	"pie":                true,
	"gitgraph":           true,
	"mindmap":            true,
	"timeline":           true,
	"quadrantchart":      true,
	"requirementdiagram": true,
	"c4context":          true,
	"c4container":        true,
	"c4component":        true,
	"c4dynamic":          true,
	"c4deployment":       true,
	"sankey-beta":        true,
	"xychart-beta":       true,
	"block-beta":         true,
	"packet-beta":        true,
	"architecture-beta":  true,
	"kanban":             true,
	"zenuml":             true,
}

var directions = map[string]bool{
	"TB": true, "TD": true, "BT": true, "RL": true, "LR": true,
}

var (
	edgeAtStart = regexp.MustCompile(`^<?(?:-{2,}|={2,}|-\.+-)[>xo]?`)
	edgeAtEnd   = regexp.MustCompile(`(?:-{2,}|={2,}|-\.+-)[>xo]?(?:\|[^|]*\|)?$`)
	seqArrow    = regexp.MustCompile(`--?(?:>>|>|x|\))`)
	seqMessage  = regexp.MustCompile(`^([^:]+?)\s*(?:-->>|->>|-->|->|--x|-x|--\)|-\))[+-]?\s*([^:]+?)\s*:(.*)$`)
)

// sequenceBlocks open a block closed by "end" in sequence diagrams.
var sequenceBlocks = map[string]bool{
	"loop": true, "alt": true, "opt": true, "par": true,
	"critical": true, "break": true, "rect": true, "box": true,
}

// sequenceKeywords start sequence statements that are not messages.
var sequenceKeywords = map[string]bool{
	"participant": true, "actor": true, "note": true, "autonumber": true,
	"activate": true, "deactivate": true, "title": true, "create": true,
	"destroy": true, "link": true, "links": true, "properties": true,
	"details": true, "else": true, "and": true, "option": true, "end": true,
	"accTitle": true, "accDescr": true,
}

// Grammar validates Mermaid sources.
type Grammar struct{}

// New creates a Mermaid grammar.
func New() *Grammar {
	return &Grammar{}
}

// Name returns the grammar name.
func (g *Grammar) Name() string {
	return "mermaid"
}

// line is a meaningful source line with its 1-based number.
type line struct {
	n    int
	text string
}

// Validate checks the source and returns the first problem found.
func (g *Grammar) Validate(source string) error {
	lines := meaningfulLines(source)
	if len(lines) == 0 {
		return fail(0, "empty diagram")
	}

	header := lines[0]
	fields := strings.Fields(strings.TrimSuffix(header.text, ";"))
	kind := strings.ToLower(fields[0])
	if !diagramTypes[kind] {
		return fail(header.n, "unknown diagram type %q", fields[0])
	}

	c := &checker{kind: kind}
	if kind == "graph" || kind == "flowchart" || kind == "flowchart-elk" {
		c.kind = "flowchart"
		if len(fields) > 1 && !directions[strings.ToUpper(fields[1])] {
			return fail(header.n, "invalid direction %q", fields[1])
		}
	}

	for _, l := range lines[1:] {
		if err := c.check(l); err != nil {
			return err
		}
	}
	return c.done()
}

// meaningfulLines drops blank lines, %% comments and directives, and a
// leading --- front-matter block.
func meaningfulLines(source string) []line {
	raw := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
	var out []line
	inFrontMatter := false
	for i, text := range raw {
		t := strings.TrimSpace(text)
		if t == "---" && len(out) == 0 {
			inFrontMatter = !inFrontMatter
			continue
		}
		if inFrontMatter || t == "" || strings.HasPrefix(t, "%%") {
			continue
		}
		out = append(out, line{n: i + 1, text: t})
	}
	return out
}

// block is an open keyword block waiting for "end".
type block struct {
	keyword string
	n       int
}

// checker holds per-diagram state while walking the body.
type checker struct {
	kind   string
	blocks []block

	// braces counts open { across lines for class, state and ER diagrams.
	braces     int
	braceLine  int
	braceTotal bool
}

func (c *checker) check(l line) error {
	first := strings.Fields(l.text)[0]
	keyword := strings.TrimSuffix(first, ":")

	switch c.kind {
	case "flowchart":
		return c.checkFlowchart(l, keyword)
	case "sequencediagram":
		return c.checkSequence(l, keyword)
	case "erdiagram":
		c.braceTotal = true
		return c.checkEntityBlock(l)
	case "classdiagram", "classdiagram-v2", "statediagram", "statediagram-v2":
		c.braceTotal = true
		return c.checkBraces(l)
	default:
		return checkPairs(l, beforeColon(l.text), "()[]{}", false)
	}
}

func (c *checker) checkFlowchart(l line, keyword string) error {
	switch keyword {
	case "subgraph":
		c.blocks = append(c.blocks, block{keyword: keyword, n: l.n})
		return checkBalanced(l, l.text)
	case "end":
		return c.closeBlock(l)
	case "direction":
		fields := strings.Fields(l.text)
		if len(fields) != 2 || !directions[strings.ToUpper(fields[1])] {
			return fail(l.n, "invalid direction statement")
		}
		return nil
	case "classDef", "class", "style", "linkStyle", "click":
		return nil
	}

	if err := checkBalanced(l, l.text); err != nil {
		return err
	}
	for _, stmt := range strings.Split(l.text, ";") {
		stmt = strings.TrimSpace(stripLabels(stmt))
		if stmt == "" {
			continue
		}
		if edgeAtStart.MatchString(stmt) {
			return fail(l.n, "edge has no source node")
		}
		if edgeAtEnd.MatchString(stmt) {
			return fail(l.n, "edge has no target node")
		}
	}
	return nil
}

func (c *checker) checkSequence(l line, keyword string) error {
	lower := strings.ToLower(keyword)
	switch {
	case sequenceBlocks[lower]:
		c.blocks = append(c.blocks, block{keyword: lower, n: l.n})
		return nil
	case lower == "end":
		return c.closeBlock(l)
	case lower == "else" || lower == "and" || lower == "option":
		if len(c.blocks) == 0 {
			return fail(l.n, "%q outside a block", keyword)
		}
		return nil
	case sequenceKeywords[lower] || sequenceKeywords[keyword]:
		return nil
	}

	if !seqArrow.MatchString(l.text) {
		return fail(l.n, "expected a message such as A->>B: text")
	}
	m := seqMessage.FindStringSubmatch(l.text)
	if m == nil || strings.TrimSpace(m[1]) == "" || strings.TrimSpace(m[2]) == "" {
		return fail(l.n, "invalid message, expected A->>B: text")
	}
	return nil
}

func (c *checker) checkBraces(l line) error {
	text := beforeColon(l.text)
	for _, r := range stripQuoted(text) {
		switch r {
		case '{':
			if c.braces == 0 {
				c.braceLine = l.n
			}
			c.braces++
		case '}':
			c.braces--
			if c.braces < 0 {
				return fail(l.n, "unexpected }")
			}
		}
	}
	return checkPairs(l, text, "()[]", false)
}

// checkEntityBlock tracks ER entity blocks. Relationship lines use { and }
// as cardinality markers, so only a trailing { or a lone } count.
func (c *checker) checkEntityBlock(l line) error {
	switch {
	case l.text == "}":
		c.braces--
		if c.braces < 0 {
			return fail(l.n, "unexpected }")
		}
	case strings.HasSuffix(l.text, "{"):
		if c.braces == 0 {
			c.braceLine = l.n
		}
		c.braces++
	}
	if strings.Count(l.text, `"`)%2 != 0 {
		return fail(l.n, "unbalanced quote")
	}
	return nil
}

func (c *checker) closeBlock(l line) error {
	if len(c.blocks) == 0 {
		return fail(l.n, "unexpected end")
	}
	c.blocks = c.blocks[:len(c.blocks)-1]
	return nil
}

// done reports blocks still open at the end of the diagram.
func (c *checker) done() error {
	if len(c.blocks) > 0 {
		b := c.blocks[len(c.blocks)-1]
		return fail(b.n, "%s opened on line %d is never closed", b.keyword, b.n)
	}
	if c.braceTotal && c.braces > 0 {
		return fail(c.braceLine, "{ opened on line %d is never closed", c.braceLine)
	}
	return nil
}

// checkBalanced checks quotes and all bracket pairs within one flowchart line.
func checkBalanced(l line, text string) error {
	return checkPairs(l, text, "()[]{}", true)
}

// checkPairs checks quotes and the given bracket pairs within one line.
// With asymmetric set, a ">" directly after a node id at top level opens
// the flowchart shape "A>label]".
func checkPairs(l line, text, pairs string, asymmetric bool) error {
	if strings.Count(text, `"`)%2 != 0 {
		return fail(l.n, "unbalanced quote")
	}
	text = stripQuoted(text)

	var stack []rune
	var prev rune
	for _, r := range text {
		switch {
		case asymmetric && r == '>' && len(stack) == 0 && isIDRune(prev):
			stack = append(stack, '[')
		case isOpener(r, pairs):
			stack = append(stack, r)
		case isCloser(r, pairs):
			want := opener(r)
			if len(stack) == 0 || stack[len(stack)-1] != want {
				return fail(l.n, "unbalanced %q", string(r))
			}
			stack = stack[:len(stack)-1]
		}
		prev = r
	}
	if len(stack) > 0 {
		return fail(l.n, "unclosed %q", string(stack[len(stack)-1]))
	}
	return nil
}

func isOpener(r rune, pairs string) bool {
	for i := 0; i+1 < len(pairs); i += 2 {
		if rune(pairs[i]) == r {
			return true
		}
	}
	return false
}

func isCloser(r rune, pairs string) bool {
	for i := 0; i+1 < len(pairs); i += 2 {
		if rune(pairs[i+1]) == r {
			return true
		}
	}
	return false
}

func opener(r rune) rune {
	switch r {
	case ')':
		return '('
	case ']':
		return '['
	default:
		return '{'
	}
}

func isIDRune(r rune) bool {
	return r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

// stripQuoted removes "quoted" segments.
func stripQuoted(text string) string {
	var b strings.Builder
	in := false
	for _, r := range text {
		if r == '"' {
			in = !in
			continue
		}
		if !in {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripLabels removes |edge labels| and bracketed node text so arrows
// inside labels are not mistaken for edges.
func stripLabels(stmt string) string {
	var b strings.Builder
	depth := 0
	inPipe := false
	for _, r := range stripQuoted(stmt) {
		switch {
		case r == '|' && depth == 0:
			inPipe = !inPipe
		case inPipe:
		case r == '(' || r == '[' || r == '{':
			depth++
		case r == ')' || r == ']' || r == '}':
			if depth > 0 {
				depth--
			}
			if depth == 0 {
				b.WriteString("N")
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// beforeColon returns the statement part before a free-text ":" label.
// Colons inside quotes do not count.
func beforeColon(text string) string {
	in := false
	for i, r := range text {
		switch {
		case r == '"':
			in = !in
		case r == ':' && !in:
			return text[:i]
		}
	}
	return text
}

func fail(n int, format string, args ...any) error {
	return &driven.GrammarError{Line: n, Message: fmt.Sprintf(format, args...)}
}
