// Package graphviz checks Graphviz DOT diagram sources.
package graphviz

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/awalterschulze/gographviz"

	"github.com/custodia-labs/qalint/internal/core/ports/driven"
)

// Ensure Grammar implements the interface.
var _ driven.DiagramGrammar = (*Grammar)(nil)

var errorLine = regexp.MustCompile(`(?i)line[ =:]*(\d+)`)

// Grammar validates DOT sources.
type Grammar struct{}

// New creates a DOT grammar.
func New() *Grammar {
	return &Grammar{}
}

// Name returns the grammar name.
func (g *Grammar) Name() string {
	return "graphviz"
}

// Validate parses the source with the DOT parser, then checks that edge
// operators match the graph kind: "->" only in a digraph, "--" only in
// an undirected graph.
func (g *Grammar) Validate(source string) error {
	if strings.TrimSpace(source) == "" {
		return &driven.GrammarError{Message: "empty graph"}
	}

	if _, err := gographviz.ParseString(source); err != nil {
		return &driven.GrammarError{
			Line:    lineOf(err.Error()),
			Message: firstLine(err.Error()),
		}
	}

	return checkEdgeOps(source)
}

// lineOf extracts a line number from a parser error message.
func lineOf(msg string) int {
	m := errorLine.FindStringSubmatch(msg)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

func firstLine(msg string) string {
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return msg[:i]
	}
	return msg
}

// checkEdgeOps scans tokens outside strings and comments.
func checkEdgeOps(source string) error {
	directed := false
	kindSeen := false
	s := scanner{src: source, line: 1}

	for {
		tok, line, ok := s.next()
		if !ok {
			return nil
		}
		switch lower := strings.ToLower(tok); {
		case !kindSeen && lower == "strict":
		case !kindSeen && (lower == "graph" || lower == "digraph"):
			directed = lower == "digraph"
			kindSeen = true
		case tok == "->" && !directed:
			return &driven.GrammarError{Line: line, Message: `"->" used in an undirected graph`}
		case tok == "--" && directed:
			return &driven.GrammarError{Line: line, Message: `"--" used in a digraph`}
		}
	}
}

// scanner is a minimal DOT tokenizer that only distinguishes edge
// operators and keywords from everything else.
type scanner struct {
	src  string
	pos  int
	line int
}

// next returns the next interesting token and its line.
func (s *scanner) next() (string, int, bool) {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '\n':
			s.line++
			s.pos++
		case c == '"':
			s.skipQuoted()
		case c == '<':
			s.skipHTML()
		case strings.HasPrefix(s.src[s.pos:], "//") || (c == '#' && s.atLineStart()):
			s.skipTo("\n")
		case strings.HasPrefix(s.src[s.pos:], "/*"):
			s.pos += 2
			s.skipTo("*/")
			s.pos += 2
		case strings.HasPrefix(s.src[s.pos:], "->") || strings.HasPrefix(s.src[s.pos:], "--"):
			tok := s.src[s.pos : s.pos+2]
			s.pos += 2
			return tok, s.line, true
		case isWordByte(c):
			start := s.pos
			for s.pos < len(s.src) && isWordByte(s.src[s.pos]) {
				s.pos++
			}
			return s.src[start:s.pos], s.line, true
		default:
			s.pos++
		}
	}
	return "", s.line, false
}

func (s *scanner) skipQuoted() {
	s.pos++
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case '"':
			s.pos++
			return
		case '\n':
			s.line++
		}
		s.pos++
	}
}

func (s *scanner) skipHTML() {
	depth := 0
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				s.pos++
				return
			}
		case '\n':
			s.line++
		}
		s.pos++
	}
}

func (s *scanner) skipTo(end string) {
	for s.pos < len(s.src) && !strings.HasPrefix(s.src[s.pos:], end) {
		if s.src[s.pos] == '\n' {
			s.line++
		}
		s.pos++
	}
}

func (s *scanner) atLineStart() bool {
	i := strings.LastIndexByte(s.src[:s.pos], '\n')
	return strings.TrimSpace(s.src[i+1:s.pos]) == ""
}

func isWordByte(c byte) bool {
	return c == '_' || c == '.' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c >= 0x80
}
