//go:build cgo

package treesitter

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/css"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/html"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/custodia-labs/qalint/internal/core/ports/driven"
)

// Ensure Checker implements the interface.
var _ driven.SyntaxChecker = (*Checker)(nil)

// Checker parses code samples with tree-sitter.
// Parsers are not safe for concurrent use, so each Check creates one.
type Checker struct {
	mu        sync.Mutex
	languages map[string]*sitter.Language
}

// New creates a tree-sitter syntax checker.
func New() *Checker {
	return &Checker{}
}

// Available reports that native grammars are compiled in.
func (c *Checker) Available() bool {
	return true
}

// Supports returns true if a grammar exists for the tag.
func (c *Checker) Supports(language string) bool {
	_, ok := grammarFor(language)
	return ok
}

// Check parses source and returns ERROR and MISSING nodes as syntax errors.
func (c *Checker) Check(ctx context.Context, language, source string) ([]driven.SyntaxError, error) {
	name, ok := grammarFor(language)
	if !ok {
		return nil, fmt.Errorf("treesitter: unsupported language %q", language)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(c.language(name))

	tree, err := parser.ParseCtx(ctx, nil, []byte(source))
	if err != nil {
		return nil, fmt.Errorf("treesitter: parse %s: %w", name, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil, nil
	}

	var errs []driven.SyntaxError
	collectErrors(root, &errs)
	return errs, nil
}

// language returns the cached grammar for a name.
func (c *Checker) language(name string) *sitter.Language {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.languages == nil {
		c.languages = make(map[string]*sitter.Language)
	}
	if lang, ok := c.languages[name]; ok {
		return lang
	}

	var lang *sitter.Language
	switch name {
	case "javascript":
		lang = javascript.GetLanguage()
	case "typescript":
		lang = typescript.GetLanguage()
	case "tsx":
		lang = tsx.GetLanguage()
	case "css":
		lang = css.GetLanguage()
	case "html":
		lang = html.GetLanguage()
	case "bash":
		lang = bash.GetLanguage()
	case "go":
		lang = golang.GetLanguage()
	case "python":
		lang = python.GetLanguage()
	}
	c.languages[name] = lang
	return lang
}

// collectErrors walks only subtrees that contain errors.
func collectErrors(n *sitter.Node, errs *[]driven.SyntaxError) {
	if len(*errs) >= maxErrors {
		return
	}
	if n.IsError() || n.IsMissing() {
		p := n.StartPoint()
		msg := "unexpected syntax"
		if n.IsMissing() {
			msg = fmt.Sprintf("missing %s", n.Type())
		}
		*errs = append(*errs, driven.SyntaxError{
			Line:    int(p.Row) + 1,
			Column:  int(p.Column) + 1,
			Message: msg,
		})
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child != nil && (child.HasError() || child.IsMissing()) {
			collectErrors(child, errs)
		}
	}
}
