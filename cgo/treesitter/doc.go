// Package treesitter provides CGO bindings for tree-sitter grammars.
// It implements the driven.SyntaxChecker interface for code samples.
//
// Build requires:
//   - CGO enabled (the grammars are compiled C sources)
//
// Without CGO a stub is built whose Available method returns false.
package treesitter
