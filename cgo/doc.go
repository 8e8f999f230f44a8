// Package cgo provides CGO bindings for native libraries.
// This package isolates all CGO code from the pure Go core.
//
// Sub-packages:
//   - treesitter: tree-sitter grammars for code sample syntax checks
package cgo
