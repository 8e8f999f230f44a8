// Package domain defines the core entities for qalint.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A parsed Q&A document made of Sections
//   - Section: A titled group of consecutive Entries
//   - Entry: One numbered question with its answer body
//   - CodeBlock / DiagramBlock: Fenced artifacts inside an answer
//   - Violation: A detected deviation from the document schema
//   - Report: The outcome of validating one document
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
