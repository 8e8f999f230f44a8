// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Parser: Turns raw document bytes into Sections and Entries
//   - Rule: One named validation check over a parsed document
//   - RulePipeline: Runs the enabled rules in order
//   - DocumentLoader: Reads a document from a path, stdin or a remote source
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - DiagramGrammar: Parses diagram sources. Missing grammars skip the check.
//   - SyntaxChecker: Parses code samples (tree-sitter, cgo builds only).
//   - DocumentWatcher: Pushes file changes for watch mode.
//   - RunStore: Validation history (SQLite). Without it, history is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or parser package
package driven
