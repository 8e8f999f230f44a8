// Package mcp provides an MCP (Model Context Protocol) server adapter for qalint.
// It lets AI assistants validate Q&A documents and look up the allowed languages.
package mcp

import "errors"

// ErrMissingValidationService is returned when the validation service is not provided.
var ErrMissingValidationService = errors.New("mcp: validation service is required")

// ErrNoDocument is returned when a tool call names neither content nor a path.
var ErrNoDocument = errors.New("mcp: content or path is required")
