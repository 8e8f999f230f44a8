package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/qalint/internal/core/domain"
)

// defaultSource names inline content in reports.
const defaultSource = "document.md"

// ValidateInput is the input schema for the validate_document tool.
type ValidateInput struct {
	Content string `json:"content,omitempty" jsonschema:"the Markdown document text to validate"`
	Path    string `json:"path,omitempty" jsonschema:"a file path or github:// reference to load instead of content"`
	Source  string `json:"source,omitempty" jsonschema:"name used for inline content in the report (default document.md)"`
}

// ValidateOutput is the output schema for the validate_document tool.
type ValidateOutput struct {
	Source     string            `json:"source"`
	OK         bool              `json:"ok"`
	Sections   int               `json:"sections"`
	Entries    int               `json:"entries"`
	Count      int               `json:"count"`
	Violations []ViolationOutput `json:"violations"`
}

// ViolationOutput represents a single violation.
type ViolationOutput struct {
	EntryOrdinal int    `json:"entry_ordinal"`
	Rule         string `json:"rule"`
	Kind         string `json:"kind"`
	Line         int    `json:"line,omitempty"`
	Message      string `json:"message"`
}

// LanguagesInput is the (empty) input schema for the list_languages tool.
type LanguagesInput struct{}

// LanguagesOutput is the output schema for the list_languages tool.
type LanguagesOutput struct {
	Code    []string `json:"code"`
	Diagram []string `json:"diagram"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "validate_document",
		Description: "Validate an interview-style Q&A Markdown document and return every " +
			"structural and schema violation",
	}, s.handleValidate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_languages",
		Description: "List the code block languages and diagram languages the validator accepts",
	}, s.handleListLanguages)
}

// handleValidate handles the validate_document tool invocation.
func (s *Server) handleValidate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValidateInput,
) (*mcp.CallToolResult, ValidateOutput, error) {
	var (
		report *domain.Report
		err    error
	)
	switch {
	case input.Content != "":
		source := input.Source
		if source == "" {
			source = defaultSource
		}
		report, err = s.ports.Validation.Validate(ctx, source, []byte(input.Content))
	case input.Path != "":
		report, err = s.ports.Validation.ValidateSource(ctx, input.Path)
	default:
		return nil, ValidateOutput{}, ErrNoDocument
	}
	if err != nil {
		return nil, ValidateOutput{}, fmt.Errorf("validating document: %w", err)
	}

	output := ValidateOutput{
		Source:     report.Source,
		OK:         report.OK(),
		Sections:   report.Sections,
		Entries:    report.Entries,
		Count:      len(report.Violations),
		Violations: make([]ViolationOutput, len(report.Violations)),
	}
	for i, v := range report.Violations {
		output.Violations[i] = ViolationOutput{
			EntryOrdinal: v.Ordinal,
			Rule:         v.Rule.String(),
			Kind:         string(v.Kind),
			Line:         v.Line,
			Message:      v.Message,
		}
	}

	return nil, output, nil
}

// handleListLanguages handles the list_languages tool invocation.
func (s *Server) handleListLanguages(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ LanguagesInput,
) (*mcp.CallToolResult, LanguagesOutput, error) {
	code := domain.KnownLanguages()
	if s.ports.Settings != nil {
		languages, err := s.ports.Settings.Languages()
		if err != nil {
			return nil, LanguagesOutput{}, fmt.Errorf("listing languages: %w", err)
		}
		code = languages
	}

	return nil, LanguagesOutput{
		Code:    code,
		Diagram: domain.DiagramLanguages(),
	}, nil
}
