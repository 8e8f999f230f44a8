package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/qalint/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for qalint resources.
	uriScheme = "qalint://"

	// recentRuns is how many runs the runs resource lists.
	recentRuns = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "rules",
		Name:        "rules",
		Description: "Validation rules with their kind and whether they are enabled",
		MIMEType:    "application/json",
	}, s.handleRulesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "runs",
		Name:        "runs",
		Description: "Recently recorded validation runs",
		MIMEType:    "application/json",
	}, s.handleRunsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "runs/{runId}",
		Name:        "run",
		Description: "A recorded validation run with its violations",
		MIMEType:    "application/json",
	}, s.handleRunResource)
}

// handleRulesResource returns every rule and whether current settings enable it.
func (s *Server) handleRulesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings := domain.DefaultSettings()
	if s.ports.Settings != nil {
		current, err := s.ports.Settings.Get()
		if err != nil {
			return nil, fmt.Errorf("getting settings: %w", err)
		}
		settings = *current
	}

	type ruleInfo struct {
		ID          string `json:"id"`
		Kind        string `json:"kind"`
		Description string `json:"description"`
		Enabled     bool   `json:"enabled"`
	}

	all := domain.AllRules()
	infos := make([]ruleInfo, len(all))
	for i, id := range all {
		infos[i] = ruleInfo{
			ID:          id.String(),
			Kind:        string(id.Kind()),
			Description: id.Description(),
			Enabled:     settings.RuleEnabled(id),
		}
	}

	return jsonResult(req.Params.URI, infos)
}

// handleRunsResource returns recent run summaries.
func (s *Server) handleRunsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return jsonResult(req.Params.URI, []any{})
	}

	runs, err := s.ports.History.List(ctx, recentRuns)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	type runInfo struct {
		ID         string `json:"id"`
		Source     string `json:"source"`
		CheckedAt  string `json:"checked_at"`
		Entries    int    `json:"entries"`
		Violations int    `json:"violations"`
	}

	infos := make([]runInfo, len(runs))
	for i := range runs {
		infos[i] = runInfo{
			ID:         runs[i].ID,
			Source:     runs[i].Source,
			CheckedAt:  runs[i].CheckedAt.UTC().Format("2006-01-02T15:04:05Z"),
			Entries:    runs[i].Entries,
			Violations: len(runs[i].Violations),
		}
	}

	return jsonResult(req.Params.URI, infos)
}

// handleRunResource returns one recorded run.
func (s *Server) handleRunResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract runId from URI: qalint://runs/{runId}
	runID := extractRunID(req.Params.URI)
	if runID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	run, err := s.ports.History.Get(ctx, runID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting run: %w", err)
	}

	return jsonResult(req.Params.URI, domain.Report{
		ID:         run.ID,
		Source:     run.Source,
		CheckedAt:  run.CheckedAt,
		Sections:   run.Sections,
		Entries:    run.Entries,
		Violations: run.Violations,
	})
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractRunID extracts the run ID from a URI like qalint://runs/{runId}.
func extractRunID(uri string) string {
	const prefix = uriScheme + "runs/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
