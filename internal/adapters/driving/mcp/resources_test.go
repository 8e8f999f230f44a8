package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qalint/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestExtractRunID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid run URI",
			uri:      "qalint://runs/abc-123",
			expected: "abc-123",
		},
		{
			name:     "invalid prefix",
			uri:      "file://runs/abc-123",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractRunID(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestServer_handleRulesResource(t *testing.T) {
	settings := &mockSettingsService{settings: domain.Settings{
		DisabledRules:       []domain.RuleID{domain.RuleEmptySection},
		RequireCodeLanguage: true,
	}}
	server, err := NewServer(&Ports{Validation: &mockValidationService{}, Settings: settings})
	require.NoError(t, err)

	result, err := server.handleRulesResource(context.Background(), readRequest("qalint://rules"))
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)

	var rules []struct {
		ID      string `json:"id"`
		Kind    string `json:"kind"`
		Enabled bool   `json:"enabled"`
	}
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &rules))
	require.Len(t, rules, len(domain.AllRules()))

	enabled := make(map[string]bool)
	for _, r := range rules {
		enabled[r.ID] = r.Enabled
	}
	assert.False(t, enabled["empty-section"])
	assert.True(t, enabled["missing-code-language"])
	assert.False(t, enabled["invalid-code-syntax"])
	assert.True(t, enabled["duplicate-ordinal"])
	assert.Equal(t, "structural", rules[0].Kind)
}

func TestServer_handleRunsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("empty without history", func(t *testing.T) {
		server, err := NewServer(&Ports{Validation: &mockValidationService{}})
		require.NoError(t, err)

		result, err := server.handleRunsResource(ctx, readRequest("qalint://runs"))
		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("lists recorded runs", func(t *testing.T) {
		history := &mockHistoryService{runs: []domain.Run{{
			ID:         "run-1",
			Source:     "q.md",
			CheckedAt:  time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC),
			Entries:    3,
			Violations: failingReport().Violations,
		}}}
		server, err := NewServer(&Ports{Validation: &mockValidationService{}, History: history})
		require.NoError(t, err)

		result, err := server.handleRunsResource(ctx, readRequest("qalint://runs"))
		require.NoError(t, err)

		var runs []map[string]any
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &runs))
		require.Len(t, runs, 1)
		assert.Equal(t, "run-1", runs[0]["id"])
		assert.Equal(t, "2026-04-02T10:00:00Z", runs[0]["checked_at"])
		assert.Equal(t, float64(1), runs[0]["violations"])
	})
}

func TestServer_handleRunResource(t *testing.T) {
	ctx := context.Background()
	history := &mockHistoryService{runs: []domain.Run{{
		ID:         "run-1",
		Source:     "q.md",
		Violations: failingReport().Violations,
	}}}
	server, err := NewServer(&Ports{Validation: &mockValidationService{}, History: history})
	require.NoError(t, err)

	t.Run("returns the run", func(t *testing.T) {
		result, err := server.handleRunResource(ctx, readRequest("qalint://runs/run-1"))
		require.NoError(t, err)

		var report domain.Report
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &report))
		assert.Equal(t, "q.md", report.Source)
		assert.Len(t, report.Violations, 1)
	})

	t.Run("unknown run is not found", func(t *testing.T) {
		_, err := server.handleRunResource(ctx, readRequest("qalint://runs/nope"))
		assert.Error(t, err)
	})

	t.Run("malformed URI is not found", func(t *testing.T) {
		_, err := server.handleRunResource(ctx, readRequest("qalint://runs/"))
		assert.Error(t, err)
	})
}
