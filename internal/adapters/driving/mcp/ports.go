package mcp

import (
	"github.com/custodia-labs/qalint/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Validation checks documents.
	Validation driving.ValidationService

	// Settings supplies the effective language list and rule switches.
	Settings driving.SettingsService

	// History exposes recorded runs as resources.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Validation == nil {
		return ErrMissingValidationService
	}
	// Settings and History are optional
	return nil
}
