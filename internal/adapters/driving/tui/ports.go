// Package tui provides an interactive terminal browser for Q&A documents.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/qalint/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the TUI.
type Ports struct {
	// Validation loads, parses and validates the browsed document.
	Validation driving.ValidationService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(validation driving.ValidationService) *Ports {
	return &Ports{Validation: validation}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Validation == nil {
		return ErrMissingValidationService
	}
	return nil
}
