package driven

import (
	"context"

	"github.com/custodia-labs/qalint/internal/core/domain"
)

// RunStore persists validation runs for the history command.
type RunStore interface {
	// Save stores a run, replacing any run with the same ID.
	Save(ctx context.Context, run *domain.Run) error

	// Get retrieves a run by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Run, error)

	// List returns the most recent runs first.
	// A limit of 0 or less returns every run.
	List(ctx context.Context, limit int) ([]domain.Run, error)

	// Delete removes a run.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}
