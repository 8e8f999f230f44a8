package driving

import (
	"context"

	"github.com/custodia-labs/qalint/internal/core/domain"
)

// HistoryService records and lists validation runs.
type HistoryService interface {
	// Record stores a report as a run.
	Record(ctx context.Context, report *domain.Report) error

	// List returns recent runs, newest first.
	List(ctx context.Context, limit int) ([]domain.Run, error)

	// Get returns one run by ID.
	Get(ctx context.Context, id string) (*domain.Run, error)

	// Delete removes one run.
	Delete(ctx context.Context, id string) error
}
