package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/qalint/internal/core/domain"
	"github.com/custodia-labs/qalint/internal/core/ports/driven"
	"github.com/custodia-labs/qalint/internal/core/ports/driving"
	"github.com/custodia-labs/qalint/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService records validation runs in a run store.
type HistoryService struct {
	store driven.RunStore
}

// NewHistoryService creates a new history service.
func NewHistoryService(store driven.RunStore) *HistoryService {
	return &HistoryService{store: store}
}

// Record stores a report as a run.
func (s *HistoryService) Record(ctx context.Context, report *domain.Report) error {
	if report == nil || report.ID == "" {
		return fmt.Errorf("%w: report without id", domain.ErrInvalidInput)
	}
	run := domain.RunFromReport(report)
	if err := s.store.Save(ctx, &run); err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}
	logger.Debug("Recorded run %s for %s", run.ID, run.Source)
	return nil
}

// List returns recent runs, newest first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.Run, error) {
	runs, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Get returns one run. A unique ID prefix of at least 4 characters
// is accepted, so the short IDs printed by the CLI can be used.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.Run, error) {
	run, err := s.store.Get(ctx, id)
	if err == nil {
		return run, nil
	}
	if !errors.Is(err, domain.ErrNotFound) || len(id) < 4 {
		return nil, err
	}

	runs, listErr := s.store.List(ctx, 0)
	if listErr != nil {
		return nil, fmt.Errorf("list runs: %w", listErr)
	}
	var match *domain.Run
	for i := range runs {
		if len(runs[i].ID) >= len(id) && runs[i].ID[:len(id)] == id {
			if match != nil {
				return nil, fmt.Errorf("%w: run id %q is ambiguous", domain.ErrInvalidInput, id)
			}
			match = &runs[i]
		}
	}
	if match == nil {
		return nil, err
	}
	return match, nil
}

// Delete removes one run.
func (s *HistoryService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
