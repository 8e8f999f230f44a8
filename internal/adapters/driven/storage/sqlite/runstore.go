package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/qalint/internal/core/domain"
	"github.com/custodia-labs/qalint/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// Save stores a run and its violations, replacing any run with the same ID.
func (s *runStore) Save(ctx context.Context, run *domain.Run) error {
	if run == nil || run.ID == "" {
		return domain.ErrInvalidInput
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, source, checked_at, sections, entries, violation_count)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source = excluded.source,
			checked_at = excluded.checked_at,
			sections = excluded.sections,
			entries = excluded.entries,
			violation_count = excluded.violation_count
	`, run.ID, run.Source, run.CheckedAt.UTC().UnixNano(),
		run.Sections, run.Entries, len(run.Violations))
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM violations WHERE run_id = ?", run.ID); err != nil {
		return fmt.Errorf("clearing violations: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO violations (run_id, position, ordinal, rule, kind, line, message)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing violation insert: %w", err)
	}
	defer stmt.Close()

	for i, v := range run.Violations {
		_, err := stmt.ExecContext(ctx, run.ID, i, v.Ordinal, string(v.Rule), string(v.Kind), v.Line, v.Message)
		if err != nil {
			return fmt.Errorf("saving violation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

// Get retrieves a run by ID.
func (s *runStore) Get(ctx context.Context, id string) (*domain.Run, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, source, checked_at, sections, entries
		FROM runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err != nil {
		return nil, err
	}

	run.Violations, err = s.violations(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// List returns runs newest first.
func (s *runStore) List(ctx context.Context, limit int) ([]domain.Run, error) {
	query := `
		SELECT id, source, checked_at, sections, entries
		FROM runs ORDER BY checked_at DESC, id ASC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}

	var runs []domain.Run //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	rows.Close()

	// Violations are loaded after the cursor closes; the pool may hold one connection.
	for i := range runs {
		runs[i].Violations, err = s.violations(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// Delete removes a run and its violations.
func (s *runStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM violations WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("deleting violations: %w", err)
	}
	return nil
}

func (s *runStore) violations(ctx context.Context, runID string) ([]domain.Violation, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT ordinal, rule, kind, line, message
		FROM violations WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying violations: %w", err)
	}
	defer rows.Close()

	vs := []domain.Violation{}
	for rows.Next() {
		var (
			v          domain.Violation
			rule, kind string
		)
		if err := rows.Scan(&v.Ordinal, &rule, &kind, &v.Line, &v.Message); err != nil {
			return nil, fmt.Errorf("scanning violation: %w", err)
		}
		v.Rule = domain.RuleID(rule)
		v.Kind = domain.ViolationKind(kind)
		vs = append(vs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating violations: %w", err)
	}
	return vs, nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*domain.Run, error) {
	var (
		run       domain.Run
		checkedAt int64
	)
	err := row.Scan(&run.ID, &run.Source, &checkedAt, &run.Sections, &run.Entries)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	run.CheckedAt = time.Unix(0, checkedAt).UTC()
	return &run, nil
}
