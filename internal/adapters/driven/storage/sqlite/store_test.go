package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qalint/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func testRun(id string, at time.Time, vs ...domain.Violation) *domain.Run {
	return &domain.Run{
		ID:         id,
		Source:     "docs/" + id + ".md",
		CheckedAt:  at,
		Sections:   2,
		Entries:    10,
		Violations: vs,
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, DatabaseFile), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_Migrations(t *testing.T) {
	store := setupTestStore(t)

	version, err := store.version()
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	for _, table := range []string{"runs", "violations"} {
		var name string
		err := store.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.RunStore().Save(context.Background(), testRun("abc", time.Now())))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	run, err := second.RunStore().Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", run.ID)
}

func TestRunStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	runs := setupTestStore(t).RunStore()
	at := time.Date(2026, 3, 1, 12, 30, 0, 123456789, time.UTC)

	v1 := domain.NewViolation(domain.RuleNonContiguousOrdinal, 48, 120, "expected entry 47, found 48 (missing 47)")
	v2 := domain.NewViolation(domain.RuleNoEntries, 0, 0, "no entries found")
	require.NoError(t, runs.Save(ctx, testRun("run-1", at, v1, v2)))

	got, err := runs.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "docs/run-1.md", got.Source)
	assert.True(t, at.Equal(got.CheckedAt))
	assert.Equal(t, 2, got.Sections)
	assert.Equal(t, 10, got.Entries)
	assert.Equal(t, []domain.Violation{v1, v2}, got.Violations)
}

func TestRunStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	runs := setupTestStore(t).RunStore()
	at := time.Now()

	v := domain.NewViolation(domain.RuleEmptyAnswer, 3, 14, "entry 3 has no answer")
	require.NoError(t, runs.Save(ctx, testRun("run-1", at, v)))
	require.NoError(t, runs.Save(ctx, testRun("run-1", at)))

	got, err := runs.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Empty(t, got.Violations)
	assert.True(t, got.OK())
}

func TestRunStore_SaveInvalid(t *testing.T) {
	runs := setupTestStore(t).RunStore()

	assert.ErrorIs(t, runs.Save(context.Background(), nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, runs.Save(context.Background(), &domain.Run{}), domain.ErrInvalidInput)
}

func TestRunStore_GetNotFound(t *testing.T) {
	runs := setupTestStore(t).RunStore()

	_, err := runs.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunStore_List(t *testing.T) {
	ctx := context.Background()
	runs := setupTestStore(t).RunStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, runs.Save(ctx, testRun("old", base)))
	require.NoError(t, runs.Save(ctx, testRun("new", base.Add(2*time.Hour),
		domain.NewViolation(domain.RuleEmptyQuestion, 1, 3, "entry 1 has no question"))))
	require.NoError(t, runs.Save(ctx, testRun("mid", base.Add(time.Hour))))

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"all", 0, []string{"new", "mid", "old"}},
		{"negative limit", -1, []string{"new", "mid", "old"}},
		{"limited", 2, []string{"new", "mid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runs.List(ctx, tt.limit)
			require.NoError(t, err)
			ids := make([]string, len(got))
			for i := range got {
				ids[i] = got[i].ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	got, err := runs.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Violations, 1)
}

func TestRunStore_ListEmpty(t *testing.T) {
	runs := setupTestStore(t).RunStore()

	got, err := runs.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRunStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	runs := store.RunStore()

	v := domain.NewViolation(domain.RuleEmptyAnswer, 3, 14, "entry 3 has no answer")
	require.NoError(t, runs.Save(ctx, testRun("run-1", time.Now(), v)))
	require.NoError(t, runs.Delete(ctx, "run-1"))

	_, err := runs.Get(ctx, "run-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM violations").Scan(&count))
	assert.Zero(t, count)

	assert.ErrorIs(t, runs.Delete(ctx, "run-1"), domain.ErrNotFound)
}
