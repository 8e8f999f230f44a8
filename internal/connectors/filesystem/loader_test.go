package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qalint/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoader_Supports(t *testing.T) {
	l := NewLoader()

	tests := []struct {
		ref  string
		want bool
	}{
		{"-", true},
		{"questions.md", true},
		{"/abs/path/README.md", true},
		{"file:///tmp/q.md", true},
		{"github://owner/repo/README.md", false},
		{"https://example.com/q.md", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Supports(tt.ref))
		})
	}
}

func TestLoader_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.md")
	writeFile(t, path, "1. What?\n")

	raw, err := NewLoader().Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, path, raw.URI)
	assert.Equal(t, "1. What?\n", string(raw.Content))
	assert.Equal(t, "filesystem", raw.Metadata["loader"])
	assert.EqualValues(t, 9, raw.Metadata["size"])
}

func TestLoader_LoadFileURI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.md")
	writeFile(t, path, "x")

	raw, err := NewLoader().Load(context.Background(), "file://"+path)

	require.NoError(t, err)
	assert.Equal(t, "x", string(raw.Content))
}

func TestLoader_LoadStdin(t *testing.T) {
	l := NewLoaderWithStdin(strings.NewReader("1. From a pipe?\n"))

	raw, err := l.Load(context.Background(), "-")

	require.NoError(t, err)
	assert.Equal(t, "-", raw.URI)
	assert.Equal(t, "1. From a pipe?\n", string(raw.Content))
}

func TestLoader_Unreadable(t *testing.T) {
	dir := t.TempDir()

	_, err := NewLoader().Load(context.Background(), filepath.Join(dir, "missing.md"))
	assert.ErrorIs(t, err, domain.ErrSourceUnreadable)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewLoader().Load(context.Background(), dir)
	assert.ErrorIs(t, err, domain.ErrSourceUnreadable)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader().Load(ctx, "q.md")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.md"), "")
	writeFile(t, filepath.Join(dir, "a.markdown"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")
	writeFile(t, filepath.Join(dir, ".draft.md"), "")
	writeFile(t, filepath.Join(dir, "sub", "c.MD"), "")
	writeFile(t, filepath.Join(dir, ".git", "d.md"), "")

	got, err := Expand([]string{"-", dir, "github://o/r/x.md", "missing.md"})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"-",
		filepath.Join(dir, "a.markdown"),
		filepath.Join(dir, "b.md"),
		filepath.Join(dir, "sub", "c.MD"),
		"github://o/r/x.md",
		"missing.md",
	}, got)
}

func TestIsDocument(t *testing.T) {
	assert.True(t, IsDocument("README.md"))
	assert.True(t, IsDocument("x/Guide.MDX"))
	assert.False(t, IsDocument("main.go"))
	assert.False(t, IsDocument("md"))
}
