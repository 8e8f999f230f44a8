package filesystem

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/qalint/internal/core/domain"
	"github.com/custodia-labs/qalint/internal/core/ports/driven"
)

// StdinRef is the reference that reads from standard input.
const StdinRef = "-"

// documentExtensions are the file types picked up when a directory is expanded.
var documentExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".mdx":      true,
}

// Ensure Loader implements the interfaces.
var (
	_ driven.DocumentLoader = (*Loader)(nil)
	_ driven.RefExpander    = (*Loader)(nil)
)

// Loader reads local files, and standard input for "-".
type Loader struct {
	stdin io.Reader
}

// NewLoader creates a loader that reads "-" from os.Stdin.
func NewLoader() *Loader {
	return &Loader{stdin: os.Stdin}
}

// NewLoaderWithStdin creates a loader with a custom standard input.
func NewLoaderWithStdin(r io.Reader) *Loader {
	return &Loader{stdin: r}
}

// Name returns the loader name.
func (l *Loader) Name() string {
	return "filesystem"
}

// Supports returns true for "-", bare paths and file:// URIs.
func (l *Loader) Supports(ref string) bool {
	if ref == StdinRef || strings.HasPrefix(ref, "file://") {
		return true
	}
	return ref != "" && !strings.Contains(ref, "://")
}

// Load reads the whole document.
func (l *Loader) Load(ctx context.Context, ref string) (*domain.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if ref == StdinRef {
		content, err := io.ReadAll(l.stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: stdin: %w", domain.ErrSourceUnreadable, err)
		}
		return &domain.RawDocument{
			URI:      StdinRef,
			Content:  content,
			Metadata: map[string]any{"loader": l.Name()},
		}, nil
	}

	path := strings.TrimPrefix(ref, "file://")
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceUnreadable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrSourceUnreadable, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceUnreadable, err)
	}

	return &domain.RawDocument{
		URI:     ref,
		Content: content,
		Metadata: map[string]any{
			"loader":   l.Name(),
			"size":     info.Size(),
			"modified": info.ModTime(),
		},
	}, nil
}

// Expand returns the Markdown files below ref when it is a directory.
func (l *Loader) Expand(ctx context.Context, ref string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Expand([]string{ref})
}

// Expand replaces every directory in refs with the Markdown files below it,
// sorted by path. Hidden directories are skipped. Other refs pass through.
func Expand(refs []string) ([]string, error) {
	var out []string
	for _, ref := range refs {
		if ref == StdinRef || strings.Contains(ref, "://") {
			out = append(out, ref)
			continue
		}
		info, err := os.Stat(ref)
		if err != nil || !info.IsDir() {
			out = append(out, ref)
			continue
		}

		var found []string
		err = filepath.WalkDir(ref, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != ref && isHidden(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !isHidden(d.Name()) && IsDocument(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrSourceUnreadable, err)
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}

// IsDocument reports whether path has a Markdown extension.
func IsDocument(path string) bool {
	return documentExtensions[strings.ToLower(filepath.Ext(path))]
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
