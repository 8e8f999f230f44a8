package github

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/custodia-labs/qalint/internal/core/domain"
	"github.com/custodia-labs/qalint/internal/core/ports/driven"
)

// Ensure Loader implements the interfaces.
var (
	_ driven.DocumentLoader = (*Loader)(nil)
	_ driven.RefExpander    = (*Loader)(nil)
)

// Loader reads github:// references.
type Loader struct {
	client *Client
}

// NewLoader creates a loader backed by client.
func NewLoader(client *Client) *Loader {
	return &Loader{client: client}
}

// Name returns the loader name.
func (l *Loader) Name() string {
	return "github"
}

// Supports returns true for github:// references.
func (l *Loader) Supports(ref string) bool {
	return strings.HasPrefix(ref, Scheme)
}

// Load fetches the file a reference points at.
func (l *Loader) Load(ctx context.Context, ref string) (*domain.RawDocument, error) {
	r, err := ParseRef(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceUnreadable, err)
	}
	if r.Path == "" {
		return nil, fmt.Errorf("%w: %w: %s names a repository", domain.ErrSourceUnreadable, ErrNotAFile, ref)
	}

	content, err := l.client.GetFile(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrSourceUnreadable, ref, err)
	}

	return &domain.RawDocument{
		URI:     ref,
		Content: content,
		Metadata: map[string]any{
			"loader":   l.Name(),
			"owner":    r.Owner,
			"repo":     r.Repo,
			"path":     r.Path,
			"ref":      r.Ref,
			"html_url": r.WebURL(),
		},
	}, nil
}

// Expand turns a repository or directory reference into references to
// every Markdown file below it. A reference to a Markdown file is
// returned unchanged without calling the API.
func (l *Loader) Expand(ctx context.Context, ref string) ([]string, error) {
	r, err := ParseRef(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceUnreadable, err)
	}
	if r.Path != "" && markdownExtensions[strings.ToLower(path.Ext(r.Path))] {
		return []string{ref}, nil
	}

	refs, err := l.client.ListDocuments(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrSourceUnreadable, ref, err)
	}
	out := make([]string, len(refs))
	for i, d := range refs {
		out[i] = d.String()
	}
	return out, nil
}
