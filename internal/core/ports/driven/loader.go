package driven

import (
	"context"

	"github.com/custodia-labs/qalint/internal/core/domain"
)

// DocumentLoader reads a document from a source reference.
// Each loader (filesystem, stdin, github) handles one kind of reference.
type DocumentLoader interface {
	// Name returns the loader name for logging.
	Name() string

	// Supports returns true if the loader handles the reference.
	Supports(ref string) bool

	// Load reads the document. Failures wrap domain.ErrSourceUnreadable.
	Load(ctx context.Context, ref string) (*domain.RawDocument, error)
}

// DocumentWatcher pushes change notifications for local documents.
type DocumentWatcher interface {
	// Watch starts watching the given paths.
	// The channel is closed when ctx is cancelled or Close is called.
	Watch(ctx context.Context, paths []string) (<-chan domain.FileChange, error)

	// Close stops watching and releases resources.
	Close() error
}

// RefExpander is implemented by loaders whose references can name many
// documents at once, such as a directory or a repository.
type RefExpander interface {
	// Expand returns the document references ref stands for.
	// A reference to a single document is returned unchanged.
	Expand(ctx context.Context, ref string) ([]string, error)
}
