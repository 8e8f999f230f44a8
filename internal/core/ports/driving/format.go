package driving

import "context"

// FormatService rewrites documents.
type FormatService interface {
	// Renumber rewrites entry ordinals to be contiguous from 1.
	// It returns the new content and the number of entries renumbered.
	Renumber(ctx context.Context, source string, content []byte) ([]byte, int, error)
}
