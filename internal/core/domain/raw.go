package domain

// RawDocument represents the bytes loaded from a source before parsing.
type RawDocument struct {
	// URI is the original location (file path, github:// URL, "-").
	URI string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains loader-specific key-value pairs.
	Metadata map[string]any
}

// ChangeType represents the type of file change seen by a watcher.
type ChangeType int

const (
	// ChangeCreated indicates a new file.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified file.
	ChangeUpdated

	// ChangeDeleted indicates a removed file.
	ChangeDeleted
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// FileChange is emitted by a watcher when a watched document changes.
type FileChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Path is the affected file.
	Path string
}
