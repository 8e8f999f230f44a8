// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/qalint/internal/core/domain"
)

// DocumentLoaded carries a parsed document and its report back to the model.
type DocumentLoaded struct {
	Document *domain.Document
	Report   *domain.Report
	Err      error
}

// EntrySelected is sent when an entry is opened from the list.
type EntrySelected struct {
	Entry      domain.Entry
	Section    string
	Violations []domain.Violation
}

// ReloadRequested asks the app to load and validate the document again.
type ReloadRequested struct{}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewEntries lists every entry with its violation count.
	ViewEntries ViewType = iota
	// ViewEntry shows one entry with its answer and violations.
	ViewEntry
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewEntries:
		return "entries"
	case ViewEntry:
		return "entry"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred is sent when an error occurs.
type ErrorOccurred struct {
	Err error
}

// Quit is sent to exit the application.
type Quit struct{}
