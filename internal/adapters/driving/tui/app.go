package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/qalint/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/qalint/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/qalint/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/qalint/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/qalint/internal/adapters/driving/tui/views/entries"
	"github.com/custodia-labs/qalint/internal/adapters/driving/tui/views/entry"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	source string

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	statusBar   *status.Bar
	entriesView *entries.View
	entryView   *entry.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last load error.
	err error

	width  int
	height int

	// ready indicates the first window size has arrived.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a TUI browsing the document at source.
func NewApp(ports *Ports, source string) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if source == "" {
		return nil, fmt.Errorf("creating app: %w", ErrMissingSource)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		source:      source,
		styles:      s,
		keymap:      km,
		help:        help.New(),
		statusBar:   status.NewBar(s, km),
		entriesView: entries.NewView(s),
		entryView:   entry.NewView(s),
		currentView: messages.ViewEntries,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("qalint - "+a.source),
		a.loadDocument(),
	)
}

// loadDocument reads, parses and validates the source off the UI loop.
func (a *App) loadDocument() tea.Cmd {
	ctx, svc, source := a.ctx, a.ports.Validation, a.source
	return func() tea.Msg {
		raw, err := svc.Load(ctx, source)
		if err != nil {
			return messages.DocumentLoaded{Err: err}
		}
		doc, err := svc.Parse(ctx, raw.URI, raw.Content)
		if err != nil {
			return messages.DocumentLoaded{Err: err}
		}
		report, err := svc.Validate(ctx, raw.URI, raw.Content)
		if err != nil {
			return messages.DocumentLoaded{Err: err}
		}
		return messages.DocumentLoaded{Document: doc, Report: report}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.DocumentLoaded:
		a.entriesView, cmd = a.entriesView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(msg.Err.Error())
			return a, cmd
		}
		a.err = nil
		entryCount, violations := 0, 0
		if msg.Report != nil {
			entryCount = msg.Report.Entries
			violations = len(msg.Report.Violations)
		}
		a.statusBar.SetReport(a.source, entryCount, violations)
		a.statusBar.SetState(status.StateReady)
		a.statusBar.SetMessage("")
		return a, cmd

	case messages.ReloadRequested:
		a.statusBar.SetState(status.StateLoading)
		a.currentView = messages.ViewEntries
		return a, a.loadDocument()

	case messages.EntrySelected:
		a.entryView.SetEntry(msg.Entry, msg.Section, msg.Violations)
		a.currentView = messages.ViewEntry
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewHelp {
			a.statusBar.SetState(status.StateHelp)
		} else if a.statusBar.State() == status.StateHelp {
			a.statusBar.SetState(status.StateReady)
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(msg.Err.Error())
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewHelp:
		if keymap.Matches(msg.String(), a.keymap.Back) || keymap.Matches(msg.String(), a.keymap.Help) {
			return a.Update(messages.ViewChanged{View: messages.ViewEntries})
		}
		if msg.String() == "q" {
			return a, tea.Quit
		}
		return a, nil

	case messages.ViewEntry:
		if msg.String() == "q" {
			return a, tea.Quit
		}
		a.entryView, cmd = a.entryView.Update(msg)
		return a, cmd

	case messages.ViewEntries:
		switch {
		case msg.String() == "q":
			return a, tea.Quit
		case keymap.Matches(msg.String(), a.keymap.Help):
			return a.Update(messages.ViewChanged{View: messages.ViewHelp})
		}
		a.entriesView, cmd = a.entriesView.Update(msg)
		return a, cmd
	}

	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewEntry:
		body = a.entryView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.entriesView.View()
	}

	return body + "\n" + a.statusBar.View()
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(a.help.FullHelpView(a.keymap.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last load error.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// Source returns the browsed document reference.
func (a *App) Source() string {
	return a.source
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	// One line for the status bar.
	a.entriesView.SetDimensions(width, height-1)
	a.entryView.SetDimensions(width, height-1)
	a.statusBar.SetWidth(width)
	a.help.Width = width
}
