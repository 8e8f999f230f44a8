package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qalint/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/qalint/internal/core/domain"
	"github.com/custodia-labs/qalint/internal/core/ports/driving"
)

// mockValidationService implements driving.ValidationService for testing.
type mockValidationService struct {
	loadErr error
	loads   int
}

var _ driving.ValidationService = (*mockValidationService)(nil)

func (m *mockValidationService) Validate(_ context.Context, source string, _ []byte) (*domain.Report, error) {
	return &domain.Report{
		Source:  source,
		Entries: 2,
		Violations: []domain.Violation{
			domain.NewViolation(domain.RuleEmptyAnswer, 2, 6, "answer is empty"),
		},
	}, nil
}

func (m *mockValidationService) ValidateSource(ctx context.Context, ref string) (*domain.Report, error) {
	return m.Validate(ctx, ref, nil)
}

func (m *mockValidationService) ValidateBatch(ctx context.Context, refs []string) ([]*domain.Report, error) {
	return nil, nil
}

func (m *mockValidationService) Expand(_ context.Context, refs []string) ([]string, error) {
	return refs, nil
}

func (m *mockValidationService) Load(_ context.Context, ref string) (*domain.RawDocument, error) {
	m.loads++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return &domain.RawDocument{URI: ref, Content: []byte("1. Q\nA\n2. Q2\n")}, nil
}

func (m *mockValidationService) Parse(_ context.Context, source string, _ []byte) (*domain.Document, error) {
	return &domain.Document{
		Source: source,
		Sections: []domain.Section{{
			Implicit: true,
			Entries: []domain.Entry{
				{Ordinal: 1, Line: 1, Question: "Q", Answer: "A"},
				{Ordinal: 2, Line: 3, Question: "Q2"},
			},
		}},
	}, nil
}

func newTestApp(t *testing.T, svc *mockValidationService) *App {
	t.Helper()
	app, err := NewApp(NewPorts(svc), "questions.md")
	require.NoError(t, err)
	app.SetDimensions(100, 40)
	return app
}

// load runs the app's load command and feeds the result back.
func load(t *testing.T, app *App) {
	t.Helper()
	msg := app.loadDocument()()
	_, _ = app.Update(msg)
}

func TestPorts_Validate(t *testing.T) {
	var nilPorts *Ports
	assert.ErrorIs(t, nilPorts.Validate(), ErrInvalidPorts)
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingValidationService)
	assert.NoError(t, NewPorts(&mockValidationService{}).Validate())
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(NewPorts(&mockValidationService{}), "questions.md")

	require.NoError(t, err)
	assert.Equal(t, messages.ViewEntries, app.CurrentView())
	assert.Equal(t, "questions.md", app.Source())
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
	assert.NotNil(t, app.Init())
}

func TestNewApp_Errors(t *testing.T) {
	_, err := NewApp(&Ports{}, "questions.md")
	assert.ErrorIs(t, err, ErrMissingValidationService)

	_, err = NewApp(NewPorts(&mockValidationService{}), "")
	assert.ErrorIs(t, err, ErrMissingSource)
}

func TestApp_WithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := newTestApp(t, &mockValidationService{}).WithContext(ctx)
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_LoadDocument(t *testing.T) {
	app := newTestApp(t, &mockValidationService{})

	load(t, app)

	assert.NoError(t, app.Err())
	assert.Len(t, app.entriesView.Items(), 2)
	out := app.View()
	assert.Contains(t, out, "questions.md")
	assert.Contains(t, out, "✗1")
}

func TestApp_LoadDocument_Error(t *testing.T) {
	svc := &mockValidationService{loadErr: errors.New("no such file")}
	app := newTestApp(t, svc)

	load(t, app)

	require.Error(t, app.Err())
	assert.Contains(t, app.View(), "no such file")
}

func TestApp_SelectEntryAndBack(t *testing.T) {
	app := newTestApp(t, &mockValidationService{})
	load(t, app)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Nil(t, cmd)
	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	_, _ = app.Update(cmd())
	assert.Equal(t, messages.ViewEntry, app.CurrentView())
	assert.Contains(t, app.View(), "Entry 2")
	assert.Contains(t, app.View(), "empty-answer")

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_, _ = app.Update(cmd())
	assert.Equal(t, messages.ViewEntries, app.CurrentView())
}

func TestApp_Help(t *testing.T) {
	app := newTestApp(t, &mockValidationService{})
	load(t, app)

	_, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Contains(t, app.View(), "Help")
	assert.Contains(t, app.View(), "next problem")

	_, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewEntries, app.CurrentView())
}

func TestApp_Reload(t *testing.T) {
	svc := &mockValidationService{}
	app := newTestApp(t, svc)
	load(t, app)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)

	_, cmd = app.Update(cmd())
	require.NotNil(t, cmd)
	_, _ = app.Update(cmd())

	assert.Equal(t, 2, svc.loads)
	assert.Equal(t, messages.ViewEntries, app.CurrentView())
}

func TestApp_Quit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.Msg
	}{
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
		{"quit message", messages.Quit{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, &mockValidationService{})

			_, cmd := app.Update(tt.msg)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestApp_ErrorOccurred(t *testing.T) {
	app := newTestApp(t, &mockValidationService{})

	_, _ = app.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, app.Err(), "boom")
}

func TestApp_WindowSize(t *testing.T) {
	app, err := NewApp(NewPorts(&mockValidationService{}), "questions.md")
	require.NoError(t, err)

	_, cmd := app.Update(tea.WindowSizeMsg{Width: 120, Height: 30})

	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Equal(t, 120, app.width)
}
