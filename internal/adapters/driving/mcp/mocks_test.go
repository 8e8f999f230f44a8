package mcp

import (
	"context"

	"github.com/custodia-labs/qalint/internal/core/domain"
)

// mockValidationService is a mock implementation of driving.ValidationService.
type mockValidationService struct {
	report *domain.Report
	err    error

	lastSource  string
	lastContent string
	lastRef     string
}

func (m *mockValidationService) Validate(_ context.Context, source string, content []byte) (*domain.Report, error) {
	m.lastSource = source
	m.lastContent = string(content)
	if m.err != nil {
		return nil, m.err
	}
	r := *m.report
	r.Source = source
	return &r, nil
}

func (m *mockValidationService) ValidateSource(_ context.Context, ref string) (*domain.Report, error) {
	m.lastRef = ref
	if m.err != nil {
		return nil, m.err
	}
	r := *m.report
	r.Source = ref
	return &r, nil
}

func (m *mockValidationService) ValidateBatch(ctx context.Context, refs []string) ([]*domain.Report, error) {
	reports := make([]*domain.Report, len(refs))
	for i, ref := range refs {
		r, err := m.ValidateSource(ctx, ref)
		if err != nil {
			return nil, err
		}
		reports[i] = r
	}
	return reports, nil
}

func (m *mockValidationService) Expand(_ context.Context, refs []string) ([]string, error) {
	return refs, nil
}

func (m *mockValidationService) Load(_ context.Context, ref string) (*domain.RawDocument, error) {
	return &domain.RawDocument{URI: ref}, m.err
}

func (m *mockValidationService) Parse(_ context.Context, _ string, _ []byte) (*domain.Document, error) {
	return &domain.Document{}, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings  domain.Settings
	languages []string
	err       error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Set(_, _ string) error { return m.err }

func (m *mockSettingsService) Keys() []string { return nil }

func (m *mockSettingsService) Value(_ string) (string, error) { return "", m.err }

func (m *mockSettingsService) Languages() ([]string, error) { return m.languages, m.err }

func (m *mockSettingsService) Path() string { return "" }

func (m *mockSettingsService) GetDefaults() domain.Settings { return domain.DefaultSettings() }

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	runs []domain.Run
	err  error
}

func (m *mockHistoryService) Record(_ context.Context, _ *domain.Report) error { return m.err }

func (m *mockHistoryService) List(_ context.Context, _ int) ([]domain.Run, error) {
	return m.runs, m.err
}

func (m *mockHistoryService) Get(_ context.Context, id string) (*domain.Run, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.runs {
		if m.runs[i].ID == id {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockHistoryService) Delete(_ context.Context, _ string) error { return m.err }

func failingReport() *domain.Report {
	return &domain.Report{
		ID:       "run-1",
		Sections: 1,
		Entries:  3,
		Violations: []domain.Violation{
			domain.NewViolation(domain.RuleNonContiguousOrdinal, 3, 12, "expected entry 2, found 3 (missing 2)"),
		},
	}
}
