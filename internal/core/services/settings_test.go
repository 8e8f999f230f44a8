package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qalint/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/qalint/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultSettings()
	assert.Equal(t, defaults.IgnorePatterns, settings.IgnorePatterns)
	assert.Equal(t, domain.OutputText, settings.Output)
	assert.Equal(t, domain.ColorAuto, settings.Color)
	assert.False(t, settings.CodeSyntax)
	assert.Empty(t, settings.DisabledRules)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStoreFrom(map[string]any{
		"languages.extra":             []any{" Vue ", "svelte"},
		"rules.disabled":              []any{"empty-answer", "not-a-rule"},
		"rules.require_code_language": true,
		"rules.code_syntax":           true,
		"answer.ignore_patterns":      []any{},
		"history.enabled":             true,
		"github.token":                "ghp_secret",
		"output.format":               "json",
		"output.color":                "never",
		"batch.concurrency":           int64(2),
	})
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, []string{"vue", "svelte"}, settings.ExtraLanguages)
	assert.Equal(t, []domain.RuleID{domain.RuleEmptyAnswer}, settings.DisabledRules)
	assert.True(t, settings.RequireCodeLanguage)
	assert.True(t, settings.CodeSyntax)
	assert.Empty(t, settings.IgnorePatterns)
	assert.True(t, settings.HistoryEnabled)
	assert.Equal(t, "ghp_secret", settings.GitHubToken)
	assert.Equal(t, domain.OutputJSON, settings.Output)
	assert.Equal(t, domain.ColorNever, settings.Color)
	assert.Equal(t, 2, settings.Concurrency)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStoreFrom(map[string]any{
		"output.format": "xml",
		"output.color":  "rainbow",
	})

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.OutputText, settings.Output)
	assert.Equal(t, domain.ColorAuto, settings.Color)
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set("rules.disabled", "empty-answer, empty-section"))
	require.NoError(t, service.Set("rules.code_syntax", "true"))
	require.NoError(t, service.Set("languages.extra", "vue,,svelte"))
	require.NoError(t, service.Set("output.format", "yaml"))
	require.NoError(t, service.Set("batch.concurrency", "4"))
	require.NoError(t, service.Set("github.token", ""))

	assert.Equal(t, []string{"empty-answer", "empty-section"}, store.GetStringSlice("rules.disabled"))
	assert.True(t, store.GetBool("rules.code_syntax"))
	assert.Equal(t, []string{"vue", "svelte"}, store.GetStringSlice("languages.extra"))
	assert.Equal(t, "yaml", store.GetString("output.format"))
	assert.Equal(t, 4, store.GetInt("batch.concurrency"))
}

func TestSettingsService_Set_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  error
	}{
		{"unknown key", "search.mode", "hybrid", domain.ErrInvalidInput},
		{"unknown rule", "rules.disabled", "empty-answer,typo-rule", domain.ErrUnknownRule},
		{"bad bool", "history.enabled", "maybe", domain.ErrInvalidInput},
		{"bad int", "batch.concurrency", "-1", domain.ErrInvalidInput},
		{"bad pattern", "answer.ignore_patterns", "([", domain.ErrInvalidInput},
		{"bad format", "output.format", "xml", domain.ErrInvalidInput},
		{"bad colour", "output.color", "rainbow", domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			err := NewSettingsService(store).Set(tt.key, tt.value)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, store.Keys())
		})
	}
}

func TestSettingsService_Value(t *testing.T) {
	store := memory.NewConfigStoreFrom(map[string]any{
		"rules.disabled": []string{"empty-answer", "empty-section"},
		"github.token":   "ghp_abcdef1234",
	})
	service := NewSettingsService(store)

	v, err := service.Value("rules.disabled")
	require.NoError(t, err)
	assert.Equal(t, "empty-answer, empty-section", v)

	v, err = service.Value("github.token")
	require.NoError(t, err)
	assert.Equal(t, "****1234", v)

	v, err = service.Value("history.enabled")
	require.NoError(t, err)
	assert.Equal(t, "false", v)

	v, err = service.Value("output.format")
	require.NoError(t, err)
	assert.Equal(t, "text", v)

	_, err = service.Value("nope")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(memory.NewConfigStore()).Keys()

	assert.Equal(t, "languages.extra", keys[0])
	assert.Contains(t, keys, "rules.disabled")
	assert.Contains(t, keys, "github.token")
	for _, k := range keys {
		_, err := NewSettingsService(memory.NewConfigStore()).Value(k)
		assert.NoError(t, err, k)
	}
}

func TestSettingsService_Languages(t *testing.T) {
	store := memory.NewConfigStoreFrom(map[string]any{"languages.extra": []string{"Vue", "js"}})

	langs, err := NewSettingsService(store).Languages()

	require.NoError(t, err)
	assert.Contains(t, langs, "vue")
	assert.Contains(t, langs, "typescript")
	assert.IsIncreasing(t, langs)
}

func TestSettingsService_PathAndDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.Equal(t, ":memory:", service.Path())
	assert.Equal(t, domain.DefaultSettings(), service.GetDefaults())
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "", maskSecret(""))
	assert.Equal(t, "****", maskSecret("abc"))
	assert.Equal(t, "****5678", maskSecret("ghp_12345678"))
}
