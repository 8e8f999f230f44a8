package driving

import "github.com/custodia-labs/qalint/internal/core/domain"

// SettingsService manages validator settings.
type SettingsService interface {
	// Get returns the effective settings (defaults overlaid with config).
	Get() (*domain.Settings, error)

	// Set parses and stores a single config key.
	// Returns domain.ErrInvalidInput for unknown keys or bad values.
	Set(key, value string) error

	// Keys returns every supported config key in display order.
	Keys() []string

	// Value returns the display value of a key.
	Value(key string) (string, error)

	// Languages returns the effective code-language allow-list.
	Languages() ([]string, error)

	// Path returns the config file path.
	Path() string

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
