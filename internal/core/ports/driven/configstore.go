package driven

// ConfigStore holds qalint's configuration as flat dotted keys
// ("rules.disabled", "languages.extra"). Typed getters return the zero
// value when a key is missing or holds another type.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool

	// GetStringSlice accepts TOML arrays ([]any) as well as []string.
	GetStringSlice(key string) []string

	// Set stores a value. File-backed stores persist it immediately.
	Set(key string, value any) error

	// Keys lists the stored keys in sorted order.
	Keys() []string

	// Save writes the whole configuration.
	Save() error

	// Load replaces the in-memory configuration with the stored one.
	Load() error

	// Path is where the configuration lives.
	Path() string
}
