package services

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/qalint/internal/core/domain"
	"github.com/custodia-labs/qalint/internal/core/ports/driven"
	"github.com/custodia-labs/qalint/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyExtraLanguages      = "languages.extra"
	keyDisabledRules       = "rules.disabled"
	keyRequireCodeLanguage = "rules.require_code_language"
	keyCodeSyntax          = "rules.code_syntax"
	keyIgnorePatterns      = "answer.ignore_patterns"
	keyHistoryEnabled      = "history.enabled"
	keyGitHubToken         = "github.token"
	keyOutputFormat        = "output.format"
	keyOutputColor         = "output.color"
	keyConcurrency         = "batch.concurrency"
)

type keyKind int

const (
	kindString keyKind = iota
	kindBool
	kindInt
	kindList
)

type settingKey struct {
	name     string
	kind     keyKind
	validate func(string) error
}

var settingKeys = []settingKey{
	{name: keyExtraLanguages, kind: kindList},
	{name: keyDisabledRules, kind: kindList, validate: validateRuleID},
	{name: keyRequireCodeLanguage, kind: kindBool},
	{name: keyCodeSyntax, kind: kindBool},
	{name: keyIgnorePatterns, kind: kindList, validate: validatePattern},
	{name: keyHistoryEnabled, kind: kindBool},
	{name: keyGitHubToken, kind: kindString},
	{name: keyOutputFormat, kind: kindString, validate: validateFormat},
	{name: keyOutputColor, kind: kindString, validate: validateColor},
	{name: keyConcurrency, kind: kindInt},
}

// SettingsService manages validator settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns defaults overlaid with stored values.
// Invalid stored values fall back to the default.
func (s *SettingsService) Get() (*domain.Settings, error) {
	settings := domain.DefaultSettings()

	settings.ExtraLanguages = normaliseList(s.configStore.GetStringSlice(keyExtraLanguages))
	for _, name := range s.configStore.GetStringSlice(keyDisabledRules) {
		if validateRuleID(name) == nil {
			settings.DisabledRules = append(settings.DisabledRules, domain.RuleID(strings.TrimSpace(name)))
		}
	}
	settings.RequireCodeLanguage = s.configStore.GetBool(keyRequireCodeLanguage)
	settings.CodeSyntax = s.configStore.GetBool(keyCodeSyntax)
	if _, ok := s.configStore.Get(keyIgnorePatterns); ok {
		settings.IgnorePatterns = s.configStore.GetStringSlice(keyIgnorePatterns)
	}
	settings.HistoryEnabled = s.configStore.GetBool(keyHistoryEnabled)
	settings.GitHubToken = s.configStore.GetString(keyGitHubToken)
	if f := domain.OutputFormat(s.configStore.GetString(keyOutputFormat)); f.IsValid() {
		settings.Output = f
	}
	if c := domain.ColorMode(s.configStore.GetString(keyOutputColor)); c.IsValid() {
		settings.Color = c
	}
	if n := s.configStore.GetInt(keyConcurrency); n > 0 {
		settings.Concurrency = n
	}

	return &settings, nil
}

// Set parses value according to the key's type and persists it.
func (s *SettingsService) Set(key, value string) error {
	k, ok := lookupKey(key)
	if !ok {
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}

	var stored any
	switch k.kind {
	case kindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s expects true or false, got %q", domain.ErrInvalidInput, key, value)
		}
		stored = b
	case kindInt:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s expects a non-negative integer, got %q", domain.ErrInvalidInput, key, value)
		}
		stored = n
	case kindList:
		items := splitList(value)
		if k.validate != nil {
			for _, item := range items {
				if err := k.validate(item); err != nil {
					return fmt.Errorf("%s: %w", key, err)
				}
			}
		}
		stored = items
	default:
		v := strings.TrimSpace(value)
		if k.validate != nil && v != "" {
			if err := k.validate(v); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
		stored = v
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns every supported config key in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	for i, k := range settingKeys {
		keys[i] = k.name
	}
	return keys
}

// Value returns the display value of a key, falling back to the default.
// The GitHub token is masked.
func (s *SettingsService) Value(key string) (string, error) {
	if _, ok := lookupKey(key); !ok {
		return "", fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}
	settings, err := s.Get()
	if err != nil {
		return "", err
	}

	switch key {
	case keyExtraLanguages:
		return strings.Join(settings.ExtraLanguages, ", "), nil
	case keyDisabledRules:
		ids := make([]string, len(settings.DisabledRules))
		for i, id := range settings.DisabledRules {
			ids[i] = id.String()
		}
		return strings.Join(ids, ", "), nil
	case keyRequireCodeLanguage:
		return strconv.FormatBool(settings.RequireCodeLanguage), nil
	case keyCodeSyntax:
		return strconv.FormatBool(settings.CodeSyntax), nil
	case keyIgnorePatterns:
		return strings.Join(settings.IgnorePatterns, ", "), nil
	case keyHistoryEnabled:
		return strconv.FormatBool(settings.HistoryEnabled), nil
	case keyGitHubToken:
		return maskSecret(settings.GitHubToken), nil
	case keyOutputFormat:
		return settings.Output.String(), nil
	case keyOutputColor:
		return string(settings.Color), nil
	default:
		return strconv.Itoa(settings.Concurrency), nil
	}
}

// Languages returns the built-in allow-list plus configured extras, sorted.
func (s *SettingsService) Languages() ([]string, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var langs []string
	for _, l := range append(domain.KnownLanguages(), settings.ExtraLanguages...) {
		if !seen[l] {
			seen[l] = true
			langs = append(langs, l)
		}
	}
	sort.Strings(langs)
	return langs, nil
}

// Path returns the config file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func lookupKey(name string) (settingKey, bool) {
	for _, k := range settingKeys {
		if k.name == name {
			return k, true
		}
	}
	return settingKey{}, false
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(value string) []string {
	items := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func normaliseList(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func validateRuleID(name string) error {
	id := domain.RuleID(strings.TrimSpace(name))
	for _, known := range domain.AllRules() {
		if id == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", domain.ErrUnknownRule, name)
}

func validatePattern(pattern string) error {
	if _, err := regexp.Compile(pattern); err != nil {
		return fmt.Errorf("%w: bad pattern %q: %w", domain.ErrInvalidInput, pattern, err)
	}
	return nil
}

func validateFormat(value string) error {
	if !domain.OutputFormat(value).IsValid() {
		return fmt.Errorf("%w: output format must be text, json or yaml", domain.ErrInvalidInput)
	}
	return nil
}

func validateColor(value string) error {
	if !domain.ColorMode(value).IsValid() {
		return fmt.Errorf("%w: colour mode must be auto, always or never", domain.ErrInvalidInput)
	}
	return nil
}

func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
