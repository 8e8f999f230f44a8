package domain

import "strings"

// OutputFormat selects how reports are printed.
type OutputFormat string

// Available output formats.
const (
	// OutputText prints one violation per line.
	OutputText OutputFormat = "text"

	// OutputJSON prints reports as a JSON array.
	OutputJSON OutputFormat = "json"

	// OutputYAML prints reports as a YAML sequence.
	OutputYAML OutputFormat = "yaml"
)

// IsValid returns true if the format is recognised.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputText, OutputJSON, OutputYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f OutputFormat) String() string {
	return string(f)
}

// ColorMode controls ANSI colouring of text reports.
type ColorMode string

// Available colour modes.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the colour mode is recognised.
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// DefaultIgnorePatterns are answer lines that are navigation rather than content.
var DefaultIgnorePatterns = []string{
	`^\s*\**\s*\[\s*(⬆|↑)?\s*back to top\s*\]\(#[^)]*\)\s*\**\s*$`,
}

// Settings is the effective validator configuration.
type Settings struct {
	// ExtraLanguages extends the built-in code language allow-list.
	ExtraLanguages []string

	// DisabledRules are rule ids that are skipped.
	DisabledRules []RuleID

	// RequireCodeLanguage enables the missing-code-language rule.
	RequireCodeLanguage bool

	// CodeSyntax enables tree-sitter syntax checks of code blocks.
	CodeSyntax bool

	// IgnorePatterns are regular expressions for answer lines to drop.
	IgnorePatterns []string

	// HistoryEnabled records every validation run.
	HistoryEnabled bool

	// GitHubToken authenticates github:// sources.
	GitHubToken string

	// Output is the default report format.
	Output OutputFormat

	// Color is the default colour mode.
	Color ColorMode

	// Concurrency bounds batch validation parallelism (0 = number of CPUs).
	Concurrency int
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	patterns := make([]string, len(DefaultIgnorePatterns))
	copy(patterns, DefaultIgnorePatterns)
	return Settings{
		IgnorePatterns: patterns,
		Output:         OutputText,
		Color:          ColorAuto,
	}
}

// RuleEnabled reports whether a rule runs under these settings.
// Opt-in rules are only enabled by their own switch.
func (s *Settings) RuleEnabled(rule RuleID) bool {
	for _, d := range s.DisabledRules {
		if d == rule {
			return false
		}
	}
	switch rule {
	case RuleMissingCodeLanguage:
		return s.RequireCodeLanguage
	case RuleInvalidCodeSyntax:
		return s.CodeSyntax
	default:
		return true
	}
}

// LanguageAllowed reports whether a code tag is allowed by the built-in
// list or the configured extras.
func (s *Settings) LanguageAllowed(tag string) bool {
	if IsKnownLanguage(tag) {
		return true
	}
	for _, extra := range s.ExtraLanguages {
		if strings.EqualFold(extra, tag) {
			return true
		}
	}
	return false
}
