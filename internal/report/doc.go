// Package report prints validation reports as text, JSON or YAML.
//
// Text output follows the compiler convention: each violation is one
// line on the error stream,
//
//	path:line: entry N: rule: message
//
// and a clean document prints a short success line on the output stream.
// Colour is applied with lipgloss when the target is a terminal, or when
// forced with [domain.ColorAlways].
package report
