package domain

import (
	"fmt"
	"sort"
	"time"
)

// ViolationKind separates parse failures from schema failures.
type ViolationKind string

const (
	// KindStructural means the text could not be parsed into the expected
	// shape (no entries, unterminated blocks).
	KindStructural ViolationKind = "structural"

	// KindSchema means a parsed entry or section breaks an invariant.
	KindSchema ViolationKind = "schema"
)

// RuleID names a validation rule. It is stable and used in config
// (rules.disabled) and in reports.
type RuleID string

// Built-in rules.
const (
	RuleNoEntries               RuleID = "no-entries"
	RuleUnterminatedCollapsible RuleID = "unterminated-collapsible"
	RuleUnterminatedCodeBlock   RuleID = "unterminated-code-block"
	RuleDuplicateOrdinal        RuleID = "duplicate-ordinal"
	RuleNonContiguousOrdinal    RuleID = "non-contiguous-ordinal"
	RuleEmptyQuestion           RuleID = "empty-question"
	RuleEmptyAnswer             RuleID = "empty-answer"
	RuleUnknownCodeLanguage     RuleID = "unknown-code-language"
	RuleMissingCodeLanguage     RuleID = "missing-code-language"
	RuleInvalidDiagram          RuleID = "invalid-diagram"
	RuleEmptySection            RuleID = "empty-section"
	RuleEmptySectionTitle       RuleID = "empty-section-title"
	RuleInvalidCodeSyntax       RuleID = "invalid-code-syntax"
)

// String returns the rule id.
func (r RuleID) String() string {
	return string(r)
}

// Kind returns the violation kind a rule reports.
func (r RuleID) Kind() ViolationKind {
	switch r {
	case RuleNoEntries, RuleUnterminatedCollapsible, RuleUnterminatedCodeBlock:
		return KindStructural
	default:
		return KindSchema
	}
}

// Description returns a short human-readable description of the rule.
func (r RuleID) Description() string {
	switch r {
	case RuleNoEntries:
		return "document has no numbered entries"
	case RuleUnterminatedCollapsible:
		return "<details> or <summary> block is never closed"
	case RuleUnterminatedCodeBlock:
		return "fenced block is never closed"
	case RuleDuplicateOrdinal:
		return "entry ordinal is used more than once"
	case RuleNonContiguousOrdinal:
		return "entry ordinals skip or go backwards"
	case RuleEmptyQuestion:
		return "entry has no question text"
	case RuleEmptyAnswer:
		return "entry has no answer body"
	case RuleUnknownCodeLanguage:
		return "code block language is not recognised"
	case RuleMissingCodeLanguage:
		return "code block has no language tag"
	case RuleInvalidDiagram:
		return "diagram source does not parse"
	case RuleEmptySection:
		return "section has no entries"
	case RuleEmptySectionTitle:
		return "section heading has no text"
	case RuleInvalidCodeSyntax:
		return "code block does not parse in its language"
	default:
		return unknownDescription
	}
}

const unknownDescription = "Unknown"

// AllRules returns every built-in rule in pipeline order.
func AllRules() []RuleID {
	return []RuleID{
		RuleNoEntries,
		RuleUnterminatedCollapsible,
		RuleUnterminatedCodeBlock,
		RuleDuplicateOrdinal,
		RuleNonContiguousOrdinal,
		RuleEmptyQuestion,
		RuleEmptyAnswer,
		RuleUnknownCodeLanguage,
		RuleMissingCodeLanguage,
		RuleInvalidDiagram,
		RuleEmptySection,
		RuleEmptySectionTitle,
		RuleInvalidCodeSyntax,
	}
}

// Violation is one detected deviation from the document schema.
type Violation struct {
	// Ordinal is the entry the violation belongs to.
	// Zero means it is not tied to an entry.
	Ordinal int `json:"entry_ordinal" yaml:"entry_ordinal"`

	// Rule is the rule that produced the violation.
	Rule RuleID `json:"rule" yaml:"rule"`

	// Kind is structural or schema.
	Kind ViolationKind `json:"kind" yaml:"kind"`

	// Line is the 1-based source line, 0 when unknown.
	Line int `json:"line,omitempty" yaml:"line,omitempty"`

	// Message is the human-readable explanation.
	Message string `json:"message" yaml:"message"`
}

// NewViolation builds a violation with the kind derived from the rule.
func NewViolation(rule RuleID, ordinal, line int, format string, args ...any) Violation {
	return Violation{
		Ordinal: ordinal,
		Rule:    rule,
		Kind:    rule.Kind(),
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}
}

// String formats the violation as "line N: entry N: rule: message".
func (v Violation) String() string {
	prefix := ""
	if v.Line > 0 {
		prefix = fmt.Sprintf("line %d: ", v.Line)
	}
	if v.Ordinal > 0 {
		prefix += fmt.Sprintf("entry %d: ", v.Ordinal)
	}
	return fmt.Sprintf("%s%s: %s", prefix, v.Rule, v.Message)
}

// SortViolations orders violations by line, then ordinal, then rule.
// The sort is stable so rules that share a line keep pipeline order.
func SortViolations(vs []Violation) {
	sort.SliceStable(vs, func(i, j int) bool {
		if vs[i].Line != vs[j].Line {
			return vs[i].Line < vs[j].Line
		}
		return vs[i].Ordinal < vs[j].Ordinal
	})
}

// Report is the outcome of validating one document.
type Report struct {
	// ID identifies the run (used by history).
	ID string `json:"id" yaml:"id"`

	// Source is the validated document reference.
	Source string `json:"source" yaml:"source"`

	// CheckedAt is when validation ran.
	CheckedAt time.Time `json:"checked_at" yaml:"checked_at"`

	// Sections is the number of sections parsed.
	Sections int `json:"sections" yaml:"sections"`

	// Entries is the number of entries parsed.
	Entries int `json:"entries" yaml:"entries"`

	// Violations lists every detected violation; empty for a well-formed document.
	Violations []Violation `json:"violations" yaml:"violations"`
}

// OK returns true if the document is well-formed.
func (r *Report) OK() bool {
	return len(r.Violations) == 0
}

// CountByKind returns the number of violations of the given kind.
func (r *Report) CountByKind(kind ViolationKind) int {
	var n int
	for i := range r.Violations {
		if r.Violations[i].Kind == kind {
			n++
		}
	}
	return n
}

// ForEntry returns the violations attached to an entry ordinal.
func (r *Report) ForEntry(ordinal int) []Violation {
	var out []Violation
	for i := range r.Violations {
		if r.Violations[i].Ordinal == ordinal {
			out = append(out, r.Violations[i])
		}
	}
	return out
}
