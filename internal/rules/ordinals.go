package rules

import (
	"context"
	"fmt"

	"github.com/custodia-labs/qalint/internal/core/domain"
	"github.com/custodia-labs/qalint/internal/core/ports/driven"
)

// Ensure ordinalRule implements the interface.
var _ driven.Rule = (*ordinalRule)(nil)

// ordinalRule reports one half of the ordinal analysis: duplicates or
// gaps. Both halves share analyseOrdinals so the two rules agree on
// which entry is at fault.
type ordinalRule struct {
	id domain.RuleID
}

func (r *ordinalRule) ID() domain.RuleID {
	return r.id
}

func (r *ordinalRule) Check(_ context.Context, doc *domain.Document, _ *domain.Settings) ([]domain.Violation, error) {
	var out []domain.Violation
	for _, v := range analyseOrdinals(doc.Entries()) {
		if v.Rule == r.id {
			out = append(out, v)
		}
	}
	return out, nil
}

// analyseOrdinals walks entries with an expected counter starting at 1.
//
// A repeated ordinal is a duplicate. When the next entry carries the
// expected ordinal the duplicate was an inserted extra and the counter
// stays; otherwise the duplicate took a slot and the counter advances.
// An ordinal above the counter that appears again later is the first
// copy of a duplicate and takes the expected slot. Any other ordinal
// above the counter is one gap naming the whole missing range, and an
// unseen ordinal below it is out of order.
//
// Every violation is attached to the ordinal of the entry that carries it.
func analyseOrdinals(entries []domain.Entry) []domain.Violation {
	var out []domain.Violation

	remaining := make(map[int]int, len(entries))
	lines := make(map[int][]int, len(entries))
	for _, e := range entries {
		remaining[e.Ordinal]++
		lines[e.Ordinal] = append(lines[e.Ordinal], e.Line)
	}

	seen := make(map[int]int, len(entries))
	expected := 1
	for i, e := range entries {
		o := e.Ordinal
		remaining[o]--

		firstLine, wasSeen := seen[o]
		switch {
		case wasSeen:
			out = append(out, domain.NewViolation(domain.RuleDuplicateOrdinal, o, e.Line,
				"ordinal %d is already used on line %d", o, firstLine))
			if i+1 >= len(entries) || entries[i+1].Ordinal != expected {
				expected++
			}

		case o == expected:
			seen[o] = e.Line
			expected = o + 1

		case o > expected && remaining[o] > 0:
			next := lines[o][len(lines[o])-remaining[o]]
			out = append(out, domain.NewViolation(domain.RuleDuplicateOrdinal, o, e.Line,
				"ordinal %d is used again on line %d; expected %d here", o, next, expected))
			expected++

		case o > expected:
			out = append(out, domain.NewViolation(domain.RuleNonContiguousOrdinal, o, e.Line,
				"%s (found %d where %d was expected)", missingRange(expected, o-1), o, expected))
			seen[o] = e.Line
			expected = o + 1

		default:
			out = append(out, domain.NewViolation(domain.RuleNonContiguousOrdinal, o, e.Line,
				"ordinal %d is out of order (expected %d)", o, expected))
			seen[o] = e.Line
		}
	}
	return out
}

// missingRange describes the ordinals from..to.
func missingRange(from, to int) string {
	if from == to {
		return fmt.Sprintf("ordinal %d is missing", from)
	}
	return fmt.Sprintf("ordinals %d-%d are missing", from, to)
}
