package domain

import "time"

// Run is a recorded validation run kept in history.
type Run struct {
	// ID is the report ID.
	ID string

	// Source is the validated document reference.
	Source string

	// CheckedAt is when validation ran.
	CheckedAt time.Time

	// Sections is the number of sections parsed.
	Sections int

	// Entries is the number of entries parsed.
	Entries int

	// Violations holds the full violation list.
	Violations []Violation
}

// RunFromReport converts a report to a history record.
func RunFromReport(r *Report) Run {
	vs := make([]Violation, len(r.Violations))
	copy(vs, r.Violations)
	return Run{
		ID:         r.ID,
		Source:     r.Source,
		CheckedAt:  r.CheckedAt,
		Sections:   r.Sections,
		Entries:    r.Entries,
		Violations: vs,
	}
}

// OK returns true if the run found no violations.
func (r *Run) OK() bool {
	return len(r.Violations) == 0
}
