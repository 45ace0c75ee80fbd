// Package soa maintains the statement of applicability: which controls apply to
// a project and how far each applicable control is implemented.
//
// Writes are lenient: toggling applicability never clears the implementation
// status or justification, and a status may be set on a non-applicable entry.
// Reads are strict: every count below only considers applicable entries.
package soa

import (
	"sort"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
)

// SetApplicable returns a copy of entry with its applicability changed.
func SetApplicable(entry domain.SoAEntry, applicable bool) domain.SoAEntry {
	entry.Applicable = applicable
	return entry
}

func SetJustification(entry domain.SoAEntry, justification *string) domain.SoAEntry {
	entry.Justification = cloneString(justification)
	return entry
}

// SetImplementationStatus returns a copy of entry with a new status. A nil
// status clears it. Applicability is not checked.
func SetImplementationStatus(entry domain.SoAEntry, status *domain.ImplementationStatus) (domain.SoAEntry, error) {
	if status == nil {
		entry.ImplementationStatus = nil
		return entry, nil
	}
	if !status.Valid() {
		return domain.SoAEntry{}, domain.InvalidField("implementation_status", string(*status))
	}
	s := *status
	entry.ImplementationStatus = &s
	return entry, nil
}

// GenerateMissing returns a default entry for every control that has no entry yet.
// Re-running it against its own output yields nothing.
func GenerateMissing(projectID string, controls []domain.ControlRef, existing []domain.SoAEntry) []domain.SoAEntry {
	seen := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		seen[e.ControlID] = struct{}{}
	}

	missing := make([]domain.SoAEntry, 0)
	for _, c := range controls {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		missing = append(missing, domain.SoAEntry{
			ProjectID:  projectID,
			ControlID:  c.ID,
			Applicable: true,
		})
	}
	return missing
}

// Implemented reports whether the entry counts as implemented: applicable and fully implemented.
func Implemented(entry domain.SoAEntry) bool {
	return entry.Applicable && statusOf(entry) == domain.FullyImplemented
}

// Stale reports whether a non-applicable entry still carries an implementation status.
func Stale(entry domain.SoAEntry) bool {
	return !entry.Applicable && entry.ImplementationStatus != nil
}

func Summarize(entries []domain.SoAEntry) domain.SoASummary {
	summary := domain.SoASummary{Total: len(entries)}

	for _, e := range entries {
		if !e.Applicable {
			summary.NotApplicable++
			continue
		}
		summary.Applicable++
		switch statusOf(e) {
		case domain.FullyImplemented:
			summary.Implemented++
		case domain.PartiallyImplemented:
			summary.PartiallyImplemented++
		case domain.NotImplemented:
			summary.NotImplemented++
		}
	}

	if summary.Applicable > 0 {
		summary.ImplementationPercentage = 100 * float64(summary.Implemented) / float64(summary.Applicable)
	}
	return summary
}

// BuildStatement summarizes entries and lists them ordered by control ID.
func BuildStatement(projectID string, entries []domain.SoAEntry) domain.SoAStatement {
	sorted := make([]domain.SoAEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ControlID < sorted[j].ControlID
	})

	return domain.SoAStatement{
		ProjectID: projectID,
		Summary:   Summarize(sorted),
		Entries:   sorted,
	}
}

func statusOf(entry domain.SoAEntry) domain.ImplementationStatus {
	if entry.ImplementationStatus == nil {
		return ""
	}
	return *entry.ImplementationStatus
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
