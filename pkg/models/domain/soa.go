package domain

type ImplementationStatus string

const (
	NotImplemented       ImplementationStatus = "not_implemented"
	PartiallyImplemented ImplementationStatus = "partially_implemented"
	FullyImplemented     ImplementationStatus = "fully_implemented"
)

func ParseImplementationStatus(s string) (ImplementationStatus, error) {
	status := ImplementationStatus(s)
	if !status.Valid() {
		return "", InvalidField("implementation_status", s)
	}
	return status, nil
}

func (s ImplementationStatus) Valid() bool {
	switch s {
	case NotImplemented, PartiallyImplemented, FullyImplemented:
		return true
	}
	return false
}

// SoAEntry is the applicability record of one control within one project.
// A non-applicable entry may still carry a stale status; readers ignore it.
type SoAEntry struct {
	ID                   string
	ProjectID            string
	ControlID            string
	Applicable           bool
	ImplementationStatus *ImplementationStatus
	Justification        *string
}

// ControlRef identifies a control a project can be evaluated against.
type ControlRef struct {
	ID   string
	Code string
}

type SoASummary struct {
	Total                    int
	Applicable               int
	NotApplicable            int
	Implemented              int
	PartiallyImplemented     int
	NotImplemented           int
	ImplementationPercentage float64
}

type SoAStatement struct {
	ProjectID string
	Summary   SoASummary
	Entries   []SoAEntry
}
