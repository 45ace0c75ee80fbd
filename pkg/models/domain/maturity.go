package domain

import "fmt"

// MaturityLevel is the ordinal 0-4 rating of a requirement or control.
type MaturityLevel int

const (
	MaturityNonexistent MaturityLevel = iota
	MaturityInitial
	MaturityDefined
	MaturityManaged
	MaturityOptimized
)

const (
	MinMaturity = MaturityNonexistent
	MaxMaturity = MaturityOptimized

	// CompliantMaturity is the system-wide threshold: an item at or above it is compliant.
	CompliantMaturity = MaturityManaged
)

var maturityLabels = map[MaturityLevel]string{
	MaturityNonexistent: "Nonexistent",
	MaturityInitial:     "Initial",
	MaturityDefined:     "Defined",
	MaturityManaged:     "Managed",
	MaturityOptimized:   "Optimized",
}

func (m MaturityLevel) Valid() bool {
	return m >= MinMaturity && m <= MaxMaturity
}

// Validate returns an ErrInvalidInput error naming field when m is outside 0-4.
func (m MaturityLevel) Validate(field string) error {
	if !m.Valid() {
		return InvalidField(field, int(m))
	}
	return nil
}

func (m MaturityLevel) Compliant() bool {
	return m >= CompliantMaturity
}

func (m MaturityLevel) String() string {
	if label, ok := maturityLabels[m]; ok {
		return label
	}
	return fmt.Sprintf("MaturityLevel(%d)", int(m))
}
