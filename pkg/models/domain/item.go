package domain

import "fmt"

type ItemKind string

const (
	ItemKindRequirement ItemKind = "requirement"
	ItemKindControl     ItemKind = "control"
)

func ParseItemKind(s string) (ItemKind, error) {
	switch ItemKind(s) {
	case ItemKindRequirement, ItemKindControl:
		return ItemKind(s), nil
	default:
		return "", InvalidField("kind", s)
	}
}

// ScoredItem is a requirement (project x normative clause) or a control
// (project x standard control) carrying a current maturity rating.
type ScoredItem struct {
	ID         string
	Kind       ItemKind
	Code       string
	Title      string
	Domain     string // empty when the record has no domain
	Maturity   MaturityLevel
	ProjectID  string
	StandardID string
}

// ValidateItems fails on the first item whose maturity is out of range.
func ValidateItems(items []ScoredItem) error {
	for _, item := range items {
		if err := item.Maturity.Validate(fmt.Sprintf("maturity (item %s)", item.ID)); err != nil {
			return err
		}
	}
	return nil
}

type Project struct {
	ID             string
	Name           string
	TargetMaturity MaturityLevel
}
