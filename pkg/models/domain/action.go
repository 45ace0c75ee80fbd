package domain

import "time"

type ActionPlanStatus string

const (
	ActionPlanPending    ActionPlanStatus = "pending"
	ActionPlanInProgress ActionPlanStatus = "in_progress"
	ActionPlanCompleted  ActionPlanStatus = "completed"
	ActionPlanCancelled  ActionPlanStatus = "cancelled"
)

func (s ActionPlanStatus) Closed() bool {
	return s == ActionPlanCompleted || s == ActionPlanCancelled
}

type ActionPlan struct {
	ID        string
	ProjectID string
	Status    ActionPlanStatus
	DueDate   *time.Time
}

// Overdue reports whether the plan is still open and its due date is strictly before now.
func (a ActionPlan) Overdue(now time.Time) bool {
	if a.Status.Closed() || a.DueDate == nil {
		return false
	}
	return a.DueDate.Before(now)
}
