package store

import (
	"database/sql"
	"time"
)

type Project struct {
	ID             string
	Name           string
	TargetMaturity int
	CreatedAt      time.Time
}

// Item is a row of the requirements or controls table.
type Item struct {
	ID         string
	ProjectID  string
	StandardID string
	Code       string
	Title      string
	Domain     sql.NullString
	Maturity   int
}

type SoAEntry struct {
	ID                   string
	ProjectID            string
	ControlID            string
	Applicable           bool
	ImplementationStatus sql.NullString
	Justification        sql.NullString
}

type ActionPlan struct {
	ID        string
	ProjectID string
	Status    string
	DueDate   sql.NullTime
}

type Event struct {
	Kind      string
	CreatedAt time.Time
}
