package adapters

import (
	"database/sql"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/models/store"
)

func MapStoreProjectToDomain(p store.Project) domain.Project {
	return domain.Project{
		ID:             p.ID,
		Name:           p.Name,
		TargetMaturity: domain.MaturityLevel(p.TargetMaturity),
	}
}

// MapStoreItemToDomain copies the maturity as stored; range checks happen in the engine.
func MapStoreItemToDomain(kind domain.ItemKind, it store.Item) domain.ScoredItem {
	return domain.ScoredItem{
		ID:         it.ID,
		Kind:       kind,
		Code:       it.Code,
		Title:      it.Title,
		Domain:     it.Domain.String,
		Maturity:   domain.MaturityLevel(it.Maturity),
		ProjectID:  it.ProjectID,
		StandardID: it.StandardID,
	}
}

func MapStoreItemsToDomain(kind domain.ItemKind, items []store.Item) []domain.ScoredItem {
	res := make([]domain.ScoredItem, 0, len(items))
	for _, it := range items {
		res = append(res, MapStoreItemToDomain(kind, it))
	}
	return res
}

func MapStoreItemsToControlRefs(items []store.Item) []domain.ControlRef {
	res := make([]domain.ControlRef, 0, len(items))
	for _, it := range items {
		res = append(res, domain.ControlRef{ID: it.ID, Code: it.Code})
	}
	return res
}

func MapStoreSoAEntryToDomain(e store.SoAEntry) domain.SoAEntry {
	entry := domain.SoAEntry{
		ID:         e.ID,
		ProjectID:  e.ProjectID,
		ControlID:  e.ControlID,
		Applicable: e.Applicable,
	}
	if e.ImplementationStatus.Valid {
		s := domain.ImplementationStatus(e.ImplementationStatus.String)
		entry.ImplementationStatus = &s
	}
	if e.Justification.Valid {
		j := e.Justification.String
		entry.Justification = &j
	}
	return entry
}

func MapStoreSoAEntriesToDomain(entries []store.SoAEntry) []domain.SoAEntry {
	res := make([]domain.SoAEntry, 0, len(entries))
	for _, e := range entries {
		res = append(res, MapStoreSoAEntryToDomain(e))
	}
	return res
}

func MapDomainSoAEntryToStore(e domain.SoAEntry) store.SoAEntry {
	entry := store.SoAEntry{
		ID:         e.ID,
		ProjectID:  e.ProjectID,
		ControlID:  e.ControlID,
		Applicable: e.Applicable,
	}
	if e.ImplementationStatus != nil {
		entry.ImplementationStatus = sql.NullString{String: string(*e.ImplementationStatus), Valid: true}
	}
	if e.Justification != nil {
		entry.Justification = sql.NullString{String: *e.Justification, Valid: true}
	}
	return entry
}

func MapDomainSoAEntriesToStore(entries []domain.SoAEntry) []store.SoAEntry {
	res := make([]store.SoAEntry, 0, len(entries))
	for _, e := range entries {
		res = append(res, MapDomainSoAEntryToStore(e))
	}
	return res
}

func MapStoreActionPlanToDomain(p store.ActionPlan) domain.ActionPlan {
	plan := domain.ActionPlan{
		ID:        p.ID,
		ProjectID: p.ProjectID,
		Status:    domain.ActionPlanStatus(p.Status),
	}
	if p.DueDate.Valid {
		due := p.DueDate.Time
		plan.DueDate = &due
	}
	return plan
}

func MapStoreActionPlansToDomain(plans []store.ActionPlan) []domain.ActionPlan {
	res := make([]domain.ActionPlan, 0, len(plans))
	for _, p := range plans {
		res = append(res, MapStoreActionPlanToDomain(p))
	}
	return res
}

func MapStoreEventsToDomain(events []store.Event) []domain.TrendEvent {
	res := make([]domain.TrendEvent, 0, len(events))
	for _, e := range events {
		res = append(res, domain.TrendEvent{Kind: domain.EventKind(e.Kind), CreatedAt: e.CreatedAt})
	}
	return res
}
