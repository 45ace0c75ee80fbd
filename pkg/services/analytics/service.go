// Package analytics fetches compliance snapshots and runs the engine over them.
// Every report is produced by its own call so one failing input channel never
// takes down another report.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/maturity-atlas/pkg/adapters"
	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/services/gap"
	"github.com/de-tools/maturity-atlas/pkg/services/heatmap"
	"github.com/de-tools/maturity-atlas/pkg/services/readiness"
	"github.com/de-tools/maturity-atlas/pkg/services/soa"
	"github.com/de-tools/maturity-atlas/pkg/services/trend"
	"github.com/de-tools/maturity-atlas/pkg/store/compliance"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	GapReport(ctx context.Context, projectID string, kind domain.ItemKind) (domain.GapReport, error)
	SoAStatement(ctx context.Context, projectID string) (domain.SoAStatement, error)
	// GenerateSoA creates the missing entries of a project and returns how many were created.
	GenerateSoA(ctx context.Context, projectID string) (int, error)
	UpdateSoAEntry(ctx context.Context, projectID, controlID string, update SoAUpdate) (domain.SoAEntry, error)
	Readiness(ctx context.Context, projectID string) (domain.ReadinessReport, error)
	ReadinessAll(ctx context.Context) ([]domain.ReadinessReport, error)
	Trends(ctx context.Context, period domain.Period, projectID string) ([]domain.TrendRow, error)
	Heatmap(ctx context.Context) ([]domain.HeatmapCell, error)
}

// SoAUpdate describes a change to one SoA entry. Nil fields are left unchanged.
type SoAUpdate struct {
	Applicable    *bool
	Justification *string
	// SetStatus applies Status, which may be nil to clear it.
	SetStatus bool
	Status    *domain.ImplementationStatus
}

// Settings contains configurable parameters of the analytics service
type Settings struct {
	// TopGaps is the number of largest gaps listed in gap reports (default: 10)
	TopGaps int
	// Concurrency bounds the projects scored in parallel by ReadinessAll (default: 4)
	Concurrency int
}

func DefaultSettings() Settings {
	return Settings{
		TopGaps:     gap.DefaultReportSettings().TopGaps,
		Concurrency: 4,
	}
}

type service struct {
	store    compliance.Store
	settings Settings
	now      func() time.Time
}

// NewService returns a Service reading from store. now is the clock used for
// overdue detection and trend windows.
func NewService(store compliance.Store, settings Settings, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	if settings.Concurrency <= 0 {
		settings.Concurrency = 1
	}
	return &service{
		store:    store,
		settings: settings,
		now:      now,
	}
}

func (s *service) ListProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	projects := make([]domain.Project, 0, len(rows))
	for _, p := range rows {
		projects = append(projects, adapters.MapStoreProjectToDomain(p))
	}
	return projects, nil
}

func (s *service) getProject(ctx context.Context, projectID string) (domain.Project, error) {
	p, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return domain.Project{}, err
	}
	return adapters.MapStoreProjectToDomain(*p), nil
}

func (s *service) listItems(ctx context.Context, kind domain.ItemKind, projectID string) ([]domain.ScoredItem, error) {
	rows, err := s.store.ListItems(ctx, kind, projectID)
	if err != nil {
		return nil, err
	}
	return adapters.MapStoreItemsToDomain(kind, rows), nil
}

func (s *service) GapReport(ctx context.Context, projectID string, kind domain.ItemKind) (domain.GapReport, error) {
	logger := zerolog.Ctx(ctx)

	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return domain.GapReport{}, err
	}
	items, err := s.listItems(ctx, kind, projectID)
	if err != nil {
		return domain.GapReport{}, err
	}

	logger.Debug().
		Str("project", projectID).
		Str("kind", string(kind)).
		Int("items", len(items)).
		Msg("building gap report")

	report, err := gap.BuildReport(items, project.TargetMaturity, gap.ReportSettings{TopGaps: s.settings.TopGaps})
	if err != nil {
		return domain.GapReport{}, fmt.Errorf("gap report for project %s: %w", projectID, err)
	}
	report.ProjectID = projectID
	report.Kind = kind
	return report, nil
}

func (s *service) SoAStatement(ctx context.Context, projectID string) (domain.SoAStatement, error) {
	if _, err := s.getProject(ctx, projectID); err != nil {
		return domain.SoAStatement{}, err
	}
	rows, err := s.store.ListSoAEntries(ctx, projectID)
	if err != nil {
		return domain.SoAStatement{}, err
	}
	entries := adapters.MapStoreSoAEntriesToDomain(rows)

	stale := 0
	for _, e := range entries {
		if soa.Stale(e) {
			stale++
		}
	}
	if stale > 0 {
		zerolog.Ctx(ctx).Warn().
			Str("project", projectID).
			Int("entries", stale).
			Msg("non-applicable soa entries still carry an implementation status")
	}

	return soa.BuildStatement(projectID, entries), nil
}

func (s *service) GenerateSoA(ctx context.Context, projectID string) (int, error) {
	created := 0
	err := s.store.InTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.getProject(ctx, projectID); err != nil {
			return err
		}
		controls, err := s.store.ListItems(ctx, domain.ItemKindControl, projectID)
		if err != nil {
			return err
		}
		existing, err := s.store.ListSoAEntries(ctx, projectID)
		if err != nil {
			return err
		}

		missing := soa.GenerateMissing(
			projectID,
			adapters.MapStoreItemsToControlRefs(controls),
			adapters.MapStoreSoAEntriesToDomain(existing),
		)
		if len(missing) == 0 {
			return nil
		}

		if err := s.store.AddSoAEntries(ctx, adapters.MapDomainSoAEntriesToStore(missing)); err != nil {
			return err
		}
		created = len(missing)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("generate soa for project %s: %w", projectID, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("project", projectID).
		Int("created", created).
		Msg("soa generated")
	return created, nil
}

func (s *service) UpdateSoAEntry(
	ctx context.Context,
	projectID, controlID string,
	update SoAUpdate,
) (domain.SoAEntry, error) {
	var updated domain.SoAEntry
	err := s.store.InTransaction(ctx, func(ctx context.Context) error {
		row, err := s.store.GetSoAEntry(ctx, projectID, controlID)
		if err != nil {
			return err
		}

		next := adapters.MapStoreSoAEntryToDomain(*row)
		if update.Applicable != nil {
			next = soa.SetApplicable(next, *update.Applicable)
		}
		if update.Justification != nil {
			next = soa.SetJustification(next, update.Justification)
		}
		if update.SetStatus {
			next, err = soa.SetImplementationStatus(next, update.Status)
			if err != nil {
				return err
			}
		}

		if err := s.store.UpdateSoAEntry(ctx, adapters.MapDomainSoAEntryToStore(next)); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return domain.SoAEntry{}, err
	}
	return updated, nil
}

func (s *service) Readiness(ctx context.Context, projectID string) (domain.ReadinessReport, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return domain.ReadinessReport{}, err
	}
	return s.score(ctx, project)
}

func (s *service) score(ctx context.Context, project domain.Project) (domain.ReadinessReport, error) {
	requirements, err := s.listItems(ctx, domain.ItemKindRequirement, project.ID)
	if err != nil {
		return domain.ReadinessReport{}, err
	}
	controls, err := s.listItems(ctx, domain.ItemKindControl, project.ID)
	if err != nil {
		return domain.ReadinessReport{}, err
	}
	openNCs, err := s.store.CountOpenNonconformities(ctx, project.ID)
	if err != nil {
		return domain.ReadinessReport{}, err
	}
	plans, err := s.store.ListActionPlans(ctx, project.ID)
	if err != nil {
		return domain.ReadinessReport{}, err
	}

	pending, overdue := readiness.CountActions(adapters.MapStoreActionPlansToDomain(plans), s.now())

	report, err := readiness.Score(readiness.Input{
		ProjectID:           project.ID,
		ProjectName:         project.Name,
		Requirements:        requirements,
		Controls:            controls,
		OpenNonconformities: openNCs,
		PendingActions:      pending,
		OverdueActions:      overdue,
	})
	if err != nil {
		return domain.ReadinessReport{}, fmt.Errorf("readiness for project %s: %w", project.ID, err)
	}
	return report, nil
}

// ReadinessAll scores every project concurrently; results follow project order.
func (s *service) ReadinessAll(ctx context.Context) ([]domain.ReadinessReport, error) {
	projects, err := s.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]domain.ReadinessReport, len(projects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.settings.Concurrency)

	for i, p := range projects {
		g.Go(func() error {
			report, err := s.score(gctx, p)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *service) Trends(ctx context.Context, period domain.Period, projectID string) ([]domain.TrendRow, error) {
	now := s.now()
	start, err := trend.PeriodStart(period, now)
	if err != nil {
		return nil, err
	}

	streams := make(map[domain.EventKind][]domain.TrendEvent, len(domain.EventKinds))
	for _, kind := range domain.EventKinds {
		rows, err := s.store.ListEvents(ctx, kind, projectID, start)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			zerolog.Ctx(ctx).Debug().
				Str("kind", string(kind)).
				Str("project", projectID).
				Time("since", start).
				Msg("no events in trend window")
		}
		streams[kind] = adapters.MapStoreEventsToDomain(rows)
	}

	return trend.BuildRows(trend.BuildBuckets(start, now), trend.Streams{
		Risks:           streams[domain.EventRisk],
		Nonconformities: streams[domain.EventNonconformity],
		Actions:         streams[domain.EventActionPlan],
		Incidents:       streams[domain.EventIncident],
	}), nil
}

func (s *service) Heatmap(ctx context.Context) ([]domain.HeatmapCell, error) {
	projects, err := s.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	inputs := make([]heatmap.Input, 0)
	for _, p := range projects {
		controls, err := s.listItems(ctx, domain.ItemKindControl, p.ID)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, heatmap.FromItems(p, controls)...)
	}

	cells, err := heatmap.Build(inputs)
	if err != nil {
		return nil, fmt.Errorf("heatmap: %w", err)
	}
	return cells, nil
}
