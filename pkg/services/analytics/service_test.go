package analytics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ListProjects(ctx context.Context) ([]store.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Project), args.Error(1)
}

func (m *mockStore) GetProject(ctx context.Context, projectID string) (*store.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Project), args.Error(1)
}

func (m *mockStore) ListItems(ctx context.Context, kind domain.ItemKind, projectID string) ([]store.Item, error) {
	args := m.Called(ctx, kind, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Item), args.Error(1)
}

func (m *mockStore) ListSoAEntries(ctx context.Context, projectID string) ([]store.SoAEntry, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.SoAEntry), args.Error(1)
}

func (m *mockStore) GetSoAEntry(ctx context.Context, projectID, controlID string) (*store.SoAEntry, error) {
	args := m.Called(ctx, projectID, controlID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.SoAEntry), args.Error(1)
}

func (m *mockStore) AddSoAEntries(ctx context.Context, entries []store.SoAEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *mockStore) UpdateSoAEntry(ctx context.Context, entry store.SoAEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockStore) CountOpenNonconformities(ctx context.Context, projectID string) (int, error) {
	args := m.Called(ctx, projectID)
	return args.Int(0), args.Error(1)
}

func (m *mockStore) ListActionPlans(ctx context.Context, projectID string) ([]store.ActionPlan, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.ActionPlan), args.Error(1)
}

func (m *mockStore) ListEvents(
	ctx context.Context,
	kind domain.EventKind,
	projectID string,
	since time.Time,
) ([]store.Event, error) {
	args := m.Called(ctx, kind, projectID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Event), args.Error(1)
}

func (m *mockStore) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Called(ctx)
	return fn(ctx)
}

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(st *mockStore) Service {
	return NewService(st, Settings{TopGaps: 3, Concurrency: 2}, func() time.Time { return fixedNow })
}

func project(id string, target int) *store.Project {
	return &store.Project{ID: id, Name: "Project " + id, TargetMaturity: target}
}

func item(id, code, dom string, maturity int) store.Item {
	it := store.Item{ID: id, Code: code, Maturity: maturity, StandardID: "iso27001"}
	if dom != "" {
		it.Domain = sql.NullString{String: dom, Valid: true}
	}
	return it
}

func TestGapReport(t *testing.T) {
	ctx := context.Background()
	st := new(mockStore)
	st.On("GetProject", mock.Anything, "p1").Return(project("p1", 3), nil)
	st.On("ListItems", mock.Anything, domain.ItemKindRequirement, "p1").Return([]store.Item{
		item("r1", "4.1", "Context", 1),
		item("r2", "4.2", "Context", 3),
		item("r3", "5.1", "", 0),
	}, nil)

	report, err := newTestService(st).GapReport(ctx, "p1", domain.ItemKindRequirement)
	require.NoError(t, err)

	assert.Equal(t, "p1", report.ProjectID)
	assert.Equal(t, domain.ItemKindRequirement, report.Kind)
	assert.Equal(t, 3, report.Overall.TotalItems)
	assert.Equal(t, 1, report.Overall.CompliantCount)
	require.Len(t, report.TopGaps, 2)
	assert.Equal(t, "5.1", report.TopGaps[0].Item.Code)
	assert.Equal(t, "4.1", report.TopGaps[1].Item.Code)
	st.AssertExpectations(t)
}

func TestGapReport_ProjectNotFound(t *testing.T) {
	st := new(mockStore)
	st.On("GetProject", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	_, err := newTestService(st).GapReport(context.Background(), "missing", domain.ItemKindControl)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	st.AssertNotCalled(t, "ListItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestGapReport_InvalidStoredMaturity(t *testing.T) {
	st := new(mockStore)
	st.On("GetProject", mock.Anything, "p1").Return(project("p1", 3), nil)
	st.On("ListItems", mock.Anything, domain.ItemKindControl, "p1").Return([]store.Item{
		item("c1", "A.5.1", "Org", 7),
	}, nil)

	_, err := newTestService(st).GapReport(context.Background(), "p1", domain.ItemKindControl)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSoAStatement(t *testing.T) {
	st := new(mockStore)
	st.On("GetProject", mock.Anything, "p1").Return(project("p1", 3), nil)
	st.On("ListSoAEntries", mock.Anything, "p1").Return([]store.SoAEntry{
		{ID: "e2", ProjectID: "p1", ControlID: "c2", Applicable: false},
		{
			ID: "e1", ProjectID: "p1", ControlID: "c1", Applicable: true,
			ImplementationStatus: sql.NullString{String: string(domain.FullyImplemented), Valid: true},
		},
	}, nil)

	st2, err := newTestService(st).SoAStatement(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, st2.Summary.Total)
	assert.Equal(t, 1, st2.Summary.Implemented)
	assert.InDelta(t, 100.0, st2.Summary.ImplementationPercentage, 1e-9)
	require.Len(t, st2.Entries, 2)
	assert.Equal(t, "c1", st2.Entries[0].ControlID)
}

func TestGenerateSoA_CreatesOnlyMissing(t *testing.T) {
	st := new(mockStore)
	st.On("InTransaction", mock.Anything).Return(nil)
	st.On("GetProject", mock.Anything, "p1").Return(project("p1", 3), nil)
	st.On("ListItems", mock.Anything, domain.ItemKindControl, "p1").Return([]store.Item{
		item("c1", "A.5.1", "Org", 2),
		item("c2", "A.5.2", "Org", 2),
	}, nil)
	st.On("ListSoAEntries", mock.Anything, "p1").Return([]store.SoAEntry{
		{ID: "e1", ProjectID: "p1", ControlID: "c1", Applicable: false},
	}, nil)
	st.On("AddSoAEntries", mock.Anything, []store.SoAEntry{
		{ProjectID: "p1", ControlID: "c2", Applicable: true},
	}).Return(nil)

	created, err := newTestService(st).GenerateSoA(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	st.AssertExpectations(t)
}

func TestGenerateSoA_NothingMissing(t *testing.T) {
	st := new(mockStore)
	st.On("InTransaction", mock.Anything).Return(nil)
	st.On("GetProject", mock.Anything, "p1").Return(project("p1", 3), nil)
	st.On("ListItems", mock.Anything, domain.ItemKindControl, "p1").Return([]store.Item{
		item("c1", "A.5.1", "Org", 2),
	}, nil)
	st.On("ListSoAEntries", mock.Anything, "p1").Return([]store.SoAEntry{
		{ID: "e1", ProjectID: "p1", ControlID: "c1", Applicable: true},
	}, nil)

	created, err := newTestService(st).GenerateSoA(context.Background(), "p1")
	require.NoError(t, err)
	assert.Zero(t, created)
	st.AssertNotCalled(t, "AddSoAEntries", mock.Anything, mock.Anything)
}

func TestUpdateSoAEntry(t *testing.T) {
	partial := domain.PartiallyImplemented
	justification := "covered by ISMS policy"

	tests := []struct {
		name     string
		update   SoAUpdate
		expected store.SoAEntry
	}{
		{
			name:   "set status and justification",
			update: SoAUpdate{Justification: &justification, SetStatus: true, Status: &partial},
			expected: store.SoAEntry{
				ID: "e1", ProjectID: "p1", ControlID: "c1", Applicable: true,
				ImplementationStatus: sql.NullString{String: string(partial), Valid: true},
				Justification:        sql.NullString{String: justification, Valid: true},
			},
		},
		{
			name:   "clear status",
			update: SoAUpdate{SetStatus: true},
			expected: store.SoAEntry{
				ID: "e1", ProjectID: "p1", ControlID: "c1", Applicable: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := new(mockStore)
			st.On("InTransaction", mock.Anything).Return(nil)
			st.On("GetSoAEntry", mock.Anything, "p1", "c1").Return(&store.SoAEntry{
				ID: "e1", ProjectID: "p1", ControlID: "c1", Applicable: true,
				ImplementationStatus: sql.NullString{String: string(domain.NotImplemented), Valid: true},
			}, nil)
			st.On("UpdateSoAEntry", mock.Anything, tt.expected).Return(nil)

			_, err := newTestService(st).UpdateSoAEntry(context.Background(), "p1", "c1", tt.update)
			require.NoError(t, err)
			st.AssertExpectations(t)
		})
	}
}

func TestUpdateSoAEntry_UnknownControl(t *testing.T) {
	st := new(mockStore)
	st.On("InTransaction", mock.Anything).Return(nil)
	st.On("GetSoAEntry", mock.Anything, "p1", "c9").Return(nil, fmt.Errorf("soa entry p1/c9: %w", domain.ErrNotFound))

	_, err := newTestService(st).UpdateSoAEntry(context.Background(), "p1", "c9", SoAUpdate{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	st.AssertNotCalled(t, "ListSoAEntries", mock.Anything, mock.Anything)
	st.AssertNotCalled(t, "UpdateSoAEntry", mock.Anything, mock.Anything)
}

func TestUpdateSoAEntry_InvalidStatus(t *testing.T) {
	bogus := domain.ImplementationStatus("done")
	st := new(mockStore)
	st.On("InTransaction", mock.Anything).Return(nil)
	st.On("GetSoAEntry", mock.Anything, "p1", "c1").Return(&store.SoAEntry{
		ID: "e1", ProjectID: "p1", ControlID: "c1", Applicable: true,
	}, nil)

	_, err := newTestService(st).UpdateSoAEntry(context.Background(), "p1", "c1", SoAUpdate{SetStatus: true, Status: &bogus})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	st.AssertNotCalled(t, "UpdateSoAEntry", mock.Anything, mock.Anything)
}

func expectReadinessInputs(st *mockStore, projectID string) {
	overdue := fixedNow.AddDate(0, 0, -1)
	future := fixedNow.AddDate(0, 1, 0)

	st.On("ListItems", mock.Anything, domain.ItemKindRequirement, projectID).Return([]store.Item{
		item("r1", "4.1", "Context", 3),
		item("r2", "4.2", "Context", 1),
	}, nil)
	st.On("ListItems", mock.Anything, domain.ItemKindControl, projectID).Return([]store.Item{
		item("c1", "A.5.1", "Org", 4),
	}, nil)
	st.On("CountOpenNonconformities", mock.Anything, projectID).Return(1, nil)
	st.On("ListActionPlans", mock.Anything, projectID).Return([]store.ActionPlan{
		{ID: "a1", Status: string(domain.ActionPlanPending), DueDate: sql.NullTime{Time: overdue, Valid: true}},
		{ID: "a2", Status: string(domain.ActionPlanInProgress), DueDate: sql.NullTime{Time: future, Valid: true}},
		{ID: "a3", Status: string(domain.ActionPlanCompleted), DueDate: sql.NullTime{Time: overdue, Valid: true}},
	}, nil)
}

func TestReadiness(t *testing.T) {
	st := new(mockStore)
	st.On("GetProject", mock.Anything, "p1").Return(project("p1", 3), nil)
	expectReadinessInputs(st, "p1")

	report, err := newTestService(st).Readiness(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "Project p1", report.ProjectName)
	assert.Equal(t, 1, report.OpenNCs)
	assert.Equal(t, 2, report.PendingActions)
	assert.Equal(t, 1, report.OverdueItems)
	// 50*0.4 + 100*0.3 + 85*0.15 + 80*0.15 = 74.75
	assert.Equal(t, 75, report.ReadinessScore)
	st.AssertExpectations(t)
}

func TestReadinessAll_KeepsProjectOrder(t *testing.T) {
	st := new(mockStore)
	st.On("ListProjects", mock.Anything).Return([]store.Project{*project("p2", 3), *project("p1", 3)}, nil)
	expectReadinessInputs(st, "p1")
	expectReadinessInputs(st, "p2")

	reports, err := newTestService(st).ReadinessAll(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "p2", reports[0].ProjectID)
	assert.Equal(t, "p1", reports[1].ProjectID)
}

func TestReadinessAll_PropagatesError(t *testing.T) {
	st := new(mockStore)
	st.On("ListProjects", mock.Anything).Return([]store.Project{*project("p1", 3)}, nil)
	st.On("ListItems", mock.Anything, domain.ItemKindRequirement, "p1").Return(nil, errors.New("boom"))

	_, err := newTestService(st).ReadinessAll(context.Background())
	assert.EqualError(t, err, "boom")
}

func TestTrends(t *testing.T) {
	since := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	st := new(mockStore)
	st.On("ListEvents", mock.Anything, domain.EventRisk, "p1", since).Return([]store.Event{
		{Kind: string(domain.EventRisk), CreatedAt: time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC)},
		{Kind: string(domain.EventRisk), CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	}, nil)
	st.On("ListEvents", mock.Anything, domain.EventNonconformity, "p1", since).Return([]store.Event{}, nil)
	st.On("ListEvents", mock.Anything, domain.EventActionPlan, "p1", since).Return([]store.Event{
		{Kind: string(domain.EventActionPlan), CreatedAt: time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)},
	}, nil)
	st.On("ListEvents", mock.Anything, domain.EventIncident, "p1", since).Return([]store.Event{}, nil)

	rows, err := newTestService(st).Trends(context.Background(), domain.Period3Months, "p1")
	require.NoError(t, err)
	assert.Equal(t, []domain.TrendRow{
		{Month: "2025-04", Risks: 1},
		{Month: "2025-05", Actions: 1},
		{Month: "2025-06", Risks: 1},
	}, rows)
}

func TestTrends_InvalidPeriod(t *testing.T) {
	st := new(mockStore)
	_, err := newTestService(st).Trends(context.Background(), domain.Period("2w"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	st.AssertNotCalled(t, "ListEvents", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHeatmap(t *testing.T) {
	st := new(mockStore)
	st.On("ListProjects", mock.Anything).Return([]store.Project{*project("p1", 3), *project("p2", 3)}, nil)
	st.On("ListItems", mock.Anything, domain.ItemKindControl, "p1").Return([]store.Item{
		item("c1", "A.5.1", "Org", 1),
		item("c2", "A.5.2", "Org", 2),
	}, nil)
	st.On("ListItems", mock.Anything, domain.ItemKindControl, "p2").Return([]store.Item{
		item("c3", "A.8.1", "", 4),
	}, nil)

	cells, err := newTestService(st).Heatmap(context.Background())
	require.NoError(t, err)
	require.Len(t, cells, 2)
	assert.Equal(t, "No domain", cells[0].Domain)
	assert.Equal(t, "p2", cells[0].ProjectID)
	assert.Equal(t, "Org", cells[1].Domain)
	assert.InDelta(t, 1.5, cells[1].AvgMaturity, 1e-9)
	assert.Equal(t, 2, cells[1].Items)
}
