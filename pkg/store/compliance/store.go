// Package compliance reads compliance snapshots from the embedded database.
package compliance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/models/store"
	"github.com/de-tools/maturity-atlas/pkg/store/database"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store is the read side of the CRUD layer plus the SoA ledger writes.
type Store interface {
	ListProjects(ctx context.Context) ([]store.Project, error)
	GetProject(ctx context.Context, projectID string) (*store.Project, error)
	ListItems(ctx context.Context, kind domain.ItemKind, projectID string) ([]store.Item, error)
	ListSoAEntries(ctx context.Context, projectID string) ([]store.SoAEntry, error)
	GetSoAEntry(ctx context.Context, projectID, controlID string) (*store.SoAEntry, error)
	AddSoAEntries(ctx context.Context, entries []store.SoAEntry) error
	UpdateSoAEntry(ctx context.Context, entry store.SoAEntry) error
	CountOpenNonconformities(ctx context.Context, projectID string) (int, error)
	ListActionPlans(ctx context.Context, projectID string) ([]store.ActionPlan, error)
	// ListEvents returns creation times of kind created at or after since.
	// An empty projectID selects every project.
	ListEvents(ctx context.Context, kind domain.EventKind, projectID string, since time.Time) ([]store.Event, error)
	// InTransaction runs fn inside one database transaction.
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

const closedNonconformityStatus = "closed"

var itemTables = map[domain.ItemKind]string{
	domain.ItemKindRequirement: "requirements",
	domain.ItemKindControl:     "controls",
}

var eventTables = map[domain.EventKind]string{
	domain.EventRisk:          "risks",
	domain.EventNonconformity: "nonconformities",
	domain.EventActionPlan:    "action_plans",
	domain.EventIncident:      "incidents",
}

// sqliteTimeLayout matches the text SQLite's datetime() returns.
const sqliteTimeLayout = "2006-01-02 15:04:05"

type sqlStore struct {
	db     *sql.DB
	driver domain.StorageDriver
	newID  func() string
}

type Option func(*sqlStore)

// WithDriver selects driver specific SQL. DuckDB is assumed otherwise.
func WithDriver(driver domain.StorageDriver) Option {
	return func(s *sqlStore) {
		s.driver = driver
	}
}

func NewStore(db *sql.DB, opts ...Option) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	s := &sqlStore{
		db:     db,
		driver: domain.StorageDriverDuckDB,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

func (s *sqlStore) conn(ctx context.Context) querier {
	if tx := database.GetTransaction(ctx); tx != nil {
		return tx
	}
	return s.db
}

func (s *sqlStore) ListProjects(ctx context.Context) ([]store.Project, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, `
		SELECT id, name, target_maturity, created_at
		FROM projects
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer closeRows(ctx, rows)

	projects := make([]store.Project, 0)
	for rows.Next() {
		var p store.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.TargetMaturity, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *sqlStore) GetProject(ctx context.Context, projectID string) (*store.Project, error) {
	var p store.Project
	err := s.conn(ctx).QueryRowContext(ctx, `
		SELECT id, name, target_maturity, created_at
		FROM projects
		WHERE id = ?
	`, projectID).Scan(&p.ID, &p.Name, &p.TargetMaturity, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %q: %w", projectID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

func (s *sqlStore) ListItems(ctx context.Context, kind domain.ItemKind, projectID string) ([]store.Item, error) {
	table, ok := itemTables[kind]
	if !ok {
		return nil, domain.InvalidField("kind", kind)
	}

	query := fmt.Sprintf(`
		SELECT id, project_id, standard_id, code, title, domain, maturity
		FROM %s
		WHERE project_id = ?
		ORDER BY standard_id, code, id
	`, table)

	rows, err := s.conn(ctx).QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer closeRows(ctx, rows)

	items := make([]store.Item, 0)
	for rows.Next() {
		var it store.Item
		if err := rows.Scan(&it.ID, &it.ProjectID, &it.StandardID, &it.Code, &it.Title, &it.Domain, &it.Maturity); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *sqlStore) ListSoAEntries(ctx context.Context, projectID string) ([]store.SoAEntry, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, `
		SELECT id, project_id, control_id, applicable, implementation_status, justification
		FROM soa_entries
		WHERE project_id = ?
		ORDER BY control_id
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("query soa entries: %w", err)
	}
	defer closeRows(ctx, rows)

	entries := make([]store.SoAEntry, 0)
	for rows.Next() {
		var e store.SoAEntry
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.ControlID, &e.Applicable, &e.ImplementationStatus, &e.Justification); err != nil {
			return nil, fmt.Errorf("scan soa entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *sqlStore) GetSoAEntry(ctx context.Context, projectID, controlID string) (*store.SoAEntry, error) {
	var e store.SoAEntry
	err := s.conn(ctx).QueryRowContext(ctx, `
		SELECT id, project_id, control_id, applicable, implementation_status, justification
		FROM soa_entries
		WHERE project_id = ? AND control_id = ?
	`, projectID, controlID).Scan(&e.ID, &e.ProjectID, &e.ControlID, &e.Applicable, &e.ImplementationStatus, &e.Justification)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("soa entry %s/%s: %w", projectID, controlID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get soa entry: %w", err)
	}
	return &e, nil
}

// AddSoAEntries inserts entries, assigning IDs to those without one.
// It uses the transaction stored in ctx when present.
func (s *sqlStore) AddSoAEntries(ctx context.Context, entries []store.SoAEntry) error {
	if len(entries) == 0 {
		return nil
	}

	stmt, err := s.conn(ctx).PrepareContext(ctx, `
		INSERT INTO soa_entries (
			id, project_id, control_id, applicable, implementation_status, justification
		) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if e.ID == "" {
			e.ID = s.newID()
		}
		_, err := stmt.ExecContext(ctx,
			e.ID,
			e.ProjectID,
			e.ControlID,
			e.Applicable,
			e.ImplementationStatus,
			e.Justification,
		)
		if err != nil {
			return fmt.Errorf("insert soa entry %s: %w", e.ControlID, err)
		}
	}
	return nil
}

func (s *sqlStore) UpdateSoAEntry(ctx context.Context, entry store.SoAEntry) error {
	res, err := s.conn(ctx).ExecContext(ctx, `
		UPDATE soa_entries
		SET applicable = ?, implementation_status = ?, justification = ?
		WHERE project_id = ? AND control_id = ?
	`, entry.Applicable, entry.ImplementationStatus, entry.Justification, entry.ProjectID, entry.ControlID)
	if err != nil {
		return fmt.Errorf("update soa entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update soa entry: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("soa entry %s/%s: %w", entry.ProjectID, entry.ControlID, domain.ErrNotFound)
	}
	return nil
}

func (s *sqlStore) CountOpenNonconformities(ctx context.Context, projectID string) (int, error) {
	var count int
	err := s.conn(ctx).QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM nonconformities
		WHERE project_id = ? AND status <> ?
	`, projectID, closedNonconformityStatus).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count open nonconformities: %w", err)
	}
	return count, nil
}

func (s *sqlStore) ListActionPlans(ctx context.Context, projectID string) ([]store.ActionPlan, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, `
		SELECT id, project_id, status, due_date
		FROM action_plans
		WHERE project_id = ?
		ORDER BY id
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("query action plans: %w", err)
	}
	defer closeRows(ctx, rows)

	plans := make([]store.ActionPlan, 0)
	for rows.Next() {
		var p store.ActionPlan
		if err := rows.Scan(&p.ID, &p.ProjectID, &p.Status, &p.DueDate); err != nil {
			return nil, fmt.Errorf("scan action plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (s *sqlStore) ListEvents(
	ctx context.Context,
	kind domain.EventKind,
	projectID string,
	since time.Time,
) ([]store.Event, error) {
	table, ok := eventTables[kind]
	if !ok {
		return nil, domain.InvalidField("event_kind", kind)
	}

	query := fmt.Sprintf(`SELECT created_at FROM %s WHERE %s`, table, s.sinceFilter())
	args := []any{s.timeArg(since)}
	if projectID != "" {
		query += " AND project_id = ?"
		args = append(args, projectID)
	}
	query += " ORDER BY created_at"

	rows, err := s.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer closeRows(ctx, rows)

	events := make([]store.Event, 0)
	for rows.Next() {
		e := store.Event{Kind: string(kind)}
		if err := rows.Scan(&e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// sinceFilter compares created_at against the window start. SQLite keeps
// timestamps as text, so both sides are normalized to UTC by datetime().
func (s *sqlStore) sinceFilter() string {
	if s.driver == domain.StorageDriverSQLite {
		return "datetime(created_at) >= datetime(?)"
	}
	return "created_at >= ?"
}

func (s *sqlStore) timeArg(t time.Time) any {
	if s.driver == domain.StorageDriverSQLite {
		return t.UTC().Format(sqliteTimeLayout)
	}
	return t.UTC()
}

func (s *sqlStore) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return database.RunInTx(ctx, s.db, fn)
}

func closeRows(ctx context.Context, rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close query rows")
	}
}
