package terminal

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/maturity-atlas/pkg/models/api"
	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/services/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService answers the calls exercised by the CLI tests; others panic.
type stubService struct {
	analytics.Service
}

func (stubService) GapReport(_ context.Context, projectID string, kind domain.ItemKind) (domain.GapReport, error) {
	return domain.GapReport{
		ProjectID:      projectID,
		Kind:           kind,
		TargetMaturity: domain.MaturityManaged,
		Overall:        domain.GapOverview{TotalItems: 1, GapPercentage: 100},
		TopGaps: []domain.ItemGap{{
			Item:     domain.ScoredItem{ID: "r1", Code: "4.1", Title: "Context of the organization", Maturity: domain.MaturityInitial},
			Gap:      2,
			Severity: domain.GapSeverityCritical,
		}},
	}, nil
}

func (stubService) GenerateSoA(context.Context, string) (int, error) {
	return 2, nil
}

func (stubService) ReadinessAll(context.Context) ([]domain.ReadinessReport, error) {
	return []domain.ReadinessReport{
		{ProjectID: "p1", ProjectName: "Alpha", ReadinessScore: 64},
		{ProjectID: "p2", ProjectName: "Beta", ReadinessScore: 30},
	}, nil
}

type cliFixture struct {
	cli          *CLI
	out          *bytes.Buffer
	opened       []domain.StorageProfile
	closed       int
	registryPath string
}

func newFixture(t *testing.T) *cliFixture {
	t.Helper()

	registryPath := filepath.Join(t.TempDir(), ".maturityatlascfg")
	require.NoError(t, os.WriteFile(registryPath, []byte(`
[default]
driver = duckdb
path = default.db

[prod]
driver = sqlite
path = /data/prod.sqlite
`), 0o600))

	f := &cliFixture{out: new(bytes.Buffer), registryPath: registryPath}
	f.cli = NewCLI(Options{
		Factory: func(_ context.Context, profile domain.StorageProfile) (analytics.Service, func() error, error) {
			f.opened = append(f.opened, profile)
			return stubService{}, func() error {
				f.closed++
				return nil
			}, nil
		},
		RegistryPath: registryPath,
		Output:       f.out,
	})
	return f
}

func (f *cliFixture) run(args ...string) error {
	f.cli.SetArgs(args)
	return f.cli.Execute()
}

func TestCLI_GapWithExplicitDatabase(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.run("gap", "p1", "--db", "atlas.sqlite", "--driver", "sqlite"))

	require.Len(t, f.opened, 1)
	assert.Equal(t, domain.StorageDriverSQLite, f.opened[0].Driver)
	assert.Equal(t, "atlas.sqlite", f.opened[0].Path)
	assert.Equal(t, 1, f.closed)
	assert.Contains(t, f.out.String(), "Gap report: p1 (requirement, target maturity 3)")
	assert.Contains(t, f.out.String(), "4.1")
	assert.Contains(t, f.out.String(), "critical")
}

func TestCLI_ReadinessJSONFromProfile(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.run("readiness", "--profile", "prod", "-o", "json"))

	require.Len(t, f.opened, 1)
	assert.Equal(t, domain.StorageProfile{Name: "prod", Driver: domain.StorageDriverSQLite, Path: "/data/prod.sqlite"}, f.opened[0])

	var reports []api.ReadinessReport
	require.NoError(t, json.Unmarshal(f.out.Bytes(), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, "Beta", reports[1].ProjectName)
	assert.Equal(t, 30, reports[1].ReadinessScore)
}

func TestCLI_SoAGenerate(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.run("soa", "generate", "p1"))
	assert.Equal(t, "default.db", f.opened[0].Path)
	assert.Equal(t, "Created 2 SoA entries for project p1\n", f.out.String())
}

func TestCLI_Profiles(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.run("profiles"))
	assert.Contains(t, f.out.String(), "default")
	assert.Contains(t, f.out.String(), "/data/prod.sqlite")
	assert.Empty(t, f.opened)
}

func TestCLI_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		err  error
	}{
		{name: "unknown profile", args: []string{"heatmap", "--profile", "staging"}, err: domain.ErrNotFound},
		{name: "invalid period", args: []string{"trends", "--period", "2w"}, err: domain.ErrInvalidInput},
		{name: "invalid kind", args: []string{"gap", "p1", "--kind", "risk"}, err: domain.ErrInvalidInput},
		{name: "invalid output", args: []string{"heatmap", "-o", "xml"}, err: domain.ErrInvalidInput},
		{name: "invalid driver", args: []string{"heatmap", "--db", "x.db", "--driver", "postgres"}, err: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			err := f.run(tt.args...)
			assert.ErrorIs(t, err, tt.err)
			assert.Empty(t, f.opened)
		})
	}
}
