package heatmap

import (
	"testing"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	inputs := []Input{
		{Domain: "A.5", ProjectID: "p2", ProjectName: "Beta", Maturity: 4},
		{Domain: "A.5", ProjectID: "p1", ProjectName: "Alpha", Maturity: 1},
		{Domain: "A.5", ProjectID: "p1", ProjectName: "Alpha", Maturity: 2},
		{Domain: "A.5", ProjectID: "p1", ProjectName: "Alpha", Maturity: 2},
		{Domain: "", ProjectID: "p1", ProjectName: "Alpha", Maturity: 3},
		{Domain: "A.8", ProjectID: "p2", ProjectName: "Beta", Maturity: 0},
	}

	cells, err := Build(inputs)
	require.NoError(t, err)

	assert.Equal(t, []domain.HeatmapCell{
		{Domain: "A.5", ProjectID: "p1", ProjectName: "Alpha", AvgMaturity: 1.67, Items: 3},
		{Domain: "A.5", ProjectID: "p2", ProjectName: "Beta", AvgMaturity: 4, Items: 1},
		{Domain: "A.8", ProjectID: "p2", ProjectName: "Beta", AvgMaturity: 0, Items: 1},
		{Domain: NoDomain, ProjectID: "p1", ProjectName: "Alpha", AvgMaturity: 3, Items: 1},
	}, cells)

	total := 0
	for _, c := range cells {
		total += c.Items
	}
	assert.Equal(t, len(inputs), total)
}

func TestBuild_SameNameDifferentProjects(t *testing.T) {
	cells, err := Build([]Input{
		{Domain: "A.6", ProjectID: "p2", ProjectName: "Audit", Maturity: 1},
		{Domain: "A.6", ProjectID: "p1", ProjectName: "Audit", Maturity: 3},
	})
	require.NoError(t, err)
	require.Len(t, cells, 2)
	assert.Equal(t, "p1", cells[0].ProjectID)
	assert.Equal(t, "p2", cells[1].ProjectID)
}

func TestBuild_DomainWithSeparatorCharacters(t *testing.T) {
	cells, err := Build([]Input{
		{Domain: "a|||b", ProjectID: "c", Maturity: 1},
		{Domain: "a", ProjectID: "b|||c", Maturity: 3},
	})
	require.NoError(t, err)
	assert.Len(t, cells, 2)
}

func TestBuild_Empty(t *testing.T) {
	cells, err := Build(nil)
	require.NoError(t, err)
	assert.Empty(t, cells)
}

func TestBuild_RejectsInvalidMaturity(t *testing.T) {
	_, err := Build([]Input{{Domain: "A.5", ProjectID: "p9", Maturity: -1}})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "p9")
}

func TestFromItems(t *testing.T) {
	project := domain.Project{ID: "p1", Name: "Alpha"}
	inputs := FromItems(project, []domain.ScoredItem{{Domain: "A.5", Maturity: 2}})
	assert.Equal(t, []Input{{Domain: "A.5", ProjectID: "p1", ProjectName: "Alpha", Maturity: 2}}, inputs)
}
