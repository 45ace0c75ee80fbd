// Package heatmap cross-tabulates average control maturity by domain and project.
package heatmap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/services/maturity"
)

// NoDomain labels controls without a domain. It differs from maturity.OtherDomain
// so heatmap cells are never mistaken for gap-report groups.
const NoDomain = "No domain"

type Input struct {
	Domain      string
	ProjectID   string
	ProjectName string
	Maturity    domain.MaturityLevel
}

type cellKey struct {
	domain    string
	projectID string
}

type cellAcc struct {
	projectName string
	sum         int
	count       int
}

// FromItems turns a project's controls into heatmap inputs.
func FromItems(project domain.Project, items []domain.ScoredItem) []Input {
	inputs := make([]Input, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, Input{
			Domain:      item.Domain,
			ProjectID:   project.ID,
			ProjectName: project.Name,
			Maturity:    item.Maturity,
		})
	}
	return inputs
}

// Build groups inputs by (domain, project) and averages each cell, rounded to two decimals.
// Cells are ordered by domain, then project name, then project ID.
func Build(inputs []Input) ([]domain.HeatmapCell, error) {
	acc := make(map[cellKey]*cellAcc)
	for i, in := range inputs {
		if err := in.Maturity.Validate(fmt.Sprintf("maturity (heatmap row %d, project %s)", i, in.ProjectID)); err != nil {
			return nil, err
		}
		key := cellKey{domain: label(in.Domain), projectID: in.ProjectID}
		a, ok := acc[key]
		if !ok {
			a = &cellAcc{projectName: in.ProjectName}
			acc[key] = a
		}
		a.sum += int(in.Maturity)
		a.count++
	}

	cells := make([]domain.HeatmapCell, 0, len(acc))
	for key, a := range acc {
		cells = append(cells, domain.HeatmapCell{
			Domain:      key.domain,
			ProjectID:   key.projectID,
			ProjectName: a.projectName,
			AvgMaturity: maturity.Round2(float64(a.sum) / float64(a.count)),
			Items:       a.count,
		})
	}

	sort.Slice(cells, func(i, j int) bool {
		a, b := cells[i], cells[j]
		if a.Domain != b.Domain {
			return a.Domain < b.Domain
		}
		if a.ProjectName != b.ProjectName {
			return a.ProjectName < b.ProjectName
		}
		return a.ProjectID < b.ProjectID
	})
	return cells, nil
}

func label(d string) string {
	if strings.TrimSpace(d) == "" {
		return NoDomain
	}
	return d
}
