package adapters

import (
	"github.com/de-tools/maturity-atlas/pkg/models/api"
	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/services/maturity"
)

// Values leaving the API are rounded to two decimals; domain reports keep full precision.

func MapProjectsDomainToApi(projects []domain.Project) []api.Project {
	res := make([]api.Project, 0, len(projects))
	for _, p := range projects {
		res = append(res, api.Project{ID: p.ID, Name: p.Name, TargetMaturity: int(p.TargetMaturity)})
	}
	return res
}

func MapItemDomainToApi(it domain.ScoredItem) api.Item {
	return api.Item{
		ID:         it.ID,
		Kind:       string(it.Kind),
		Code:       it.Code,
		Title:      it.Title,
		Domain:     maturity.DomainLabel(it.Domain),
		Maturity:   int(it.Maturity),
		StandardID: it.StandardID,
	}
}

func MapDomainGroupDomainToApi(g domain.DomainGroup) api.DomainGroup {
	res := api.DomainGroup{
		Domain:      g.Domain,
		AvgMaturity: maturity.Round2(g.Average),
		Items:       make([]api.Item, 0, len(g.Items)),
	}
	for _, it := range g.Items {
		res.Items = append(res.Items, MapItemDomainToApi(it))
	}
	return res
}

func MapStandardGroupDomainToApi(g domain.StandardGroup) api.StandardGroup {
	res := api.StandardGroup{
		StandardID:  g.StandardID,
		AvgMaturity: maturity.Round2(g.Average),
		ByDomain:    make([]api.DomainGroup, 0, len(g.Domains)),
	}
	for _, d := range g.Domains {
		res.ByDomain = append(res.ByDomain, MapDomainGroupDomainToApi(d))
	}
	return res
}

func MapGapReportDomainToApi(r domain.GapReport) api.GapReport {
	res := api.GapReport{
		ProjectID:      r.ProjectID,
		Kind:           string(r.Kind),
		TargetMaturity: int(r.TargetMaturity),
		Overall: api.GapOverview{
			TotalItems:      r.Overall.TotalItems,
			AverageMaturity: maturity.Round2(r.Overall.AverageMaturity),
			CompliantCount:  r.Overall.CompliantCount,
			GapPercentage:   maturity.Round2(r.Overall.GapPercentage),
		},
		ByStandard:           make([]api.StandardGroup, 0, len(r.ByStandard)),
		MaturityDistribution: make([]api.DistributionBucket, 0, len(r.Distribution)),
		TopGaps:              make([]api.ItemGap, 0, len(r.TopGaps)),
	}
	for _, g := range r.ByStandard {
		res.ByStandard = append(res.ByStandard, MapStandardGroupDomainToApi(g))
	}
	for _, b := range r.Distribution {
		res.MaturityDistribution = append(res.MaturityDistribution, api.DistributionBucket{
			Level: int(b.Level),
			Label: b.Level.String(),
			Count: b.Count,
		})
	}
	for _, g := range r.TopGaps {
		res.TopGaps = append(res.TopGaps, api.ItemGap{
			Item:     MapItemDomainToApi(g.Item),
			Gap:      g.Gap,
			Severity: string(g.Severity),
		})
	}
	return res
}

func MapSoAEntryDomainToApi(e domain.SoAEntry) api.SoAEntry {
	res := api.SoAEntry{
		ID:            e.ID,
		ControlID:     e.ControlID,
		Applicable:    e.Applicable,
		Justification: e.Justification,
	}
	if e.ImplementationStatus != nil {
		s := string(*e.ImplementationStatus)
		res.ImplementationStatus = &s
	}
	return res
}

func MapSoAStatementDomainToApi(st domain.SoAStatement) api.SoAStatement {
	res := api.SoAStatement{
		ProjectID: st.ProjectID,
		Summary: api.SoASummary{
			Total:                    st.Summary.Total,
			Applicable:               st.Summary.Applicable,
			NotApplicable:            st.Summary.NotApplicable,
			Implemented:              st.Summary.Implemented,
			PartiallyImplemented:     st.Summary.PartiallyImplemented,
			NotImplemented:           st.Summary.NotImplemented,
			ImplementationPercentage: maturity.Round2(st.Summary.ImplementationPercentage),
		},
		Entries: make([]api.SoAEntry, 0, len(st.Entries)),
	}
	for _, e := range st.Entries {
		res.Entries = append(res.Entries, MapSoAEntryDomainToApi(e))
	}
	return res
}

func MapReadinessReportDomainToApi(r domain.ReadinessReport) api.ReadinessReport {
	return api.ReadinessReport{
		ProjectID:             r.ProjectID,
		ProjectName:           r.ProjectName,
		RequirementCompliance: maturity.Round2(r.RequirementCompliance),
		ControlCompliance:     maturity.Round2(r.ControlCompliance),
		OpenNCs:               r.OpenNCs,
		PendingActions:        r.PendingActions,
		OverdueItems:          r.OverdueItems,
		NCPenalty:             maturity.Round2(r.NCPenalty),
		OverduePenalty:        maturity.Round2(r.OverduePenalty),
		ReadinessScore:        r.ReadinessScore,
	}
}

func MapReadinessReportsDomainToApi(reports []domain.ReadinessReport) []api.ReadinessReport {
	res := make([]api.ReadinessReport, 0, len(reports))
	for _, r := range reports {
		res = append(res, MapReadinessReportDomainToApi(r))
	}
	return res
}

func MapTrendRowsDomainToApi(rows []domain.TrendRow) []api.TrendRow {
	res := make([]api.TrendRow, 0, len(rows))
	for _, r := range rows {
		res = append(res, api.TrendRow{
			Month:     r.Month,
			Risks:     r.Risks,
			NCs:       r.NCs,
			Actions:   r.Actions,
			Incidents: r.Incidents,
		})
	}
	return res
}

func MapHeatmapDomainToApi(cells []domain.HeatmapCell) []api.HeatmapCell {
	res := make([]api.HeatmapCell, 0, len(cells))
	for _, c := range cells {
		res = append(res, api.HeatmapCell{
			Domain:      c.Domain,
			ProjectID:   c.ProjectID,
			ProjectName: c.ProjectName,
			AvgMaturity: c.AvgMaturity,
			Items:       c.Items,
		})
	}
	return res
}
