// Package gap measures the shortfall between item maturity and a project's target maturity.
package gap

import (
	"sort"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/services/maturity"
)

const (
	// WarningGap is the smallest gap classified as a warning.
	WarningGap = 1
	// CriticalGap is the smallest gap classified as critical.
	CriticalGap = 2
)

// ReportSettings contains configurable parameters of a gap report
type ReportSettings struct {
	// TopGaps is the number of largest gaps listed in the report (default: 10)
	TopGaps int
}

func DefaultReportSettings() ReportSettings {
	return ReportSettings{
		TopGaps: 10,
	}
}

// Gap returns max(0, target - maturity). An item above target has no gap.
func Gap(item domain.ScoredItem, target domain.MaturityLevel) int {
	g := int(target) - int(item.Maturity)
	if g < 0 {
		return 0
	}
	return g
}

func ClassifySeverity(gap int) domain.GapSeverity {
	switch {
	case gap >= CriticalGap:
		return domain.GapSeverityCritical
	case gap >= WarningGap:
		return domain.GapSeverityWarning
	default:
		return domain.GapSeverityOK
	}
}

// TopGaps returns at most n items with a positive gap, largest gap first.
// Ties are broken by lowest current maturity, then by code, then by ID.
func TopGaps(items []domain.ScoredItem, target domain.MaturityLevel, n int) []domain.ItemGap {
	gaps := make([]domain.ItemGap, 0)
	if n <= 0 {
		return gaps
	}

	for _, item := range items {
		g := Gap(item, target)
		if g == 0 {
			continue
		}
		gaps = append(gaps, domain.ItemGap{Item: item, Gap: g, Severity: ClassifySeverity(g)})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		a, b := gaps[i], gaps[j]
		if a.Gap != b.Gap {
			return a.Gap > b.Gap
		}
		if a.Item.Maturity != b.Item.Maturity {
			return a.Item.Maturity < b.Item.Maturity
		}
		if a.Item.Code != b.Item.Code {
			return a.Item.Code < b.Item.Code
		}
		return a.Item.ID < b.Item.ID
	})

	if len(gaps) > n {
		gaps = gaps[:n]
	}
	return gaps
}

// Distribution returns the histogram of maturity levels 0..4; all five buckets are always present.
func Distribution(items []domain.ScoredItem) []domain.DistributionBucket {
	buckets := make([]domain.DistributionBucket, 0, int(domain.MaxMaturity)+1)
	for level := domain.MinMaturity; level <= domain.MaxMaturity; level++ {
		buckets = append(buckets, domain.DistributionBucket{Level: level})
	}
	for _, item := range items {
		if item.Maturity.Valid() {
			buckets[item.Maturity].Count++
		}
	}
	return buckets
}

// GapPercentage returns the share of non-compliant items, 0 when there are none.
func GapPercentage(total, compliant int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(total-compliant) / float64(total)
}

// BuildReport validates the snapshot and aggregates it into a gap report.
func BuildReport(
	items []domain.ScoredItem,
	target domain.MaturityLevel,
	settings ReportSettings,
) (domain.GapReport, error) {
	if err := target.Validate("target_maturity"); err != nil {
		return domain.GapReport{}, err
	}
	if err := domain.ValidateItems(items); err != nil {
		return domain.GapReport{}, err
	}

	compliant := maturity.CompliantCount(items)

	return domain.GapReport{
		TargetMaturity: target,
		Overall: domain.GapOverview{
			TotalItems:      len(items),
			AverageMaturity: maturity.Average(items),
			CompliantCount:  compliant,
			GapPercentage:   GapPercentage(len(items), compliant),
		},
		ByStandard:   maturity.GroupByStandard(items),
		Distribution: Distribution(items),
		TopGaps:      TopGaps(items, target, settings.TopGaps),
	}, nil
}
