// Package maturity aggregates maturity ratings over arbitrary groupings of scored items.
package maturity

import (
	"math"
	"sort"
	"strings"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
)

// OtherDomain labels items that carry no domain.
const OtherDomain = "Other"

// Average returns the arithmetic mean maturity of items at full precision, or 0 for no items.
func Average(items []domain.ScoredItem) float64 {
	if len(items) == 0 {
		return 0
	}
	sum := 0
	for _, item := range items {
		sum += int(item.Maturity)
	}
	return float64(sum) / float64(len(items))
}

// Round2 rounds v to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CompliantCount returns the number of items at or above the compliance threshold.
func CompliantCount(items []domain.ScoredItem) int {
	count := 0
	for _, item := range items {
		if item.Maturity.Compliant() {
			count++
		}
	}
	return count
}

// DomainLabel returns the grouping label of an item's domain.
func DomainLabel(d string) string {
	if strings.TrimSpace(d) == "" {
		return OtherDomain
	}
	return d
}

// GroupByDomain partitions items by domain. Groups are sorted by name with
// the Other group last; items keep their input order inside a group.
func GroupByDomain(items []domain.ScoredItem) []domain.DomainGroup {
	index := make(map[string]int)
	groups := make([]domain.DomainGroup, 0)

	for _, item := range items {
		label := DomainLabel(item.Domain)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, domain.DomainGroup{Domain: label})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].Domain, groups[j].Domain
		if (a == OtherDomain) != (b == OtherDomain) {
			return b == OtherDomain
		}
		return a < b
	})

	for i := range groups {
		groups[i].Average = Average(groups[i].Items)
	}
	return groups
}

// GroupByStandard groups items by standard and then by domain, ordered by standard ID.
func GroupByStandard(items []domain.ScoredItem) []domain.StandardGroup {
	byStandard := make(map[string][]domain.ScoredItem)
	for _, item := range items {
		byStandard[item.StandardID] = append(byStandard[item.StandardID], item)
	}

	ids := make([]string, 0, len(byStandard))
	for id := range byStandard {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	groups := make([]domain.StandardGroup, 0, len(ids))
	for _, id := range ids {
		standardItems := byStandard[id]
		groups = append(groups, domain.StandardGroup{
			StandardID: id,
			Average:    Average(standardItems),
			Domains:    GroupByDomain(standardItems),
		})
	}
	return groups
}
