package analysis

import (
	"sort"

	"mindpulse/internal/dataset"
)

// percentDistribution groups rows by groupCol and computes, per group, the
// percentage share of each distinct valueCol category. The output has one row
// per group (sorted), the group column first, then one numeric column per
// category (sorted). Rows with a null group or value are excluded from the
// counts, so each output row's percentages sum to 100.
func percentDistribution(t *dataset.Table, groupCol, valueCol string) *dataset.Table {
	group, _ := t.Column(groupCol)
	value, _ := t.Column(valueCol)

	counts := make(map[string]map[string]int)
	totals := make(map[string]int)
	categorySet := make(map[string]struct{})
	for row := 0; row < t.NumRows(); row++ {
		if group.IsNull(row) || value.IsNull(row) {
			continue
		}
		g, v := group.Value(row), value.Value(row)
		if counts[g] == nil {
			counts[g] = make(map[string]int)
		}
		counts[g][v]++
		totals[g]++
		categorySet[v] = struct{}{}
	}

	groups := make([]string, 0, len(counts))
	for g := range counts {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	categories := make([]string, 0, len(categorySet))
	for c := range categorySet {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	cols := make([]*dataset.Column, 0, len(categories)+1)
	cols = append(cols, dataset.NewStringColumn(groupCol, groups))
	for _, category := range categories {
		percents := make([]float64, len(groups))
		for i, g := range groups {
			percents[i] = float64(counts[g][category]) / float64(totals[g]) * 100
		}
		cols = append(cols, dataset.NewNumericColumn(category, percents, nil))
	}
	return dataset.MustFromColumns(cols...)
}
