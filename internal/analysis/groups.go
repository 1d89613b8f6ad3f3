package analysis

import (
	"math"
	"sort"

	"mindpulse/internal/dataset"
)

// CompareGroups produces descriptive statistics of a numeric value column per
// distinct value of a grouping column. The output has one row per group,
// sorted by group value, with columns: the group column, Mean, Median, Count
// and StdDev (sample standard deviation). If either column is absent, or the
// value column is not numeric, the result is a zero-row table tagged
// SourceEmpty rather than an error, so rendering code need not special-case
// missing columns.
func (a *Analyzer) CompareGroups(t *dataset.Table, groupCol, valueCol string) TableResult {
	group, ok := t.Column(groupCol)
	if !ok {
		return empty()
	}
	value, ok := t.Column(valueCol)
	if !ok || value.Kind() != dataset.KindNumeric {
		return empty()
	}

	byGroup := make(map[string][]float64)
	for row := 0; row < t.NumRows(); row++ {
		if group.IsNull(row) {
			continue
		}
		v, present := value.Float(row)
		if !present {
			continue
		}
		key := group.Value(row)
		byGroup[key] = append(byGroup[key], v)
	}

	keys := make([]string, 0, len(byGroup))
	for k := range byGroup {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	n := len(keys)
	means := make([]float64, n)
	medians := make([]float64, n)
	counts := make([]float64, n)
	stds := make([]float64, n)
	stdNull := make([]bool, n)
	for i, k := range keys {
		values := byGroup[k]
		means[i] = mean(values)
		medians[i] = median(values)
		counts[i] = float64(len(values))
		if sd, ok := sampleStdDev(values); ok {
			stds[i] = sd
		} else {
			stdNull[i] = true
		}
	}

	table := dataset.MustFromColumns(
		dataset.NewStringColumn(groupCol, keys),
		dataset.NewNumericColumn("Mean", means, nil),
		dataset.NewNumericColumn("Median", medians, nil),
		dataset.NewNumericColumn("Count", counts, nil),
		dataset.NewNumericColumn("StdDev", stds, stdNull),
	)
	return computed(table)
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// sampleStdDev returns the n-1 standard deviation; ok is false for fewer than
// two observations.
func sampleStdDev(values []float64) (float64, bool) {
	if len(values) < 2 {
		return 0, false
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1)), true
}
