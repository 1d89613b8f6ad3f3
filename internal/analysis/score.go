package analysis

import (
	"mindpulse/internal/dataset"
)

// MentalHealthScore computes one integer score per respondent from the given
// candidate columns. A row gains 1 for each column whose value is in that
// column's positive set and loses 1 for each column whose value is in the
// negative set. Candidate columns absent from the table are silently skipped.
// The returned slice is aligned to the table's row order; a row matching no
// configured column scores 0.
func (a *Analyzer) MentalHealthScore(t *dataset.Table, columns []string, positive, negative ValueMapping) []int {
	scores := make([]int, t.NumRows())
	for _, name := range columns {
		col, ok := t.Column(name)
		if !ok {
			continue
		}
		_, hasPositive := positive[name]
		_, hasNegative := negative[name]
		if !hasPositive && !hasNegative {
			continue
		}
		for row := 0; row < t.NumRows(); row++ {
			if col.IsNull(row) {
				continue
			}
			v := col.Value(row)
			if hasPositive && positive.contains(name, v) {
				scores[row]++
			}
			if hasNegative && negative.contains(name, v) {
				scores[row]--
			}
		}
	}
	return scores
}
