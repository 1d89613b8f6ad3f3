package analysis

import (
	"math"

	"mindpulse/internal/dataset"
)

// series is one fully-numeric column participating in the correlation
type series struct {
	name   string
	values []float64
	null   []bool
}

// Correlation builds the pairwise Pearson correlation matrix over the
// candidate columns that exist in the table. Non-numeric columns are one-hot
// expanded into one binary indicator per distinct category (indicator name
// "column_value", categories in sorted order) with the original column
// dropped; expanded indicators follow the surviving numeric candidates in the
// output ordering. The result is a square table whose first column holds the
// row labels; it is tagged SourceEmpty when no candidate column exists.
func (a *Analyzer) Correlation(t *dataset.Table, columns []string) TableResult {
	var numeric, categorical []*dataset.Column
	for _, name := range columns {
		col, ok := t.Column(name)
		if !ok {
			continue
		}
		if col.Kind() == dataset.KindNumeric {
			numeric = append(numeric, col)
		} else {
			categorical = append(categorical, col)
		}
	}
	if len(numeric) == 0 && len(categorical) == 0 {
		return empty()
	}

	rows := t.NumRows()
	var set []series
	for _, col := range numeric {
		s := series{name: col.Name(), values: make([]float64, rows), null: make([]bool, rows)}
		for i := 0; i < rows; i++ {
			if v, ok := col.Float(i); ok {
				s.values[i] = v
			} else {
				s.null[i] = true
			}
		}
		set = append(set, s)
	}
	for _, col := range categorical {
		set = append(set, oneHot(col, rows)...)
	}

	n := len(set)
	labels := make([]string, n)
	for i, s := range set {
		labels[i] = s.name
	}

	cols := make([]*dataset.Column, 0, n+1)
	cols = append(cols, dataset.NewStringColumn("Column", labels))
	matrix := make([][]float64, n)
	nulls := make([][]bool, n)
	for i := range set {
		matrix[i] = make([]float64, n)
		nulls[i] = make([]bool, n)
	}
	for i := 0; i < n; i++ {
		matrix[i][i] = 1.0
		for j := i + 1; j < n; j++ {
			r, ok := pearson(set[i], set[j])
			matrix[i][j], matrix[j][i] = r, r
			nulls[i][j], nulls[j][i] = !ok, !ok
		}
	}
	for j := 0; j < n; j++ {
		values := make([]float64, n)
		null := make([]bool, n)
		for i := 0; i < n; i++ {
			values[i] = matrix[i][j]
			null[i] = nulls[i][j]
		}
		cols = append(cols, dataset.NewNumericColumn(labels[j], values, null))
	}
	return computed(dataset.MustFromColumns(cols...))
}

// oneHot expands a categorical column into one 0/1 indicator series per
// distinct value. Null rows are 0 in every indicator.
func oneHot(col *dataset.Column, rows int) []series {
	categories := col.Distinct()
	out := make([]series, len(categories))
	for k, category := range categories {
		s := series{name: col.Name() + "_" + category, values: make([]float64, rows), null: make([]bool, rows)}
		for i := 0; i < rows; i++ {
			if !col.IsNull(i) && col.Value(i) == category {
				s.values[i] = 1.0
			}
		}
		out[k] = s
	}
	return out
}

// pearson computes the correlation coefficient over the rows where both
// series are present. ok is false when either side has zero variance or
// fewer than two complete observations.
func pearson(x, y series) (float64, bool) {
	var n float64
	var sumX, sumY float64
	for i := range x.values {
		if x.null[i] || y.null[i] {
			continue
		}
		n++
		sumX += x.values[i]
		sumY += y.values[i]
	}
	if n < 2 {
		return 0, false
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range x.values {
		if x.null[i] || y.null[i] {
			continue
		}
		dx, dy := x.values[i]-meanX, y.values[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0, false
	}
	return cov / math.Sqrt(varX*varY), true
}
