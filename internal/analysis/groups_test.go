package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindpulse/internal/dataset"
)

func TestCompareGroups(t *testing.T) {
	a := New(nil)
	table := dataset.MustFromColumns(
		dataset.NewStringColumn("remote_work", []string{"Yes", "Yes", "No", "No", "No", ""}),
		dataset.NewNumericColumn("Age", []float64{30, 40, 25, 35, 0, 50}, []bool{false, false, false, false, true, false}),
	)

	t.Run("statistics per group", func(t *testing.T) {
		result := a.CompareGroups(table, "remote_work", "Age")
		require.Equal(t, SourceComputed, result.Source)
		require.Equal(t, 2, result.Table.NumRows())
		assert.Equal(t, []string{"remote_work", "Mean", "Median", "Count", "StdDev"}, result.Table.ColumnNames())

		groups, _ := result.Table.Column("remote_work")
		assert.Equal(t, "No", groups.Value(0))
		assert.Equal(t, "Yes", groups.Value(1))

		means, _ := result.Table.Column("Mean")
		noMean, _ := means.Float(0)
		yesMean, _ := means.Float(1)
		assert.InDelta(t, 30.0, noMean, 1e-9)
		assert.InDelta(t, 35.0, yesMean, 1e-9)

		medians, _ := result.Table.Column("Median")
		noMedian, _ := medians.Float(0)
		assert.InDelta(t, 30.0, noMedian, 1e-9)

		stds, _ := result.Table.Column("StdDev")
		yesStd, _ := stds.Float(1)
		assert.InDelta(t, math.Sqrt(50), yesStd, 1e-9)
	})

	t.Run("counts sum to non-null values", func(t *testing.T) {
		result := a.CompareGroups(table, "remote_work", "Age")
		require.Equal(t, SourceComputed, result.Source)
		counts, _ := result.Table.Column("Count")
		var total float64
		for row := 0; row < result.Table.NumRows(); row++ {
			v, ok := counts.Float(row)
			require.True(t, ok)
			total += v
		}
		// 6 rows minus one null Age and one null group
		assert.Equal(t, 4.0, total)
	})

	t.Run("missing grouping column returns empty table", func(t *testing.T) {
		result := a.CompareGroups(table, "no_such_column", "Age")
		assert.Equal(t, SourceEmpty, result.Source)
		assert.Equal(t, 0, result.Table.NumRows())
	})

	t.Run("missing value column returns empty table", func(t *testing.T) {
		result := a.CompareGroups(table, "remote_work", "no_such_column")
		assert.Equal(t, SourceEmpty, result.Source)
		assert.Equal(t, 0, result.Table.NumRows())
	})

	t.Run("non-numeric value column returns empty table", func(t *testing.T) {
		result := a.CompareGroups(table, "Age", "remote_work")
		assert.Equal(t, SourceEmpty, result.Source)
	})

	t.Run("single observation has null stddev", func(t *testing.T) {
		single := dataset.MustFromColumns(
			dataset.NewStringColumn("g", []string{"A"}),
			dataset.NewNumericColumn("v", []float64{10}, nil),
		)
		result := a.CompareGroups(single, "g", "v")
		require.Equal(t, SourceComputed, result.Source)
		stds, _ := result.Table.Column("StdDev")
		assert.True(t, stds.IsNull(0))
	})
}
