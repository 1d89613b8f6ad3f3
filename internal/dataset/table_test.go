package dataset

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromColumns(t *testing.T) {
	t.Run("valid table", func(t *testing.T) {
		table, err := FromColumns(
			NewStringColumn("Country", []string{"USA", "UK"}),
			NewNumericColumn("Age", []float64{30, 40}, nil),
		)
		require.NoError(t, err)
		assert.Equal(t, 2, table.NumRows())
		assert.Equal(t, 2, table.NumColumns())
		assert.Equal(t, []string{"Country", "Age"}, table.ColumnNames())
		assert.True(t, table.HasColumn("Age"))
		assert.False(t, table.HasColumn("age"))
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := FromColumns(
			NewStringColumn("a", []string{"x"}),
			NewStringColumn("b", []string{"x", "y"}),
		)
		assert.Error(t, err)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := FromColumns(
			NewStringColumn("a", []string{"x"}),
			NewStringColumn("a", []string{"y"}),
		)
		assert.Error(t, err)
	})
}

func TestColumn(t *testing.T) {
	t.Run("empty strings are null", func(t *testing.T) {
		col := NewStringColumn("c", []string{"x", "", "y"})
		assert.False(t, col.IsNull(0))
		assert.True(t, col.IsNull(1))
		assert.Equal(t, "", col.Value(1))
	})

	t.Run("numeric access", func(t *testing.T) {
		col := NewNumericColumn("n", []float64{1.5, 0}, []bool{false, true})
		v, ok := col.Float(0)
		require.True(t, ok)
		assert.Equal(t, 1.5, v)
		_, ok = col.Float(1)
		assert.False(t, ok)
		assert.Equal(t, "1.5", col.Value(0))
	})

	t.Run("distinct is sorted and skips nulls", func(t *testing.T) {
		col := NewStringColumn("c", []string{"b", "a", "", "b"})
		assert.Equal(t, []string{"a", "b"}, col.Distinct())
	})
}

func TestTableFilter(t *testing.T) {
	table := MustFromColumns(
		NewStringColumn("Country", []string{"USA", "UK", "USA"}),
		NewNumericColumn("Age", []float64{30, 40, 50}, nil),
	)

	country, _ := table.Column("Country")
	filtered := table.Filter(func(row int) bool { return country.Value(row) == "USA" })

	assert.Equal(t, 2, filtered.NumRows())
	age, _ := filtered.Column("Age")
	first, _ := age.Float(0)
	second, _ := age.Float(1)
	assert.Equal(t, 30.0, first)
	assert.Equal(t, 50.0, second)

	// input table unchanged
	assert.Equal(t, 3, table.NumRows())
}

func TestTableMarshalJSON(t *testing.T) {
	table := MustFromColumns(
		NewStringColumn("Country", []string{"USA", ""}),
		NewNumericColumn("Age", []float64{30, 0}, []bool{false, true}),
	)

	data, err := json.Marshal(table)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"columns": [
			{"name": "Country", "type": "string"},
			{"name": "Age", "type": "numeric"}
		],
		"rows": [["USA", 30], [null, null]]
	}`, string(data))
}
