package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindpulse/internal/dataset"
)

func TestTrendInsights(t *testing.T) {
	a := New(nil)

	t.Run("numeric trend", func(t *testing.T) {
		table := dataset.MustFromColumns(
			dataset.NewNumericColumn("Age", []float64{20, 30, 40}, nil),
			dataset.NewNumericColumn("Score", []float64{1, 2, 3}, nil),
		)
		insights := a.TrendInsights(table, "Age", "Score")
		require.NotEmpty(t, insights)
		assert.Contains(t, insights[0], "average Score is 2.00")
		assert.Contains(t, insights[len(insights)-1], "strong positive trend")
	})

	t.Run("missing columns", func(t *testing.T) {
		insights := a.TrendInsights(dataset.New(), "x", "y")
		assert.Equal(t, []string{"Insufficient data to generate insights."}, insights)
	})
}

func TestGroupInsights(t *testing.T) {
	a := New(nil)
	table := dataset.MustFromColumns(
		dataset.NewStringColumn("team", []string{"backend", "backend", "frontend"}),
		dataset.NewNumericColumn("score", []float64{4, 6, 2}, nil),
	)

	insights := a.GroupInsights(table, "team", "score")
	require.Len(t, insights, 3)
	assert.Contains(t, insights[0], "backend has the highest average score at 5.00")
	assert.Contains(t, insights[1], "frontend has the lowest average score at 2.00")
	assert.Contains(t, insights[2], "150.0%")
}

func TestSurveyInsights(t *testing.T) {
	a := New(nil)

	t.Run("headline facts", func(t *testing.T) {
		mentalHealth := dataset.MustFromColumns(
			dataset.NewStringColumn("treatment", []string{"Yes", "No", "Yes", "No"}),
			dataset.NewStringColumn("work_interfere", []string{"Often", "Never", "Sometimes", "Never"}),
			dataset.NewStringColumn("remote_work", []string{"Yes", "Yes", "No", "No"}),
		)
		insights := a.SurveyInsights(mentalHealth, dataset.New())
		require.NotEmpty(t, insights)
		assert.Contains(t, insights[0], "50.0% of tech professionals have sought treatment")
		assert.Contains(t, insights[1], "50.0% report that mental health issues interfere")
	})

	t.Run("no usable columns", func(t *testing.T) {
		insights := a.SurveyInsights(dataset.New(), dataset.New())
		assert.Equal(t, []string{"No insights available."}, insights)
	})
}
