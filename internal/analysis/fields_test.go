package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindpulse/internal/dataset"
)

func TestFieldOutcomes(t *testing.T) {
	a := New(nil)

	t.Run("percentage distribution per field", func(t *testing.T) {
		developer := dataset.MustFromColumns(
			dataset.NewStringColumn("UndergradMajor", []string{"CS", "CS", "CS", "Arts", "Arts"}),
			dataset.NewStringColumn("MentalHealth", []string{"Good", "Good", "Poor", "Good", "Fair"}),
		)
		result := a.FieldOutcomes(dataset.New(), developer)
		require.Equal(t, SourceComputed, result.Source)
		require.Equal(t, 2, result.Table.NumRows())
		// groups sorted, categories sorted
		assert.Equal(t, []string{"UndergradMajor", "Fair", "Good", "Poor"}, result.Table.ColumnNames())

		majors, _ := result.Table.Column("UndergradMajor")
		assert.Equal(t, "Arts", majors.Value(0))
		assert.Equal(t, "CS", majors.Value(1))

		good, _ := result.Table.Column("Good")
		csGood, _ := good.Float(1)
		assert.InDelta(t, 200.0/3.0, csGood, 1e-9)

		assertRowsSumTo100(t, result.Table)
	})

	t.Run("missing columns return fixed fallback", func(t *testing.T) {
		developer := dataset.MustFromColumns(
			dataset.NewStringColumn("MentalHealth", []string{"Good"}),
		)
		result := a.FieldOutcomes(dataset.New(), developer)
		require.Equal(t, SourceFallback, result.Source)

		fields, _ := result.Table.Column("Field")
		scores, _ := result.Table.Column("Mental Health Score")
		require.Equal(t, 3, result.Table.NumRows())
		wantFields := []string{"Computer Science", "Other Engineering", "Non-Engineering"}
		wantScores := []float64{3.2, 3.5, 3.8}
		for i := range wantFields {
			assert.Equal(t, wantFields[i], fields.Value(i))
			score, ok := scores.Float(i)
			require.True(t, ok)
			assert.Equal(t, wantScores[i], score)
		}
	})
}

func TestRemoteWorkImpact(t *testing.T) {
	a := New(nil)

	t.Run("percentage distribution per remote-work group", func(t *testing.T) {
		table := dataset.MustFromColumns(
			dataset.NewStringColumn("remote_work", []string{"Yes", "Yes", "Yes", "No", "No"}),
			dataset.NewStringColumn("work_interfere", []string{"Never", "Often", "Often", "Sometimes", "Never"}),
		)
		result := a.RemoteWorkImpact(table)
		require.Equal(t, SourceComputed, result.Source)
		require.Equal(t, 2, result.Table.NumRows())

		groups, _ := result.Table.Column("remote_work")
		assert.Equal(t, "No", groups.Value(0))
		assert.Equal(t, "Yes", groups.Value(1))

		often, _ := result.Table.Column("Often")
		yesOften, _ := often.Float(1)
		assert.InDelta(t, 200.0/3.0, yesOften, 1e-9)
		noOften, _ := often.Float(0)
		assert.InDelta(t, 0.0, noOften, 1e-9)

		assertRowsSumTo100(t, result.Table)
	})

	t.Run("missing columns return fixed fallback", func(t *testing.T) {
		table := dataset.MustFromColumns(
			dataset.NewStringColumn("remote_work", []string{"Yes"}),
		)
		result := a.RemoteWorkImpact(table)
		require.Equal(t, SourceFallback, result.Source)
		assert.Equal(t, []string{"Remote Work", "Never", "Rarely", "Sometimes", "Often"}, result.Table.ColumnNames())

		groups, _ := result.Table.Column("Remote Work")
		assert.Equal(t, "Yes", groups.Value(0))
		assert.Equal(t, "No", groups.Value(1))
		never, _ := result.Table.Column("Never")
		v, _ := never.Float(0)
		assert.Equal(t, 40.0, v)
	})
}

// assertRowsSumTo100 checks the percentage invariant of distribution tables:
// for each row, the numeric columns sum to 100 within tolerance.
func assertRowsSumTo100(t *testing.T, table *dataset.Table) {
	t.Helper()
	for row := 0; row < table.NumRows(); row++ {
		var sum float64
		for _, name := range table.ColumnNames()[1:] {
			col, _ := table.Column(name)
			if v, ok := col.Float(row); ok {
				sum += v
			}
		}
		assert.InDelta(t, 100.0, sum, 1e-9, "row %d", row)
	}
}
