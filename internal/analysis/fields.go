package analysis

import (
	"mindpulse/internal/dataset"
)

// columns required by the field-of-study analysis, from the developer survey
const (
	ColUndergradMajor = "UndergradMajor"
	ColMentalHealth   = "MentalHealth"
)

// FieldOutcomes analyzes mental-health outcomes by field of study. It groups
// the developer survey by undergrad major and returns, per field, the
// percentage distribution of mental-health ratings. When either required
// column is missing the fixed placeholder table below is returned so the
// dashboard always has renderable data.
func (a *Analyzer) FieldOutcomes(mentalHealth, developer *dataset.Table) TableResult {
	if !developer.HasColumn(ColUndergradMajor) || !developer.HasColumn(ColMentalHealth) {
		return fallback(dataset.MustFromColumns(
			dataset.NewStringColumn("Field", []string{"Computer Science", "Other Engineering", "Non-Engineering"}),
			dataset.NewNumericColumn("Mental Health Score", []float64{3.2, 3.5, 3.8}, nil),
		))
	}
	return computed(percentDistribution(developer, ColUndergradMajor, ColMentalHealth))
}
