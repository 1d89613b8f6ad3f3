package analysis

import (
	"mindpulse/internal/dataset"
)

// columns required by the remote-work analysis
const (
	ColRemoteWork    = "remote_work"
	ColWorkInterfere = "work_interfere"
)

// RemoteWorkImpact analyzes how remote work relates to mental health
// interfering with work. It groups respondents by remote-work status and
// returns, per group, the percentage distribution of interference levels.
// When either required column is missing a fixed placeholder table with both
// remote-work categories and four interference levels is returned.
func (a *Analyzer) RemoteWorkImpact(t *dataset.Table) TableResult {
	if !t.HasColumn(ColRemoteWork) || !t.HasColumn(ColWorkInterfere) {
		return fallback(dataset.MustFromColumns(
			dataset.NewStringColumn("Remote Work", []string{"Yes", "No"}),
			dataset.NewNumericColumn("Never", []float64{40, 30}, nil),
			dataset.NewNumericColumn("Rarely", []float64{30, 25}, nil),
			dataset.NewNumericColumn("Sometimes", []float64{20, 30}, nil),
			dataset.NewNumericColumn("Often", []float64{10, 15}, nil),
		))
	}
	return computed(percentDistribution(t, ColRemoteWork, ColWorkInterfere))
}
