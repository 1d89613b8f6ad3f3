package analysis

import (
	"sort"

	"mindpulse/internal/dataset"
)

// columns consumed by the country index
const (
	ColCountry     = "Country"
	ColTreatment   = "treatment"
	ColConsequence = "mental_health_consequence"
	ColBenefits    = "benefits"
	ColCareOptions = "care_options"
)

// output column names of the country index table
const (
	colMentalHealthIndex = "Mental Health Index"
	colSupportScore      = "Support Score"
	colAwarenessScore    = "Awareness Score"
)

// value ranges for synthetic fallback scores, percent scale
const (
	fallbackIndexLo = 30
	fallbackIndexHi = 80
	fallbackScoreLo = 20
	fallbackScoreHi = 90
)

// fallbackCountries are the ten rows returned when required columns are
// missing, so the map view always has plausible data.
var fallbackCountries = []string{
	"United States", "United Kingdom", "Canada", "Germany", "Australia",
	"India", "France", "Netherlands", "Brazil", "Sweden",
}

// CountryIndex builds a per-country composite mental health index. It
// requires the Country, treatment, work_interfere and
// mental_health_consequence columns; when any is missing it returns a
// synthetic table of ten fixed countries with randomly drawn scores (not
// reproducible, by contract).
//
// With real data, per country:
//
//	treatment rate       = % of respondents with treatment == "Yes"
//	interference penalty = % with work_interfere in {"Often", "Sometimes"}
//	consequence penalty  = % with mental_health_consequence == "Yes"
//	mental health index  = clamp(rate - interference - consequence, 0, 100)
//
// The support and awareness scores are the per-country percentages of
// benefits == "Yes" and care_options == "Yes" when both columns exist,
// otherwise random values in a fixed range from the injected source.
func (a *Analyzer) CountryIndex(t *dataset.Table) TableResult {
	required := []string{ColCountry, ColTreatment, ColWorkInterfere, ColConsequence}
	for _, name := range required {
		if !t.HasColumn(name) {
			return fallback(a.syntheticCountryIndex())
		}
	}

	country, _ := t.Column(ColCountry)
	rowsByCountry := make(map[string][]int)
	for row := 0; row < t.NumRows(); row++ {
		if country.IsNull(row) {
			continue
		}
		key := country.Value(row)
		rowsByCountry[key] = append(rowsByCountry[key], row)
	}

	countries := make([]string, 0, len(rowsByCountry))
	for c := range rowsByCountry {
		countries = append(countries, c)
	}
	sort.Strings(countries)

	hasSupport := t.HasColumn(ColBenefits) && t.HasColumn(ColCareOptions)

	indices := make([]float64, len(countries))
	support := make([]float64, len(countries))
	awareness := make([]float64, len(countries))
	for i, name := range countries {
		rows := rowsByCountry[name]
		rate := percentMatching(t, ColTreatment, rows, "Yes")
		interference := percentMatching(t, ColWorkInterfere, rows, "Often", "Sometimes")
		consequence := percentMatching(t, ColConsequence, rows, "Yes")
		indices[i] = clamp(rate-interference-consequence, 0, 100)
		if hasSupport {
			support[i] = percentMatching(t, ColBenefits, rows, "Yes")
			awareness[i] = percentMatching(t, ColCareOptions, rows, "Yes")
		} else {
			support[i] = a.uniform(fallbackScoreLo, fallbackScoreHi)
			awareness[i] = a.uniform(fallbackScoreLo, fallbackScoreHi)
		}
	}

	return computed(dataset.MustFromColumns(
		dataset.NewStringColumn(ColCountry, countries),
		dataset.NewNumericColumn(colMentalHealthIndex, indices, nil),
		dataset.NewNumericColumn(colSupportScore, support, nil),
		dataset.NewNumericColumn(colAwarenessScore, awareness, nil),
	))
}

// syntheticCountryIndex draws the ten-row placeholder table
func (a *Analyzer) syntheticCountryIndex() *dataset.Table {
	n := len(fallbackCountries)
	indices := make([]float64, n)
	support := make([]float64, n)
	awareness := make([]float64, n)
	for i := range fallbackCountries {
		indices[i] = a.uniform(fallbackIndexLo, fallbackIndexHi)
		support[i] = a.uniform(fallbackScoreLo, fallbackScoreHi)
		awareness[i] = a.uniform(fallbackScoreLo, fallbackScoreHi)
	}
	return dataset.MustFromColumns(
		dataset.NewStringColumn(ColCountry, fallbackCountries),
		dataset.NewNumericColumn(colMentalHealthIndex, indices, nil),
		dataset.NewNumericColumn(colSupportScore, support, nil),
		dataset.NewNumericColumn(colAwarenessScore, awareness, nil),
	)
}

// percentMatching returns the percentage of the given rows whose value in the
// column is one of the wanted values. Null rows count toward the denominator,
// matching a share-of-all-respondents reading.
func percentMatching(t *dataset.Table, column string, rows []int, wanted ...string) float64 {
	if len(rows) == 0 {
		return 0
	}
	col, _ := t.Column(column)
	matches := 0
	for _, row := range rows {
		if col.IsNull(row) {
			continue
		}
		v := col.Value(row)
		for _, w := range wanted {
			if v == w {
				matches++
				break
			}
		}
	}
	return float64(matches) / float64(len(rows)) * 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
