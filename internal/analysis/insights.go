package analysis

import (
	"fmt"
	"sort"

	"mindpulse/internal/dataset"
)

// correlation strength cutoffs for trend wording
const (
	strongTrend   = 0.7
	moderateTrend = 0.3
)

// TrendInsights summarizes the relationship between two columns as human
// readable sentences for the dashboard's insight panel. Missing columns yield
// a single placeholder line rather than an error.
func (a *Analyzer) TrendInsights(t *dataset.Table, xCol, yCol string) []string {
	x, okX := t.Column(xCol)
	y, okY := t.Column(yCol)
	if !okX || !okY {
		return []string{"Insufficient data to generate insights."}
	}

	var insights []string
	if y.Kind() == dataset.KindNumeric {
		values := numericValues(y)
		if len(values) > 0 {
			sorted := make([]float64, len(values))
			copy(sorted, values)
			sort.Float64s(sorted)
			insights = append(insights,
				fmt.Sprintf("The average %s is %.2f.", yCol, mean(values)),
				fmt.Sprintf("The highest %s is %.2f, while the lowest is %.2f.", yCol, sorted[len(sorted)-1], sorted[0]),
			)
		}
	}

	if x.Kind() == dataset.KindNumeric && y.Kind() == dataset.KindNumeric {
		if r, ok := pearson(columnSeries(x), columnSeries(y)); ok {
			switch {
			case r > strongTrend:
				insights = append(insights, fmt.Sprintf("There is a strong positive trend between %s and %s.", xCol, yCol))
			case r > moderateTrend:
				insights = append(insights, fmt.Sprintf("There is a moderate positive trend between %s and %s.", xCol, yCol))
			case r < -strongTrend:
				insights = append(insights, fmt.Sprintf("There is a strong negative trend between %s and %s.", xCol, yCol))
			case r < -moderateTrend:
				insights = append(insights, fmt.Sprintf("There is a moderate negative trend between %s and %s.", xCol, yCol))
			default:
				insights = append(insights, fmt.Sprintf("There is no clear linear trend between %s and %s.", xCol, yCol))
			}
		}
	}

	if len(insights) == 0 {
		return []string{"Insufficient data to generate insights."}
	}
	return insights
}

// GroupInsights names the groups with the highest and lowest average of a
// numeric value column.
func (a *Analyzer) GroupInsights(t *dataset.Table, groupCol, valueCol string) []string {
	result := a.CompareGroups(t, groupCol, valueCol)
	if result.Source != SourceComputed || result.Table.NumRows() == 0 {
		return []string{"Insufficient data to generate comparison insights."}
	}

	groups, _ := result.Table.Column(groupCol)
	means, _ := result.Table.Column("Mean")
	topRow, bottomRow := 0, 0
	topMean, bottomMean := 0.0, 0.0
	for row := 0; row < result.Table.NumRows(); row++ {
		m, ok := means.Float(row)
		if !ok {
			continue
		}
		if row == 0 || m > topMean {
			topRow, topMean = row, m
		}
		if row == 0 || m < bottomMean {
			bottomRow, bottomMean = row, m
		}
	}

	insights := []string{
		fmt.Sprintf("%s has the highest average %s at %.2f.", groups.Value(topRow), valueCol, topMean),
		fmt.Sprintf("%s has the lowest average %s at %.2f.", groups.Value(bottomRow), valueCol, bottomMean),
	}
	if bottomMean != 0 {
		diff := (topMean - bottomMean) / bottomMean * 100
		insights = append(insights, fmt.Sprintf("The difference between the highest and lowest group is %.1f%%.", diff))
	}
	return insights
}

// SurveyInsights generates the headline facts for the dashboard's overview
// page. Each fact is skipped, not errored, when its columns are absent.
func (a *Analyzer) SurveyInsights(mentalHealth, developer *dataset.Table) []string {
	var insights []string

	if col, ok := mentalHealth.Column(ColTreatment); ok {
		pct := percentMatching(mentalHealth, ColTreatment, allRows(col.Len()), "Yes")
		insights = append(insights, fmt.Sprintf("%.1f%% of tech professionals have sought treatment for mental health issues.", pct))
	}

	if col, ok := mentalHealth.Column(ColWorkInterfere); ok {
		pct := percentMatching(mentalHealth, ColWorkInterfere, allRows(col.Len()), "Often", "Sometimes")
		insights = append(insights, fmt.Sprintf("%.1f%% report that mental health issues interfere with work sometimes or often.", pct))
	}

	if mentalHealth.HasColumn(ColRemoteWork) && mentalHealth.HasColumn(ColWorkInterfere) {
		remote := mentalHealth.Filter(rowEquals(mentalHealth, ColRemoteWork, "Yes"))
		office := mentalHealth.Filter(rowEquals(mentalHealth, ColRemoteWork, "No"))
		if remote.NumRows() > 0 && office.NumRows() > 0 {
			remotePct := percentMatching(remote, ColWorkInterfere, allRows(remote.NumRows()), "Often", "Sometimes")
			officePct := percentMatching(office, ColWorkInterfere, allRows(office.NumRows()), "Often", "Sometimes")
			if remotePct < officePct {
				insights = append(insights, fmt.Sprintf("Remote workers report %.1f%% less work interference from mental health issues compared to non-remote workers.", officePct-remotePct))
			} else {
				insights = append(insights, fmt.Sprintf("Remote workers report %.1f%% more work interference from mental health issues compared to non-remote workers.", remotePct-officePct))
			}
		}
	}

	if developer.HasColumn(ColMentalHealth) && developer.HasColumn("DevType") {
		result := percentDistribution(developer, "DevType", ColMentalHealth)
		if best, worst, ok := extremePoorRates(result); ok {
			insights = append(insights,
				fmt.Sprintf("%ss report the lowest rates of poor mental health.", best),
				fmt.Sprintf("%ss report the highest rates of poor mental health.", worst),
			)
		}
	}

	if len(insights) == 0 {
		return []string{"No insights available."}
	}
	return insights
}

// extremePoorRates finds the groups with the lowest and highest combined
// share of "Poor" and "Fair" ratings in a percentage distribution table.
func extremePoorRates(t *dataset.Table) (best, worst string, ok bool) {
	if t.NumRows() == 0 {
		return "", "", false
	}
	groups, _ := t.Column(t.ColumnNames()[0])
	poorRate := func(row int) float64 {
		var rate float64
		for _, name := range []string{"Poor", "Fair"} {
			if col, exists := t.Column(name); exists {
				if v, present := col.Float(row); present {
					rate += v
				}
			}
		}
		return rate
	}
	bestRow, worstRow := 0, 0
	for row := 1; row < t.NumRows(); row++ {
		if poorRate(row) < poorRate(bestRow) {
			bestRow = row
		}
		if poorRate(row) > poorRate(worstRow) {
			worstRow = row
		}
	}
	return groups.Value(bestRow), groups.Value(worstRow), true
}

func numericValues(c *dataset.Column) []float64 {
	var out []float64
	for i := 0; i < c.Len(); i++ {
		if v, ok := c.Float(i); ok {
			out = append(out, v)
		}
	}
	return out
}

func columnSeries(c *dataset.Column) series {
	s := series{name: c.Name(), values: make([]float64, c.Len()), null: make([]bool, c.Len())}
	for i := 0; i < c.Len(); i++ {
		if v, ok := c.Float(i); ok {
			s.values[i] = v
		} else {
			s.null[i] = true
		}
	}
	return s
}

func allRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func rowEquals(t *dataset.Table, column, value string) func(int) bool {
	col, _ := t.Column(column)
	return func(row int) bool {
		return !col.IsNull(row) && col.Value(row) == value
	}
}
