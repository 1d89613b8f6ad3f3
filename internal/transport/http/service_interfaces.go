package http

import (
	"context"

	"mindpulse/internal/analysis"
	"mindpulse/internal/dataset"
)

// AnalysisService is the surface the analysis handlers need. Defined here so
// handler tests can substitute a mock.
type AnalysisService interface {
	Score(ctx context.Context, filters dataset.Filters, columns []string, positive, negative analysis.ValueMapping) []int
	CompareGroups(ctx context.Context, filters dataset.Filters, groupCol, valueCol string) analysis.TableResult
	Correlation(ctx context.Context, filters dataset.Filters, columns []string) analysis.TableResult
	FieldOutcomes(ctx context.Context, filters dataset.Filters) analysis.TableResult
	RemoteWorkImpact(ctx context.Context, filters dataset.Filters) analysis.TableResult
	CountryIndex(ctx context.Context, filters dataset.Filters) analysis.TableResult
	Insights(ctx context.Context, filters dataset.Filters) []string
	FilterOptions(ctx context.Context) []dataset.Options
	Reload(ctx context.Context) error
}
