package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"mindpulse/internal/analysis"
	"mindpulse/internal/config"
	"mindpulse/internal/dataset"
)

// DataUpdateNotifier receives a notification whenever the survey datasets are
// reloaded. The websocket hub implements it.
type DataUpdateNotifier interface {
	BroadcastDataUpdate(detail interface{})
}

// AnalysisRecorder records executed analysis operations for metrics.
// Implemented by infrastructure.Metrics.
type AnalysisRecorder interface {
	RecordAnalysis(ctx context.Context, operation, source string)
	RecordReload(ctx context.Context)
}

// noopRecorder is used when metrics are disabled
type noopRecorder struct{}

func (noopRecorder) RecordAnalysis(context.Context, string, string) {}
func (noopRecorder) RecordReload(context.Context)                  {}

// AnalysisService owns the loaded survey tables and exposes the analysis
// operations to the transport layer. The tables are replaced wholesale on
// reload behind an RWMutex; the analysis operations themselves are pure, so
// concurrent readers never see partial state.
type AnalysisService struct {
	loader   *dataset.Loader
	analyzer *analysis.Analyzer
	cfg      config.DataConfig
	notifier DataUpdateNotifier
	recorder AnalysisRecorder
	logger   *slog.Logger

	mu       sync.RWMutex
	surveys  *dataset.Surveys
	loadedAt time.Time
}

// NewAnalysisService creates the analysis service. notifier and recorder may
// be nil.
func NewAnalysisService(
	loader *dataset.Loader,
	analyzer *analysis.Analyzer,
	cfg config.DataConfig,
	notifier DataUpdateNotifier,
	recorder AnalysisRecorder,
	logger *slog.Logger,
) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &AnalysisService{
		loader:   loader,
		analyzer: analyzer,
		cfg:      cfg,
		notifier: notifier,
		recorder: recorder,
		logger:   logger.With(slog.String("service", "analysis")),
		surveys:  &dataset.Surveys{MentalHealth: dataset.New(), Developer: dataset.New()},
	}
}

// Reload re-reads the survey datasets and notifies connected dashboards.
func (s *AnalysisService) Reload(ctx context.Context) error {
	surveys, err := s.loader.LoadSurveys(ctx, s.cfg.MentalHealthFile, s.cfg.DeveloperFile)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.surveys = surveys
	s.loadedAt = time.Now()
	s.mu.Unlock()

	s.recorder.RecordReload(ctx)
	s.logger.InfoContext(ctx, "datasets reloaded",
		slog.Int("mental_health_rows", surveys.MentalHealth.NumRows()),
		slog.Int("developer_rows", surveys.Developer.NumRows()),
	)
	if s.notifier != nil {
		s.notifier.BroadcastDataUpdate(map[string]interface{}{
			"action":             "refresh",
			"mental_health_rows": surveys.MentalHealth.NumRows(),
			"developer_rows":     surveys.Developer.NumRows(),
		})
	}
	return nil
}

// LoadedAt returns the time of the last successful reload
func (s *AnalysisService) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// snapshot returns the current tables with the filters applied to the
// mental-health survey.
func (s *AnalysisService) snapshot(filters dataset.Filters) (mentalHealth, developer *dataset.Table) {
	s.mu.RLock()
	surveys := s.surveys
	s.mu.RUnlock()
	return filters.Apply(surveys.MentalHealth), surveys.Developer
}

// Score computes the per-respondent mental health score over the
// mental-health survey.
func (s *AnalysisService) Score(ctx context.Context, filters dataset.Filters, columns []string, positive, negative analysis.ValueMapping) []int {
	mentalHealth, _ := s.snapshot(filters)
	scores := s.analyzer.MentalHealthScore(mentalHealth, columns, positive, negative)
	s.recorder.RecordAnalysis(ctx, "score", string(analysis.SourceComputed))
	return scores
}

// CompareGroups produces per-group descriptive statistics over the
// mental-health survey.
func (s *AnalysisService) CompareGroups(ctx context.Context, filters dataset.Filters, groupCol, valueCol string) analysis.TableResult {
	mentalHealth, _ := s.snapshot(filters)
	result := s.analyzer.CompareGroups(mentalHealth, groupCol, valueCol)
	s.recorder.RecordAnalysis(ctx, "compare_groups", string(result.Source))
	return result
}

// Correlation builds the correlation matrix over the mental-health survey.
func (s *AnalysisService) Correlation(ctx context.Context, filters dataset.Filters, columns []string) analysis.TableResult {
	mentalHealth, _ := s.snapshot(filters)
	result := s.analyzer.Correlation(mentalHealth, columns)
	s.recorder.RecordAnalysis(ctx, "correlation", string(result.Source))
	return result
}

// FieldOutcomes analyzes mental-health outcomes by field of study.
func (s *AnalysisService) FieldOutcomes(ctx context.Context, filters dataset.Filters) analysis.TableResult {
	mentalHealth, developer := s.snapshot(filters)
	result := s.analyzer.FieldOutcomes(mentalHealth, developer)
	s.recorder.RecordAnalysis(ctx, "field_outcomes", string(result.Source))
	return result
}

// RemoteWorkImpact analyzes work interference by remote-work status.
func (s *AnalysisService) RemoteWorkImpact(ctx context.Context, filters dataset.Filters) analysis.TableResult {
	mentalHealth, _ := s.snapshot(filters)
	result := s.analyzer.RemoteWorkImpact(mentalHealth)
	s.recorder.RecordAnalysis(ctx, "remote_work", string(result.Source))
	return result
}

// CountryIndex builds the per-country composite index.
func (s *AnalysisService) CountryIndex(ctx context.Context, filters dataset.Filters) analysis.TableResult {
	mentalHealth, _ := s.snapshot(filters)
	result := s.analyzer.CountryIndex(mentalHealth)
	s.recorder.RecordAnalysis(ctx, "country_index", string(result.Source))
	return result
}

// Insights returns the headline insight sentences for the overview page.
func (s *AnalysisService) Insights(ctx context.Context, filters dataset.Filters) []string {
	mentalHealth, developer := s.snapshot(filters)
	s.recorder.RecordAnalysis(ctx, "insights", string(analysis.SourceComputed))
	return s.analyzer.SurveyInsights(mentalHealth, developer)
}

// FilterOptions enumerates the selectable filter values for the dashboard.
func (s *AnalysisService) FilterOptions(ctx context.Context) []dataset.Options {
	s.mu.RLock()
	surveys := s.surveys
	s.mu.RUnlock()
	return dataset.FilterOptions(surveys.MentalHealth, surveys.Developer)
}
