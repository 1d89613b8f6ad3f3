package analysis

import (
	"log/slog"
	"math/rand"
	"time"

	"mindpulse/internal/dataset"
)

// Source tags how a result table was produced. Missing required columns are
// not errors in this package; callers distinguish real output from
// placeholders through this tag.
type Source string

const (
	// SourceComputed means the table was derived from the input data
	SourceComputed Source = "computed"
	// SourceFallback means required columns were missing and a fixed or
	// synthetic placeholder table was returned instead
	SourceFallback Source = "fallback"
	// SourceEmpty means required columns were missing and the contract calls
	// for a zero-row table
	SourceEmpty Source = "empty"
)

// TableResult is the tagged outcome of a table-producing operation.
type TableResult struct {
	Table  *dataset.Table `json:"table"`
	Source Source         `json:"source"`
}

func computed(t *dataset.Table) TableResult { return TableResult{Table: t, Source: SourceComputed} }
func fallback(t *dataset.Table) TableResult { return TableResult{Table: t, Source: SourceFallback} }
func empty() TableResult                    { return TableResult{Table: dataset.New(), Source: SourceEmpty} }

// ValueMapping maps a column name to the set of values that count for scoring
// in that column.
type ValueMapping map[string][]string

func (m ValueMapping) contains(column, value string) bool {
	for _, v := range m[column] {
		if v == value {
			return true
		}
	}
	return false
}

// Analyzer runs the survey analysis operations. All operations are pure with
// respect to their table inputs and safe for concurrent use; the analyzer
// only carries a logger and the random source used by synthetic fallbacks.
type Analyzer struct {
	logger *slog.Logger
	rng    *rand.Rand
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithRand sets the random source used for synthetic fallback values. Tests
// substitute a seeded source here for deterministic output.
func WithRand(rng *rand.Rand) Option {
	return func(a *Analyzer) { a.rng = rng }
}

// New creates an analyzer with the given logger and options.
func New(logger *slog.Logger, opts ...Option) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Analyzer{
		logger: logger.With(slog.String("component", "analysis")),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// uniform draws from [lo, hi)
func (a *Analyzer) uniform(lo, hi float64) float64 {
	return lo + a.rng.Float64()*(hi-lo)
}
