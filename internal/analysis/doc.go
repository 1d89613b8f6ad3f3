// Package analysis implements the survey analysis operations behind the
// MindPulse dashboard.
//
// Every operation is a stateless, pure transformation over in-memory tables:
// inputs are never mutated and each call returns a newly built table or score
// slice. The only recognized failure mode is a missing required column, and
// the policy is uniformly fail-soft: operations return a zero-row table or a
// fixed placeholder table tagged through TableResult.Source instead of an
// error, so the presentation layer always has something to render.
//
// # Operations
//
//   - score.go: per-respondent mental health score from value mappings
//   - groups.go: descriptive statistics per group of a numeric column
//   - correlation.go: Pearson correlation matrix with one-hot expansion
//   - fields.go: mental-health outcome distribution by field of study
//   - remote.go: work-interference distribution by remote-work status
//   - country.go: per-country composite mental health index
//   - insights.go: human-readable insight sentences for the dashboard
//
// The synthetic fallbacks of the country index draw from the analyzer's
// random source; tests inject a seeded source through WithRand.
package analysis
