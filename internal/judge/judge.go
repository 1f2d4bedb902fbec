// Package judge evaluates portfolio free text against the reflection
// criteria of the scoring rubric. The qualitative judgement is the one part
// of scoring where behavior may vary, so it sits behind a capability
// interface: the deterministic rubric arithmetic in the scoring engine is
// testable with a stub, and deployments choose between the rule-based judge
// and a model-backed one.
package judge

import "context"

// Criterion is one qualitative reflection criterion.
type Criterion string

const (
	// CriterionTone: the writing maintains a professional register.
	CriterionTone Criterion = "professional-tone"
	// CriterionDevelopmentAreas: the author explicitly identifies areas
	// they need to develop.
	CriterionDevelopmentAreas Criterion = "development-areas"
	// CriterionAccountability: the author takes ownership of outcomes
	// rather than attributing them elsewhere.
	CriterionAccountability Criterion = "accountability"
	// CriterionBeforeAfter: the text evidences a before/after change in
	// capability or practice.
	CriterionBeforeAfter Criterion = "before-after"
)

// AllCriteria returns the reflection criteria in canonical order.
func AllCriteria() []Criterion {
	return []Criterion{
		CriterionTone,
		CriterionDevelopmentAreas,
		CriterionAccountability,
		CriterionBeforeAfter,
	}
}

// Judge scores evidence text against reflection criteria. Each returned
// signal is in [0, 1]. Implementations must return a signal for every
// requested criterion or an error; partial maps are not allowed.
type Judge interface {
	Name() string
	Evaluate(ctx context.Context, text string, criteria []Criterion) (map[Criterion]float64, error)
}

// clamp bounds a signal to [0, 1].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
