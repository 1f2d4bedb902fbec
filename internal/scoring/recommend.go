package scoring

import (
	"fmt"

	"github.com/mhartley/compass/internal/judge"
)

// criterionAdvice maps each reflection criterion to its advisory string.
var criterionAdvice = map[judge.Criterion]string{
	judge.CriterionTone:             "revise reflective writing to maintain a professional register",
	judge.CriterionDevelopmentAreas: "explicitly identify areas for further development in reflections",
	judge.CriterionAccountability:   "add statements taking ownership of outcomes and decisions",
	judge.CriterionBeforeAfter:      "evidence before/after change in capability or practice",
}

// recommend derives advisory strings from the sub-thresholds the portfolio
// missed. The mapping is fixed: same misses, same advice, same order.
func recommend(rubric Rubric, coverage CoverageMetrics, signals map[judge.Criterion]float64, responsibility ResponsibilityCheck) []string {
	var recs []string

	if coverage.CoveragePct < rubric.Advice.MinCoveragePct {
		recs = append(recs, fmt.Sprintf("increase component coverage: %d of %d components have evidence",
			len(coverage.Covered), len(coverage.Covered)+len(coverage.Uncovered)))
	}
	if coverage.MultiEntryPct < rubric.Advice.MinMultiEntryPct {
		recs = append(recs, "obtain additional corroborated entries: most components need at least two accuracy-confirmed pieces of evidence")
	}
	if coverage.VerifiedPct < rubric.Advice.MinVerifiedPct {
		recs = append(recs, "obtain additional supervisor verification for submitted entries")
	}

	for _, c := range judge.AllCriteria() {
		if signals[c] < rubric.Advice.MinCriterionSignal {
			recs = append(recs, criterionAdvice[c])
		}
	}

	if responsibility.CoreCount < rubric.Responsibility.MinDistinct {
		recs = append(recs, fmt.Sprintf("evidence more distinct responsibility characteristics: %d of %d required",
			responsibility.CoreCount, rubric.Responsibility.MinDistinct))
	}
	if responsibility.TotalInstances < rubric.Responsibility.MinInstances {
		recs = append(recs, fmt.Sprintf("evidence responsibility characteristics more often: %d of %d instances required",
			responsibility.TotalInstances, rubric.Responsibility.MinInstances))
	}
	if responsibility.CoreInstances < rubric.Responsibility.MinCoreInstances {
		recs = append(recs, fmt.Sprintf("strengthen core responsibility evidence: %d of %d core instances required",
			responsibility.CoreInstances, rubric.Responsibility.MinCoreInstances))
	}

	return recs
}
