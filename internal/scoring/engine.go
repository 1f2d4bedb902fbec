package scoring

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/mhartley/compass/internal/graph"
	"github.com/mhartley/compass/internal/judge"
	"github.com/mhartley/compass/internal/logger"
)

// Config holds engine-level settings that are not rubric parameters.
type Config struct {
	// JudgeTimeout bounds one reflection evaluation, including the
	// engine's single internal retry.
	JudgeTimeout time.Duration
}

// DefaultConfig returns the standard engine settings.
func DefaultConfig() Config {
	return Config{JudgeTimeout: 30 * time.Second}
}

// Engine scores portfolios. It is stateless apart from its collaborators
// and safe for concurrent use; every call is a pure function of the
// snapshot, the request, and the rubric.
type Engine struct {
	judge judge.Judge
	cfg   Config
	log   *logger.Logger
}

// NewEngine creates a scoring engine with the given reflection judge.
func NewEngine(j judge.Judge, cfg Config, log *logger.Logger) *Engine {
	return &Engine{judge: j, cfg: cfg, log: log}
}

// Score evaluates one portfolio against the rubric at the target skill and
// level. All input validation happens before any computation; no partial
// result is ever returned.
func (e *Engine) Score(ctx context.Context, snap *graph.Snapshot, req Request, rubric Rubric) (*AssessmentResult, error) {
	skill, err := snap.Skill(req.SkillCode)
	if err != nil {
		return nil, &ErrUnknownSkill{SkillCode: req.SkillCode}
	}
	if !skill.DefinedAt(req.TargetLevel) {
		return nil, &ErrUnknownLevel{
			SkillCode:       req.SkillCode,
			Level:           req.TargetLevel,
			AvailableLevels: skill.AvailableLevels,
		}
	}
	if len(req.Entries) == 0 {
		return nil, &ErrEmptyEvidence{SubjectID: req.SubjectID}
	}

	entryIDs := make(map[string]bool, len(req.Entries))
	for _, entry := range req.Entries {
		entryIDs[entry.ID] = true
	}
	for _, c := range req.Comments {
		if !referencesAny(c, entryIDs) {
			return nil, &ErrOrphanComment{CommentID: c.ID, EntryIDs: c.EntryIDs}
		}
	}

	if err := rubric.Validate(); err != nil {
		return nil, err
	}

	coverage := computeCoverage(rubric, req.Entries, req.Comments)

	technical := TechnicalMaxPoints * (rubric.Weights.Coverage*coverage.CoveragePct/100 +
		rubric.Weights.MultiEntry*coverage.MultiEntryPct/100 +
		rubric.Weights.Verified*coverage.VerifiedPct/100)

	signals, err := e.evaluateReflection(ctx, req.Entries)
	if err != nil {
		return nil, err
	}

	// Each criterion carries an equal fixed share of the reflection points.
	share := ReflectionMaxPoints / float64(len(judge.AllCriteria()))
	reflection := 0.0
	criteria := make(map[string]float64, len(signals))
	for _, c := range judge.AllCriteria() {
		reflection += share * signals[c]
		criteria[string(c)] = signals[c]
	}

	responsibility := computeResponsibility(rubric.Responsibility, req.Entries)

	total := technical + reflection
	verdict := verdictFor(total, rubric.Verdict)

	result := &AssessmentResult{
		SubjectID:       req.SubjectID,
		AssessorID:      req.AssessorID,
		SkillCode:       req.SkillCode,
		TargetLevel:     req.TargetLevel,
		Coverage:        coverage,
		Technical:       technical,
		Reflection:      reflection,
		Criteria:        criteria,
		Responsibility:  responsibility,
		Total:           total,
		Verdict:         verdict,
		PassStatus:      verdict != VerdictDeveloping && responsibility.Passed,
		JudgeName:       e.judge.Name(),
		Recommendations: recommend(rubric, coverage, signals, responsibility),
	}

	e.log.Info("portfolio scored",
		"subject", req.SubjectID,
		"skill", req.SkillCode,
		"level", req.TargetLevel,
		"total", total,
		"verdict", verdict,
		"pass", result.PassStatus,
	)
	return result, nil
}

// evaluateReflection runs the judge over the combined portfolio text with
// a timeout. A failed evaluation is retried exactly once; after that the
// error surfaces as ErrScoringUnavailable. Callers own any further retries.
func (e *Engine) evaluateReflection(ctx context.Context, entries []PortfolioEntry) (map[judge.Criterion]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.JudgeTimeout)
	defer cancel()

	text := combineText(entries)
	criteria := judge.AllCriteria()

	signals, err := e.judge.Evaluate(ctx, text, criteria)
	if err != nil {
		e.log.Warn("reflection judge failed, retrying once", "judge", e.judge.Name(), "error", err)
		signals, err = e.judge.Evaluate(ctx, text, criteria)
	}
	if err != nil {
		return nil, &ErrScoringUnavailable{JudgeName: e.judge.Name(), Err: err}
	}
	return signals, nil
}

// combineText joins entry text in a stable order: by date, then ID.
func combineText(entries []PortfolioEntry) string {
	sorted := make([]PortfolioEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].ID < sorted[j].ID
	})

	var b strings.Builder
	for i, e := range sorted {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if e.Title != "" {
			b.WriteString(e.Title)
			b.WriteString("\n")
		}
		b.WriteString(e.Text)
	}
	return b.String()
}

func referencesAny(c SupervisorComment, entryIDs map[string]bool) bool {
	for _, id := range c.EntryIDs {
		if entryIDs[id] {
			return true
		}
	}
	return false
}

// verdictFor maps a total score onto a terminal verdict. Boundaries are
// inclusive: a total exactly at a threshold earns the higher band.
func verdictFor(total float64, t VerdictThresholds) Verdict {
	switch {
	case total >= t.Competency:
		return VerdictCompetency
	case total >= t.Proficiency:
		return VerdictProficiency
	default:
		return VerdictDeveloping
	}
}
