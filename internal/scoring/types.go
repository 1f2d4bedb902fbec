// Package scoring implements the deterministic rubric evaluator: it scores
// a body of portfolio evidence against a target skill and level and issues
// a pass/fail verdict. All numeric weights and thresholds come from the
// injected Rubric; the only non-structural judgement (reflection quality of
// free text) is delegated to a judge.Judge.
package scoring

import "time"

// PortfolioEntry is one dated, evidence-bearing record. Entries are owned
// by the assessment subject and immutable once submitted; the engine holds
// them only for the duration of a scoring call.
type PortfolioEntry struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Text  string    `json:"text"`
	Date  time.Time `json:"date"`

	// Component is the rubric component this entry is tagged to.
	Component string `json:"component"`

	// Characteristics are the generic-responsibility checklist items the
	// entry evidences. An item may appear on many entries; each occurrence
	// counts as one instance.
	Characteristics []string `json:"characteristics"`

	// SupervisorVerified is set by the external review workflow.
	SupervisorVerified bool `json:"supervisor_verified"`
}

// SupervisorComment is an independent human corroboration attached to one
// or more entries. The two attestations are produced externally and
// consumed as opaque facts; the engine never re-derives them.
type SupervisorComment struct {
	ID       string   `json:"id"`
	EntryIDs []string `json:"entry_ids"`
	Text     string   `json:"text"`

	AccuracyConfirmed  bool `json:"accuracy_confirmed"`
	ContextEvaluated   bool `json:"context_evaluated"`
}

// Request is one scoring request: a subject's portfolio assessed against a
// (skill, level) target.
type Request struct {
	SubjectID   string              `json:"subject_id"`
	AssessorID  string              `json:"assessor_id"`
	SkillCode   string              `json:"skill_code"`
	TargetLevel int                 `json:"target_level"`
	Entries     []PortfolioEntry    `json:"entries"`
	Comments    []SupervisorComment `json:"comments"`

	// Components is the skill-specific rubric component set for this
	// assessment. When set it replaces the rubric's own component list.
	Components []string `json:"components,omitempty"`
}

// Verdict is the terminal outcome of a scoring call. All three are
// terminal; no further transitions exist.
type Verdict string

const (
	VerdictCompetency  Verdict = "competency"
	VerdictProficiency Verdict = "proficiency"
	VerdictDeveloping  Verdict = "developing"
)

// CoverageMetrics are the structural coverage signals over the rubric
// components.
type CoverageMetrics struct {
	// CoveragePct is the percentage of components with at least one
	// tagged entry. 100 iff every component is covered.
	CoveragePct float64 `json:"coverage_pct"`

	// MultiEntryPct is the percentage of components with at least two
	// entries, each corroborated by a comment with AccuracyConfirmed.
	MultiEntryPct float64 `json:"multi_entry_pct"`

	// VerifiedPct is the percentage of entries with SupervisorVerified.
	VerifiedPct float64 `json:"verified_pct"`

	Covered   []string `json:"covered"`
	Uncovered []string `json:"uncovered"`
}

// ResponsibilityCheck is the outcome of the generic-responsibility gate.
// It gates the final pass independently of the numeric score.
type ResponsibilityCheck struct {
	// CoreCount is the number of distinct checklist items evidenced at
	// least once across all entries.
	CoreCount int `json:"core_count"`

	// TotalInstances counts every checklist occurrence across all entries.
	TotalInstances int `json:"total_instances"`

	// CoreInstances counts occurrences restricted to the core subset.
	CoreInstances int `json:"core_instances"`

	Passed bool `json:"passed"`
}

// AssessmentResult is the derived output of one scoring call for a
// (subject, skill, level) triple. It is computed fresh on every call and
// never cached by the engine; identical inputs yield an identical result.
type AssessmentResult struct {
	SubjectID   string `json:"subject_id"`
	AssessorID  string `json:"assessor_id"`
	SkillCode   string `json:"skill_code"`
	TargetLevel int    `json:"target_level"`

	Coverage       CoverageMetrics     `json:"coverage"`
	Technical      float64             `json:"technical"`  // 0–64
	Reflection     float64             `json:"reflection"` // 0–36
	Criteria       map[string]float64  `json:"criteria"`   // raw judge signals, 0–1
	Responsibility ResponsibilityCheck `json:"responsibility"`

	Total      float64 `json:"total"` // 0–100
	Verdict    Verdict `json:"verdict"`
	PassStatus bool    `json:"pass_status"`

	JudgeName       string   `json:"judge_name"`
	Recommendations []string `json:"recommendations"`
}
