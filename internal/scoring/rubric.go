package scoring

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Fixed point splits of the 0–100 total. The split itself is part of the
// scoring method; the weights and thresholds inside each component are not.
const (
	TechnicalMaxPoints  = 64.0
	ReflectionMaxPoints = 36.0
)

//go:embed rubric.yaml
var defaultRubricYAML []byte

// Weights blend the three mandatory technical signals. They must sum to 1.
type Weights struct {
	Coverage   float64 `yaml:"coverage" json:"coverage"`
	MultiEntry float64 `yaml:"multi_entry" json:"multi_entry"`
	Verified   float64 `yaml:"verified" json:"verified"`
}

// VerdictThresholds are the total-score boundaries, compared with >=.
type VerdictThresholds struct {
	Competency  float64 `yaml:"competency" json:"competency"`
	Proficiency float64 `yaml:"proficiency" json:"proficiency"`
}

// ChecklistItem is one generic-responsibility characteristic.
type ChecklistItem struct {
	ID   string `yaml:"id" json:"id"`
	Core bool   `yaml:"core,omitempty" json:"core"`
}

// ResponsibilityRubric parameterizes the generic-responsibility gate.
type ResponsibilityRubric struct {
	MinDistinct      int             `yaml:"min_distinct" json:"min_distinct"`
	MinInstances     int             `yaml:"min_instances" json:"min_instances"`
	MinCoreInstances int             `yaml:"min_core_instances" json:"min_core_instances"`
	Checklist        []ChecklistItem `yaml:"checklist" json:"checklist"`
}

// AdviceThresholds drive recommendation generation. Missing a threshold
// adds the corresponding advisory; it never changes the verdict.
type AdviceThresholds struct {
	MinCoveragePct     float64 `yaml:"min_coverage_pct" json:"min_coverage_pct"`
	MinMultiEntryPct   float64 `yaml:"min_multi_entry_pct" json:"min_multi_entry_pct"`
	MinVerifiedPct     float64 `yaml:"min_verified_pct" json:"min_verified_pct"`
	MinCriterionSignal float64 `yaml:"min_criterion_signal" json:"min_criterion_signal"`
}

// Rubric is the full externally supplied scoring configuration. The engine
// never hard-codes these values; callers load the defaults and override as
// the authoritative rubric source dictates.
type Rubric struct {
	// Components is the skill-specific component identifier set the
	// portfolio is scored against. Always supplied per assessment.
	Components []string `yaml:"components" json:"components"`

	Weights        Weights              `yaml:"weights" json:"weights"`
	Verdict        VerdictThresholds    `yaml:"verdict" json:"verdict"`
	Responsibility ResponsibilityRubric `yaml:"responsibility" json:"responsibility"`
	Advice         AdviceThresholds     `yaml:"advice" json:"advice"`
}

// DefaultRubric returns the embedded default parameters. Components is
// empty and must be filled in per assessment.
func DefaultRubric() Rubric {
	var r Rubric
	// The embedded default is part of the build; failing to parse it is a
	// programming error, not a runtime condition.
	if err := yaml.Unmarshal(defaultRubricYAML, &r); err != nil {
		panic(fmt.Sprintf("parse embedded rubric.yaml: %v", err))
	}
	return r
}

// LoadRubric reads rubric overrides from a YAML file on top of the
// defaults.
func LoadRubric(path string) (Rubric, error) {
	r := DefaultRubric()
	data, err := os.ReadFile(path)
	if err != nil {
		return Rubric{}, fmt.Errorf("read rubric: %w", err)
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rubric{}, fmt.Errorf("parse rubric %s: %w", path, err)
	}
	return r, nil
}

// Validate checks the rubric parameters are usable for a scoring call.
func (r Rubric) Validate() error {
	if len(r.Components) == 0 {
		return fmt.Errorf("rubric has no components for the target skill")
	}
	seen := make(map[string]bool, len(r.Components))
	for _, c := range r.Components {
		if c == "" {
			return fmt.Errorf("rubric component with empty identifier")
		}
		if seen[c] {
			return fmt.Errorf("duplicate rubric component %q", c)
		}
		seen[c] = true
	}

	sum := r.Weights.Coverage + r.Weights.MultiEntry + r.Weights.Verified
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("technical weights must sum to 1.0, got %g", sum)
	}
	for name, w := range map[string]float64{
		"coverage":    r.Weights.Coverage,
		"multi_entry": r.Weights.MultiEntry,
		"verified":    r.Weights.Verified,
	} {
		if w < 0 {
			return fmt.Errorf("technical weight %s must be >= 0, got %g", name, w)
		}
	}

	if r.Verdict.Proficiency <= 0 || r.Verdict.Competency <= r.Verdict.Proficiency {
		return fmt.Errorf("verdict thresholds must satisfy 0 < proficiency < competency, got %g/%g",
			r.Verdict.Proficiency, r.Verdict.Competency)
	}

	if len(r.Responsibility.Checklist) == 0 {
		return fmt.Errorf("responsibility checklist is empty")
	}
	ids := make(map[string]bool, len(r.Responsibility.Checklist))
	coreItems := 0
	for _, item := range r.Responsibility.Checklist {
		if item.ID == "" {
			return fmt.Errorf("responsibility checklist item with empty id")
		}
		if ids[item.ID] {
			return fmt.Errorf("duplicate responsibility checklist item %q", item.ID)
		}
		ids[item.ID] = true
		if item.Core {
			coreItems++
		}
	}
	if r.Responsibility.MinDistinct > len(r.Responsibility.Checklist) {
		return fmt.Errorf("min_distinct %d exceeds checklist size %d",
			r.Responsibility.MinDistinct, len(r.Responsibility.Checklist))
	}
	if r.Responsibility.MinCoreInstances > 0 && coreItems == 0 {
		return fmt.Errorf("min_core_instances set but no checklist item is marked core")
	}

	return nil
}
