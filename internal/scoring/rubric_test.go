package scoring

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRubric_Parameters(t *testing.T) {
	r := DefaultRubric()

	if r.Weights.Coverage != 0.5 || r.Weights.MultiEntry != 0.3 || r.Weights.Verified != 0.2 {
		t.Errorf("got weights %+v, want 0.5/0.3/0.2", r.Weights)
	}
	if r.Verdict.Competency != 85.0 || r.Verdict.Proficiency != 65.0 {
		t.Errorf("got thresholds %+v, want 85/65", r.Verdict)
	}
	if r.Responsibility.MinDistinct != 13 || r.Responsibility.MinInstances != 44 || r.Responsibility.MinCoreInstances != 26 {
		t.Errorf("got gate %+v, want 13/44/26", r.Responsibility)
	}
	if len(r.Responsibility.Checklist) != 17 {
		t.Errorf("got %d checklist items, want 17", len(r.Responsibility.Checklist))
	}

	core := 0
	for _, item := range r.Responsibility.Checklist {
		if item.Core {
			core++
		}
	}
	if core != 7 {
		t.Errorf("got %d core items, want 7", core)
	}
}

func TestRubricValidate_Defaults(t *testing.T) {
	r := DefaultRubric()
	r.Components = []string{"delivery", "context"}
	if err := r.Validate(); err != nil {
		t.Errorf("default rubric should validate: %v", err)
	}
}

func TestRubricValidate_Rejections(t *testing.T) {
	base := func() Rubric {
		r := DefaultRubric()
		r.Components = []string{"delivery"}
		return r
	}

	tests := []struct {
		name   string
		mutate func(*Rubric)
	}{
		{"no components", func(r *Rubric) { r.Components = nil }},
		{"duplicate component", func(r *Rubric) { r.Components = []string{"a", "a"} }},
		{"weights off unity", func(r *Rubric) { r.Weights.Coverage = 0.6 }},
		{"negative weight", func(r *Rubric) { r.Weights = Weights{Coverage: 1.2, MultiEntry: -0.2, Verified: 0} }},
		{"inverted thresholds", func(r *Rubric) { r.Verdict = VerdictThresholds{Competency: 60, Proficiency: 70} }},
		{"empty checklist", func(r *Rubric) { r.Responsibility.Checklist = nil }},
		{"min distinct above checklist size", func(r *Rubric) { r.Responsibility.MinDistinct = 18 }},
		{"core gate without core items", func(r *Rubric) {
			for i := range r.Responsibility.Checklist {
				r.Responsibility.Checklist[i].Core = false
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base()
			tt.mutate(&r)
			if err := r.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoadRubric_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rubric.yaml")
	override := `
verdict:
  competency: 90.0
  proficiency: 70.0
`
	if err := os.WriteFile(path, []byte(override), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	r, err := LoadRubric(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if r.Verdict.Competency != 90.0 || r.Verdict.Proficiency != 70.0 {
		t.Errorf("got thresholds %+v, want 90/70", r.Verdict)
	}
	// Untouched sections keep the embedded defaults.
	if r.Responsibility.MinDistinct != 13 {
		t.Errorf("got min distinct %d, want default 13", r.Responsibility.MinDistinct)
	}
}

func TestLoadRubric_MissingFile(t *testing.T) {
	if _, err := LoadRubric(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
