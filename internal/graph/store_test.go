package graph

import (
	"errors"
	"slices"
	"testing"

	"github.com/mhartley/compass/internal/framework"
)

// testFacts builds a small valid framework: three skills, three levels,
// two roles, and a prerequisite chain on PROG.
func testFacts() Facts {
	return Facts{
		Levels: []framework.Level{
			{Rank: 1, Guiding: "Follow", Essence: "Works under close direction"},
			{Rank: 3, Guiding: "Apply", Essence: "Works under general direction"},
			{Rank: 5, Guiding: "Ensure", Essence: "Provides authoritative guidance"},
		},
		Skills: []framework.Skill{
			{Code: "PROG", Name: "Programming", Category: "Development", AvailableLevels: []int{1, 3, 5}},
			{Code: "DESN", Name: "Systems design", Category: "Development", AvailableLevels: []int{3, 5}},
			{Code: "ASUP", Name: "Application support", Category: "Delivery", AvailableLevels: []int{1, 3}},
		},
		Attributes: []framework.Attribute{
			{Code: "AUTO", Name: "Autonomy", LevelDescriptions: map[int]string{1: "Supervised", 3: "Self-directed"}},
		},
		SkillLevels: []framework.SkillLevel{
			{SkillCode: "PROG", Level: 1, Description: "Writes simple programs"},
			{SkillCode: "PROG", Level: 3, Description: "Designs and writes programs"},
			{SkillCode: "PROG", Level: 5, Description: "Sets programming standards"},
			{SkillCode: "DESN", Level: 3, Description: "Designs components"},
			{SkillCode: "DESN", Level: 5, Description: "Designs systems"},
			{SkillCode: "ASUP", Level: 1, Description: "Assists with support tasks"},
			{SkillCode: "ASUP", Level: 3, Description: "Investigates issues"},
		},
		Roles: []framework.Role{
			{Code: "DEV", Name: "Developer", Requirements: []framework.Requirement{
				{SkillCode: "PROG", MinLevel: 3, Essential: true},
				{SkillCode: "ASUP", MinLevel: 1},
			}},
			{Code: "ARCH", Name: "Architect", Requirements: []framework.Requirement{
				{SkillCode: "PROG", MinLevel: 5, Essential: true},
				{SkillCode: "DESN", MinLevel: 5, Essential: true},
			}},
		},
		Prerequisites: []Prerequisite{
			{SkillCode: "PROG", FromLevel: 1, ToLevel: 3},
			{SkillCode: "PROG", FromLevel: 3, ToLevel: 5},
		},
		Complements: []Complement{
			{SkillA: "PROG", SkillB: "DESN"},
		},
	}
}

func mustLoad(t *testing.T, f Facts) *Store {
	t.Helper()
	s := NewStore()
	if err := s.Load(f); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func TestStoreLoad_Valid(t *testing.T) {
	s := mustLoad(t, testFacts())
	snap := s.Snapshot()

	sk, err := snap.Skill("PROG")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sk.Name != "Programming" {
		t.Errorf("got name %q, want Programming", sk.Name)
	}

	st := snap.Statistics()
	if st.Skills != 3 || st.Roles != 2 || st.SkillLevels != 7 {
		t.Errorf("got stats %+v, want 3 skills / 2 roles / 7 skill levels", st)
	}
	if st.Prerequisites != 2 || st.Complements != 1 {
		t.Errorf("got %d prerequisites / %d complements, want 2/1", st.Prerequisites, st.Complements)
	}
}

func TestStoreLoad_RejectsUnknownSkillInRole(t *testing.T) {
	f := testFacts()
	f.Roles = append(f.Roles, framework.Role{
		Code: "BAD", Name: "Broken",
		Requirements: []framework.Requirement{{SkillCode: "NOPE", MinLevel: 1}},
	})

	s := NewStore()
	err := s.Load(f)
	var sv *ErrSchemaViolation
	if !errors.As(err, &sv) {
		t.Fatalf("got %v, want ErrSchemaViolation", err)
	}
}

func TestStoreLoad_RejectedBatchLeavesSnapshotIntact(t *testing.T) {
	s := mustLoad(t, testFacts())

	bad := Facts{Skills: []framework.Skill{
		{Code: "PROG", Name: "Duplicate", AvailableLevels: []int{1}},
	}}
	if err := s.Load(bad); err == nil {
		t.Fatal("expected duplicate skill code to be rejected")
	}

	// The previously committed snapshot must be unchanged.
	snap := s.Snapshot()
	sk, err := snap.Skill("PROG")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sk.Name != "Programming" {
		t.Errorf("snapshot mutated by rejected load: got %q", sk.Name)
	}
	if got := snap.Statistics().Skills; got != 3 {
		t.Errorf("got %d skills after rejected load, want 3", got)
	}
}

func TestStoreLoad_MergeAddsFacts(t *testing.T) {
	s := mustLoad(t, testFacts())

	extra := Facts{
		Skills: []framework.Skill{
			{Code: "TEST", Name: "Testing", Category: "Quality", AvailableLevels: []int{1}},
		},
		SkillLevels: []framework.SkillLevel{
			{SkillCode: "TEST", Level: 1, Description: "Executes given test scripts"},
		},
	}
	if err := s.Load(extra); err != nil {
		t.Fatalf("merge load: %v", err)
	}

	snap := s.Snapshot()
	if _, err := snap.Skill("TEST"); err != nil {
		t.Errorf("merged skill missing: %v", err)
	}
	if _, err := snap.Skill("PROG"); err != nil {
		t.Errorf("existing skill lost on merge: %v", err)
	}
}

func TestStoreReplace_DiscardsPrevious(t *testing.T) {
	s := mustLoad(t, testFacts())

	fresh := Facts{
		Levels: []framework.Level{{Rank: 1, Guiding: "Follow", Essence: "Basic"}},
		Skills: []framework.Skill{
			{Code: "NEW", Name: "New skill", Category: "Other", AvailableLevels: []int{1}},
		},
		SkillLevels: []framework.SkillLevel{
			{SkillCode: "NEW", Level: 1, Description: "Entry level"},
		},
	}
	if err := s.Replace(fresh); err != nil {
		t.Fatalf("replace: %v", err)
	}

	snap := s.Snapshot()
	if _, err := snap.Skill("PROG"); err == nil {
		t.Error("expected PROG gone after replace")
	}
	if _, err := snap.Skill("NEW"); err != nil {
		t.Errorf("expected NEW present after replace: %v", err)
	}
}

func TestSnapshot_NotFound(t *testing.T) {
	snap := mustLoad(t, testFacts()).Snapshot()

	_, err := snap.Skill("MISSING")
	var nf *ErrNotFound
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if nf.Kind != "skill" || nf.Code != "MISSING" {
		t.Errorf("got %+v, want skill/MISSING", nf)
	}
}

func TestFindSkills_Filters(t *testing.T) {
	snap := mustLoad(t, testFacts()).Snapshot()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", Filter{}, []string{"ASUP", "DESN", "PROG"}},
		{"category", Filter{Category: "Development"}, []string{"DESN", "PROG"}},
		{"level", Filter{Level: 5}, []string{"DESN", "PROG"}},
		{"keyword", Filter{Keyword: "support"}, []string{"ASUP"}},
		{"combined", Filter{Category: "Development", Level: 3}, []string{"DESN", "PROG"}},
		{"none", Filter{Category: "Development", Keyword: "support"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for sk := range snap.FindSkills(tt.filter) {
				got = append(got, sk.Code)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapshot_PrerequisitesAndComplements(t *testing.T) {
	snap := mustLoad(t, testFacts()).Snapshot()

	// PROG@3 unlocks PROG@5; PROG@5 unlocks nothing.
	if pre := snap.Prerequisites("PROG", 3); !slices.Equal(pre, []string{"PROG@5"}) {
		t.Errorf("got prerequisites %v, want [PROG@5]", pre)
	}
	if pre := snap.Prerequisites("PROG", 5); len(pre) != 0 {
		t.Errorf("got prerequisites %v, want none", pre)
	}

	// Complements are symmetric.
	if cs := snap.Complements("PROG"); !slices.Contains(cs, "DESN") {
		t.Errorf("got complements %v, want DESN included", cs)
	}
	if cs := snap.Complements("DESN"); !slices.Contains(cs, "PROG") {
		t.Errorf("got complements %v, want PROG included", cs)
	}
}
