package reasoning

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mhartley/compass/internal/framework"
)

func TestMatchTeam_GreedyCoverage(t *testing.T) {
	reqs := []framework.Requirement{
		{SkillCode: "PROG", MinLevel: 3},
		{SkillCode: "DESN", MinLevel: 3},
		{SkillCode: "TEST", MinLevel: 1},
	}
	candidates := []Candidate{
		{ID: "alice", Skills: map[string]int{"PROG": 5, "DESN": 3}},
		{ID: "bob", Skills: map[string]int{"TEST": 3}},
	}

	match := MatchTeam(reqs, candidates, DefaultTeamMatchConfig())

	want := TeamMatch{
		Assignments: []Assignment{
			{CandidateID: "alice", Score: 1.5, Covered: []string{"DESN@3", "PROG@3"}},
			{CandidateID: "bob", Score: 0.0, Covered: []string{"TEST@1"}},
		},
	}
	if diff := cmp.Diff(want, match); diff != "" {
		t.Errorf("match mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchTeam_UncoveredReported(t *testing.T) {
	reqs := []framework.Requirement{
		{SkillCode: "PROG", MinLevel: 5},
		{SkillCode: "SCTY", MinLevel: 4},
	}
	candidates := []Candidate{
		{ID: "alice", Skills: map[string]int{"PROG": 5}},
	}

	match := MatchTeam(reqs, candidates, DefaultTeamMatchConfig())

	if len(match.Assignments) != 1 {
		t.Fatalf("got %d assignments, want 1", len(match.Assignments))
	}
	wantUncovered := []string{"SCTY@4"}
	if diff := cmp.Diff(wantUncovered, match.Uncovered); diff != "" {
		t.Errorf("uncovered mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchTeam_TieGoesToLowestID(t *testing.T) {
	reqs := []framework.Requirement{{SkillCode: "PROG", MinLevel: 3}}
	candidates := []Candidate{
		{ID: "zoe", Skills: map[string]int{"PROG": 3}},
		{ID: "amy", Skills: map[string]int{"PROG": 3}},
	}

	match := MatchTeam(reqs, candidates, DefaultTeamMatchConfig())

	if len(match.Assignments) != 1 {
		t.Fatalf("got %d assignments, want 1", len(match.Assignments))
	}
	if match.Assignments[0].CandidateID != "amy" {
		t.Errorf("got %q, want amy on a tie", match.Assignments[0].CandidateID)
	}
}

func TestMatchTeam_BelowLevelNotPenalized(t *testing.T) {
	reqs := []framework.Requirement{
		{SkillCode: "PROG", MinLevel: 5},
		{SkillCode: "DESN", MinLevel: 3},
	}
	c := Candidate{ID: "carol", Skills: map[string]int{"PROG": 3, "DESN": 5}}

	// PROG held below the required level: no credit, no penalty.
	got := candidateScore(framework.MergeRequirements(reqs), c, DefaultTeamMatchConfig())
	if got != 1.0 {
		t.Errorf("got score %g, want 1.0", got)
	}
}

func TestMatchTeam_MissingSkillPenalized(t *testing.T) {
	reqs := []framework.Requirement{
		{SkillCode: "PROG", MinLevel: 3},
		{SkillCode: "DESN", MinLevel: 3},
	}
	c := Candidate{ID: "dan", Skills: map[string]int{"PROG": 3}}

	got := candidateScore(framework.MergeRequirements(reqs), c, TeamMatchConfig{MissingPenalty: 0.5})
	if got != 0.5 {
		t.Errorf("got score %g, want 0.5", got)
	}
}

func TestMatchTeam_DuplicateRequirementsMerged(t *testing.T) {
	reqs := []framework.Requirement{
		{SkillCode: "PROG", MinLevel: 3},
		{SkillCode: "PROG", MinLevel: 5},
	}
	candidates := []Candidate{
		{ID: "eve", Skills: map[string]int{"PROG": 5}},
	}

	match := MatchTeam(reqs, candidates, DefaultTeamMatchConfig())

	want := []string{"PROG@5"}
	if diff := cmp.Diff(want, match.Assignments[0].Covered); diff != "" {
		t.Errorf("covered mismatch (-want +got):\n%s", diff)
	}
	if len(match.Uncovered) != 0 {
		t.Errorf("got uncovered %v, want none", match.Uncovered)
	}
}

func TestMatchTeam_NoCandidates(t *testing.T) {
	reqs := []framework.Requirement{{SkillCode: "PROG", MinLevel: 3}}

	match := MatchTeam(reqs, nil, DefaultTeamMatchConfig())

	if len(match.Assignments) != 0 {
		t.Errorf("got assignments %v, want none", match.Assignments)
	}
	if diff := cmp.Diff([]string{"PROG@3"}, match.Uncovered); diff != "" {
		t.Errorf("uncovered mismatch (-want +got):\n%s", diff)
	}
}
