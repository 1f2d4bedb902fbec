package reasoning

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mhartley/compass/internal/framework"
	"github.com/mhartley/compass/internal/graph"
)

func testSnapshot(t *testing.T) *graph.Snapshot {
	t.Helper()
	s := graph.NewStore()
	err := s.Load(graph.Facts{
		Levels: []framework.Level{
			{Rank: 1, Guiding: "Follow"},
			{Rank: 3, Guiding: "Apply"},
			{Rank: 5, Guiding: "Ensure"},
		},
		Skills: []framework.Skill{
			{Code: "ASUP", Name: "Application support", Category: "Delivery", AvailableLevels: []int{1, 3, 5}},
			{Code: "DESN", Name: "Systems design", Category: "Development", AvailableLevels: []int{3, 5}},
			{Code: "PROG", Name: "Programming", Category: "Development", AvailableLevels: []int{1, 3, 5}},
			{Code: "REQM", Name: "Requirements management", Category: "Analysis", AvailableLevels: []int{3, 5}},
			{Code: "TEST", Name: "Testing", Category: "Quality", AvailableLevels: []int{1, 3}},
		},
		SkillLevels: []framework.SkillLevel{
			{SkillCode: "ASUP", Level: 1}, {SkillCode: "ASUP", Level: 3}, {SkillCode: "ASUP", Level: 5},
			{SkillCode: "DESN", Level: 3}, {SkillCode: "DESN", Level: 5},
			{SkillCode: "PROG", Level: 1}, {SkillCode: "PROG", Level: 3}, {SkillCode: "PROG", Level: 5},
			{SkillCode: "REQM", Level: 3}, {SkillCode: "REQM", Level: 5},
			{SkillCode: "TEST", Level: 1}, {SkillCode: "TEST", Level: 3},
		},
		Roles: []framework.Role{
			{Code: "SARC", Name: "Software architect", Requirements: []framework.Requirement{
				{SkillCode: "PROG", MinLevel: 5, Essential: true},
				{SkillCode: "DESN", MinLevel: 5, Essential: true},
				{SkillCode: "REQM", MinLevel: 3},
			}},
			{Code: "SDEV", Name: "Software developer", Requirements: []framework.Requirement{
				{SkillCode: "PROG", MinLevel: 3, Essential: true},
				{SkillCode: "DESN", MinLevel: 3},
				{SkillCode: "TEST", MinLevel: 1},
			}},
			{Code: "TLED", Name: "Test lead", Requirements: []framework.Requirement{
				{SkillCode: "TEST", MinLevel: 3, Essential: true},
				{SkillCode: "ASUP", MinLevel: 1},
			}},
		},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return s.Snapshot()
}

func TestGap_PositiveDeltasOnly(t *testing.T) {
	snap := testSnapshot(t)

	gaps, err := Gap(snap, "SARC", map[string]int{"PROG": 3, "DESN": 5, "REQM": 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []GapRecord{
		{SkillCode: "PROG", SkillName: "Programming", Required: 5, Current: 3, Delta: 2, Essential: true},
	}
	if diff := cmp.Diff(want, gaps); diff != "" {
		t.Errorf("gap mismatch (-want +got):\n%s", diff)
	}
}

func TestGap_MissingSkillIsLevelZero(t *testing.T) {
	snap := testSnapshot(t)

	gaps, err := Gap(snap, "SDEV", map[string]int{"PROG": 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// DESN and TEST not held at all; ordered by delta desc, code asc.
	want := []GapRecord{
		{SkillCode: "DESN", SkillName: "Systems design", Required: 3, Current: 0, Delta: 3},
		{SkillCode: "TEST", SkillName: "Testing", Required: 1, Current: 0, Delta: 1},
	}
	if diff := cmp.Diff(want, gaps); diff != "" {
		t.Errorf("gap mismatch (-want +got):\n%s", diff)
	}
}

func TestGap_AllMet(t *testing.T) {
	snap := testSnapshot(t)

	gaps, err := Gap(snap, "SDEV", map[string]int{"PROG": 5, "DESN": 3, "TEST": 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gaps) != 0 {
		t.Errorf("got %v, want no gaps", gaps)
	}
}

func TestGap_UnknownRole(t *testing.T) {
	_, err := Gap(testSnapshot(t), "NOPE", nil)
	var nf *graph.ErrNotFound
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestGap_TieBrokenByCode(t *testing.T) {
	snap := testSnapshot(t)

	gaps, err := Gap(snap, "SARC", map[string]int{"PROG": 4, "DESN": 4, "REQM": 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var codes []string
	for _, g := range gaps {
		codes = append(codes, g.SkillCode)
	}
	want := []string{"DESN", "PROG", "REQM"}
	if diff := cmp.Diff(want, codes); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}
