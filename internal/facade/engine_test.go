package facade

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhartley/compass/internal/graph"
	"github.com/mhartley/compass/internal/judge"
	"github.com/mhartley/compass/internal/logger"
	"github.com/mhartley/compass/internal/reasoning"
	"github.com/mhartley/compass/internal/scoring"
)

const testDocument = `{
	"framework": "engineering-competency",
	"version": "v1.0.0",
	"levels": [
		{"rank": 1, "guiding": "Follow"},
		{"rank": 3, "guiding": "Apply"},
		{"rank": 5, "guiding": "Ensure"}
	],
	"skills": [
		{"code": "PROG", "name": "Programming", "category": "Development", "levels": [1, 3, 5]},
		{"code": "DESN", "name": "Systems design", "category": "Development", "levels": [3, 5]},
		{"code": "TEST", "name": "Testing", "category": "Quality", "levels": [1, 3]}
	],
	"skill_levels": [
		{"skill": "PROG", "level": 1, "description": "Basic"},
		{"skill": "PROG", "level": 3, "description": "Competent"},
		{"skill": "PROG", "level": 5, "description": "Expert"},
		{"skill": "DESN", "level": 3, "description": "Competent"},
		{"skill": "DESN", "level": 5, "description": "Expert"},
		{"skill": "TEST", "level": 1, "description": "Basic"},
		{"skill": "TEST", "level": 3, "description": "Competent"}
	],
	"roles": [
		{"code": "SDEV", "name": "Software developer", "requirements": [
			{"skill": "PROG", "level": 3, "essential": true},
			{"skill": "DESN", "level": 3},
			{"skill": "TEST", "level": 1}
		]},
		{"code": "SARC", "name": "Software architect", "requirements": [
			{"skill": "PROG", "level": 5, "essential": true},
			{"skill": "DESN", "level": 5, "essential": true},
			{"skill": "TEST", "level": 1}
		]}
	]
}`

func loadedEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	e := New(opts)
	_, err := e.LoadOntology(context.Background(), []byte(testDocument), false)
	require.NoError(t, err)
	return e
}

func TestEngine_GetSkill(t *testing.T) {
	e := loadedEngine(t, Options{})

	sk, levels, err := e.GetSkill("PROG")
	require.NoError(t, err)
	assert.Equal(t, "Programming", sk.Name)
	assert.Len(t, levels, 3)
	assert.Equal(t, 1, levels[0].Level)
	assert.Equal(t, "Expert", levels[2].Description)
}

func TestEngine_FindSkills(t *testing.T) {
	e := loadedEngine(t, Options{})

	skills := e.FindSkills(graph.Filter{Category: "Development"}, 0)
	require.Len(t, skills, 2)
	assert.Equal(t, "DESN", skills[0].Code)
	assert.Equal(t, "PROG", skills[1].Code)

	limited := e.FindSkills(graph.Filter{}, 1)
	require.Len(t, limited, 1)
	assert.Equal(t, "DESN", limited[0].Code)
}

func TestEngine_GetRoleProfile(t *testing.T) {
	e := loadedEngine(t, Options{})

	role, profile, err := e.GetRole("SARC")
	require.NoError(t, err)
	assert.Equal(t, "Software architect", role.Name)
	assert.Len(t, profile.Essential, 2)
	assert.Len(t, profile.Desirable, 1)
}

func TestEngine_Gap(t *testing.T) {
	e := loadedEngine(t, Options{})

	gaps, err := e.Gap("SARC", map[string]int{"PROG": 3, "DESN": 5, "TEST": 1})
	require.NoError(t, err)
	require.Len(t, gaps, 1)
	assert.Equal(t, "PROG", gaps[0].SkillCode)
	assert.Equal(t, 2, gaps[0].Delta)
	assert.True(t, gaps[0].Essential)
}

func TestEngine_Pathways(t *testing.T) {
	e := loadedEngine(t, Options{})

	pathways, err := e.Pathways("SDEV", 3)
	require.NoError(t, err)
	require.Len(t, pathways, 1)
	assert.Equal(t, "SARC", pathways[0].RoleCode)
	assert.Equal(t, 3, pathways[0].SharedCount)
}

func TestEngine_MatchTeam(t *testing.T) {
	e := loadedEngine(t, Options{})

	match, err := e.MatchTeam("SDEV", []reasoning.Candidate{
		{ID: "alice", Skills: map[string]int{"PROG": 5, "DESN": 3}},
		{ID: "bob", Skills: map[string]int{"TEST": 3}},
	}, reasoning.DefaultTeamMatchConfig())
	require.NoError(t, err)
	assert.Len(t, match.Assignments, 2)
	assert.Empty(t, match.Uncovered)
}

func TestEngine_ScorePortfolio(t *testing.T) {
	rubric := scoring.DefaultRubric()
	e := loadedEngine(t, Options{
		Scorer: scoring.NewEngine(judge.NewHeuristicJudge(), scoring.DefaultConfig(), logger.Nop()),
		Rubric: rubric,
	})

	res, err := e.ScorePortfolio(context.Background(), scoring.Request{
		SubjectID:   "subj-1",
		SkillCode:   "PROG",
		TargetLevel: 3,
		Components:  []string{"delivery"},
		Entries: []scoring.PortfolioEntry{
			{ID: "e1", Text: "Initially I was responsible for builds. Now I have improved the release flow.", Component: "delivery", SupervisorVerified: true},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "heuristic", res.JudgeName)
	assert.InDelta(t, 100.0, res.Coverage.CoveragePct, 1e-9)
	assert.False(t, res.Responsibility.Passed, "no characteristics evidenced")
}

func TestEngine_ScoreWithoutScorer(t *testing.T) {
	e := loadedEngine(t, Options{})

	_, err := e.ScorePortfolio(context.Background(), scoring.Request{
		SkillCode: "PROG", TargetLevel: 3,
		Entries: []scoring.PortfolioEntry{{ID: "e1"}},
	})
	var unavailable *scoring.ErrScoringUnavailable
	require.ErrorAs(t, err, &unavailable)
}

func TestEngine_LoadFailureLeavesGraph(t *testing.T) {
	e := loadedEngine(t, Options{})

	_, err := e.LoadOntology(context.Background(), []byte(`{"framework": "x"}`), false)
	require.Error(t, err)

	assert.Equal(t, 3, e.Statistics().Skills)
}

func TestEngine_ReplaceOntology(t *testing.T) {
	e := loadedEngine(t, Options{})

	doc := `{
		"framework": "minimal", "version": "v1.0.0",
		"levels": [{"rank": 1, "guiding": "Follow"}],
		"skills": [{"code": "ONLY", "name": "Only", "levels": [1]}],
		"skill_levels": [{"skill": "ONLY", "level": 1, "description": "Entry"}]
	}`
	res, err := e.LoadOntology(context.Background(), []byte(doc), true)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Statistics.Skills)

	_, _, err = e.GetSkill("PROG")
	assert.Error(t, err)
}
