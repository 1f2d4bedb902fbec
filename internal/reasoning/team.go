package reasoning

import (
	"sort"

	"github.com/mhartley/compass/internal/framework"
)

// DefaultMissingPenalty is the per-requirement score penalty for a skill the
// candidate does not hold at any level. The weighting is informal in the
// source rubric, so it stays configurable.
const DefaultMissingPenalty = 0.5

// TeamMatchConfig carries the tunable weights of the matching heuristic.
type TeamMatchConfig struct {
	MissingPenalty float64 `yaml:"missing_penalty" json:"missing_penalty"`
}

// DefaultTeamMatchConfig returns the standard matching weights.
func DefaultTeamMatchConfig() TeamMatchConfig {
	return TeamMatchConfig{MissingPenalty: DefaultMissingPenalty}
}

// Candidate is one person considered for assignment, with the skill levels
// they hold.
type Candidate struct {
	ID     string         `json:"id"`
	Skills map[string]int `json:"skills"` // skill code -> held level
}

// Assignment records one greedy pick: the candidate, the requirements their
// assignment newly covered, and their score against the full requirement set.
type Assignment struct {
	CandidateID string   `json:"candidate_id"`
	Score       float64  `json:"score"`
	Covered     []string `json:"covered"` // skill-level keys, sorted
}

// TeamMatch is the outcome of a matching run.
type TeamMatch struct {
	Assignments []Assignment `json:"assignments"`
	Uncovered   []string     `json:"uncovered"` // skill-level keys, sorted
}

// MatchTeam assigns candidates to a requirement set greedily: on each round
// the unassigned candidate adding the most coverage over the still-uncovered
// requirements is picked, ties broken by candidate ID ascending. This is a
// knowing heuristic, not optimal set cover. A candidate's reported score is
// the count of requirements they meet minus MissingPenalty per required
// skill they hold at no level at all; holding a skill below the required
// level costs nothing beyond not counting.
func MatchTeam(requirements []framework.Requirement, candidates []Candidate, cfg TeamMatchConfig) TeamMatch {
	reqs := framework.MergeRequirements(requirements)
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].SkillCode < reqs[j].SkillCode })

	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	uncovered := make(map[string]framework.Requirement, len(reqs))
	for _, req := range reqs {
		uncovered[framework.SkillLevelKey(req.SkillCode, req.MinLevel)] = req
	}

	assigned := make(map[string]bool, len(sorted))
	var result TeamMatch

	for len(uncovered) > 0 {
		bestIdx := -1
		bestGain := 0
		for i, c := range sorted {
			if assigned[c.ID] {
				continue
			}
			gain := 0
			for _, req := range uncovered {
				if c.Skills[req.SkillCode] >= req.MinLevel {
					gain++
				}
			}
			// Candidates are pre-sorted by ID, so a strict improvement
			// check keeps ties on the lowest ID.
			if gain > bestGain {
				bestGain = gain
				bestIdx = i
			}
		}
		if bestIdx == -1 {
			break
		}

		picked := sorted[bestIdx]
		assigned[picked.ID] = true

		var covered []string
		for key, req := range uncovered {
			if picked.Skills[req.SkillCode] >= req.MinLevel {
				covered = append(covered, key)
			}
		}
		sort.Strings(covered)
		for _, key := range covered {
			delete(uncovered, key)
		}

		result.Assignments = append(result.Assignments, Assignment{
			CandidateID: picked.ID,
			Score:       candidateScore(reqs, picked, cfg),
			Covered:     covered,
		})
	}

	for key := range uncovered {
		result.Uncovered = append(result.Uncovered, key)
	}
	sort.Strings(result.Uncovered)
	return result
}

// candidateScore scores a candidate against the full requirement set.
func candidateScore(reqs []framework.Requirement, c Candidate, cfg TeamMatchConfig) float64 {
	score := 0.0
	for _, req := range reqs {
		held, ok := c.Skills[req.SkillCode]
		switch {
		case !ok:
			score -= cfg.MissingPenalty
		case held >= req.MinLevel:
			score++
		}
	}
	return score
}
