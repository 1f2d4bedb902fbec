// Package reasoning implements the stateless query algorithms over a graph
// snapshot: skill-gap analysis, career-pathway discovery, and greedy
// team-composition matching. Nothing here mutates the snapshot.
package reasoning

import (
	"sort"

	"github.com/mhartley/compass/internal/graph"
)

// GapRecord is one positive shortfall between a role requirement and the
// level currently held.
type GapRecord struct {
	SkillCode string `json:"skill_code"`
	SkillName string `json:"skill_name"`
	Required  int    `json:"required_level"`
	Current   int    `json:"current_level"`
	Delta     int    `json:"delta"`
	Essential bool   `json:"essential"`
}

// Gap computes the skill gaps between a role's requirements and the given
// current levels. A skill with no entry in current is treated as level 0.
// Requirements fully met or exceeded are omitted. Records are ordered by
// Delta descending, ties broken by skill code ascending.
func Gap(snap *graph.Snapshot, roleCode string, current map[string]int) ([]GapRecord, error) {
	role, err := snap.Role(roleCode)
	if err != nil {
		return nil, err
	}

	var gaps []GapRecord
	for _, req := range role.Requirements {
		held := current[req.SkillCode]
		delta := req.MinLevel - held
		if delta <= 0 {
			continue
		}
		name := req.SkillCode
		if sk, err := snap.Skill(req.SkillCode); err == nil {
			name = sk.Name
		}
		gaps = append(gaps, GapRecord{
			SkillCode: req.SkillCode,
			SkillName: name,
			Required:  req.MinLevel,
			Current:   held,
			Delta:     delta,
			Essential: req.Essential,
		})
	}

	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].Delta != gaps[j].Delta {
			return gaps[i].Delta > gaps[j].Delta
		}
		return gaps[i].SkillCode < gaps[j].SkillCode
	})
	return gaps, nil
}
