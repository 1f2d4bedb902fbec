package reasoning

import (
	"sort"

	"github.com/mhartley/compass/internal/graph"
)

// DefaultMinSharedSkills is the pathway threshold used when the caller does
// not supply one.
const DefaultMinSharedSkills = 3

// Pathway describes a role reachable from the origin role through shared
// skill requirements. The relation is symmetric: skill overlap carries no
// career direction, and the engine does not pretend otherwise.
type Pathway struct {
	RoleCode     string   `json:"role_code"`
	RoleName     string   `json:"role_name"`
	SharedCount  int      `json:"shared_count"`
	SharedSkills []string `json:"shared_skills"`
}

// Pathways finds every other role sharing at least minShared required skills
// (level ignored) with the origin role. minShared <= 0 falls back to
// DefaultMinSharedSkills. Results are ordered by SharedCount descending,
// ties broken by role code ascending; shared skill codes are sorted.
func Pathways(snap *graph.Snapshot, fromRoleCode string, minShared int) ([]Pathway, error) {
	if minShared <= 0 {
		minShared = DefaultMinSharedSkills
	}

	origin, err := snap.Role(fromRoleCode)
	if err != nil {
		return nil, err
	}

	originSkills := make(map[string]bool, len(origin.Requirements))
	for _, req := range origin.Requirements {
		originSkills[req.SkillCode] = true
	}

	var pathways []Pathway
	for _, other := range snap.Roles() {
		if other.Code == origin.Code {
			continue
		}
		var shared []string
		for _, req := range other.Requirements {
			if originSkills[req.SkillCode] {
				shared = append(shared, req.SkillCode)
			}
		}
		if len(shared) < minShared {
			continue
		}
		sort.Strings(shared)
		pathways = append(pathways, Pathway{
			RoleCode:     other.Code,
			RoleName:     other.Name,
			SharedCount:  len(shared),
			SharedSkills: shared,
		})
	}

	sort.Slice(pathways, func(i, j int) bool {
		if pathways[i].SharedCount != pathways[j].SharedCount {
			return pathways[i].SharedCount > pathways[j].SharedCount
		}
		return pathways[i].RoleCode < pathways[j].RoleCode
	})
	return pathways, nil
}
