package framework

import "sort"

// Requirement is a (skill, minimum level) pair demanded by a role.
type Requirement struct {
	SkillCode string
	MinLevel  int

	// Essential partitions the role's profile: essential requirements must
	// be met, desirable ones are advisory.
	Essential bool
}

// Role represents a professional role and its skill requirements.
type Role struct {
	Code         string
	Name         string
	Requirements []Requirement
}

// Requirement returns the role's requirement for the given skill code,
// if present.
func (r *Role) Requirement(skillCode string) (Requirement, bool) {
	for _, req := range r.Requirements {
		if req.SkillCode == skillCode {
			return req, true
		}
	}
	return Requirement{}, false
}

// SkillCodes returns the sorted set of skill codes the role requires.
func (r *Role) SkillCodes() []string {
	codes := make([]string, 0, len(r.Requirements))
	for _, req := range r.Requirements {
		codes = append(codes, req.SkillCode)
	}
	sort.Strings(codes)
	return codes
}

// Profile is a role's requirements partitioned into essential and desirable
// subsets. The subsets are disjoint by construction: a requirement is one
// or the other.
type Profile struct {
	RoleCode  string
	Essential []Requirement
	Desirable []Requirement
}

// ProfileOf partitions a role's requirements into its competency profile.
func ProfileOf(r *Role) Profile {
	p := Profile{RoleCode: r.Code}
	for _, req := range r.Requirements {
		if req.Essential {
			p.Essential = append(p.Essential, req)
		} else {
			p.Desirable = append(p.Desirable, req)
		}
	}
	return p
}

// MergeRequirements collapses duplicate skill references in a requirement
// list: when a skill appears twice, the higher minimum level subsumes the
// lower. Essential wins over desirable on a merge. Order of first appearance
// is preserved.
func MergeRequirements(reqs []Requirement) []Requirement {
	index := make(map[string]int, len(reqs))
	var merged []Requirement
	for _, req := range reqs {
		i, seen := index[req.SkillCode]
		if !seen {
			index[req.SkillCode] = len(merged)
			merged = append(merged, req)
			continue
		}
		if req.MinLevel > merged[i].MinLevel {
			merged[i].MinLevel = req.MinLevel
		}
		if req.Essential {
			merged[i].Essential = true
		}
	}
	return merged
}
