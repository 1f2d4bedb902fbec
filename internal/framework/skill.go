package framework

import "slices"

// Level bounds for the framework. Every proficiency level in the model,
// whether on a skill, an attribute, or a role requirement, falls in this range.
const (
	MinLevel = 1
	MaxLevel = 7
)

// Skill represents a single competency dimension in the framework.
type Skill struct {
	Code        string
	Name        string
	Category    string
	Subcategory string
	Description string

	// AvailableLevels is the ordered set of levels at which this skill is
	// defined. Strictly increasing, each within [MinLevel, MaxLevel].
	AvailableLevels []int
}

// DefinedAt reports whether the skill is defined at the given level.
func (s *Skill) DefinedAt(level int) bool {
	return slices.Contains(s.AvailableLevels, level)
}

// SkillLevel pairs a skill with one of its defined levels and carries the
// level-specific description. It is the atomic unit of a requirement.
type SkillLevel struct {
	SkillCode   string
	Level       int
	Description string
}

// Key returns the canonical identifier for a skill-level pairing.
func (sl SkillLevel) Key() string {
	return SkillLevelKey(sl.SkillCode, sl.Level)
}
