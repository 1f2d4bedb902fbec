package graph

import "github.com/mhartley/compass/internal/framework"

// Prerequisite is a prerequisiteFor edge between two skill-level pairings
// of the same skill: the From level must be held before the To level.
type Prerequisite struct {
	SkillCode string
	FromLevel int
	ToLevel   int
}

// Complement is a complementaryTo edge between two skills. The relation is
// symmetric and advisory only; it never implies a level requirement.
type Complement struct {
	SkillA string
	SkillB string
}

// Facts is a batch of entity and relationship facts submitted to Store.Load.
// A batch is merged into the current snapshot as a whole: it either commits
// completely or is rejected completely.
type Facts struct {
	Levels        []framework.Level
	Skills        []framework.Skill
	Attributes    []framework.Attribute
	SkillLevels   []framework.SkillLevel
	Roles         []framework.Role
	Prerequisites []Prerequisite
	Complements   []Complement
}

// Empty reports whether the batch carries no facts at all.
func (f Facts) Empty() bool {
	return len(f.Levels) == 0 && len(f.Skills) == 0 && len(f.Attributes) == 0 &&
		len(f.SkillLevels) == 0 && len(f.Roles) == 0 &&
		len(f.Prerequisites) == 0 && len(f.Complements) == 0
}
