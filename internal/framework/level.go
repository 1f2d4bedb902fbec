package framework

import "fmt"

// Level represents one rank of the framework's proficiency scale.
// Rank is the sole ordering key.
type Level struct {
	Rank    int
	Guiding string // guiding phrase, e.g. "Enable"
	Essence string // description of what operating at this level looks like
}

// SkillLevelKey builds the canonical "CODE@N" identifier used to address
// skill-level pairings in index maps.
func SkillLevelKey(skillCode string, level int) string {
	return fmt.Sprintf("%s@%d", skillCode, level)
}

// ValidLevel reports whether rank is within the framework's level bounds.
func ValidLevel(rank int) bool {
	return rank >= MinLevel && rank <= MaxLevel
}
