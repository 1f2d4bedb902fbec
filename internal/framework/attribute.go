package framework

// Attribute represents a cross-cutting professional attribute (autonomy,
// influence, complexity, ...) with a description for each level at which it
// is defined.
type Attribute struct {
	Code string
	Name string

	// LevelDescriptions maps level rank to the attribute's description at
	// that level. Keys follow the same [MinLevel, MaxLevel] bounds as skills.
	LevelDescriptions map[int]string
}

// DefinedAt reports whether the attribute has a description at the given level.
func (a *Attribute) DefinedAt(level int) bool {
	_, ok := a.LevelDescriptions[level]
	return ok
}
