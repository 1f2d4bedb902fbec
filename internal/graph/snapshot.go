package graph

import (
	"iter"
	"sort"
	"strings"

	"github.com/mhartley/compass/internal/framework"
)

// Snapshot is one immutable, fully validated view of the competency graph.
// Entities are arena-stored records addressed by their string codes;
// relationships are index maps of codes, never object pointers, so malformed
// input cannot create ownership cycles. Readers share a snapshot freely.
type Snapshot struct {
	skills      []framework.Skill
	levels      []framework.Level
	attributes  []framework.Attribute
	skillLevels []framework.SkillLevel
	roles       []framework.Role

	skillByCode     map[string]*framework.Skill
	levelByRank     map[int]*framework.Level
	attrByCode      map[string]*framework.Attribute
	skillLevelByKey map[string]*framework.SkillLevel
	roleByCode      map[string]*framework.Role

	// prereqs maps a skill-level key to the keys it is a prerequisite for.
	prereqs map[string][]string
	// complements maps a skill code to its complementary skill codes
	// (symmetric closure, sorted).
	complements map[string][]string
}

// emptySnapshot returns a valid snapshot with no facts.
func emptySnapshot() *Snapshot {
	s, _ := buildSnapshot(Facts{})
	return s
}

// Skill returns a skill by code.
func (s *Snapshot) Skill(code string) (framework.Skill, error) {
	sk, ok := s.skillByCode[code]
	if !ok {
		return framework.Skill{}, &ErrNotFound{Kind: "skill", Code: code}
	}
	return *sk, nil
}

// Role returns a role by code.
func (s *Snapshot) Role(code string) (framework.Role, error) {
	r, ok := s.roleByCode[code]
	if !ok {
		return framework.Role{}, &ErrNotFound{Kind: "role", Code: code}
	}
	return *r, nil
}

// Level returns a level by rank.
func (s *Snapshot) Level(rank int) (framework.Level, bool) {
	l, ok := s.levelByRank[rank]
	if !ok {
		return framework.Level{}, false
	}
	return *l, true
}

// Attribute returns an attribute by code.
func (s *Snapshot) Attribute(code string) (framework.Attribute, error) {
	a, ok := s.attrByCode[code]
	if !ok {
		return framework.Attribute{}, &ErrNotFound{Kind: "attribute", Code: code}
	}
	return *a, nil
}

// SkillLevel returns the skill-level definition for (skillCode, level).
func (s *Snapshot) SkillLevel(skillCode string, level int) (framework.SkillLevel, bool) {
	sl, ok := s.skillLevelByKey[framework.SkillLevelKey(skillCode, level)]
	if !ok {
		return framework.SkillLevel{}, false
	}
	return *sl, true
}

// Roles returns all roles ordered by code.
func (s *Snapshot) Roles() []framework.Role {
	out := make([]framework.Role, len(s.roles))
	copy(out, s.roles)
	return out
}

// Levels returns all levels ordered by rank.
func (s *Snapshot) Levels() []framework.Level {
	out := make([]framework.Level, len(s.levels))
	copy(out, s.levels)
	return out
}

// Prerequisites returns the skill-level keys the given skill-level is a
// prerequisite for.
func (s *Snapshot) Prerequisites(skillCode string, level int) []string {
	deps := s.prereqs[framework.SkillLevelKey(skillCode, level)]
	out := make([]string, len(deps))
	copy(out, deps)
	return out
}

// Complements returns the skills complementary to the given skill, sorted.
func (s *Snapshot) Complements(skillCode string) []string {
	cs := s.complements[skillCode]
	out := make([]string, len(cs))
	copy(out, cs)
	return out
}

// Filter narrows a skill search. Zero-valued fields match everything;
// supplied fields are combined with AND semantics.
type Filter struct {
	Category string
	Level    int    // skill must be defined at this level
	Keyword  string // case-insensitive match on code, name, or description
}

// FindSkills returns a lazy sequence of skills matching the filter, in code
// order. With an empty filter the sequence covers the whole snapshot; the
// caller is expected to stop early or apply its own limit.
func (s *Snapshot) FindSkills(f Filter) iter.Seq[framework.Skill] {
	keyword := strings.ToLower(f.Keyword)
	return func(yield func(framework.Skill) bool) {
		for i := range s.skills {
			sk := &s.skills[i]
			if f.Category != "" && !strings.EqualFold(sk.Category, f.Category) {
				continue
			}
			if f.Level != 0 && !sk.DefinedAt(f.Level) {
				continue
			}
			if keyword != "" && !matchesKeyword(sk, keyword) {
				continue
			}
			if !yield(*sk) {
				return
			}
		}
	}
}

func matchesKeyword(sk *framework.Skill, keyword string) bool {
	return strings.Contains(strings.ToLower(sk.Code), keyword) ||
		strings.Contains(strings.ToLower(sk.Name), keyword) ||
		strings.Contains(strings.ToLower(sk.Description), keyword)
}

// Statistics holds entity and relationship counts for external reporting.
// Nothing in the reasoning or scoring paths consumes these.
type Statistics struct {
	Skills        int `json:"skills"`
	Levels        int `json:"levels"`
	Attributes    int `json:"attributes"`
	SkillLevels   int `json:"skill_levels"`
	Roles         int `json:"roles"`
	Prerequisites int `json:"prerequisites"`
	Complements   int `json:"complements"`
}

// Statistics returns counts for the snapshot.
func (s *Snapshot) Statistics() Statistics {
	st := Statistics{
		Skills:      len(s.skills),
		Levels:      len(s.levels),
		Attributes:  len(s.attributes),
		SkillLevels: len(s.skillLevels),
		Roles:       len(s.roles),
	}
	for _, deps := range s.prereqs {
		st.Prerequisites += len(deps)
	}
	// Each symmetric pair is indexed under both skills.
	for _, cs := range s.complements {
		st.Complements += len(cs)
	}
	st.Complements /= 2
	return st
}

// facts re-extracts the snapshot's contents as a batch, used to merge a new
// batch on top of the current state during a load.
func (s *Snapshot) facts() Facts {
	f := Facts{
		Levels:      s.levels,
		Skills:      s.skills,
		Attributes:  s.attributes,
		SkillLevels: s.skillLevels,
		Roles:       s.roles,
	}
	for key, deps := range s.prereqs {
		from := s.skillLevelByKey[key]
		for _, depKey := range deps {
			to := s.skillLevelByKey[depKey]
			f.Prerequisites = append(f.Prerequisites, Prerequisite{
				SkillCode: from.SkillCode,
				FromLevel: from.Level,
				ToLevel:   to.Level,
			})
		}
	}
	seen := make(map[string]bool)
	for a, cs := range s.complements {
		for _, b := range cs {
			if seen[a+"|"+b] || seen[b+"|"+a] {
				continue
			}
			seen[a+"|"+b] = true
			f.Complements = append(f.Complements, Complement{SkillA: a, SkillB: b})
		}
	}
	return f
}

// buildSnapshot validates the facts and constructs all indices.
// It returns *ErrSchemaViolation listing every problem found.
func buildSnapshot(f Facts) (*Snapshot, error) {
	if problems := validateFacts(f); len(problems) > 0 {
		return nil, &ErrSchemaViolation{Problems: problems}
	}

	snap := &Snapshot{
		skills:          append([]framework.Skill(nil), f.Skills...),
		levels:          append([]framework.Level(nil), f.Levels...),
		attributes:      append([]framework.Attribute(nil), f.Attributes...),
		skillLevels:     append([]framework.SkillLevel(nil), f.SkillLevels...),
		skillByCode:     make(map[string]*framework.Skill, len(f.Skills)),
		levelByRank:     make(map[int]*framework.Level, len(f.Levels)),
		attrByCode:      make(map[string]*framework.Attribute, len(f.Attributes)),
		skillLevelByKey: make(map[string]*framework.SkillLevel, len(f.SkillLevels)),
		roleByCode:      make(map[string]*framework.Role, len(f.Roles)),
		prereqs:         make(map[string][]string),
		complements:     make(map[string][]string),
	}

	sort.Slice(snap.skills, func(i, j int) bool { return snap.skills[i].Code < snap.skills[j].Code })
	sort.Slice(snap.levels, func(i, j int) bool { return snap.levels[i].Rank < snap.levels[j].Rank })
	sort.Slice(snap.attributes, func(i, j int) bool { return snap.attributes[i].Code < snap.attributes[j].Code })

	// Requirement lists are normalized on the way in: the higher minimum
	// level subsumes the lower when a role references a skill twice.
	snap.roles = make([]framework.Role, 0, len(f.Roles))
	for _, r := range f.Roles {
		r.Requirements = framework.MergeRequirements(r.Requirements)
		snap.roles = append(snap.roles, r)
	}
	sort.Slice(snap.roles, func(i, j int) bool { return snap.roles[i].Code < snap.roles[j].Code })

	for i := range snap.skills {
		snap.skillByCode[snap.skills[i].Code] = &snap.skills[i]
	}
	for i := range snap.levels {
		snap.levelByRank[snap.levels[i].Rank] = &snap.levels[i]
	}
	for i := range snap.attributes {
		snap.attrByCode[snap.attributes[i].Code] = &snap.attributes[i]
	}
	for i := range snap.skillLevels {
		snap.skillLevelByKey[snap.skillLevels[i].Key()] = &snap.skillLevels[i]
	}
	for i := range snap.roles {
		snap.roleByCode[snap.roles[i].Code] = &snap.roles[i]
	}

	for _, p := range f.Prerequisites {
		from := framework.SkillLevelKey(p.SkillCode, p.FromLevel)
		to := framework.SkillLevelKey(p.SkillCode, p.ToLevel)
		snap.prereqs[from] = append(snap.prereqs[from], to)
	}
	for _, deps := range snap.prereqs {
		sort.Strings(deps)
	}

	for _, c := range f.Complements {
		snap.complements[c.SkillA] = append(snap.complements[c.SkillA], c.SkillB)
		snap.complements[c.SkillB] = append(snap.complements[c.SkillB], c.SkillA)
	}
	for _, cs := range snap.complements {
		sort.Strings(cs)
	}

	return snap, nil
}
