package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mhartley/compass/internal/framework"
)

// validateFacts performs all structural checks on a fact batch against the
// competency model. Returns every problem found, or nil if the batch is valid.
func validateFacts(f Facts) []string {
	var problems []string

	// Levels: unique ranks within bounds.
	levelRanks := make(map[int]bool, len(f.Levels))
	for _, l := range f.Levels {
		if !framework.ValidLevel(l.Rank) {
			problems = append(problems, fmt.Sprintf("level rank %d out of range [%d, %d]", l.Rank, framework.MinLevel, framework.MaxLevel))
			continue
		}
		if levelRanks[l.Rank] {
			problems = append(problems, fmt.Sprintf("duplicate level rank: %d", l.Rank))
		}
		levelRanks[l.Rank] = true
	}

	// Skills: unique codes, available_levels non-empty, strictly increasing,
	// every entry a defined level.
	skillCodes := make(map[string]bool, len(f.Skills))
	for _, s := range f.Skills {
		if s.Code == "" {
			problems = append(problems, "skill with empty code")
			continue
		}
		if skillCodes[s.Code] {
			problems = append(problems, fmt.Sprintf("duplicate skill code: %q", s.Code))
		}
		skillCodes[s.Code] = true

		if len(s.AvailableLevels) == 0 {
			problems = append(problems, fmt.Sprintf("skill %q has no available levels", s.Code))
			continue
		}
		prev := 0
		for _, lv := range s.AvailableLevels {
			if !framework.ValidLevel(lv) {
				problems = append(problems, fmt.Sprintf("skill %q: level %d out of range [%d, %d]", s.Code, lv, framework.MinLevel, framework.MaxLevel))
			} else if !levelRanks[lv] {
				problems = append(problems, fmt.Sprintf("skill %q: level %d is not a defined level", s.Code, lv))
			}
			if lv <= prev {
				problems = append(problems, fmt.Sprintf("skill %q: available levels must be strictly increasing, got %v", s.Code, s.AvailableLevels))
				break
			}
			prev = lv
		}
	}

	// Attributes: unique codes, per-level descriptions at defined levels.
	attrCodes := make(map[string]bool, len(f.Attributes))
	for _, a := range f.Attributes {
		if a.Code == "" {
			problems = append(problems, "attribute with empty code")
			continue
		}
		if attrCodes[a.Code] {
			problems = append(problems, fmt.Sprintf("duplicate attribute code: %q", a.Code))
		}
		attrCodes[a.Code] = true

		if len(a.LevelDescriptions) == 0 {
			problems = append(problems, fmt.Sprintf("attribute %q has no level descriptions", a.Code))
		}
		ranks := make([]int, 0, len(a.LevelDescriptions))
		for lv := range a.LevelDescriptions {
			ranks = append(ranks, lv)
		}
		sort.Ints(ranks)
		for _, lv := range ranks {
			if !framework.ValidLevel(lv) {
				problems = append(problems, fmt.Sprintf("attribute %q: level %d out of range [%d, %d]", a.Code, lv, framework.MinLevel, framework.MaxLevel))
			} else if !levelRanks[lv] {
				problems = append(problems, fmt.Sprintf("attribute %q: level %d is not a defined level", a.Code, lv))
			}
		}
	}

	// Skill levels: skill exists, level is one of the skill's available
	// levels, no duplicate pairings.
	availByCode := make(map[string]*framework.Skill, len(f.Skills))
	for i := range f.Skills {
		availByCode[f.Skills[i].Code] = &f.Skills[i]
	}
	skillLevelKeys := make(map[string]bool, len(f.SkillLevels))
	for _, sl := range f.SkillLevels {
		key := sl.Key()
		if skillLevelKeys[key] {
			problems = append(problems, fmt.Sprintf("duplicate skill level: %s", key))
		}
		skillLevelKeys[key] = true

		sk, ok := availByCode[sl.SkillCode]
		if !ok {
			problems = append(problems, fmt.Sprintf("skill level %s references nonexistent skill %q", key, sl.SkillCode))
			continue
		}
		if !sk.DefinedAt(sl.Level) {
			problems = append(problems, fmt.Sprintf("skill level %s: level %d not in skill %q available levels %v", key, sl.Level, sl.SkillCode, sk.AvailableLevels))
		}
	}

	// Roles: unique codes, requirements reference skills defined at the
	// required level. Duplicate skill references within a role are legal
	// (the higher level subsumes), so they are merged, not rejected.
	roleCodes := make(map[string]bool, len(f.Roles))
	for _, r := range f.Roles {
		if r.Code == "" {
			problems = append(problems, "role with empty code")
			continue
		}
		if roleCodes[r.Code] {
			problems = append(problems, fmt.Sprintf("duplicate role code: %q", r.Code))
		}
		roleCodes[r.Code] = true

		for _, req := range framework.MergeRequirements(r.Requirements) {
			sk, ok := availByCode[req.SkillCode]
			if !ok {
				problems = append(problems, fmt.Sprintf("role %q requires nonexistent skill %q", r.Code, req.SkillCode))
				continue
			}
			if !sk.DefinedAt(req.MinLevel) {
				problems = append(problems, fmt.Sprintf("role %q requires skill %q at level %d, not in available levels %v", r.Code, req.SkillCode, req.MinLevel, sk.AvailableLevels))
			}
		}
	}

	problems = append(problems, validatePrerequisites(f, skillLevelKeys)...)

	// Complements: both skills exist, no self-complement, no duplicate pair.
	complementPairs := make(map[string]bool, len(f.Complements))
	for _, c := range f.Complements {
		if c.SkillA == c.SkillB {
			problems = append(problems, fmt.Sprintf("skill %q marked complementary to itself", c.SkillA))
			continue
		}
		for _, code := range []string{c.SkillA, c.SkillB} {
			if !skillCodes[code] {
				problems = append(problems, fmt.Sprintf("complement (%s, %s) references nonexistent skill %q", c.SkillA, c.SkillB, code))
			}
		}
		a, b := c.SkillA, c.SkillB
		if b < a {
			a, b = b, a
		}
		pair := a + "|" + b
		if complementPairs[pair] {
			problems = append(problems, fmt.Sprintf("duplicate complement pair (%s, %s)", a, b))
		}
		complementPairs[pair] = true
	}

	return problems
}

// validatePrerequisites checks prerequisiteFor edges: both endpoints must be
// defined skill levels of the same skill with the From level strictly below
// the To level, and the edge set as a whole must be a strict partial order.
// Cycle detection uses Kahn's algorithm so malformed multi-edge input is
// reported with the offending nodes.
func validatePrerequisites(f Facts, skillLevelKeys map[string]bool) []string {
	var problems []string

	edges := make(map[string][]string, len(f.Prerequisites))
	inDegree := make(map[string]int)
	for _, p := range f.Prerequisites {
		from := framework.SkillLevelKey(p.SkillCode, p.FromLevel)
		to := framework.SkillLevelKey(p.SkillCode, p.ToLevel)
		if !skillLevelKeys[from] {
			problems = append(problems, fmt.Sprintf("prerequisite references undefined skill level %s", from))
			continue
		}
		if !skillLevelKeys[to] {
			problems = append(problems, fmt.Sprintf("prerequisite references undefined skill level %s", to))
			continue
		}
		if p.FromLevel >= p.ToLevel {
			problems = append(problems, fmt.Sprintf("prerequisite %s -> %s must go from a lower to a higher level", from, to))
		}
		edges[from] = append(edges[from], to)
		inDegree[to]++
		if _, ok := inDegree[from]; !ok {
			inDegree[from] = 0
		}
	}

	var queue []string
	for node, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, node)
		}
	}
	sort.Strings(queue)

	visited := 0
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		visited++
		for _, next := range edges[node] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if visited < len(inDegree) {
		var cycleNodes []string
		for node, deg := range inDegree {
			if deg > 0 {
				cycleNodes = append(cycleNodes, node)
			}
		}
		sort.Strings(cycleNodes)
		problems = append(problems, fmt.Sprintf("prerequisite cycle detected involving: %s", strings.Join(cycleNodes, ", ")))
	}

	return problems
}
