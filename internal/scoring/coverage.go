package scoring

import "sort"

// computeCoverage derives the structural coverage metrics for a portfolio
// against the rubric's component set. Entries tagged to components outside
// the rubric contribute nothing.
func computeCoverage(rubric Rubric, entries []PortfolioEntry, comments []SupervisorComment) CoverageMetrics {
	components := make(map[string]bool, len(rubric.Components))
	for _, c := range rubric.Components {
		components[c] = true
	}

	// Entry IDs corroborated by at least one accuracy-confirmed comment.
	corroborated := make(map[string]bool)
	for _, c := range comments {
		if !c.AccuracyConfirmed {
			continue
		}
		for _, id := range c.EntryIDs {
			corroborated[id] = true
		}
	}

	entriesByComponent := make(map[string]int)
	corroboratedByComponent := make(map[string]int)
	verified := 0
	for _, e := range entries {
		if e.SupervisorVerified {
			verified++
		}
		if !components[e.Component] {
			continue
		}
		entriesByComponent[e.Component]++
		if corroborated[e.ID] {
			corroboratedByComponent[e.Component]++
		}
	}

	var covered, uncovered []string
	multi := 0
	for _, c := range rubric.Components {
		if entriesByComponent[c] > 0 {
			covered = append(covered, c)
		} else {
			uncovered = append(uncovered, c)
		}
		// A component counts for the multiple-entry signal when it has at
		// least two entries, each independently corroborated.
		if entriesByComponent[c] >= 2 && corroboratedByComponent[c] >= 2 {
			multi++
		}
	}
	sort.Strings(covered)
	sort.Strings(uncovered)

	total := float64(len(rubric.Components))
	m := CoverageMetrics{
		CoveragePct:   float64(len(covered)) / total * 100,
		MultiEntryPct: float64(multi) / total * 100,
		Covered:       covered,
		Uncovered:     uncovered,
	}
	if len(entries) > 0 {
		m.VerifiedPct = float64(verified) / float64(len(entries)) * 100
	}
	return m
}

// computeResponsibility tallies the generic-responsibility checklist over
// all entries and applies the three gate thresholds.
func computeResponsibility(rubric ResponsibilityRubric, entries []PortfolioEntry) ResponsibilityCheck {
	known := make(map[string]bool, len(rubric.Checklist))
	core := make(map[string]bool)
	for _, item := range rubric.Checklist {
		known[item.ID] = true
		if item.Core {
			core[item.ID] = true
		}
	}

	distinct := make(map[string]bool)
	var check ResponsibilityCheck
	for _, e := range entries {
		for _, ch := range e.Characteristics {
			if !known[ch] {
				continue
			}
			distinct[ch] = true
			check.TotalInstances++
			if core[ch] {
				check.CoreInstances++
			}
		}
	}
	check.CoreCount = len(distinct)
	check.Passed = check.CoreCount >= rubric.MinDistinct &&
		check.TotalInstances >= rubric.MinInstances &&
		check.CoreInstances >= rubric.MinCoreInstances
	return check
}
