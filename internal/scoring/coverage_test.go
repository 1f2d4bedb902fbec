package scoring

import (
	"math"
	"testing"
)

func twoComponentRubric() Rubric {
	r := DefaultRubric()
	r.Components = []string{"delivery", "design"}
	return r
}

func TestComputeCoverage_PartialCoverage(t *testing.T) {
	entries := []PortfolioEntry{
		{ID: "e1", Component: "delivery"},
		{ID: "e2", Component: "delivery", SupervisorVerified: true},
	}
	m := computeCoverage(twoComponentRubric(), entries, nil)

	if m.CoveragePct != 50.0 {
		t.Errorf("got coverage %g, want 50", m.CoveragePct)
	}
	if m.VerifiedPct != 50.0 {
		t.Errorf("got verified %g, want 50", m.VerifiedPct)
	}
	if len(m.Covered) != 1 || m.Covered[0] != "delivery" {
		t.Errorf("got covered %v, want [delivery]", m.Covered)
	}
	if len(m.Uncovered) != 1 || m.Uncovered[0] != "design" {
		t.Errorf("got uncovered %v, want [design]", m.Uncovered)
	}
}

func TestComputeCoverage_MultiEntryNeedsBothCorroborated(t *testing.T) {
	entries := []PortfolioEntry{
		{ID: "e1", Component: "delivery"},
		{ID: "e2", Component: "delivery"},
	}

	// Only one of the two entries is accuracy-confirmed: no multi-entry
	// credit yet.
	comments := []SupervisorComment{
		{ID: "c1", EntryIDs: []string{"e1"}, AccuracyConfirmed: true},
		{ID: "c2", EntryIDs: []string{"e2"}},
	}
	m := computeCoverage(twoComponentRubric(), entries, comments)
	if m.MultiEntryPct != 0 {
		t.Errorf("got multi-entry %g, want 0", m.MultiEntryPct)
	}

	comments[1].AccuracyConfirmed = true
	m = computeCoverage(twoComponentRubric(), entries, comments)
	if m.MultiEntryPct != 50.0 {
		t.Errorf("got multi-entry %g, want 50", m.MultiEntryPct)
	}
}

func TestComputeCoverage_UnknownComponentIgnored(t *testing.T) {
	entries := []PortfolioEntry{
		{ID: "e1", Component: "mystery"},
	}
	m := computeCoverage(twoComponentRubric(), entries, nil)
	if m.CoveragePct != 0 {
		t.Errorf("got coverage %g, want 0 for unknown component", m.CoveragePct)
	}
}

func TestComputeCoverage_ThirdsDoNotLoseEntries(t *testing.T) {
	r := DefaultRubric()
	r.Components = []string{"a", "b", "c"}
	entries := []PortfolioEntry{
		{ID: "e1", Component: "a"},
	}
	m := computeCoverage(r, entries, nil)
	if math.Abs(m.CoveragePct-100.0/3) > 1e-9 {
		t.Errorf("got coverage %g, want one third", m.CoveragePct)
	}
}

func TestComputeResponsibility_Thresholds(t *testing.T) {
	rubric := DefaultRubric().Responsibility

	entry := func(chars ...string) PortfolioEntry {
		return PortfolioEntry{Characteristics: chars}
	}

	// 13 distinct (7 core + 6 non-core), 44 instances, 26 core instances:
	// exactly at every threshold.
	var entries []PortfolioEntry
	entries = append(entries, entry(coreChecklist...))             // 7 distinct core
	entries = append(entries, entry(nonCoreChecklist[:6]...))      // 6 distinct non-core
	for range 19 {
		entries = append(entries, entry("communication"))          // core instances
	}
	for range 12 {
		entries = append(entries, entry("initiative"))             // non-core instances
	}

	check := computeResponsibility(rubric, entries)
	if check.CoreCount != 13 {
		t.Errorf("got %d distinct, want 13", check.CoreCount)
	}
	if check.TotalInstances != 44 {
		t.Errorf("got %d instances, want 44", check.TotalInstances)
	}
	if check.CoreInstances != 26 {
		t.Errorf("got %d core instances, want 26", check.CoreInstances)
	}
	if !check.Passed {
		t.Error("expected gate passed exactly at every threshold")
	}
}

func TestComputeResponsibility_OneShortFails(t *testing.T) {
	rubric := DefaultRubric().Responsibility

	// 12 distinct items, plenty of instances.
	var entries []PortfolioEntry
	items := append(append([]string{}, coreChecklist...), nonCoreChecklist[:5]...)
	for range 5 {
		entries = append(entries, PortfolioEntry{Characteristics: items})
	}

	check := computeResponsibility(rubric, entries)
	if check.CoreCount != 12 {
		t.Fatalf("got %d distinct, want 12", check.CoreCount)
	}
	if check.Passed {
		t.Error("12 distinct items must not pass a 13-item gate")
	}
}

func TestComputeResponsibility_UnknownCharacteristicIgnored(t *testing.T) {
	rubric := DefaultRubric().Responsibility

	check := computeResponsibility(rubric, []PortfolioEntry{
		{Characteristics: []string{"not-a-real-item", "communication"}},
	})
	if check.CoreCount != 1 || check.TotalInstances != 1 {
		t.Errorf("got %+v, want only the known characteristic counted", check)
	}
}
