package judge

import (
	"context"
	"regexp"
	"strings"
)

// HeuristicJudge is the rule-based reflection judge: deterministic keyword
// and pattern matching, no external calls. It is deliberately lenient on
// tone and strict on evidence — free text that never mentions change or
// ownership scores low regardless of polish.
type HeuristicJudge struct{}

// NewHeuristicJudge creates the rule-based judge.
func NewHeuristicJudge() *HeuristicJudge {
	return &HeuristicJudge{}
}

func (h *HeuristicJudge) Name() string { return "heuristic" }

// Evaluate scores the text against each requested criterion.
func (h *HeuristicJudge) Evaluate(_ context.Context, text string, criteria []Criterion) (map[Criterion]float64, error) {
	lower := strings.ToLower(text)
	out := make(map[Criterion]float64, len(criteria))
	for _, c := range criteria {
		switch c {
		case CriterionTone:
			out[c] = scoreTone(lower)
		case CriterionDevelopmentAreas:
			out[c] = scoreSignals(lower, developmentSignals)
		case CriterionAccountability:
			out[c] = scoreSignals(lower, accountabilitySignals)
		case CriterionBeforeAfter:
			out[c] = scoreSignals(lower, beforeAfterSignals)
		default:
			out[c] = 0
		}
	}
	return out, nil
}

// developmentSignals mark explicit identification of areas to develop.
var developmentSignals = []*regexp.Regexp{
	regexp.MustCompile(`\bneed(ed)? to (improve|develop|learn|work on)\b`),
	regexp.MustCompile(`\b(development|improvement) area`),
	regexp.MustCompile(`\bweakness(es)?\b`),
	regexp.MustCompile(`\bgap in my\b`),
	regexp.MustCompile(`\bstill learning\b`),
}

// accountabilitySignals mark ownership of outcomes.
var accountabilitySignals = []*regexp.Regexp{
	regexp.MustCompile(`\bi (was|am) responsible\b`),
	regexp.MustCompile(`\bi took (ownership|responsibility|the lead)\b`),
	regexp.MustCompile(`\bmy (mistake|error|decision|responsibility)\b`),
	regexp.MustCompile(`\bi should have\b`),
	regexp.MustCompile(`\bi decided\b`),
}

// beforeAfterSignals mark evidenced change in capability or practice.
var beforeAfterSignals = []*regexp.Regexp{
	regexp.MustCompile(`\b(before|previously|initially|at first)\b`),
	regexp.MustCompile(`\b(now|afterwards|since then|as a result)\b`),
	regexp.MustCompile(`\bi (have )?(improved|learned|changed)\b`),
	regexp.MustCompile(`\bcompared to\b`),
}

// casualMarkers drag the tone score down.
var casualMarkers = []string{
	"lol", "gonna", "wanna", "kinda", "sorta", "dunno", "!!!", "???",
}

// scoreTone starts from full marks and deducts per casual marker.
func scoreTone(lower string) float64 {
	if strings.TrimSpace(lower) == "" {
		return 0
	}
	score := 1.0
	for _, m := range casualMarkers {
		if strings.Contains(lower, m) {
			score -= 0.25
		}
	}
	return clamp(score)
}

// scoreSignals awards credit per matched pattern group; two distinct
// matches earn full marks.
func scoreSignals(lower string, patterns []*regexp.Regexp) float64 {
	matched := 0
	for _, p := range patterns {
		if p.MatchString(lower) {
			matched++
		}
	}
	return clamp(float64(matched) / 2.0)
}
