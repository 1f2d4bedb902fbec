package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/mhartley/compass/internal/llm"
)

// ModelJudgeConfig holds configuration for the model-backed judge.
type ModelJudgeConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultModelJudgeConfig returns sensible defaults. Temperature stays at
// zero: scoring must be as repeatable as the provider allows.
func DefaultModelJudgeConfig() ModelJudgeConfig {
	return ModelJudgeConfig{
		MaxTokens:   256,
		Temperature: 0,
	}
}

// ModelJudge evaluates reflection criteria with a hosted language model via
// structured output. Retry behavior lives in the provider stack; the judge
// itself makes exactly one call per Evaluate.
type ModelJudge struct {
	provider llm.Provider
	cfg      ModelJudgeConfig
}

// NewModelJudge creates a model-backed judge.
func NewModelJudge(provider llm.Provider, cfg ModelJudgeConfig) *ModelJudge {
	return &ModelJudge{provider: provider, cfg: cfg}
}

func (m *ModelJudge) Name() string { return "model" }

// judgementOutput is the raw model response.
type judgementOutput struct {
	Scores map[string]float64 `json:"scores"`
}

// Evaluate sends the evidence text and criteria to the model and maps the
// structured response back onto the requested criteria.
func (m *ModelJudge) Evaluate(ctx context.Context, text string, criteria []Criterion) (map[Criterion]float64, error) {
	ctx = llm.WithPurpose(ctx, "reflection-judgement")

	userMsg, err := buildJudgementMessage(text, criteria)
	if err != nil {
		return nil, fmt.Errorf("build judgement prompt: %w", err)
	}

	resp, err := m.provider.Complete(ctx, llm.Request{
		System: judgementSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      judgementSchema,
		MaxTokens:   m.cfg.MaxTokens,
		Temperature: m.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("model judgement failed: %w", err)
	}

	var raw judgementOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse judgement response: %w", err)
	}

	out := make(map[Criterion]float64, len(criteria))
	for _, c := range criteria {
		score, ok := raw.Scores[string(c)]
		if !ok {
			return nil, fmt.Errorf("judgement response missing criterion %q", c)
		}
		out[c] = clamp(score)
	}
	return out, nil
}

const judgementSystemPrompt = `You are an assessor scoring written professional-development evidence against fixed qualitative criteria.

Instructions:
- Score each listed criterion between 0.0 (no evidence) and 1.0 (clear, repeated evidence).
- Judge only what the text contains. Do not reward length or polish on its own.
- Return a score for every criterion listed, keyed exactly by its identifier.`

var judgementUserTemplate = template.Must(template.New("judgement").Parse(`Criteria:
{{range .Criteria}}- {{.}}
{{end}}
Evidence text:
{{.Text}}`))

func buildJudgementMessage(text string, criteria []Criterion) (string, error) {
	var buf bytes.Buffer
	err := judgementUserTemplate.Execute(&buf, struct {
		Criteria []Criterion
		Text     string
	}{criteria, text})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// judgementSchema constrains the model response to per-criterion numeric
// scores.
var judgementSchema = &llm.Schema{
	Name:        "reflection-judgement",
	Description: "Per-criterion scores for written professional-development evidence",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"scores": map[string]any{
				"type":        "object",
				"description": "Map of criterion identifier to a score between 0.0 and 1.0",
				"properties": map[string]any{
					string(CriterionTone):             map[string]any{"type": "number"},
					string(CriterionDevelopmentAreas): map[string]any{"type": "number"},
					string(CriterionAccountability):   map[string]any{"type": "number"},
					string(CriterionBeforeAfter):      map[string]any{"type": "number"},
				},
				"required": []any{
					string(CriterionTone),
					string(CriterionDevelopmentAreas),
					string(CriterionAccountability),
					string(CriterionBeforeAfter),
				},
				"additionalProperties": false,
			},
		},
		"required":             []any{"scores"},
		"additionalProperties": false,
	},
}
