package ontology

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// documentSchema is the JSON Schema every framework definition document
// must satisfy before the competency-model validation even runs. It guards
// shape, not semantics: level ordering, dangling references, and cycles are
// the graph package's job.
var documentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"framework": map[string]any{"type": "string", "minLength": 1},
		"version":   map[string]any{"type": "string", "minLength": 1},
		"levels": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"rank":    map[string]any{"type": "integer"},
					"guiding": map[string]any{"type": "string"},
					"essence": map[string]any{"type": "string"},
				},
				"required":             []any{"rank"},
				"additionalProperties": false,
			},
		},
		"skills": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"code":        map[string]any{"type": "string", "minLength": 1},
					"name":        map[string]any{"type": "string"},
					"category":    map[string]any{"type": "string"},
					"subcategory": map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
					"levels": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "integer"},
					},
				},
				"required":             []any{"code", "levels"},
				"additionalProperties": false,
			},
		},
		"attributes": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"code": map[string]any{"type": "string", "minLength": 1},
					"name": map[string]any{"type": "string"},
					"level_descriptions": map[string]any{
						"type":              "object",
						"patternProperties": map[string]any{"^[0-9]+$": map[string]any{"type": "string"}},
						"additionalProperties": false,
					},
				},
				"required":             []any{"code", "level_descriptions"},
				"additionalProperties": false,
			},
		},
		"skill_levels": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"skill":       map[string]any{"type": "string", "minLength": 1},
					"level":       map[string]any{"type": "integer"},
					"description": map[string]any{"type": "string"},
				},
				"required":             []any{"skill", "level"},
				"additionalProperties": false,
			},
		},
		"roles": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"code": map[string]any{"type": "string", "minLength": 1},
					"name": map[string]any{"type": "string"},
					"requirements": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"skill":     map[string]any{"type": "string", "minLength": 1},
								"level":     map[string]any{"type": "integer"},
								"essential": map[string]any{"type": "boolean"},
							},
							"required":             []any{"skill", "level"},
							"additionalProperties": false,
						},
					},
				},
				"required":             []any{"code"},
				"additionalProperties": false,
			},
		},
		"prerequisites": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"skill": map[string]any{"type": "string", "minLength": 1},
					"from":  map[string]any{"type": "integer"},
					"to":    map[string]any{"type": "integer"},
				},
				"required":             []any{"skill", "from", "to"},
				"additionalProperties": false,
			},
		},
		"complements": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"a": map[string]any{"type": "string", "minLength": 1},
					"b": map[string]any{"type": "string", "minLength": 1},
				},
				"required":             []any{"a", "b"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"framework", "version"},
	"additionalProperties": false,
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validateShape checks a raw document against the JSON Schema.
func validateShape(raw []byte) error {
	compileOnce.Do(func() {
		defBytes, err := json.Marshal(documentSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal document schema: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(defBytes, &parsed); err != nil {
			compileErr = fmt.Errorf("parse document schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://ontology-document.json", parsed); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("schema://ontology-document.json")
	})
	if compileErr != nil {
		return compileErr
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return compiledSchema.Validate(doc)
}
