// Package llm abstracts the hosted language-model providers used by the
// model-backed reflection judge. Providers return schema-validated JSON so
// the scoring engine never parses free-form model output.
package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// Provider is the core abstraction for model interaction.
type Provider interface {
	// Complete sends a prompt and returns structured output. When the
	// request carries a Schema the provider uses its native structured
	// output mechanism and the response Content is the validated JSON.
	Complete(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured with.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Judge calls are single-turn: one user
	// message carrying the evidence text and criteria.
	Messages []Message

	// Schema, when set, is the JSON Schema the response must conform to.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0–1.0. Judge calls leave it at
	// zero: assessment must be as repeatable as the provider allows.
	Temperature float64
}

// Message is a single conversation message.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name for
	// OpenAI). Kebab-case, e.g. "reflection-judgement".
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the generated output: validated JSON when the request had
	// a Schema, otherwise the raw text.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens", or "error".
	StopReason string
}

// Usage tracks token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// defaultMaxTokens bounds the response when the caller leaves MaxTokens
// unset. Judgement payloads are a handful of numeric fields, so this is
// headroom rather than a target.
const defaultMaxTokens = 1024

func capTokens(n int) int {
	if n <= 0 {
		return defaultMaxTokens
	}
	return n
}

// structuredContent finalizes a completion body for the caller. Truncated
// output can never satisfy a schema, so max_tokens with a schema present
// surfaces as *ErrMaxTokensExceeded with the partial content attached;
// otherwise schema-bearing requests are validated before return.
func structuredContent(req Request, content json.RawMessage, stopReason string) (json.RawMessage, error) {
	if req.Schema == nil {
		return content, nil
	}
	if stopReason == "max_tokens" {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return content, nil
}

// retryAfterHeader reads a Retry-After response header in its seconds form.
// Zero means the provider gave no hint and backoff applies.
func retryAfterHeader(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	secs, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
