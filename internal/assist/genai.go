package assist

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// APIKeyEnvVars are consulted in order when no key is configured.
var APIKeyEnvVars = []string{"GEMINI_API_KEY", "API_KEY"}

// ResolveAPIKey returns configured, or the first non-empty key from the
// environment.
func ResolveAPIKey(configured string) string {
	if configured != "" {
		return configured
	}
	for _, name := range APIKeyEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// GenAI generates text with the Gemini API.
type GenAI struct {
	client *genai.Client
	model  string
}

// NewGenAI creates a Gemini-backed generator.
func NewGenAI(ctx context.Context, apiKey, model string) (*GenAI, error) {
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GenAI{client: client, model: model}, nil
}

// Generate sends prompt as a single user turn.
func (g *GenAI) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("generate content: empty response")
	}
	return text, nil
}

// FromConfig builds an Assistant from settings. Without an API key the
// assistant is disabled. A client construction failure also disables it,
// with a warning.
func FromConfig(ctx context.Context, apiKey, model string, opts ...Option) *Assistant {
	o := options{}
	for _, fn := range opts {
		fn(&o)
	}
	a := New(nil, o.timeout, o.log, o.metrics)

	key := ResolveAPIKey(apiKey)
	if key == "" {
		return a
	}
	gen, err := NewGenAI(ctx, key, model)
	if err != nil {
		a.log.Warn("description assist unavailable", map[string]any{"error": err.Error()})
		return a
	}
	a.gen = gen
	return a
}
