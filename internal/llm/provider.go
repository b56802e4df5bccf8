// Package llm generates an optional plain-language narrative for a routing
// decision. The narrative is produced after routing from the already-final
// result and is never an input to extraction or routing.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/fnoltriage/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a narrative for the processing result
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for narrative generation
type SummarizeRequest struct {
	// Result is the finished processing result to narrate
	Result model.ProcessingResult

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the generated narrative
type SummarizeResponse struct {
	// Summary is the narrative text
	Summary string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// RequestsPerSecond throttles calls in batch mode
	RequestsPerSecond float64
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:          "", // Disabled by default
		Timeout:           30,
		MaxTokens:         600,
		RequestsPerSecond: 1,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(cfg model.LLMConfig) Config {
	return Config{
		Provider:          cfg.Provider,
		Model:             cfg.Model,
		APIKey:            cfg.APIKey,
		BaseURL:           cfg.BaseURL,
		Timeout:           cfg.TimeoutSeconds,
		MaxTokens:         cfg.MaxTokens,
		RequestsPerSecond: cfg.RequestsPerSecond,
	}
}

// BuildPrompt constructs the default narrative prompt. The rules pin the
// model to the extracted values: it restates the decision, it does not
// second-guess it.
func BuildPrompt(result model.ProcessingResult) string {
	record := result.ExtractedFields

	var fields []string
	if record.Policy.Number != "" {
		fields = append(fields, "policy number "+record.Policy.Number)
	}
	if record.Policy.PolicyholderName != "" {
		fields = append(fields, "policyholder "+record.Policy.PolicyholderName)
	}
	if record.Incident.Date != "" {
		fields = append(fields, "incident date "+record.Incident.Date)
	}
	if record.Incident.Location != "" {
		fields = append(fields, "incident location "+record.Incident.Location)
	}
	if record.Asset.EstimatedDamage != nil {
		fields = append(fields, "estimated damage $"+record.Asset.EstimatedDamage.StringFixed(2))
	}
	fieldSummary := "none"
	if len(fields) > 0 {
		fieldSummary = strings.Join(fields, "; ")
	}

	flags := "none"
	if len(result.Flags) > 0 {
		parts := make([]string, len(result.Flags))
		for i, f := range result.Flags {
			parts[i] = string(f)
		}
		flags = strings.Join(parts, ", ")
	}

	missing := "none"
	if len(result.MissingFields) > 0 {
		missing = strings.Join(result.MissingFields, ", ")
	}

	return fmt.Sprintf(`You are writing a short briefing note for an insurance claims adjuster about an automatically triaged First Notice of Loss.

CRITICAL RULES:
1. The routing decision is final. Do NOT suggest a different route.
2. Only mention field values listed below. Do NOT invent policy numbers, names, dates, or amounts.
3. If a field is listed as missing, say it is missing - do not guess it.
4. Three to five sentences, plain language, no markdown.

Decision:
- Route: %s
- Reasoning: %s
- Flags: %s
- Claim type: %s
- Missing mandatory fields: %s

Extracted fields: %s
`, result.RecommendedRoute, result.Reasoning, flags, record.ClaimType, missing, fieldSummary)
}
