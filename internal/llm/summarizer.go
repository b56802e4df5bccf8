package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/ppiankov/fnoltriage/internal/model"
)

// Summarizer wraps a provider with rate limiting. In batch mode the LLM
// endpoint is the only outbound traffic, so a single limiter is enough.
type Summarizer struct {
	provider Provider
	limiter  *rate.Limiter
	config   Config
}

// NewSummarizer creates a summarizer from configuration. An empty provider
// name yields a disabled summarizer, not an error.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}

	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &Summarizer{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), 1),
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s.provider != nil
}

// Summarize generates the narrative for a finished result. Routing is done
// by the time this runs; the narrative cannot change the decision.
func (s *Summarizer) Summarize(ctx context.Context, result model.ProcessingResult) (string, error) {
	if s.provider == nil {
		return "", nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Result:    result,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", s.provider.Name(), err)
	}

	return resp.Summary, nil
}
