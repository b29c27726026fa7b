package provider

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"codeberg.org/vibecode/server/internal/logger"
)

const modelName = "vibecode-mock-1"

// MockProvider produces deterministic component code from a template
// table. It simulates the latency and rate limits of a real model
// backend so callers exercise the same cancellation and backpressure
// paths they would in production.
type MockProvider struct {
	cfg     Config
	limiter *rate.Limiter
}

func New(cfg Config) *MockProvider {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultConfig().RequestsPerSecond
	}

	if cfg.Burst <= 0 {
		cfg.Burst = DefaultConfig().Burst
	}

	return &MockProvider{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

// Generate produces code for an enriched request. Identical input yields
// identical output. Blocks for the configured simulated latency and
// respects context cancellation throughout.
func (p *MockProvider) Generate(ctx context.Context, enriched EnrichedContext) (*Generation, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	if p.cfg.Latency > 0 {
		timer := time.NewTimer(p.cfg.Latency)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, fmt.Errorf("generation cancelled: %w", ctx.Err())
		}
	}

	tmpl := selectTemplate(enriched)

	code, err := tmpl.render(enriched)
	if err != nil {
		return nil, fmt.Errorf("render template %s: %w", tmpl.name, err)
	}

	logger.Debug("generated component",
		"template", tmpl.name,
		"component_kind", enriched.Analysis.Entities.ComponentKind,
		"model", modelName,
	)

	return &Generation{
		Code: GeneratedCode{
			Code:          code,
			Language:      "tsx",
			ComponentName: tmpl.componentName,
		},
		Suggestions: tmpl.suggestions,
		Model:       modelName,
	}, nil
}
