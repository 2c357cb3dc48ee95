// Package generation adapts the OpenAI-backed model client to the
// generation ports, with circuit breaking and per-call timeouts.
package generation

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"vyapar_server/core/agent/llm"
	"vyapar_server/pkg/logger"
)

// =============================================================================
// OpenAI Generation Adapter
// =============================================================================

// Adapter implements out.TextGenerator and out.Embedder over the shared
// model client. Both call paths share one circuit breaker so a failing
// upstream trips them together.
type Adapter struct {
	client       *llm.Client
	cb           *gobreaker.CircuitBreaker
	genTimeout   time.Duration
	embedTimeout time.Duration
	log          *logger.Logger
}

// Config holds generation adapter settings.
type Config struct {
	GenerateTimeout time.Duration
	EmbedTimeout    time.Duration
}

// New creates the generation adapter.
func New(client *llm.Client, cfg Config, log *logger.Logger) *Adapter {
	if cfg.GenerateTimeout == 0 {
		cfg.GenerateTimeout = 30 * time.Second
	}
	if cfg.EmbedTimeout == 0 {
		cfg.EmbedTimeout = 10 * time.Second
	}

	adapterLog := log.WithField("component", "generation")

	cbSettings := gobreaker.Settings{
		Name:        "openai-generation",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip on 5+ consecutive failures, or a 60%+ failure ratio
			// once at least 10 requests have been seen.
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures > 5 ||
				(counts.Requests >= 10 && failureRatio >= 0.6)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			adapterLog.Warn("circuit breaker %s: %s -> %s", name, from.String(), to.String())
		},
	}

	return &Adapter{
		client:       client,
		cb:           gobreaker.NewCircuitBreaker(cbSettings),
		genTimeout:   cfg.GenerateTimeout,
		embedTimeout: cfg.EmbedTimeout,
		log:          adapterLog,
	}
}

// Generate runs a prompt through the model under the breaker.
func (a *Adapter) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	result, err := a.cb.Execute(func() (any, error) {
		callCtx, cancel := context.WithTimeout(ctx, a.genTimeout)
		defer cancel()
		return a.client.CompleteWithSystem(callCtx, systemInstruction, prompt)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// Embed produces the reduced product embedding under the breaker.
func (a *Adapter) Embed(ctx context.Context, text string) ([]float64, error) {
	result, err := a.cb.Execute(func() (any, error) {
		callCtx, cancel := context.WithTimeout(ctx, a.embedTimeout)
		defer cancel()
		return a.client.Embedding(callCtx, text)
	})
	if err != nil {
		return nil, err
	}
	return result.([]float64), nil
}

// Healthy reports whether the breaker is accepting requests.
func (a *Adapter) Healthy() bool {
	return a.cb.State() != gobreaker.StateOpen
}
