// Package nlp adapts the model client to the translation and language
// detection ports.
package nlp

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"vyapar_server/core/agent/llm"
	"vyapar_server/pkg/logger"
)

// Adapter implements out.Translator and out.LanguageDetector. Failures here
// are never fatal to a request; callers degrade to heuristics or pass the
// original text through.
type Adapter struct {
	client  *llm.Client
	cb      *gobreaker.CircuitBreaker
	timeout time.Duration
	log     *logger.Logger
}

// New creates the NLP adapter.
func New(client *llm.Client, timeout time.Duration, log *logger.Logger) *Adapter {
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	adapterLog := log.WithField("component", "nlp")

	cbSettings := gobreaker.Settings{
		Name:        "openai-nlp",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures > 5 ||
				(counts.Requests >= 10 && failureRatio >= 0.6)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			adapterLog.Warn("circuit breaker %s: %s -> %s", name, from.String(), to.String())
		},
	}

	return &Adapter{
		client:  client,
		cb:      gobreaker.NewCircuitBreaker(cbSettings),
		timeout: timeout,
		log:     adapterLog,
	}
}

// Translate translates text between languages under the breaker.
func (a *Adapter) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	result, err := a.cb.Execute(func() (any, error) {
		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		return a.client.TranslateText(callCtx, text, sourceLang, targetLang)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// DetectLanguage identifies the dominant language of text under the breaker.
func (a *Adapter) DetectLanguage(ctx context.Context, text string) (string, error) {
	result, err := a.cb.Execute(func() (any, error) {
		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		return a.client.DetectLanguage(callCtx, text)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// Healthy reports whether the breaker is accepting requests.
func (a *Adapter) Healthy() bool {
	return a.cb.State() != gobreaker.StateOpen
}
