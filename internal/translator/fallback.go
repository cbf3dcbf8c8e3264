package translator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"portfolio/internal/logging"
	"portfolio/internal/port"
)

// circuitState tracks rate-limit backoff for a single provider.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackTranslator tries providers in order, skipping those with open circuits.
// Each provider is called at most once per Translate call.
type FallbackTranslator struct {
	translators []port.Translator
	circuits    []*circuitState
	names       []string
	now         func() time.Time
}

// NewFallbackTranslator creates a FallbackTranslator from an ordered list of providers and their names.
func NewFallbackTranslator(translators []port.Translator, names []string) *FallbackTranslator {
	circuits := make([]*circuitState, len(translators))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackTranslator{
		translators: translators,
		circuits:    circuits,
		names:       names,
		now:         time.Now,
	}
}

func (f *FallbackTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	if IsBlank(text) {
		return text, nil
	}

	logger := logging.FromContext(ctx).With(logging.FieldComponent, "translator.fallback")
	now := f.now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	for i, t := range f.translators {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			logger.Debug("skipping provider", logging.FieldProvider, f.names[i], "until", resetAt.Format(time.RFC3339))
			earliestReset = earlier(earliestReset, resetAt)
			continue
		}

		out, err := t.Translate(ctx, text, source, target)
		if err == nil {
			return out, nil
		}

		logger.Warn("provider failed", logging.FieldProvider, f.names[i], logging.FieldError, err)
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].open(resetAt)
			earliestReset = earlier(earliestReset, resetAt)
		} else {
			allRateLimited = false
		}
	}

	// A nil lastErr means every circuit was already open and no provider was called.
	// Callers treat that the same as a fresh 429 from each of them.
	if lastErr == nil || allRateLimited {
		retryAfter := earliestReset.Sub(now)
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return "", NewRateLimitError("all", fmt.Errorf("all translation providers rate limited"), int(retryAfter.Seconds()))
	}

	return "", fmt.Errorf("all translation providers failed: %w", lastErr)
}

// earlier returns the sooner of two reset times, treating zero as unset.
func earlier(cur, next time.Time) time.Time {
	if cur.IsZero() || next.Before(cur) {
		return next
	}
	return cur
}
