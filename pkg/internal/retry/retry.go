// Package retry implements exponential backoff retry, adapted from the
// teacher's pkg/internal/retry/retry.go. Unlike the teacher's generic
// ShouldRetry func(error) bool hook, retryability here is decided by the
// closed error taxonomy's own (*errors.LLMError).Retryable(), and a
// RateLimit error's RetryAfter — when the vendor supplied one — is honored
// as the wait duration instead of the computed exponential backoff.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	llmerrors "github.com/quillhq/llmkit/pkg/provider/errors"
)

// Config controls retry timing.
type Config struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	Jitter       bool
}

// DefaultConfig returns sensible retry defaults: 3 retries, 1s initial
// delay, 60s cap, doubling backoff with jitter.
func DefaultConfig() Config {
	return Config{
		MaxRetries:   3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     60 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	}
}

// Func is a function that can be retried.
type Func func(ctx context.Context) error

// Do executes fn, retrying on errors that are retryable per
// shouldRetry. An *errors.LLMError with a
// non-nil RetryAfter sets the next wait directly rather than going through
// the exponential schedule — the vendor told us exactly how long to wait.
func Do(ctx context.Context, cfg Config, fn Func) error {
	if cfg.MaxRetries == 0 {
		cfg = DefaultConfig()
	}

	var lastErr error
	attempt := 0

	for attempt <= cfg.MaxRetries {
		select {
		case <-ctx.Done():
			if lastErr != nil {
				return fmt.Errorf("context cancelled after %d attempts: %w", attempt, lastErr)
			}
			return ctx.Err()
		default:
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}

		lastErr = err
		attempt++

		if !shouldRetry(err) {
			return fmt.Errorf("non-retryable error after %d attempts: %w", attempt, err)
		}

		if attempt > cfg.MaxRetries {
			return fmt.Errorf("max retries (%d) exceeded: %w", cfg.MaxRetries, err)
		}

		delay := nextDelay(attempt, cfg, err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("context cancelled after %d attempts: %w", attempt, lastErr)
		case <-timer.C:
		}
	}

	return fmt.Errorf("max retries (%d) exceeded: %w", cfg.MaxRetries, lastErr)
}

// shouldRetry consults the closed error taxonomy when err is (or wraps) an
// *errors.LLMError, otherwise retries anything except context cancellation.
func shouldRetry(err error) bool {
	var llmErr *llmerrors.LLMError
	if errors.As(err, &llmErr) {
		return llmErr.Retryable()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// nextDelay honors a rate-limit error's RetryAfter when present, otherwise
// computes exponential backoff with optional jitter.
func nextDelay(attempt int, cfg Config, err error) time.Duration {
	var llmErr *llmerrors.LLMError
	if errors.As(err, &llmErr) && llmErr.Kind == llmerrors.KindRateLimit && llmErr.RetryAfter != nil {
		return *llmErr.RetryAfter
	}

	delay := float64(cfg.InitialDelay) * math.Pow(cfg.Multiplier, float64(attempt-1))
	if delay > float64(cfg.MaxDelay) {
		delay = float64(cfg.MaxDelay)
	}
	if cfg.Jitter {
		delay += delay * 0.25 * rand.Float64()
	}
	return time.Duration(delay)
}

// WithExponentialBackoff runs fn under DefaultConfig().
func WithExponentialBackoff(ctx context.Context, fn Func) error {
	return Do(ctx, DefaultConfig(), fn)
}

// WithCustomBackoff runs fn with explicit retry/backoff parameters.
func WithCustomBackoff(ctx context.Context, maxRetries int, initialDelay, maxDelay time.Duration, fn Func) error {
	return Do(ctx, Config{
		MaxRetries:   maxRetries,
		InitialDelay: initialDelay,
		MaxDelay:     maxDelay,
		Multiplier:   2.0,
		Jitter:       true,
	}, fn)
}
