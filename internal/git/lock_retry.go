// Package git provides the git operations lint-staged depends on.
// This file implements retry logic for git lock file errors.
package git

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// LockRetryConfig configures retry behavior for index.lock contention.
// Tasks running concurrently may stage files at the same moment, and git
// refuses to touch the index while another process holds index.lock.
type LockRetryConfig struct {
	// MaxAttempts is the maximum number of attempts (default: 5).
	MaxAttempts int
	// InitialDelay is the delay before the first retry (default: 100ms).
	InitialDelay time.Duration
	// MaxDelay caps the delay between retries (default: 2s).
	MaxDelay time.Duration
	// Multiplier grows the delay after each attempt (default: 2.0).
	Multiplier float64
}

// DefaultLockRetryConfig returns defaults tuned for index.lock, which git
// releases within milliseconds in the common case.
func DefaultLockRetryConfig() LockRetryConfig {
	return LockRetryConfig{
		MaxAttempts:  5,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
	}
}

// nextDelay returns the delay following d, capped at MaxDelay.
func (c LockRetryConfig) nextDelay(d time.Duration) time.Duration {
	next := time.Duration(float64(d) * c.Multiplier)
	if next > c.MaxDelay {
		return c.MaxDelay
	}
	return next
}

// RunWithLockRetry executes a git operation, retrying with exponential
// backoff while it fails with a lock file error. Any other error is
// returned immediately.
func RunWithLockRetry[R any](
	ctx context.Context,
	config LockRetryConfig,
	logger zerolog.Logger,
	operation func(ctx context.Context) (R, error),
) (R, error) {
	var zero R
	var lastErr error
	delay := config.InitialDelay

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := operation(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !MatchesLockFileError(err.Error()) {
			return zero, err
		}

		logger.Debug().
			Int("attempt", attempt).
			Int("max_attempts", config.MaxAttempts).
			Dur("delay", delay).
			Err(err).
			Msg("git index locked, retrying")

		if attempt == config.MaxAttempts {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
		delay = config.nextDelay(delay)
	}

	logger.Warn().
		Int("attempts", config.MaxAttempts).
		Err(lastErr).
		Msg("git index still locked, giving up")

	return zero, lastErr
}

// RunWithLockRetryVoid is RunWithLockRetry for operations without a result.
func RunWithLockRetryVoid(
	ctx context.Context,
	config LockRetryConfig,
	logger zerolog.Logger,
	operation func(ctx context.Context) error,
) error {
	_, err := RunWithLockRetry(ctx, config, logger, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, operation(ctx)
	})
	return err
}
