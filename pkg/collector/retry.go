package collector

import (
	"context"
	"time"
)

const (
	defaultMaxAttempts = 5
	defaultBackoff     = 2 * time.Second
	defaultMaxBackoff  = time.Minute
)

// RetryPolicy bounds how often a player's statistics are retried
type RetryPolicy struct {
	MaxAttempts int
	// Backoff is the wait after the first failure; it doubles after each
	// further failure up to MaxBackoff.
	Backoff    time.Duration
	MaxBackoff time.Duration
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = defaultMaxAttempts
	}
	if p.Backoff <= 0 {
		p.Backoff = defaultBackoff
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = defaultMaxBackoff
	}
	if p.MaxBackoff < p.Backoff {
		p.MaxBackoff = p.Backoff
	}
	return p
}

// Delay returns the wait after the given failed attempt (1-based).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	d := p.Backoff
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= p.MaxBackoff {
			return p.MaxBackoff
		}
	}
	if d > p.MaxBackoff {
		return p.MaxBackoff
	}
	return d
}

// retry runs fn until it succeeds or the attempts are used up. It returns
// the number of attempts made and the last error.
func retry(ctx context.Context, p RetryPolicy, onRetry func(attempt int, delay time.Duration, err error), fn func(context.Context) error) (int, error) {
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return attempt - 1, err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return attempt, nil
		}
		if attempt == p.MaxAttempts {
			break
		}

		delay := p.Delay(attempt)
		if onRetry != nil {
			onRetry(attempt, delay, lastErr)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return attempt, ctx.Err()
		case <-timer.C:
		}
	}
	return p.MaxAttempts, lastErr
}
