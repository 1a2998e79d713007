package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRetryPolicyDelay(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 6, Backoff: time.Second, MaxBackoff: 5 * time.Second}.withDefaults()

	var delays []time.Duration
	for attempt := 1; attempt <= 5; attempt++ {
		delays = append(delays, p.Delay(attempt))
	}
	require.Equal(t, []time.Duration{
		time.Second, 2 * time.Second, 4 * time.Second, 5 * time.Second, 5 * time.Second,
	}, delays)
}

func TestRetryPolicyDefaults(t *testing.T) {
	p := RetryPolicy{}.withDefaults()
	require.Equal(t, defaultMaxAttempts, p.MaxAttempts)
	require.Equal(t, defaultBackoff, p.Backoff)
	require.Equal(t, defaultMaxBackoff, p.MaxBackoff)

	p = RetryPolicy{Backoff: 2 * time.Minute}.withDefaults()
	require.Equal(t, 2*time.Minute, p.MaxBackoff)
}

func TestRetryStopsAfterMaxAttempts(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond, MaxBackoff: time.Millisecond}

	calls := 0
	var retried []int
	attempts, err := retry(context.Background(), p,
		func(attempt int, _ time.Duration, _ error) { retried = append(retried, attempt) },
		func(context.Context) error {
			calls++
			return errors.New("boom")
		})

	require.EqualError(t, err, "boom")
	require.Equal(t, 3, attempts)
	require.Equal(t, 3, calls)
	require.Equal(t, []int{1, 2}, retried)
}

func TestRetrySucceeds(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 5, Backoff: time.Millisecond, MaxBackoff: time.Millisecond}

	calls := 0
	attempts, err := retry(context.Background(), p, nil, func(context.Context) error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, attempts)
}
