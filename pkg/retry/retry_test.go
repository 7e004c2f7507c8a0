package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niksmo/storefront/pkg/retry"
)

var errTemp = errors.New("temporary")

func fastConfig(attempts int) retry.RetryConfig {
	return retry.RetryConfig{
		MaxAttempts: attempts,
		Backoff:     retry.ConstantBackoff(time.Millisecond),
	}
}

func TestDo(t *testing.T) {
	t.Run("SucceedsFirstTry", func(t *testing.T) {
		calls := 0
		err := retry.Do(t.Context(), fastConfig(3), func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("RecoversWithinBudget", func(t *testing.T) {
		calls := 0
		err := retry.Do(t.Context(), fastConfig(3), func() error {
			calls++
			if calls < 3 {
				return errTemp
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustsAttempts", func(t *testing.T) {
		calls := 0
		err := retry.Do(t.Context(), fastConfig(3), func() error {
			calls++
			return errTemp
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errTemp)
		assert.Equal(t, 3, calls)
	})

	t.Run("ShouldRetryStopsEarly", func(t *testing.T) {
		cfg := fastConfig(3)
		cfg.ShouldRetry = func(error) bool { return false }

		calls := 0
		err := retry.Do(t.Context(), cfg, func() error {
			calls++
			return errTemp
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := retry.Do(ctx, fastConfig(3), func() error { return nil })
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDoWithResult(t *testing.T) {
	calls := 0
	got, err := retry.DoWithResult(t.Context(), fastConfig(3),
		func() (string, error) {
			calls++
			if calls < 2 {
				return "", errTemp
			}
			return "done", nil
		})
	require.NoError(t, err)
	assert.Equal(t, "done", got)
	assert.Equal(t, 2, calls)
}

func TestExponentialBackoff(t *testing.T) {
	backoff := retry.ExponentialBackoff(time.Second)

	for attempt := 1; attempt <= 3; attempt++ {
		base := time.Duration(1<<attempt) * time.Second
		wait := backoff(attempt)
		assert.GreaterOrEqual(t, wait, base)
		assert.Less(t, wait, base+base/2+time.Millisecond)
	}
}
