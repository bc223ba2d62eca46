package viewmodel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestFixedDelay(t *testing.T) {
	start := time.Now()
	require.NoError(t, FixedDelay(10*time.Millisecond).Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)

	assert.NoError(t, FixedDelay(0).Wait(context.Background()))
}

func TestFixedDelay_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, FixedDelay(time.Minute).Wait(ctx), context.Canceled)
}

func TestRateLimitDelay(t *testing.T) {
	d := RateLimitDelay(rate.NewLimiter(rate.Inf, 1))
	for range 3 {
		require.NoError(t, d.Wait(context.Background()))
	}
}

func TestNoDelay(t *testing.T) {
	assert.NoError(t, NoDelay().Wait(context.Background()))
}

func TestRateLimitDelay_NilLimiter(t *testing.T) {
	d := RateLimitDelay(nil)
	assert.NotPanics(t, func() {
		assert.NoError(t, d.Wait(context.Background()))
	})
}
