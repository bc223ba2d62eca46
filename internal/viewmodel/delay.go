package viewmodel

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Delay is the scheduling policy applied before the bulk update call.
type Delay interface {
	Wait(ctx context.Context) error
}

// DelayFunc adapts a function to Delay.
type DelayFunc func(ctx context.Context) error

// Wait implements Delay.
func (f DelayFunc) Wait(ctx context.Context) error { return f(ctx) }

// NoDelay returns a policy that never waits.
func NoDelay() Delay {
	return DelayFunc(func(ctx context.Context) error { return ctx.Err() })
}

// FixedDelay waits d before each update, or until ctx is done.
func FixedDelay(d time.Duration) Delay {
	if d <= 0 {
		return NoDelay()
	}
	return DelayFunc(func(ctx context.Context) error {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	})
}

// RateLimitDelay spaces updates according to limiter. A nil limiter never waits.
func RateLimitDelay(limiter *rate.Limiter) Delay {
	if limiter == nil {
		return NoDelay()
	}
	return DelayFunc(limiter.Wait)
}
