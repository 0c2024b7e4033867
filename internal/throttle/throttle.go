// Package throttle optionally rate-limits block requests so a
// download does not saturate the link to a single peer.
package throttle

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter paces block requests. A nil *Limiter is a valid no-op
// limiter: Wait returns immediately.
type Limiter struct {
	limiter *rate.Limiter
}

// New builds a Limiter allowing up to blocksPerSecond block requests
// per second, bursting up to one second's worth. A non-positive
// blocksPerSecond disables throttling.
func New(blocksPerSecond float64) *Limiter {
	if blocksPerSecond <= 0 {
		return nil
	}
	burst := int(blocksPerSecond)
	if burst < 1 {
		burst = 1
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(blocksPerSecond), burst)}
}

// Wait blocks until the limiter permits one more block request, or
// until ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}
