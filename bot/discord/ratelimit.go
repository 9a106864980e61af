package discord

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// RateLimiter applies a per-channel send budget on top of discordgo's own
// global bucket handling, so one busy channel cannot starve the rest.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(msgPerSec float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(msgPerSec),
		burst:    burst,
	}
}

func (rl *RateLimiter) getLimiter(channelID string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[channelID]
	rl.mu.RUnlock()

	if exists {
		return limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, exists := rl.limiters[channelID]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters[channelID] = limiter
	return limiter
}

// Wait blocks until the channel's budget admits one more send.
func (rl *RateLimiter) Wait(ctx context.Context, channelID string) error {
	return rl.getLimiter(channelID).Wait(ctx)
}

func retryAfter(err error) (time.Duration, bool) {
	var rlErr *discordgo.RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr.RetryAfter, true
	}
	return 0, false
}

// WithRetry runs fn under the channel's budget, honoring API rate limit
// responses a bounded number of times before giving up.
func WithRetry(ctx context.Context, rl *RateLimiter, channelID string, fn func() error) error {
	if fn == nil {
		return nil
	}
	if rl == nil {
		return fn()
	}
	const maxRetries = 3
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if waitErr := rl.Wait(ctx, channelID); waitErr != nil {
			return waitErr
		}

		err = fn()
		if err == nil {
			return nil
		}

		delay, shouldRetry := retryAfter(err)
		if !shouldRetry {
			return err
		}

		if attempt < maxRetries-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return err
}
