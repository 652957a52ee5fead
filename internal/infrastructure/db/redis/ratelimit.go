package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxFailures = 5
	defaultWindow      = 15 * time.Minute
)

// SignInLimiter throttles password failures per username using a counter
// with a sliding expiry. Key format: signin_fail:<username>
type SignInLimiter struct {
	client      *redis.Client
	maxFailures int
	window      time.Duration
}

// NewSignInLimiter creates a limiter. Non-positive arguments fall back to
// the defaults (5 failures per 15 minutes).
func NewSignInLimiter(client *redis.Client, maxFailures int, window time.Duration) *SignInLimiter {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &SignInLimiter{client: client, maxFailures: maxFailures, window: window}
}

// TooManyFailures reports whether the username has exhausted its attempts.
func (l *SignInLimiter) TooManyFailures(ctx context.Context, username string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(username)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= l.maxFailures, nil
}

// RecordFailure increments the failure counter and refreshes its expiry.
func (l *SignInLimiter) RecordFailure(ctx context.Context, username string) error {
	key := l.key(username)
	if err := l.client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
		return fmt.Errorf("throttle expire: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful sign-in.
func (l *SignInLimiter) Reset(ctx context.Context, username string) error {
	return l.client.Del(ctx, l.key(username)).Err()
}

func (l *SignInLimiter) key(username string) string {
	return "signin_fail:" + username
}
