// Package ratelimit implements fixed-window request counters keyed by client
// identity and window start.
//
// Counters are approximate under concurrent bursts: each request increments
// atomically, but a burst that straddles a window boundary may see up to twice
// the limit across the two windows.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidLimit  = errors.New("invalid limit")
	ErrInvalidWindow = errors.New("invalid window")
	ErrStoreRequired = errors.New("store is required")
	ErrKeyRequired   = errors.New("key is required")
)

// Clock supplies the current time. Tests substitute a controllable clock.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Store counts hits per key. Increment atomically adds one to key, arranges
// for the key to disappear at expireAt, and returns the new count.
type Store interface {
	Increment(ctx context.Context, key string, expireAt time.Time) (int64, error)
}

// Result describes the outcome of one check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
	// RetryAfter is zero when the request was allowed.
	RetryAfter time.Duration
}

// Limiter allows at most Limit requests per client within each fixed Window.
type Limiter struct {
	name   string
	limit  int
	window time.Duration
	store  Store
	clock  Clock
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(l *Limiter) {
		l.clock = c
	}
}

// New creates a limiter. name separates the key spaces of limiters sharing a store.
func New(name string, limit int, window time.Duration, store Store, opts ...Option) (*Limiter, error) {
	if limit < 1 {
		return nil, ErrInvalidLimit
	}
	if window <= 0 {
		return nil, ErrInvalidWindow
	}
	if store == nil {
		return nil, ErrStoreRequired
	}

	l := &Limiter{
		name:   name,
		limit:  limit,
		window: window,
		store:  store,
		clock:  SystemClock,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Name returns the limiter's key-space name.
func (l *Limiter) Name() string { return l.name }

// Allow records one request for clientKey and reports whether it fits the current window.
func (l *Limiter) Allow(ctx context.Context, clientKey string) (*Result, error) {
	if clientKey == "" {
		return nil, ErrKeyRequired
	}

	now := l.clock.Now()
	start := now.Truncate(l.window)
	resetAt := start.Add(l.window)

	key := fmt.Sprintf("ratelimit:%s:%s:%d", l.name, clientKey, start.Unix())
	count, err := l.store.Increment(ctx, key, resetAt)
	if err != nil {
		return nil, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	result := &Result{
		Allowed:   count <= int64(l.limit),
		Limit:     l.limit,
		Remaining: max(0, l.limit-int(count)),
		ResetAt:   resetAt,
	}
	if !result.Allowed {
		result.RetryAfter = resetAt.Sub(now)
	}
	return result, nil
}
