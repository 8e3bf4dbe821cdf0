package ratelimit

import "time"

// Limiter decides whether a client key may make another request.
type Limiter interface {
	Allow(key string) bool
}

// Clock abstracts time.Now so limiter refill math is testable.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

// Now returns the current wall clock time.
func (RealClock) Now() time.Time { return time.Now() }

// NopLimiter admits every request. It backs the middleware when rate
// limiting is switched off in config.
type NopLimiter struct{}

// Allow always admits the request.
func (NopLimiter) Allow(string) bool { return true }

// NewNopLimiter returns a limiter that never blocks.
func NewNopLimiter() Limiter { return NopLimiter{} }
