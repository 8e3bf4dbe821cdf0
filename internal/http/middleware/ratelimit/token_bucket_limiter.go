package ratelimit

import (
	"math"
	"sync"
	"time"
)

// Config holds token bucket tuning.
type Config struct {
	Rate       float64       // refill rate, tokens per second
	Burst      int           // bucket capacity
	TTL        time.Duration // evict clients idle longer than this (0 keeps them forever)
	MaxBuckets int           // cap on tracked clients (0 means unlimited)
}

// TokenBucketLimiter throttles booking traffic per client key. Every key
// owns a bucket that drains one token per request and refills continuously
// at the configured rate.
type TokenBucketLimiter struct {
	cfg       Config
	clock     Clock
	mu        sync.RWMutex
	buckets   map[string]*tokenBucket
	lastSweep time.Time
}

type tokenBucket struct {
	mu       sync.Mutex
	level    float64
	refilled time.Time
	touched  time.Time
}

// NewTokenBucketLimiter builds a limiter from cfg. Nonsensical settings are
// clamped to the smallest usable values instead of failing.
func NewTokenBucketLimiter(clock Clock, cfg Config) *TokenBucketLimiter {
	if clock == nil {
		clock = RealClock{}
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.MaxBuckets < 0 {
		cfg.MaxBuckets = 0
	}
	return &TokenBucketLimiter{
		cfg:     cfg,
		clock:   clock,
		buckets: make(map[string]*tokenBucket),
	}
}

// NewTokenBucketPerWindow translates a "limit requests per window" quota
// into rate/burst form.
func NewTokenBucketPerWindow(clock Clock, limit int, window time.Duration, ttl time.Duration, maxBuckets int) *TokenBucketLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Second
	}
	return NewTokenBucketLimiter(clock, Config{
		Rate:       float64(limit) / window.Seconds(),
		Burst:      limit,
		TTL:        ttl,
		MaxBuckets: maxBuckets,
	})
}

// Allow reports whether the client identified by key may proceed.
func (l *TokenBucketLimiter) Allow(key string) bool {
	now := l.clock.Now()
	l.sweepIdle(now)

	b := l.lookup(key, now)
	if b == nil {
		return false
	}
	return b.take(now, l.cfg.Rate, float64(l.cfg.Burst))
}

func (l *TokenBucketLimiter) lookup(key string, now time.Time) *tokenBucket {
	l.mu.RLock()
	b := l.buckets[key]
	l.mu.RUnlock()
	if b != nil {
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Another request may have created the bucket between the locks.
	if b = l.buckets[key]; b != nil {
		return b
	}

	if l.cfg.MaxBuckets > 0 && len(l.buckets) >= l.cfg.MaxBuckets {
		return nil
	}

	b = &tokenBucket{
		level:    float64(l.cfg.Burst),
		refilled: now,
		touched:  now,
	}
	l.buckets[key] = b
	return b
}

func (b *tokenBucket) take(now time.Time, rate, capacity float64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if elapsed := now.Sub(b.refilled); elapsed > 0 {
		b.level = math.Min(b.level+elapsed.Seconds()*rate, capacity)
		b.refilled = now
	}
	b.touched = now

	if b.level < 1 {
		return false
	}
	b.level--
	return true
}

// sweepIdle drops buckets that have not been touched within the TTL.
// Sweeping on every request would serialize all clients on the write lock,
// so runs are spaced out to at most one per minute (or half the TTL when
// that is longer).
func (l *TokenBucketLimiter) sweepIdle(now time.Time) {
	if l.cfg.TTL <= 0 {
		return
	}

	every := l.cfg.TTL / 2
	if every < time.Minute {
		every = time.Minute
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.lastSweep.IsZero() && now.Sub(l.lastSweep) < every {
		return
	}
	l.lastSweep = now

	for key, b := range l.buckets {
		b.mu.Lock()
		idle := now.Sub(b.touched)
		b.mu.Unlock()

		if idle > l.cfg.TTL {
			delete(l.buckets, key)
		}
	}
}
