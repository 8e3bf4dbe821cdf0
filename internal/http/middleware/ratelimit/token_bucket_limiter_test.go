package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestTokenBucketLimiter_DrainAndRefill(t *testing.T) {
	t.Parallel()

	clk := newManualClock()
	l := NewTokenBucketLimiter(clk, Config{Rate: 1, Burst: 2})

	// A fresh bucket starts full.
	require.True(t, l.Allow("user-7"))
	require.True(t, l.Allow("user-7"))
	require.False(t, l.Allow("user-7"), "drained bucket must block")

	// One second at rate 1 restores exactly one token.
	clk.Advance(time.Second)
	require.True(t, l.Allow("user-7"))
	require.False(t, l.Allow("user-7"))

	// A long pause refills only up to the burst capacity.
	clk.Advance(time.Hour)
	require.True(t, l.Allow("user-7"))
	require.True(t, l.Allow("user-7"))
	require.False(t, l.Allow("user-7"), "refill must cap at burst")
}

func TestTokenBucketLimiter_KeysAreIsolated(t *testing.T) {
	t.Parallel()

	clk := newManualClock()
	l := NewTokenBucketLimiter(clk, Config{Rate: 1, Burst: 1})

	require.True(t, l.Allow("user-1"))
	require.False(t, l.Allow("user-1"))
	require.True(t, l.Allow("user-2"), "one client draining its bucket must not affect another")
}

func TestTokenBucketLimiter_SweepEvictsIdleClients(t *testing.T) {
	t.Parallel()

	clk := newManualClock()
	l := NewTokenBucketLimiter(clk, Config{Rate: 10, Burst: 1, TTL: 2 * time.Second})

	l.Allow("idle")
	l.Allow("active")
	require.Len(t, l.buckets, 2)

	// Sweeps run at most once a minute, so the idle client survives the
	// first window even though its TTL has long expired.
	clk.Advance(59 * time.Second)
	l.Allow("active")
	require.Contains(t, l.buckets, "idle")

	clk.Advance(2 * time.Second)
	l.Allow("active")

	require.NotContains(t, l.buckets, "idle")
	require.Contains(t, l.buckets, "active")
}

func TestTokenBucketLimiter_MaxBucketsBlocksNewClients(t *testing.T) {
	t.Parallel()

	clk := newManualClock()
	l := NewTokenBucketLimiter(clk, Config{Rate: 1, Burst: 1, MaxBuckets: 1})

	require.True(t, l.Allow("first"))
	require.False(t, l.Allow("second"), "table at capacity must reject unknown keys")
	require.Len(t, l.buckets, 1)
}

func TestTokenBucketLimiter_ClampsBadConfig(t *testing.T) {
	t.Parallel()

	l := NewTokenBucketLimiter(nil, Config{Rate: -3, Burst: 0, MaxBuckets: -1})

	require.Equal(t, float64(1), l.cfg.Rate)
	require.Equal(t, 1, l.cfg.Burst)
	require.Equal(t, 0, l.cfg.MaxBuckets)
}

func TestNewTokenBucketPerWindow_QuotaBecomesBurst(t *testing.T) {
	t.Parallel()

	clk := newManualClock()
	l := NewTokenBucketPerWindow(clk, 3, time.Second, 0, 0)

	for i := 0; i < 3; i++ {
		require.True(t, l.Allow("quota"), "request %d within quota", i+1)
	}
	require.False(t, l.Allow("quota"))
}
