package geocode

import (
	"context"
	"errors"
	"net/url"
	"time"

	"kargo-booking/internal/logx"
)

type gateway interface {
	Search(context.Context, string) ([]Address, error)
}

type counter interface {
	Inc()
}

// RetryConfig bounds the retry loop of RetryingGateway.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingGateway retries transient geocode failures with exponential
// backoff before giving up.
type RetryingGateway struct {
	next    gateway
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
	sleep   func(time.Duration)
}

// NewRetryingGateway wraps next with retry behavior. Returns nil when next
// is nil.
func NewRetryingGateway(next gateway, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingGateway {
	if next == nil {
		return nil
	}
	return &RetryingGateway{next: next, logger: logger, retries: retries, cfg: cfg, sleep: time.Sleep}
}

// Search resolves the query, retrying retryable failures up to MaxAttempts.
func (g *RetryingGateway) Search(ctx context.Context, query string) ([]Address, error) {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		addrs, err := g.next.Search(ctx, query)
		if err == nil {
			return addrs, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("geocode gateway retry",
			logx.String("method", "Search"),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Any("err", err),
		)
		if !sleepWithContext(ctx, g.sleep, delay) {
			break
		}
	}
	return nil, lastErr
}

// isRetryable treats throttling, upstream unavailability and transport
// failures as transient.
func isRetryable(err error) bool {
	var se *httpStatusError
	if errors.As(err, &se) {
		switch se.code {
		case 429, 502, 503, 504:
			return true
		default:
			return false
		}
	}
	var ue *url.Error
	return errors.As(err, &ue)
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, sleep func(time.Duration), d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
