package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"kargo-booking/internal/metrics"
)

// registerCounter attaches the counter to the default registry, reusing an
// already registered collector (containers are rebuilt in tests).
func registerCounter(c prometheus.Counter) prometheus.Counter {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing
			}
		}
	}
	return c
}

func registerMetrics(container *dig.Container) error {
	named := map[string]func() prometheus.Counter{
		"orders_submitted_total":     metrics.NewOrdersSubmittedTotal,
		"draft_merge_rejected_total": metrics.NewDraftMergeRejectedTotal,
		"gateway_retries_total":      metrics.NewGatewayRetriesTotal,
		"rate_limit_exceeded_total":  metrics.NewRateLimitExceededTotal,
	}
	for name, ctor := range named {
		ctor := ctor
		provider := func() prometheus.Counter { return registerCounter(ctor()) }
		if err := container.Provide(provider, dig.Name(name)); err != nil {
			return fmt.Errorf("provide counter %s: %w", name, err)
		}
	}
	return nil
}
