package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewOrdersSubmittedTotal returns a Prometheus counter for successfully finalized orders
func NewOrdersSubmittedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_submitted_total",
		Help: "Total number of drafts finalized into orders",
	})
}

// NewDraftMergeRejectedTotal returns a Prometheus counter for section merges rejected by validation
func NewDraftMergeRejectedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "draft_merge_rejected_total",
		Help: "Total number of draft section merges rejected by validation",
	})
}

// NewGatewayRetriesTotal returns a Prometheus counter for the number of retry attempts performed by gateways
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed by gateways",
	})
}

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}
