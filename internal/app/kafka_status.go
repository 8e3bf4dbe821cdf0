package app

import (
	"context"

	"kargo-booking/internal/order"
	"kargo-booking/internal/transport/kafka"
)

func makeStatusKafka(p *order.Processor) kafka.HandleFunc {
	return func(ctx context.Context, event order.Event) error {
		return p.Handle(ctx, event)
	}
}
