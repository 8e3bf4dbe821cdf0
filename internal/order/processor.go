package order

import (
	"context"
	"time"

	"kargo-booking/internal/logx"
)

// Processor applies external status events to stored orders. It is the
// single writer of post-submission status changes.
type Processor struct {
	orders           OrderRepository
	logger           logx.Logger
	operationTimeout time.Duration
}

// NewProcessor creates a Processor.
func NewProcessor(orders OrderRepository, logger logx.Logger, timeout time.Duration) *Processor {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Processor{orders: orders, logger: logger, operationTimeout: timeout}
}

// Handle applies a single status event. Events that cannot ever be applied
// (unknown status, unknown order, disallowed transition) are logged and
// dropped; only infrastructure failures are returned for retry.
func (p *Processor) Handle(ctx context.Context, ev Event) error {
	if !ev.Status.Valid() {
		p.logger.Warn("status event skipped: unknown status",
			logx.String("order_id", ev.OrderID),
			logx.String("status", string(ev.Status)),
		)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.operationTimeout)
	defer cancel()

	o, err := p.orders.Get(ctx, ev.OrderID)
	if err != nil {
		return err
	}
	if o == nil {
		p.logger.Warn("status event skipped: order not found",
			logx.String("order_id", ev.OrderID),
		)
		return nil
	}
	if o.Status == ev.Status {
		// Redelivered event; already applied.
		return nil
	}
	if !o.Status.CanTransition(ev.Status) {
		p.logger.Warn("status event skipped: transition not allowed",
			logx.String("order_id", ev.OrderID),
			logx.String("from", string(o.Status)),
			logx.String("to", string(ev.Status)),
		)
		return nil
	}

	ok, err := p.orders.UpdateStatus(ctx, ev.OrderID, o.Status, ev.Status)
	if err != nil {
		return err
	}
	if !ok {
		// Lost a race against a concurrent update; the event about the
		// winning status will arrive on its own.
		p.logger.Warn("status update lost race",
			logx.String("order_id", ev.OrderID),
			logx.String("from", string(o.Status)),
			logx.String("to", string(ev.Status)),
		)
		return nil
	}

	p.logger.Info("order status updated",
		logx.String("event", "order_status_updated"),
		logx.String("order_id", ev.OrderID),
		logx.String("from", string(o.Status)),
		logx.String("to", string(ev.Status)),
	)
	return nil
}
