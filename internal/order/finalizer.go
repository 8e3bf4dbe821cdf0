// Package order finalizes complete drafts into immutable orders and keeps
// submitted orders' statuses in step with the external status feed.
package order

import (
	"context"
	"time"

	"github.com/google/uuid"

	"kargo-booking/internal/apperr"
	"kargo-booking/internal/domain"
	"kargo-booking/internal/draft"
	"kargo-booking/internal/logx"
	"kargo-booking/internal/pricing"
	"kargo-booking/internal/session"
)

type counter interface {
	Inc()
}

// Finalizer validates the complete draft, converts it into an Order, submits
// it to the order store and clears the draft slot.
type Finalizer struct {
	drafts           DraftStore
	orders           OrderRepository
	session          session.Session
	logger           logx.Logger
	submitted        counter
	operationTimeout time.Duration
	now              func() time.Time
	newID            func() string
}

// NewFinalizer creates a Finalizer. The submitted counter may be nil.
func NewFinalizer(drafts DraftStore, orders OrderRepository, sess session.Session, logger logx.Logger, submitted counter, timeout time.Duration) *Finalizer {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Finalizer{
		drafts:           drafts,
		orders:           orders,
		session:          sess,
		logger:           logger,
		submitted:        submitted,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
		newID:            uuid.NewString,
	}
}

func (f *Finalizer) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, f.operationTimeout)
}

// Submit runs the finalize pipeline: re-validate every section, recompute
// pricing from scratch, create the order, clear the draft. Any validation
// failure aborts before any write; a store failure leaves the draft intact
// for a retry.
func (f *Finalizer) Submit(ctx context.Context) (*domain.Order, error) {
	customerID, err := f.session.UserID(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	d, err := f.drafts.Load(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrNotFound
	}

	if msgs := validateComplete(d, f.now()); len(msgs) > 0 {
		return nil, &apperr.ValidationError{Messages: msgs}
	}

	// Never trust persisted derived fields at finalize time.
	fresh := pricing.Quote(d.Items, d.Delivery.Insured)
	if fresh != d.Pricing {
		f.logger.Warn("stale draft pricing recomputed",
			logx.Int64("stored_total", d.Pricing.Total),
			logx.Int64("fresh_total", fresh.Total),
		)
	}

	now := f.now()
	delivery := d.Delivery
	delivery.FeeMinor = fresh.DeliveryFee

	o := &domain.Order{
		ID:         f.newID(),
		CustomerID: customerID,
		Status:     domain.StatusPending,
		Sender:     d.Sender,
		Receiver:   d.Receiver,
		Items:      d.Items,
		Delivery:   delivery,
		Locations:  d.Locations,
		Pricing:    fresh,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := f.orders.Create(ctx, o); err != nil {
		return nil, &apperr.SubmissionError{Err: err}
	}

	if err := f.drafts.Clear(ctx, customerID); err != nil {
		// The order exists; a lingering draft slot is recoverable.
		f.logger.Error("draft clear after submission failed",
			logx.String("order_id", o.ID),
			logx.Any("err", err),
		)
	}

	if f.submitted != nil {
		f.submitted.Inc()
	}
	f.logger.Info("order submitted",
		logx.String("event", "order_submitted"),
		logx.String("order_id", o.ID),
		logx.String("customer_id", customerID),
		logx.Int64("total", o.Pricing.Total),
	)
	return o, nil
}

// validateComplete re-runs every section validator over the whole draft.
func validateComplete(d *domain.OrderDraft, now time.Time) []string {
	var msgs []string
	msgs = append(msgs, draft.ValidateSender(d.Sender)...)
	msgs = append(msgs, draft.ValidateReceiver(d.Receiver)...)
	if len(d.Items) == 0 {
		msgs = append(msgs, "at least one item is required")
	}
	for _, it := range d.Items {
		msgs = append(msgs, draft.ValidateItemFields(it)...)
	}
	if !d.Delivery.Vehicle.Valid() {
		msgs = append(msgs, "a valid vehicle must be selected")
	} else if capErr := draft.CheckCapacity(d.Items, d.Delivery.Vehicle); capErr != nil {
		msgs = append(msgs, capErr.Error())
	}
	msgs = append(msgs, draft.ValidateSchedule(d.Delivery.ScheduledPickup, now)...)
	return msgs
}
