package order

import (
	"context"
	"time"

	"kargo-booking/internal/apperr"
	"kargo-booking/internal/domain"
	"kargo-booking/internal/session"
)

// Queries serves read access to submitted orders, scoped to the
// authenticated customer.
type Queries struct {
	orders           OrderRepository
	session          session.Session
	operationTimeout time.Duration
}

// NewQueries creates a Queries service.
func NewQueries(orders OrderRepository, sess session.Session, timeout time.Duration) *Queries {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Queries{orders: orders, session: sess, operationTimeout: timeout}
}

// Get returns the order by id. Orders of other customers are reported as
// missing rather than forbidden to avoid leaking id existence.
func (q *Queries) Get(ctx context.Context, id string) (*domain.Order, error) {
	customerID, err := q.session.UserID(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, q.operationTimeout)
	defer cancel()

	o, err := q.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil || o.CustomerID != customerID {
		return nil, apperr.ErrNotFound
	}
	return o, nil
}

// List returns the customer's orders, newest first, optionally filtered
// by status.
func (q *Queries) List(ctx context.Context, status *domain.OrderStatus) ([]domain.Order, error) {
	customerID, err := q.session.UserID(ctx)
	if err != nil {
		return nil, err
	}
	if status != nil && !status.Valid() {
		return nil, apperr.Validation("unknown order status filter")
	}

	ctx, cancel := context.WithTimeout(ctx, q.operationTimeout)
	defer cancel()

	return q.orders.ListByCustomer(ctx, customerID, status)
}
