//go:generate mockgen -source=contracts.go -destination=mocks_test.go -package=order

package order

import (
	"context"

	"kargo-booking/internal/domain"
)

// OrderRepository defines the order store operations required by the
// finalizer, query and status-processing layers.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, id string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string, status *domain.OrderStatus) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) (bool, error)
}

// DraftStore is the slice of the draft store the finalizer needs.
type DraftStore interface {
	Load(ctx context.Context, userID string) (*domain.OrderDraft, error)
	Clear(ctx context.Context, userID string) error
}
