package handlers

import (
	"context"

	"kargo-booking/internal/domain"
	"kargo-booking/internal/draft"
	"kargo-booking/internal/gateway/geocode"
	"kargo-booking/internal/order"
)

type draftUsecase interface {
	Start(ctx context.Context, userID string) (*domain.OrderDraft, error)
	Draft(ctx context.Context, userID string) (*domain.OrderDraft, error)
	Cancel(ctx context.Context, userID string) error
	Merge(ctx context.Context, userID string, upd draft.SectionUpdate) (*domain.OrderDraft, error)
	AddItem(ctx context.Context, userID string, it domain.ItemDetails) (*domain.OrderDraft, error)
	ReplaceItem(ctx context.Context, userID string, index int, it domain.ItemDetails) (*domain.OrderDraft, error)
	RemoveItem(ctx context.Context, userID string, index int) (*domain.OrderDraft, error)
}

// NewDraftUsecase wires an Assembler into a draftUsecase.
func NewDraftUsecase(a *draft.Assembler) draftUsecase {
	return a
}

type orderSubmitter interface {
	Submit(ctx context.Context) (*domain.Order, error)
}

// NewOrderSubmitter wires a Finalizer into an orderSubmitter.
func NewOrderSubmitter(f *order.Finalizer) orderSubmitter {
	return f
}

type orderReader interface {
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, status *domain.OrderStatus) ([]domain.Order, error)
}

// NewOrderReader wires Queries into an orderReader.
func NewOrderReader(q *order.Queries) orderReader {
	return q
}

type addressSearcher interface {
	Search(ctx context.Context, query string) ([]geocode.Address, error)
}

// NewAddressSearcher wires a geocode gateway into an addressSearcher.
func NewAddressSearcher(g *geocode.RetryingGateway) addressSearcher {
	return g
}
