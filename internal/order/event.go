package order

import (
	"time"

	"kargo-booking/internal/domain"
)

// Event is a status update published by the fulfilment side for a
// submitted order.
type Event struct {
	OrderID    string             `json:"order_id"`
	Status     domain.OrderStatus `json:"status"`
	OccurredAt time.Time          `json:"occurred_at"`
}
