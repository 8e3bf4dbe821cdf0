package kafka

import (
	"strings"
	"time"

	"kargo-booking/internal/domain"
	"kargo-booking/internal/order"
)

// EventDTO is the wire form of an order status event.
type EventDTO struct {
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ToDomain converts EventDTO to order.Event.
func ToDomain(dto EventDTO) order.Event {
	return order.Event{
		OrderID:    strings.TrimSpace(dto.OrderID),
		Status:     domain.OrderStatus(strings.TrimSpace(dto.Status)),
		OccurredAt: dto.OccurredAt,
	}
}
