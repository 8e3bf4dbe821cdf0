package domain

import "time"

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

// List of order statuses
const (
	StatusDraft      OrderStatus = "draft"
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusInTransit  OrderStatus = "in_transit"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

var allowedStatuses = [...]OrderStatus{
	StatusDraft, StatusPending, StatusProcessing,
	StatusInTransit, StatusDelivered, StatusCancelled,
}

// Valid checks if the OrderStatus is valid.
func (s OrderStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition may leave the status.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// transitions holds the allowed forward moves of the order lifecycle.
// Cancellation is allowed from any non-terminal submitted state.
var transitions = map[OrderStatus][]OrderStatus{
	StatusDraft:      {StatusPending},
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusInTransit, StatusCancelled},
	StatusInTransit:  {StatusDelivered, StatusCancelled},
}

// CanTransition reports whether the status may move to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, v := range transitions[s] {
		if v == next {
			return true
		}
	}
	return false
}

// Order is the immutable record produced by finalizing a draft. After
// creation it is owned by the order store; the client only reads it.
type Order struct {
	ID         string           `json:"id"`
	CustomerID string           `json:"customerId"`
	Status     OrderStatus      `json:"status"`
	Sender     *SenderDetails   `json:"sender"`
	Receiver   *ReceiverDetails `json:"receiver"`
	Items      []ItemDetails    `json:"items"`
	Delivery   DeliveryDetails  `json:"delivery"`
	Locations  Locations        `json:"locations"`
	Pricing    Pricing          `json:"pricing"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}
