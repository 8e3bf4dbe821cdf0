package draft

import "kargo-booking/internal/domain"

// SectionUpdate is the tagged union of per-step draft updates. Each wizard
// step dispatches exactly one of the concrete types below through
// Assembler.Merge.
type SectionUpdate interface {
	section() string
}

// UpdateSender replaces the sender section.
type UpdateSender struct {
	Sender domain.SenderDetails
}

// UpdateReceiver replaces the receiver section.
type UpdateReceiver struct {
	Receiver domain.ReceiverDetails
}

// UpdateItems replaces the whole item list.
type UpdateItems struct {
	Items []domain.ItemDetails
}

// UpdateDelivery replaces the schedule/vehicle section. The fee field is
// derived and ignored on input.
type UpdateDelivery struct {
	Delivery domain.DeliveryDetails
}

func (UpdateSender) section() string   { return "sender" }
func (UpdateReceiver) section() string { return "receiver" }
func (UpdateItems) section() string    { return "items" }
func (UpdateDelivery) section() string { return "delivery" }
