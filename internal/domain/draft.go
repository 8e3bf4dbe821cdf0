package domain

import "time"

// DeliveryMethod represents how the receiver gets the shipment.
type DeliveryMethod string

// List of delivery methods
const (
	MethodPickup   DeliveryMethod = "pickup"
	MethodDelivery DeliveryMethod = "delivery"
)

// Valid checks if the DeliveryMethod is known.
func (m DeliveryMethod) Valid() bool {
	return m == MethodPickup || m == MethodDelivery
}

// DefaultCountry is written into empty location slots until an address is resolved.
const DefaultCountry = "Nigeria"

// Location is a denormalized address copy consumed by pricing and display.
type Location struct {
	Address string  `json:"address"`
	City    string  `json:"city,omitempty"`
	State   string  `json:"state"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty"`
}

// SenderDetails describes who hands the shipment over.
type SenderDetails struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	State   string `json:"state"`
}

// ReceiverDetails describes who takes the shipment. Address is required for
// door delivery, PickupCenter for center pickup.
type ReceiverDetails struct {
	Name           string         `json:"name"`
	Address        string         `json:"address,omitempty"`
	Phone          string         `json:"phone"`
	State          string         `json:"state"`
	DeliveryMethod DeliveryMethod `json:"deliveryMethod"`
	PickupCenter   string         `json:"pickupCenter,omitempty"`
}

// Dimensions are per-piece measurements in centimeters.
type Dimensions struct {
	LengthCm float64 `json:"length"`
	WidthCm  float64 `json:"width"`
	HeightCm float64 `json:"height"`
}

// MaxImagesPerItem caps the attached image URIs per item.
const MaxImagesPerItem = 5

// ItemDetails is a single line of the shipment.
type ItemDetails struct {
	Name                    string      `json:"name"`
	Category                string      `json:"category"`
	Subcategory             string      `json:"subcategory"`
	Quantity                int         `json:"quantity"`
	WeightKg                float64     `json:"weight"`
	Value                   float64     `json:"value"`
	Dimensions              *Dimensions `json:"dimensions,omitempty"`
	IsFragile               bool        `json:"isFragile"`
	RequiresSpecialHandling bool        `json:"requiresSpecialHandling"`
	SpecialInstructions     string      `json:"specialInstructions,omitempty"`
	Images                  []string    `json:"images,omitempty"`
}

// DeliveryDetails holds the schedule and vehicle choice. FeeMinor is derived
// and only ever written together with Pricing.
type DeliveryDetails struct {
	ScheduledPickup time.Time   `json:"scheduledPickup"`
	Vehicle         VehicleType `json:"vehicle"`
	FeeMinor        int64       `json:"fee"`
	Insured         bool        `json:"insured"`
}

// Locations keeps the pickup and drop-off ends of the route.
type Locations struct {
	Pickup   Location `json:"pickup"`
	Delivery Location `json:"delivery"`
}

// Pricing is fully derived from items and the delivery section.
// All amounts are integer minor currency units.
type Pricing struct {
	ItemValue   int64 `json:"itemValue"`
	DeliveryFee int64 `json:"deliveryFee"`
	Total       int64 `json:"total"`
}

// OrderDetails carries draft lifecycle metadata. Status stays StatusDraft for
// the whole life of the draft; only finalization moves past it.
type OrderDetails struct {
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// OrderDraft is the single in-progress order assembled across wizard steps.
// Sender and Receiver stay nil until their steps are filled.
type OrderDraft struct {
	Sender       *SenderDetails   `json:"sender,omitempty"`
	Receiver     *ReceiverDetails `json:"receiver,omitempty"`
	Items        []ItemDetails    `json:"items"`
	Delivery     DeliveryDetails  `json:"delivery"`
	Locations    Locations        `json:"locations"`
	Pricing      Pricing          `json:"pricing"`
	OrderDetails OrderDetails     `json:"orderDetails"`
}
