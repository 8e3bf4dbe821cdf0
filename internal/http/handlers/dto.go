package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"kargo-booking/internal/domain"
	"kargo-booking/internal/logx"
)

// validate covers transport-shape checks only. Business rules live in the
// draft validators and produce 422 responses instead.
var validate = validator.New()

type senderRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone" validate:"omitempty,e164"`
	State   string `json:"state"`
}

func (r senderRequest) toDomain() domain.SenderDetails {
	return domain.SenderDetails{
		Name:    strings.TrimSpace(r.Name),
		Address: strings.TrimSpace(r.Address),
		Phone:   strings.TrimSpace(r.Phone),
		State:   strings.TrimSpace(r.State),
	}
}

type receiverRequest struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	Phone          string `json:"phone" validate:"omitempty,e164"`
	State          string `json:"state"`
	DeliveryMethod string `json:"deliveryMethod"`
	PickupCenter   string `json:"pickupCenter"`
}

func (r receiverRequest) toDomain() domain.ReceiverDetails {
	return domain.ReceiverDetails{
		Name:           strings.TrimSpace(r.Name),
		Address:        strings.TrimSpace(r.Address),
		Phone:          strings.TrimSpace(r.Phone),
		State:          strings.TrimSpace(r.State),
		DeliveryMethod: domain.DeliveryMethod(strings.TrimSpace(r.DeliveryMethod)),
		PickupCenter:   strings.TrimSpace(r.PickupCenter),
	}
}

type dimensionsRequest struct {
	Length float64 `json:"length" validate:"gte=0"`
	Width  float64 `json:"width" validate:"gte=0"`
	Height float64 `json:"height" validate:"gte=0"`
}

type itemRequest struct {
	Name                    string             `json:"name"`
	Category                string             `json:"category"`
	Subcategory             string             `json:"subcategory"`
	Quantity                int                `json:"quantity" validate:"gte=0"`
	Weight                  float64            `json:"weight" validate:"gte=0"`
	Value                   float64            `json:"value" validate:"gte=0"`
	Dimensions              *dimensionsRequest `json:"dimensions" validate:"omitempty"`
	IsFragile               bool               `json:"isFragile"`
	RequiresSpecialHandling bool               `json:"requiresSpecialHandling"`
	SpecialInstructions     string             `json:"specialInstructions"`
	Images                  []string           `json:"images" validate:"omitempty,dive,uri"`
}

func (r itemRequest) toDomain() domain.ItemDetails {
	it := domain.ItemDetails{
		Name:                    strings.TrimSpace(r.Name),
		Category:                strings.TrimSpace(r.Category),
		Subcategory:             strings.TrimSpace(r.Subcategory),
		Quantity:                r.Quantity,
		WeightKg:                r.Weight,
		Value:                   r.Value,
		IsFragile:               r.IsFragile,
		RequiresSpecialHandling: r.RequiresSpecialHandling,
		SpecialInstructions:     strings.TrimSpace(r.SpecialInstructions),
		Images:                  r.Images,
	}
	if r.Dimensions != nil {
		it.Dimensions = &domain.Dimensions{
			LengthCm: r.Dimensions.Length,
			WidthCm:  r.Dimensions.Width,
			HeightCm: r.Dimensions.Height,
		}
	}
	return it
}

type itemsRequest struct {
	Items []itemRequest `json:"items" validate:"dive"`
}

func (r itemsRequest) toDomain() []domain.ItemDetails {
	out := make([]domain.ItemDetails, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, it.toDomain())
	}
	return out
}

type deliveryRequest struct {
	ScheduledPickup time.Time `json:"scheduledPickup"`
	Vehicle         string    `json:"vehicle"`
	Insured         bool      `json:"insured"`
}

func (r deliveryRequest) toDomain() domain.DeliveryDetails {
	return domain.DeliveryDetails{
		ScheduledPickup: r.ScheduledPickup,
		Vehicle:         domain.VehicleType(strings.TrimSpace(r.Vehicle)),
		Insured:         r.Insured,
	}
}

// checkRequest rejects malformed request shapes before business validation.
func checkRequest(logger logx.Logger, w http.ResponseWriter, r *http.Request, req any) bool {
	if err := validate.Struct(req); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
		}
		writeError(logger, w, r, http.StatusBadRequest, "invalid input: "+strings.Join(fields, ", "))
		return false
	}
	return true
}
