package draft

import (
	"fmt"
	"strings"
	"time"

	"kargo-booking/internal/apperr"
	"kargo-booking/internal/domain"
)

// Schedule policy. Same-day pickups need a lead time; anything else must fall
// inside the booking horizon and business hours.
const (
	MinPickupLead    = 2 * time.Hour
	MaxPickupDays    = 14
	BusinessHourFrom = 8
	BusinessHourTo   = 18

	// Per-dimension cap in centimeters.
	MaxDimensionCm = 500
)

// ValidateSender checks the sender section. An empty list means valid.
// All failures are collected, not just the first.
func ValidateSender(s *domain.SenderDetails) []string {
	if s == nil {
		return []string{"sender details are required"}
	}
	var errs []string
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "sender name is required")
	}
	if strings.TrimSpace(s.Phone) == "" {
		errs = append(errs, "sender phone is required")
	}
	if strings.TrimSpace(s.Address) == "" {
		errs = append(errs, "sender address is required")
	}
	if strings.TrimSpace(s.State) == "" {
		errs = append(errs, "sender state is required")
	}
	return errs
}

// ValidateReceiver checks the receiver section. Address is required only for
// door delivery, pickup center only for center pickup.
func ValidateReceiver(r *domain.ReceiverDetails) []string {
	if r == nil {
		return []string{"receiver details are required"}
	}
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "receiver name is required")
	}
	if strings.TrimSpace(r.Phone) == "" {
		errs = append(errs, "receiver phone is required")
	}
	if strings.TrimSpace(r.State) == "" {
		errs = append(errs, "receiver state is required")
	}
	if !r.DeliveryMethod.Valid() {
		errs = append(errs, "receiver delivery method must be pickup or delivery")
		return errs
	}
	if r.DeliveryMethod == domain.MethodDelivery && strings.TrimSpace(r.Address) == "" {
		errs = append(errs, "receiver address is required for door delivery")
	}
	if r.DeliveryMethod == domain.MethodPickup && strings.TrimSpace(r.PickupCenter) == "" {
		errs = append(errs, "pickup center is required for center pickup")
	}
	return errs
}

// ValidateItemFields checks a single item's own fields. Capacity against the
// selected vehicle is checked separately via CheckCapacity.
func ValidateItemFields(it domain.ItemDetails) []string {
	var errs []string
	if strings.TrimSpace(it.Name) == "" {
		errs = append(errs, "item name is required")
	}
	if strings.TrimSpace(it.Category) == "" {
		errs = append(errs, "item category is required")
	}
	if strings.TrimSpace(it.Subcategory) == "" {
		errs = append(errs, "item subcategory is required")
	}
	if it.Quantity <= 0 {
		errs = append(errs, "item quantity must be greater than zero")
	}
	if it.WeightKg <= 0 {
		errs = append(errs, "item weight must be greater than zero")
	}
	if it.Value <= 0 {
		errs = append(errs, "item value must be greater than zero")
	}
	if d := it.Dimensions; d != nil {
		if d.LengthCm <= 0 || d.WidthCm <= 0 || d.HeightCm <= 0 {
			errs = append(errs, "item dimensions require length, width and height")
		}
		if d.LengthCm > MaxDimensionCm || d.WidthCm > MaxDimensionCm || d.HeightCm > MaxDimensionCm {
			errs = append(errs, fmt.Sprintf("item dimensions must not exceed %dcm", MaxDimensionCm))
		}
	}
	if len(it.Images) > domain.MaxImagesPerItem {
		errs = append(errs, fmt.Sprintf("at most %d item images are allowed", domain.MaxImagesPerItem))
	}
	return errs
}

// CheckCapacity verifies the total item weight against the vehicle's
// capacity. No vehicle selected means no bound yet.
func CheckCapacity(items []domain.ItemDetails, vehicle domain.VehicleType) *apperr.CapacityError {
	if vehicle == "" {
		return nil
	}
	var total float64
	for _, it := range items {
		total += it.WeightKg * float64(it.Quantity)
	}
	if max := vehicle.MaxWeightKg(); total > max {
		return &apperr.CapacityError{Vehicle: string(vehicle), TotalKg: total, MaxKg: max}
	}
	return nil
}

// ValidateSchedule checks the pickup timestamp against the booking policy:
// same-day pickups need MinPickupLead of notice, other days must fall within
// MaxPickupDays of now, and the time of day must be within business hours.
func ValidateSchedule(pickup, now time.Time) []string {
	var errs []string
	if pickup.IsZero() {
		return []string{"pickup date is required"}
	}

	if sameDay(pickup, now) {
		if pickup.Before(now.Add(MinPickupLead)) {
			errs = append(errs, fmt.Sprintf("same-day pickup requires at least %d hours of notice", int(MinPickupLead.Hours())))
		}
	} else {
		if pickup.Before(now) {
			errs = append(errs, "pickup date must be in the future")
		} else if pickup.After(now.AddDate(0, 0, MaxPickupDays)) {
			errs = append(errs, fmt.Sprintf("pickup date must be within %d days", MaxPickupDays))
		}
	}

	if !withinBusinessHours(pickup) {
		errs = append(errs, fmt.Sprintf("pickup time must be between %02d:00 and %02d:00", BusinessHourFrom, BusinessHourTo))
	}
	return errs
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func withinBusinessHours(t time.Time) bool {
	h := t.Hour()
	if h < BusinessHourFrom || h > BusinessHourTo {
		return false
	}
	if h == BusinessHourTo {
		// Exactly the closing instant, down to the nanosecond.
		return t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
	}
	return true
}
