// Package pricing derives the delivery fee and order totals from the draft's
// items and delivery options. It is pure and deterministic; nothing outside
// the assembler and the finalizer may write derived pricing fields.
package pricing

import (
	"math"

	"kargo-booking/internal/domain"
)

// Weight-tier rate card. Amounts are integer minor currency units.
// The schedule stands in for a distance/zone rate card on purpose; the
// original product shipped with this flat table.
const (
	BaseFee = 1000

	TierOneLimitKg = 5.0
	TierTwoLimitKg = 20.0

	TierOnePerKg   = 200.0
	TierTwoPerKg   = 150.0
	TierThreePerKg = 100.0

	// Flat charges for the bands below each upper tier.
	tierOneFlat = 1000.0 // 5kg * 200
	tierTwoFlat = 3250.0 // 1000 + 15kg * 150

	// Opt-in insurance, as a fraction of the declared item value.
	insuranceRate = 0.005
)

// TotalWeight sums weight*quantity over all items, in kilograms.
func TotalWeight(items []domain.ItemDetails) float64 {
	var total float64
	for _, it := range items {
		total += it.WeightKg * float64(it.Quantity)
	}
	return total
}

// TotalValue sums value*quantity over all items, exactly.
func TotalValue(items []domain.ItemDetails) float64 {
	var total float64
	for _, it := range items {
		total += it.Value * float64(it.Quantity)
	}
	return total
}

// DeliveryFee prices the given total weight against the tier schedule and
// rounds to the nearest integer currency unit.
func DeliveryFee(totalWeightKg float64) int64 {
	fee := float64(BaseFee)
	switch {
	case totalWeightKg <= TierOneLimitKg:
		fee += totalWeightKg * TierOnePerKg
	case totalWeightKg <= TierTwoLimitKg:
		fee += tierOneFlat + (totalWeightKg-TierOneLimitKg)*TierTwoPerKg
	default:
		fee += tierTwoFlat + (totalWeightKg-TierTwoLimitKg)*TierThreePerKg
	}
	return int64(math.Round(fee))
}

// InsuranceSurcharge returns the opt-in surcharge for a declared item value.
func InsuranceSurcharge(itemValue int64) int64 {
	return int64(math.Round(float64(itemValue) * insuranceRate))
}

// Quote recomputes the full derived pricing for a draft. An empty item list
// quotes to zero across the board. Quoting twice with unchanged inputs yields
// identical results.
func Quote(items []domain.ItemDetails, insured bool) domain.Pricing {
	if len(items) == 0 {
		return domain.Pricing{}
	}
	itemValue := int64(math.Round(TotalValue(items)))
	fee := DeliveryFee(TotalWeight(items))
	if insured {
		fee += InsuranceSurcharge(itemValue)
	}
	return domain.Pricing{
		ItemValue:   itemValue,
		DeliveryFee: fee,
		Total:       itemValue + fee,
	}
}
