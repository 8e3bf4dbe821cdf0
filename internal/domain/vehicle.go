package domain

// VehicleType represents the vehicle class selected for a delivery.
type VehicleType string

// List of supported vehicle types
const (
	VehicleBike  VehicleType = "bike"
	VehicleCar   VehicleType = "car"
	VehicleVan   VehicleType = "van"
	VehicleTruck VehicleType = "truck"
)

var allowedVehicles = [...]VehicleType{
	VehicleBike, VehicleCar, VehicleVan, VehicleTruck,
}

// maxWeightKg bounds the total item weight each vehicle class may carry.
var maxWeightKg = map[VehicleType]float64{
	VehicleBike:  100,
	VehicleCar:   500,
	VehicleVan:   1500,
	VehicleTruck: 5000,
}

// Valid checks if the VehicleType is a known vehicle class.
func (v VehicleType) Valid() bool {
	for _, t := range allowedVehicles {
		if v == t {
			return true
		}
	}
	return false
}

// MaxWeightKg returns the carrying capacity of the vehicle class in kilograms.
// Unknown vehicle types have zero capacity.
func (v VehicleType) MaxWeightKg() float64 {
	return maxWeightKg[v]
}
