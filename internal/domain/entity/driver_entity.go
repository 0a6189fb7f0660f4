package entity

import "time"

// VehicleType is the capability a passenger requests and a driver offers.
type VehicleType string

const (
	VehicleCar      VehicleType = "car"
	VehicleBike     VehicleType = "bike"
	VehicleRickshaw VehicleType = "rickshaw"
)

// Vehicle describes the registered vehicle on a driver profile.
type Vehicle struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	LicensePlate string `json:"license_plate"`
}

// Driver is the driver-specific extension of a User with RoleDriver.
// At most one profile exists per user; availability starts out false.
// Rating is the running average of ride ratings received, 0 until rated.
type Driver struct {
	ID           string
	UserID       string
	Vehicle      Vehicle
	VehicleTypes []VehicleType
	IsAvailable  bool
	Rating       float64
	TotalRides   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
