package events

import "time"

// Ride event types published on the ride-events queue.
const (
	RideRequested  = "ride.requested"
	RideAccepted   = "ride.accepted"
	RideInProgress = "ride.in_progress"
	RideCompleted  = "ride.completed"
	RideCancelled  = "ride.cancelled"
)

// RideEvent is the JSON payload put on the RabbitMQ queue for every ride
// lifecycle change. DriverID is empty until a driver has accepted.
type RideEvent struct {
	Type           string    `json:"type"`
	RideID         string    `json:"ride_id"`
	UserID         string    `json:"user_id"`
	DriverID       string    `json:"driver_id,omitempty"`
	RideType       string    `json:"ride_type"`
	PickupAddress  string    `json:"pickup_address"`
	DropoffAddress string    `json:"dropoff_address"`
	Fare           int       `json:"fare"`
	OccurredAt     time.Time `json:"occurred_at"`
}
