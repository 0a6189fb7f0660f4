package entity

import "time"

// RideStatus is the lifecycle state of a ride.
type RideStatus string

const (
	RideRequested  RideStatus = "requested"
	RideAccepted   RideStatus = "accepted"
	RideInProgress RideStatus = "in_progress"
	RideCompleted  RideStatus = "completed"
	RideCancelled  RideStatus = "cancelled"
)

// rideTransitions lists the allowed next statuses per current status.
// completed and cancelled are terminal.
var rideTransitions = map[RideStatus][]RideStatus{
	RideRequested:  {RideAccepted, RideCancelled},
	RideAccepted:   {RideInProgress, RideCancelled},
	RideInProgress: {RideCompleted, RideCancelled},
	RideCompleted:  {},
	RideCancelled:  {},
}

// CanTransition reports whether a ride may move from its current status
// to next. It does not cover the driver-assignment guard on acceptance;
// that is enforced by the service against the loaded ride.
func (s RideStatus) CanTransition(next RideStatus) bool {
	for _, allowed := range rideTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the known lifecycle states.
func (s RideStatus) Valid() bool {
	_, ok := rideTransitions[s]
	return ok
}

// Ride is the central transactional entity. DriverID is nil until a driver
// accepts; Fare is fixed at creation and never recalculated. RiderName and
// DriverName are display names resolved from the users table on reads, not
// persisted on the ride itself.
type Ride struct {
	ID             string
	UserID         string
	DriverID       *string
	PickupAddress  string
	DropoffAddress string
	RideType       VehicleType
	Status         RideStatus
	Fare           int
	Rating         *int
	RatingComment  *string
	RequestedAt    time.Time
	AcceptedAt     *time.Time
	CompletedAt    *time.Time
	CancelledAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	RiderName  string
	DriverName string
}
