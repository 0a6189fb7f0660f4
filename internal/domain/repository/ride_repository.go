package repository

import (
	"context"
	"time"

	"github.com/swiftride/api/internal/domain/entity"
)

// RideRepository defines the interface for ride persistence.
type RideRepository interface {
	Create(ctx context.Context, r *entity.Ride) error
	// GetByID returns the ride with rider and driver display names resolved.
	GetByID(ctx context.Context, id string) (*entity.Ride, error)
	// Accept atomically claims a requested, unassigned ride for driverID and
	// stamps acceptedAt. It reports false when the ride was already assigned
	// (or already progressed), so a losing racer observes the claim failing
	// as a single unit.
	Accept(ctx context.Context, rideID, driverID string, acceptedAt time.Time) (bool, error)
	// UpdateStatus writes the new status and, when at is non-nil, the
	// matching side timestamp (completed_at or cancelled_at).
	UpdateStatus(ctx context.Context, rideID string, status entity.RideStatus, at *time.Time) error
	SetRating(ctx context.Context, rideID string, rating int, comment *string) error
	// ListPending returns requested, unassigned rides of the given type,
	// oldest request first.
	ListPending(ctx context.Context, vehicleType entity.VehicleType) ([]*entity.Ride, error)
	// ListByParticipant returns rides where userID is the requester or the
	// assigned driver, most recent first.
	ListByParticipant(ctx context.Context, userID string) ([]*entity.Ride, error)
}
