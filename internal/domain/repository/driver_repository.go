package repository

import (
	"context"

	"github.com/swiftride/api/internal/domain/entity"
)

// DriverRepository defines the interface for driver-profile persistence.
// Profiles are keyed by the owning user, not by their own ID.
type DriverRepository interface {
	Create(ctx context.Context, d *entity.Driver) error
	GetByUserID(ctx context.Context, userID string) (*entity.Driver, error)
	SetAvailability(ctx context.Context, userID string, isAvailable bool) (*entity.Driver, error)
	SetVehicleTypes(ctx context.Context, userID string, types []entity.VehicleType) (*entity.Driver, error)
	ListAvailable(ctx context.Context) ([]*entity.Driver, error)
	// IncrementTotalRides bumps the completed-ride counter for the driver
	// owning userID. Missing profiles are not an error here; completion of
	// the ride must not fail on aggregate bookkeeping.
	IncrementTotalRides(ctx context.Context, userID string) error
	// ApplyRating folds one more 1-5 rating into the driver's running average.
	ApplyRating(ctx context.Context, userID string, rating int) error
}
