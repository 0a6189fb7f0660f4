package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/swiftride/api/internal/domain/entity"
	repo "github.com/swiftride/api/internal/domain/repository"
)

// DriverService manages the driver-profile extension of a user.
type DriverService struct {
	Drivers repo.DriverRepository
	Users   repo.UserRepository
	Logger  *logrus.Logger
}

func NewDriverService(drivers repo.DriverRepository, users repo.UserRepository, logger *logrus.Logger) *DriverService {
	return &DriverService{Drivers: drivers, Users: users, Logger: logger}
}

type CreateProfileInput struct {
	Vehicle      entity.Vehicle
	VehicleTypes []entity.VehicleType
}

// CreateProfile creates the one driver profile for userID. The user must
// exist and carry the driver role; availability starts out false.
func (s *DriverService) CreateProfile(ctx context.Context, userID string, in CreateProfileInput) (*entity.Driver, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if u.Role != entity.RoleDriver {
		return nil, ErrNotADriver
	}

	if existing, err := s.Drivers.GetByUserID(ctx, userID); err == nil && existing != nil {
		return nil, ErrDriverProfileExists
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	d := &entity.Driver{
		UserID:       userID,
		Vehicle:      in.Vehicle,
		VehicleTypes: in.VehicleTypes,
		IsAvailable:  false,
	}
	if err := s.Drivers.Create(ctx, d); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDriverProfileExists
		}
		return nil, err
	}
	return d, nil
}

func (s *DriverService) GetProfile(ctx context.Context, userID string) (*entity.Driver, error) {
	d, err := s.Drivers.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *DriverService) SetAvailability(ctx context.Context, userID string, isAvailable bool) (*entity.Driver, error) {
	d, err := s.Drivers.SetAvailability(ctx, userID, isAvailable)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, err
	}
	return d, nil
}

// SetVehicleTypes replaces the capability set wholesale.
func (s *DriverService) SetVehicleTypes(ctx context.Context, userID string, types []entity.VehicleType) (*entity.Driver, error) {
	d, err := s.Drivers.SetVehicleTypes(ctx, userID, types)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, err
	}
	return d, nil
}

// ListAvailable returns every profile with availability on. Vehicle-type
// filtering happens on the ride side via pending rides.
func (s *DriverService) ListAvailable(ctx context.Context) ([]*entity.Driver, error) {
	return s.Drivers.ListAvailable(ctx)
}
