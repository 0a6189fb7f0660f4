package application

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/swiftride/api/internal/domain/entity"
	repo "github.com/swiftride/api/internal/domain/repository"
	"github.com/swiftride/api/pkg/events"
	"github.com/swiftride/api/pkg/helpers"
)

// baseFares are the per-type base amounts in currency units. The final fare
// is base times a surge multiplier drawn from [1.0, 2.0) at creation time;
// it does not depend on distance or time of day.
var baseFares = map[entity.VehicleType]int{
	entity.VehicleCar:      100,
	entity.VehicleRickshaw: 50,
	entity.VehicleBike:     30,
}

// GenerateFare computes the fixed fare for a new ride of the given type.
func GenerateFare(rideType entity.VehicleType) int {
	multiplier := 1 + rand.Float64()
	return int(math.Round(float64(baseFares[rideType]) * multiplier))
}

// RideService owns the ride lifecycle: creation with fare estimation, the
// status state machine, post-completion rating, and query surfaces.
// Publisher is optional; lifecycle events are published best effort and a
// publish failure never fails the request.
type RideService struct {
	Rides     repo.RideRepository
	Drivers   repo.DriverRepository
	Publisher *helpers.RabbitPublisher
	Logger    *logrus.Logger
}

func NewRideService(rides repo.RideRepository, drivers repo.DriverRepository, pub *helpers.RabbitPublisher, logger *logrus.Logger) *RideService {
	return &RideService{Rides: rides, Drivers: drivers, Publisher: pub, Logger: logger}
}

type CreateRideInput struct {
	PickupLocation string
	DropLocation   string
	RideType       entity.VehicleType
}

// CreateRide persists a new ride at status requested. No driver availability
// check happens here; drivers discover the ride via the pending list.
func (s *RideService) CreateRide(ctx context.Context, userID string, in CreateRideInput) (*entity.Ride, error) {
	ride := &entity.Ride{
		UserID:         userID,
		PickupAddress:  in.PickupLocation,
		DropoffAddress: in.DropLocation,
		RideType:       in.RideType,
		Status:         entity.RideRequested,
		Fare:           GenerateFare(in.RideType),
		RequestedAt:    time.Now(),
	}
	if err := s.Rides.Create(ctx, ride); err != nil {
		return nil, err
	}
	s.publish(ctx, events.RideRequested, ride)
	return ride, nil
}

func (s *RideService) GetRideByID(ctx context.Context, rideID string) (*entity.Ride, error) {
	ride, err := s.Rides.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRideNotFound
		}
		return nil, err
	}
	return ride, nil
}

// ListPendingRides returns requested, unassigned rides matching vehicleType,
// oldest request first so drivers see them first come, first served.
func (s *RideService) ListPendingRides(ctx context.Context, vehicleType entity.VehicleType) ([]*entity.Ride, error) {
	return s.Rides.ListPending(ctx, vehicleType)
}

// UpdateStatus moves a ride along the lifecycle. The acting user becomes the
// assigned driver on acceptance; for every other transition the caller's
// identity is accepted but not checked against the ride's participants.
func (s *RideService) UpdateStatus(ctx context.Context, rideID string, newStatus entity.RideStatus, actingUserID string) (*entity.Ride, error) {
	ride, err := s.Rides.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRideNotFound
		}
		return nil, err
	}
	if !newStatus.Valid() || !ride.Status.CanTransition(newStatus) {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	switch newStatus {
	case entity.RideAccepted:
		if ride.DriverID != nil {
			return nil, ErrRideAlreadyAssigned
		}
		// Single conditional update; a losing racer sees zero rows claimed.
		claimed, err := s.Rides.Accept(ctx, rideID, actingUserID, now)
		if err != nil {
			return nil, err
		}
		if !claimed {
			return nil, ErrRideAlreadyAssigned
		}
		ride.DriverID = &actingUserID
		ride.AcceptedAt = &now
	case entity.RideCompleted:
		if err := s.Rides.UpdateStatus(ctx, rideID, newStatus, &now); err != nil {
			return nil, err
		}
		ride.CompletedAt = &now
		if ride.DriverID != nil {
			if err := s.Drivers.IncrementTotalRides(ctx, *ride.DriverID); err != nil && s.Logger != nil {
				s.Logger.WithError(err).WithField("ride_id", rideID).Warn("total rides increment failed")
			}
		}
	case entity.RideCancelled:
		if err := s.Rides.UpdateStatus(ctx, rideID, newStatus, &now); err != nil {
			return nil, err
		}
		ride.CancelledAt = &now
	default:
		if err := s.Rides.UpdateStatus(ctx, rideID, newStatus, nil); err != nil {
			return nil, err
		}
	}

	ride.Status = newStatus
	s.publish(ctx, eventType(newStatus), ride)
	return ride, nil
}

// RateRide records the single post-completion rating. Only the original
// requester may rate, only once, and only after completion.
func (s *RideService) RateRide(ctx context.Context, rideID, raterUserID string, rating int, comment *string) (*entity.Ride, error) {
	ride, err := s.Rides.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRideNotFound
		}
		return nil, err
	}
	if ride.UserID != raterUserID {
		return nil, ErrNotRideRequester
	}
	if ride.Status != entity.RideCompleted {
		return nil, ErrRideNotCompleted
	}
	if ride.Rating != nil {
		return nil, ErrAlreadyRated
	}

	if err := s.Rides.SetRating(ctx, rideID, rating, comment); err != nil {
		return nil, err
	}
	ride.Rating = &rating
	ride.RatingComment = comment

	if ride.DriverID != nil {
		if err := s.Drivers.ApplyRating(ctx, *ride.DriverID, rating); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("ride_id", rideID).Warn("driver rating update failed")
		}
	}
	return ride, nil
}

// GetRideHistory returns rides where the user is requester or assigned
// driver, most recent first.
func (s *RideService) GetRideHistory(ctx context.Context, userID string) ([]*entity.Ride, error) {
	return s.Rides.ListByParticipant(ctx, userID)
}

func eventType(status entity.RideStatus) string {
	switch status {
	case entity.RideAccepted:
		return events.RideAccepted
	case entity.RideInProgress:
		return events.RideInProgress
	case entity.RideCompleted:
		return events.RideCompleted
	case entity.RideCancelled:
		return events.RideCancelled
	default:
		return events.RideRequested
	}
}

func (s *RideService) publish(ctx context.Context, typ string, ride *entity.Ride) {
	if s.Publisher == nil {
		return
	}
	ev := events.RideEvent{
		Type:           typ,
		RideID:         ride.ID,
		UserID:         ride.UserID,
		RideType:       string(ride.RideType),
		PickupAddress:  ride.PickupAddress,
		DropoffAddress: ride.DropoffAddress,
		Fare:           ride.Fare,
		OccurredAt:     time.Now().UTC(),
	}
	if ride.DriverID != nil {
		ev.DriverID = *ride.DriverID
	}
	if err := s.Publisher.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("ride_id", ride.ID).Warn("ride event publish failed")
	}
}
