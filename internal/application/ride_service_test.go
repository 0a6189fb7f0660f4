package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/swiftride/api/internal/application"
	"github.com/swiftride/api/internal/domain/entity"
)

func newRideService(rides *memRideRepo, drivers *memDriverRepo) *application.RideService {
	return application.NewRideService(rides, drivers, nil, nil)
}

func seedDriver(t *testing.T, drivers *memDriverRepo, userID string) {
	t.Helper()
	err := drivers.Create(context.Background(), &entity.Driver{
		UserID:       userID,
		Vehicle:      entity.Vehicle{Make: "Toyota", Model: "Corolla", Year: 2020, LicensePlate: "ABC-123"},
		VehicleTypes: []entity.VehicleType{entity.VehicleCar},
	})
	require.NoError(t, err)
}

func TestGenerateFareRange(t *testing.T) {
	bases := map[entity.VehicleType]int{
		entity.VehicleCar:      100,
		entity.VehicleRickshaw: 50,
		entity.VehicleBike:     30,
	}
	for vt, base := range bases {
		for i := 0; i < 200; i++ {
			fare := application.GenerateFare(vt)
			require.GreaterOrEqual(t, fare, base, "fare below base for %s", vt)
			require.LessOrEqual(t, fare, 2*base, "fare above double base for %s", vt)
		}
	}
}

func TestCreateRide(t *testing.T) {
	rides := newMemRideRepo()
	svc := newRideService(rides, newMemDriverRepo())

	ride, err := svc.CreateRide(context.Background(), "passenger-1", application.CreateRideInput{
		PickupLocation: "Airport",
		DropLocation:   "Old Town",
		RideType:       entity.VehicleBike,
	})
	require.NoError(t, err)
	require.NotEmpty(t, ride.ID)
	require.Equal(t, entity.RideRequested, ride.Status)
	require.Nil(t, ride.DriverID)
	require.GreaterOrEqual(t, ride.Fare, 30)
	require.LessOrEqual(t, ride.Fare, 60)
	require.False(t, ride.RequestedAt.IsZero())

	stored, err := svc.GetRideByID(context.Background(), ride.ID)
	require.NoError(t, err)
	require.Equal(t, ride.Fare, stored.Fare, "fare must not change after creation")
}

func TestRideLifecycle(t *testing.T) {
	rides := newMemRideRepo()
	drivers := newMemDriverRepo()
	svc := newRideService(rides, drivers)
	ctx := context.Background()
	seedDriver(t, drivers, "driver-1")

	ride, err := svc.CreateRide(ctx, "passenger-1", application.CreateRideInput{
		PickupLocation: "Main St 1",
		DropLocation:   "Station",
		RideType:       entity.VehicleCar,
	})
	require.NoError(t, err)

	// accept assigns the acting user as driver
	accepted, err := svc.UpdateStatus(ctx, ride.ID, entity.RideAccepted, "driver-1")
	require.NoError(t, err)
	require.Equal(t, entity.RideAccepted, accepted.Status)
	require.NotNil(t, accepted.DriverID)
	require.Equal(t, "driver-1", *accepted.DriverID)
	require.NotNil(t, accepted.AcceptedAt)

	// an already-accepted ride cannot be accepted again
	_, err = svc.UpdateStatus(ctx, ride.ID, entity.RideAccepted, "driver-2")
	require.ErrorIs(t, err, application.ErrInvalidTransition)

	inProgress, err := svc.UpdateStatus(ctx, ride.ID, entity.RideInProgress, "driver-1")
	require.NoError(t, err)
	require.Equal(t, entity.RideInProgress, inProgress.Status)

	// rating before completion is rejected
	_, err = svc.RateRide(ctx, ride.ID, "passenger-1", 5, nil)
	require.ErrorIs(t, err, application.ErrRideNotCompleted)

	completed, err := svc.UpdateStatus(ctx, ride.ID, entity.RideCompleted, "driver-1")
	require.NoError(t, err)
	require.Equal(t, entity.RideCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)

	d, err := drivers.GetByUserID(ctx, "driver-1")
	require.NoError(t, err)
	require.Equal(t, 1, d.TotalRides)

	// terminal states reject further transitions
	_, err = svc.UpdateStatus(ctx, ride.ID, entity.RideCancelled, "driver-1")
	require.ErrorIs(t, err, application.ErrInvalidTransition)

	comment := "great ride"
	rated, err := svc.RateRide(ctx, ride.ID, "passenger-1", 5, &comment)
	require.NoError(t, err)
	require.NotNil(t, rated.Rating)
	require.Equal(t, 5, *rated.Rating)
	require.Equal(t, &comment, rated.RatingComment)

	d, err = drivers.GetByUserID(ctx, "driver-1")
	require.NoError(t, err)
	require.InDelta(t, 5.0, d.Rating, 0.001)

	_, err = svc.RateRide(ctx, ride.ID, "passenger-1", 4, nil)
	require.ErrorIs(t, err, application.ErrAlreadyRated)
}

func TestUpdateStatusInvalidTransitions(t *testing.T) {
	rides := newMemRideRepo()
	svc := newRideService(rides, newMemDriverRepo())
	ctx := context.Background()

	ride, err := svc.CreateRide(ctx, "passenger-1", application.CreateRideInput{
		PickupLocation: "A", DropLocation: "B", RideType: entity.VehicleCar,
	})
	require.NoError(t, err)

	for _, next := range []entity.RideStatus{entity.RideInProgress, entity.RideCompleted, entity.RideRequested} {
		_, err := svc.UpdateStatus(ctx, ride.ID, next, "driver-1")
		require.ErrorIs(t, err, application.ErrInvalidTransition, "requested -> %s must be rejected", next)
	}

	_, err = svc.UpdateStatus(ctx, ride.ID, entity.RideStatus("parked"), "driver-1")
	require.ErrorIs(t, err, application.ErrInvalidTransition)

	_, err = svc.UpdateStatus(ctx, "missing", entity.RideAccepted, "driver-1")
	require.ErrorIs(t, err, application.ErrRideNotFound)
}

func TestUpdateStatusAcceptRace(t *testing.T) {
	rides := newMemRideRepo()
	svc := newRideService(rides, newMemDriverRepo())
	ctx := context.Background()

	ride, err := svc.CreateRide(ctx, "passenger-1", application.CreateRideInput{
		PickupLocation: "A", DropLocation: "B", RideType: entity.VehicleCar,
	})
	require.NoError(t, err)

	// Claim the ride out of band so a second accept finds it assigned
	// while still in requested state.
	claimed, err := rides.Accept(ctx, ride.ID, "driver-1", time.Now())
	require.NoError(t, err)
	require.True(t, claimed)
	rides.rides[ride.ID].Status = entity.RideRequested

	_, err = svc.UpdateStatus(ctx, ride.ID, entity.RideAccepted, "driver-2")
	require.ErrorIs(t, err, application.ErrRideAlreadyAssigned)
}

func TestCancelFromEveryActiveState(t *testing.T) {
	rides := newMemRideRepo()
	drivers := newMemDriverRepo()
	svc := newRideService(rides, drivers)
	ctx := context.Background()

	advance := map[string][]entity.RideStatus{
		"requested":   {},
		"accepted":    {entity.RideAccepted},
		"in_progress": {entity.RideAccepted, entity.RideInProgress},
	}
	for name, steps := range advance {
		ride, err := svc.CreateRide(ctx, "passenger-1", application.CreateRideInput{
			PickupLocation: "A", DropLocation: "B", RideType: entity.VehicleCar,
		})
		require.NoError(t, err)
		for _, st := range steps {
			_, err := svc.UpdateStatus(ctx, ride.ID, st, "driver-1")
			require.NoError(t, err)
		}
		cancelled, err := svc.UpdateStatus(ctx, ride.ID, entity.RideCancelled, "passenger-1")
		require.NoError(t, err, "cancel from %s", name)
		require.Equal(t, entity.RideCancelled, cancelled.Status)
		require.NotNil(t, cancelled.CancelledAt)
	}
}

func TestRateRideGuards(t *testing.T) {
	rides := newMemRideRepo()
	svc := newRideService(rides, newMemDriverRepo())
	ctx := context.Background()

	ride, err := svc.CreateRide(ctx, "passenger-1", application.CreateRideInput{
		PickupLocation: "A", DropLocation: "B", RideType: entity.VehicleBike,
	})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, ride.ID, entity.RideAccepted, "driver-1")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, ride.ID, entity.RideInProgress, "driver-1")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, ride.ID, entity.RideCompleted, "driver-1")
	require.NoError(t, err)

	// only the requester may rate
	_, err = svc.RateRide(ctx, ride.ID, "driver-1", 4, nil)
	require.ErrorIs(t, err, application.ErrNotRideRequester)

	_, err = svc.RateRide(ctx, "missing", "passenger-1", 4, nil)
	require.ErrorIs(t, err, application.ErrRideNotFound)
}

func TestListPendingRides(t *testing.T) {
	rides := newMemRideRepo()
	svc := newRideService(rides, newMemDriverRepo())
	ctx := context.Background()

	first, err := svc.CreateRide(ctx, "p1", application.CreateRideInput{
		PickupLocation: "A", DropLocation: "B", RideType: entity.VehicleCar,
	})
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	second, err := svc.CreateRide(ctx, "p2", application.CreateRideInput{
		PickupLocation: "C", DropLocation: "D", RideType: entity.VehicleCar,
	})
	require.NoError(t, err)
	taken, err := svc.CreateRide(ctx, "p3", application.CreateRideInput{
		PickupLocation: "E", DropLocation: "F", RideType: entity.VehicleCar,
	})
	require.NoError(t, err)
	_, err = svc.CreateRide(ctx, "p4", application.CreateRideInput{
		PickupLocation: "G", DropLocation: "H", RideType: entity.VehicleBike,
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, taken.ID, entity.RideAccepted, "driver-1")
	require.NoError(t, err)

	pending, err := svc.ListPendingRides(ctx, entity.VehicleCar)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	require.Equal(t, first.ID, pending[0].ID, "oldest request first")
	require.Equal(t, second.ID, pending[1].ID)
}

func TestGetRideHistory(t *testing.T) {
	rides := newMemRideRepo()
	svc := newRideService(rides, newMemDriverRepo())
	ctx := context.Background()

	older, err := svc.CreateRide(ctx, "p1", application.CreateRideInput{
		PickupLocation: "A", DropLocation: "B", RideType: entity.VehicleCar,
	})
	require.NoError(t, err)
	newer, err := svc.CreateRide(ctx, "p1", application.CreateRideInput{
		PickupLocation: "C", DropLocation: "D", RideType: entity.VehicleBike,
	})
	require.NoError(t, err)
	asDriver, err := svc.CreateRide(ctx, "p2", application.CreateRideInput{
		PickupLocation: "E", DropLocation: "F", RideType: entity.VehicleCar,
	})
	require.NoError(t, err)
	_, err = svc.CreateRide(ctx, "p3", application.CreateRideInput{
		PickupLocation: "G", DropLocation: "H", RideType: entity.VehicleCar,
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, asDriver.ID, entity.RideAccepted, "p1")
	require.NoError(t, err)

	history, err := svc.GetRideHistory(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, history, 3, "history spans rides as requester and as driver")
	require.Equal(t, asDriver.ID, history[0].ID, "most recent first")
	require.Equal(t, newer.ID, history[1].ID)
	require.Equal(t, older.ID, history[2].ID)
}
