package application_test

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/swiftride/api/internal/domain/entity"
	"github.com/swiftride/api/internal/domain/repository"
)

// In-memory repository fakes backing the service tests.

var (
	_ repository.UserRepository   = (*memUserRepo)(nil)
	_ repository.DriverRepository = (*memDriverRepo)(nil)
	_ repository.RideRepository   = (*memRideRepo)(nil)
)

type memUserRepo struct {
	users map[string]*entity.User // by ID
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memDriverRepo struct {
	drivers map[string]*entity.Driver // by owning user ID
	ratings map[string][]int
}

func newMemDriverRepo() *memDriverRepo {
	return &memDriverRepo{drivers: map[string]*entity.Driver{}, ratings: map[string][]int{}}
}

func (r *memDriverRepo) Create(_ context.Context, d *entity.Driver) error {
	if _, ok := r.drivers[d.UserID]; ok {
		return repository.ErrDuplicate
	}
	d.ID = uuid.NewString()
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	cp := *d
	r.drivers[d.UserID] = &cp
	return nil
}

func (r *memDriverRepo) GetByUserID(_ context.Context, userID string) (*entity.Driver, error) {
	d, ok := r.drivers[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *memDriverRepo) SetAvailability(_ context.Context, userID string, isAvailable bool) (*entity.Driver, error) {
	d, ok := r.drivers[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	d.IsAvailable = isAvailable
	d.UpdatedAt = time.Now()
	cp := *d
	return &cp, nil
}

func (r *memDriverRepo) SetVehicleTypes(_ context.Context, userID string, types []entity.VehicleType) (*entity.Driver, error) {
	d, ok := r.drivers[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	d.VehicleTypes = append([]entity.VehicleType(nil), types...)
	d.UpdatedAt = time.Now()
	cp := *d
	return &cp, nil
}

func (r *memDriverRepo) ListAvailable(_ context.Context) ([]*entity.Driver, error) {
	var out []*entity.Driver
	for _, d := range r.drivers {
		if d.IsAvailable {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memDriverRepo) IncrementTotalRides(_ context.Context, userID string) error {
	if d, ok := r.drivers[userID]; ok {
		d.TotalRides++
	}
	return nil
}

func (r *memDriverRepo) ApplyRating(_ context.Context, userID string, rating int) error {
	d, ok := r.drivers[userID]
	if !ok {
		return nil
	}
	r.ratings[userID] = append(r.ratings[userID], rating)
	sum := 0
	for _, v := range r.ratings[userID] {
		sum += v
	}
	d.Rating = float64(sum) / float64(len(r.ratings[userID]))
	return nil
}

type memRideRepo struct {
	rides map[string]*entity.Ride
	seq   int
}

func newMemRideRepo() *memRideRepo {
	return &memRideRepo{rides: map[string]*entity.Ride{}}
}

func (r *memRideRepo) Create(_ context.Context, ride *entity.Ride) error {
	ride.ID = uuid.NewString()
	r.seq++
	// spread timestamps so ordering assertions are deterministic
	ride.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	ride.UpdatedAt = ride.CreatedAt
	cp := *ride
	r.rides[ride.ID] = &cp
	return nil
}

func (r *memRideRepo) GetByID(_ context.Context, id string) (*entity.Ride, error) {
	ride, ok := r.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *ride
	return &cp, nil
}

func (r *memRideRepo) Accept(_ context.Context, rideID, driverID string, acceptedAt time.Time) (bool, error) {
	ride, ok := r.rides[rideID]
	if !ok {
		return false, repository.ErrNotFound
	}
	if ride.Status != entity.RideRequested || ride.DriverID != nil {
		return false, nil
	}
	ride.DriverID = &driverID
	ride.Status = entity.RideAccepted
	ride.AcceptedAt = &acceptedAt
	ride.UpdatedAt = time.Now()
	return true, nil
}

func (r *memRideRepo) UpdateStatus(_ context.Context, rideID string, status entity.RideStatus, at *time.Time) error {
	ride, ok := r.rides[rideID]
	if !ok {
		return repository.ErrNotFound
	}
	ride.Status = status
	switch status {
	case entity.RideCompleted:
		ride.CompletedAt = at
	case entity.RideCancelled:
		ride.CancelledAt = at
	}
	ride.UpdatedAt = time.Now()
	return nil
}

func (r *memRideRepo) SetRating(_ context.Context, rideID string, rating int, comment *string) error {
	ride, ok := r.rides[rideID]
	if !ok || ride.Rating != nil {
		return repository.ErrNotFound
	}
	ride.Rating = &rating
	ride.RatingComment = comment
	ride.UpdatedAt = time.Now()
	return nil
}

func (r *memRideRepo) ListPending(_ context.Context, vehicleType entity.VehicleType) ([]*entity.Ride, error) {
	var out []*entity.Ride
	for _, ride := range r.rides {
		if ride.Status == entity.RideRequested && ride.DriverID == nil && ride.RideType == vehicleType {
			cp := *ride
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt.Before(out[j].RequestedAt) })
	return out, nil
}

func (r *memRideRepo) ListByParticipant(_ context.Context, userID string) ([]*entity.Ride, error) {
	var out []*entity.Ride
	for _, ride := range r.rides {
		if ride.UserID == userID || (ride.DriverID != nil && *ride.DriverID == userID) {
			cp := *ride
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
