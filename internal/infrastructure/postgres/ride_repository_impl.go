package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swiftride/api/internal/domain/entity"
	"github.com/swiftride/api/internal/domain/repository"
)

type RideRepository struct {
	pool *pgxpool.Pool
}

func NewRideRepository(pool *pgxpool.Pool) *RideRepository {
	return &RideRepository{pool: pool}
}

// rideSelect joins the users table twice to resolve display names. The
// driver join is LEFT because driver_id is null until acceptance.
const rideSelect = `
	SELECT r.id, r.user_id, r.driver_id, r.pickup_address, r.dropoff_address,
	       r.ride_type, r.status, r.fare, r.rating, r.rating_comment,
	       r.requested_at, r.accepted_at, r.completed_at, r.cancelled_at,
	       r.created_at, r.updated_at,
	       u.name, COALESCE(d.name, '')
	FROM rides r
	JOIN users u ON u.id = r.user_id
	LEFT JOIN users d ON d.id = r.driver_id`

func scanRide(row pgx.Row) (*entity.Ride, error) {
	ride := &entity.Ride{}
	if err := row.Scan(&ride.ID, &ride.UserID, &ride.DriverID,
		&ride.PickupAddress, &ride.DropoffAddress,
		&ride.RideType, &ride.Status, &ride.Fare,
		&ride.Rating, &ride.RatingComment,
		&ride.RequestedAt, &ride.AcceptedAt, &ride.CompletedAt, &ride.CancelledAt,
		&ride.CreatedAt, &ride.UpdatedAt,
		&ride.RiderName, &ride.DriverName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return ride, nil
}

func (r *RideRepository) Create(ctx context.Context, ride *entity.Ride) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO rides (user_id, pickup_address, dropoff_address, ride_type, status, fare, requested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, ride.UserID, ride.PickupAddress, ride.DropoffAddress, ride.RideType,
		ride.Status, ride.Fare, ride.RequestedAt)

	return row.Scan(&ride.ID, &ride.CreatedAt, &ride.UpdatedAt)
}

func (r *RideRepository) GetByID(ctx context.Context, id string) (*entity.Ride, error) {
	row := r.pool.QueryRow(ctx, rideSelect+` WHERE r.id = $1`, id)
	return scanRide(row)
}

// Accept claims the ride for driverID in a single conditional update so two
// racing drivers cannot both win.
func (r *RideRepository) Accept(ctx context.Context, rideID, driverID string, acceptedAt time.Time) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE rides
		SET driver_id = $1, status = $2, accepted_at = $3, updated_at = now()
		WHERE id = $4 AND driver_id IS NULL AND status = $5
	`, driverID, entity.RideAccepted, acceptedAt, rideID, entity.RideRequested)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (r *RideRepository) UpdateStatus(ctx context.Context, rideID string, status entity.RideStatus, at *time.Time) error {
	var res pgconn.CommandTag
	var err error
	switch status {
	case entity.RideCompleted:
		res, err = r.pool.Exec(ctx, `
			UPDATE rides SET status = $1, completed_at = $2, updated_at = now() WHERE id = $3
		`, status, at, rideID)
	case entity.RideCancelled:
		res, err = r.pool.Exec(ctx, `
			UPDATE rides SET status = $1, cancelled_at = $2, updated_at = now() WHERE id = $3
		`, status, at, rideID)
	default:
		res, err = r.pool.Exec(ctx, `
			UPDATE rides SET status = $1, updated_at = now() WHERE id = $2
		`, status, rideID)
	}
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetRating is conditional on the ride being unrated so a rating can only
// ever be written once.
func (r *RideRepository) SetRating(ctx context.Context, rideID string, rating int, comment *string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE rides
		SET rating = $1, rating_comment = $2, updated_at = now()
		WHERE id = $3 AND rating IS NULL
	`, rating, comment, rideID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RideRepository) ListPending(ctx context.Context, vehicleType entity.VehicleType) ([]*entity.Ride, error) {
	rows, err := r.pool.Query(ctx, rideSelect+`
		WHERE r.status = $1 AND r.ride_type = $2 AND r.driver_id IS NULL
		ORDER BY r.requested_at ASC
	`, entity.RideRequested, vehicleType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRides(rows)
}

func (r *RideRepository) ListByParticipant(ctx context.Context, userID string) ([]*entity.Ride, error) {
	rows, err := r.pool.Query(ctx, rideSelect+`
		WHERE r.user_id = $1 OR r.driver_id = $1
		ORDER BY r.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRides(rows)
}

func collectRides(rows pgx.Rows) ([]*entity.Ride, error) {
	rides := make([]*entity.Ride, 0)
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

var _ repository.RideRepository = (*RideRepository)(nil)
