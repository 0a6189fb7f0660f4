package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swiftride/api/internal/domain/entity"
	"github.com/swiftride/api/internal/domain/repository"
)

type DriverRepository struct {
	pool *pgxpool.Pool
}

func NewDriverRepository(pool *pgxpool.Pool) *DriverRepository {
	return &DriverRepository{pool: pool}
}

const driverColumns = `id, user_id, vehicle, vehicle_types, is_available, rating, total_rides, created_at, updated_at`

func scanDriver(row pgx.Row) (*entity.Driver, error) {
	d := &entity.Driver{}
	var vehicleJSON []byte
	var types []string

	if err := row.Scan(&d.ID, &d.UserID, &vehicleJSON, &types, &d.IsAvailable,
		&d.Rating, &d.TotalRides, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(vehicleJSON, &d.Vehicle); err != nil {
		return nil, err
	}
	d.VehicleTypes = make([]entity.VehicleType, 0, len(types))
	for _, t := range types {
		d.VehicleTypes = append(d.VehicleTypes, entity.VehicleType(t))
	}
	return d, nil
}

func typeStrings(types []entity.VehicleType) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, string(t))
	}
	return out
}

func (r *DriverRepository) Create(ctx context.Context, d *entity.Driver) error {
	vehicleJSON, err := json.Marshal(d.Vehicle)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO drivers (user_id, vehicle, vehicle_types, is_available)
		VALUES ($1, $2, $3, $4)
		RETURNING id, rating, total_rides, created_at, updated_at
	`, d.UserID, vehicleJSON, typeStrings(d.VehicleTypes), d.IsAvailable)

	if err := row.Scan(&d.ID, &d.Rating, &d.TotalRides, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *DriverRepository) GetByUserID(ctx context.Context, userID string) (*entity.Driver, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+driverColumns+`
		FROM drivers
		WHERE user_id = $1
	`, userID)
	return scanDriver(row)
}

func (r *DriverRepository) SetAvailability(ctx context.Context, userID string, isAvailable bool) (*entity.Driver, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE drivers
		SET is_available = $1, updated_at = now()
		WHERE user_id = $2
		RETURNING `+driverColumns+`
	`, isAvailable, userID)
	return scanDriver(row)
}

func (r *DriverRepository) SetVehicleTypes(ctx context.Context, userID string, types []entity.VehicleType) (*entity.Driver, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE drivers
		SET vehicle_types = $1, updated_at = now()
		WHERE user_id = $2
		RETURNING `+driverColumns+`
	`, typeStrings(types), userID)
	return scanDriver(row)
}

func (r *DriverRepository) ListAvailable(ctx context.Context) ([]*entity.Driver, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+driverColumns+`
		FROM drivers
		WHERE is_available = true
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := make([]*entity.Driver, 0)
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

func (r *DriverRepository) IncrementTotalRides(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE drivers
		SET total_rides = total_rides + 1, updated_at = now()
		WHERE user_id = $1
	`, userID)
	return err
}

// ApplyRating recomputes the driver's aggregate as the exact average over
// all rated rides; the rating argument is already persisted on the ride.
func (r *DriverRepository) ApplyRating(ctx context.Context, userID string, _ int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE drivers
		SET rating = COALESCE((
			SELECT AVG(rating)::numeric(3,2)
			FROM rides
			WHERE driver_id = $1 AND rating IS NOT NULL
		), 0), updated_at = now()
		WHERE user_id = $1
	`, userID)
	return err
}

var _ repository.DriverRepository = (*DriverRepository)(nil)
