package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/tourism/internal/database"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const carColumns = `id, brand, model, year, category, seats, transmission, price_per_day, city,
	images, is_active, created_at, updated_at`

type CarRepository struct {
	db database.DBTX
}

func NewCarRepository(db database.DBTX) *CarRepository {
	return &CarRepository{db: db}
}

func scanCar(row pgx.Row) (model.Car, error) {
	var c model.Car
	err := row.Scan(
		&c.ID,
		&c.Brand,
		&c.Model,
		&c.Year,
		&c.Category,
		&c.Seats,
		&c.Transmission,
		&c.PricePerDay,
		&c.City,
		&c.Images,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func (r *CarRepository) Create(ctx context.Context, in model.CarInput) (*model.Car, error) {
	c, err := scanCar(r.db.QueryRow(ctx, `
		INSERT INTO cars (brand, model, year, category, seats, transmission, price_per_day, city, images, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+carColumns,
		in.Brand, in.Model, in.Year, in.Category, in.Seats, in.Transmission, in.PricePerDay, in.City,
		nonNil(in.Images), in.Active(),
	))
	if err != nil {
		return nil, fmt.Errorf("insert car: %w", err)
	}
	return &c, nil
}

func (r *CarRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	c, err := scanCar(r.db.QueryRow(ctx, `SELECT `+carColumns+` FROM cars WHERE id = $1`, id))
	if err != nil {
		return nil, notFound("cars", err)
	}
	return &c, nil
}

// GetForUpdate locks the car row until the surrounding transaction ends.
func (r *CarRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	c, err := scanCar(r.db.QueryRow(ctx, `SELECT `+carColumns+` FROM cars WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, notFound("cars", err)
	}
	return &c, nil
}

func (r *CarRepository) List(ctx context.Context, q model.ListCarsQuery) ([]model.Car, int64, error) {
	var w where
	if !q.IncludeInactive {
		w.raw(`is_active`)
	}
	if q.City != "" {
		w.add(`lower(city) = lower(?)`, q.City)
	}
	if q.Category != "" {
		w.add(`lower(category) = lower(?)`, q.Category)
	}
	if maxPrice := q.MaxPriceValue(); maxPrice != nil {
		w.add(`price_per_day <= ?`, *maxPrice)
	}
	if q.Seats > 0 {
		w.add(`seats >= ?`, q.Seats)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cars`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count cars: %w", err)
	}

	limit, args := w.page(q.Limit, q.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+carColumns+` FROM cars`+w.String()+` ORDER BY price_per_day, brand, model`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list cars: %w", err)
	}
	cars, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Car, error) {
		return scanCar(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan cars: %w", err)
	}
	return cars, total, nil
}

func (r *CarRepository) Update(ctx context.Context, id uuid.UUID, in model.CarInput) (*model.Car, error) {
	c, err := scanCar(r.db.QueryRow(ctx, `
		UPDATE cars SET
			brand = $2, model = $3, year = $4, category = $5, seats = $6, transmission = $7,
			price_per_day = $8, city = $9, images = $10, is_active = $11, updated_at = now()
		WHERE id = $1
		RETURNING `+carColumns,
		id, in.Brand, in.Model, in.Year, in.Category, in.Seats, in.Transmission, in.PricePerDay, in.City,
		nonNil(in.Images), in.Active(),
	))
	if err != nil {
		return nil, notFound("cars", err)
	}
	return &c, nil
}

func (r *CarRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "cars", id)
}
