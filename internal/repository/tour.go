package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/tourism/internal/database"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const tourColumns = `id, title, description, destination, start_date, (start_date + duration_days) AS end_date,
	duration_days, price_per_person, capacity, images, is_active, created_at, updated_at`

type TourRepository struct {
	db database.DBTX
}

func NewTourRepository(db database.DBTX) *TourRepository {
	return &TourRepository{db: db}
}

func scanTour(row pgx.Row) (model.Tour, error) {
	var t model.Tour
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Destination,
		&t.StartDate,
		&t.EndDate,
		&t.DurationDays,
		&t.PricePerPerson,
		&t.Capacity,
		&t.Images,
		&t.IsActive,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

func (r *TourRepository) Create(ctx context.Context, in model.TourInput) (*model.Tour, error) {
	t, err := scanTour(r.db.QueryRow(ctx, `
		INSERT INTO tours (title, description, destination, start_date, duration_days, price_per_person,
			capacity, images, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+tourColumns,
		in.Title, in.Description, in.Destination, in.StartDateValue(), in.DurationDays, in.PricePerPerson,
		in.Capacity, nonNil(in.Images), in.Active(),
	))
	if err != nil {
		return nil, fmt.Errorf("insert tour: %w", err)
	}
	return &t, nil
}

func (r *TourRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tour, error) {
	t, err := scanTour(r.db.QueryRow(ctx, `SELECT `+tourColumns+` FROM tours WHERE id = $1`, id))
	if err != nil {
		return nil, notFound("tours", err)
	}
	return &t, nil
}

// GetForUpdate locks the tour row until the surrounding transaction ends.
func (r *TourRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Tour, error) {
	t, err := scanTour(r.db.QueryRow(ctx, `SELECT `+tourColumns+` FROM tours WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, notFound("tours", err)
	}
	return &t, nil
}

func (r *TourRepository) List(ctx context.Context, q model.ListToursQuery) ([]model.Tour, int64, error) {
	var w where
	if !q.IncludeInactive {
		w.raw(`is_active`)
	}
	if q.Destination != "" {
		w.add(`destination ILIKE ?`, likePattern(q.Destination))
	}
	if maxPrice := q.MaxPriceValue(); maxPrice != nil {
		w.add(`price_per_person <= ?`, *maxPrice)
	}
	if from := q.FromValue(); from != nil {
		w.add(`start_date >= ?`, *from)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tours`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tours: %w", err)
	}

	limit, args := w.page(q.Limit, q.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+tourColumns+` FROM tours`+w.String()+` ORDER BY start_date, title`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tours: %w", err)
	}
	tours, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Tour, error) {
		return scanTour(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan tours: %w", err)
	}
	return tours, total, nil
}

func (r *TourRepository) Update(ctx context.Context, id uuid.UUID, in model.TourInput) (*model.Tour, error) {
	t, err := scanTour(r.db.QueryRow(ctx, `
		UPDATE tours SET
			title = $2, description = $3, destination = $4, start_date = $5, duration_days = $6,
			price_per_person = $7, capacity = $8, images = $9, is_active = $10, updated_at = now()
		WHERE id = $1
		RETURNING `+tourColumns,
		id, in.Title, in.Description, in.Destination, in.StartDateValue(), in.DurationDays, in.PricePerPerson,
		in.Capacity, nonNil(in.Images), in.Active(),
	))
	if err != nil {
		return nil, notFound("tours", err)
	}
	return &t, nil
}

func (r *TourRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "tours", id)
}
