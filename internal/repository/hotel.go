package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/tourism/internal/database"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const hotelColumns = `id, name, description, city, country, address, stars, price_per_night,
	total_rooms, amenities, images, is_active, created_at, updated_at`

type HotelRepository struct {
	db database.DBTX
}

func NewHotelRepository(db database.DBTX) *HotelRepository {
	return &HotelRepository{db: db}
}

func scanHotel(row pgx.Row) (model.Hotel, error) {
	var h model.Hotel
	err := row.Scan(
		&h.ID,
		&h.Name,
		&h.Description,
		&h.City,
		&h.Country,
		&h.Address,
		&h.Stars,
		&h.PricePerNight,
		&h.TotalRooms,
		&h.Amenities,
		&h.Images,
		&h.IsActive,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	return h, err
}

func (r *HotelRepository) Create(ctx context.Context, in model.HotelInput) (*model.Hotel, error) {
	h, err := scanHotel(r.db.QueryRow(ctx, `
		INSERT INTO hotels (name, description, city, country, address, stars, price_per_night,
			total_rooms, amenities, images, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+hotelColumns,
		in.Name, in.Description, in.City, in.Country, in.Address, in.Stars, in.PricePerNight,
		in.TotalRooms, nonNil(in.Amenities), nonNil(in.Images), in.Active(),
	))
	if err != nil {
		return nil, fmt.Errorf("insert hotel: %w", err)
	}
	return &h, nil
}

func (r *HotelRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Hotel, error) {
	h, err := scanHotel(r.db.QueryRow(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE id = $1`, id))
	if err != nil {
		return nil, notFound("hotels", err)
	}
	return &h, nil
}

// GetForUpdate locks the hotel row until the surrounding transaction ends.
func (r *HotelRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Hotel, error) {
	h, err := scanHotel(r.db.QueryRow(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, notFound("hotels", err)
	}
	return &h, nil
}

func (r *HotelRepository) List(ctx context.Context, q model.ListHotelsQuery) ([]model.Hotel, int64, error) {
	var w where
	if !q.IncludeInactive {
		w.raw(`is_active`)
	}
	if q.City != "" {
		w.add(`lower(city) = lower(?)`, q.City)
	}
	if q.MinStars > 0 {
		w.add(`stars >= ?`, q.MinStars)
	}
	if maxPrice := q.MaxPriceValue(); maxPrice != nil {
		w.add(`price_per_night <= ?`, *maxPrice)
	}
	if q.Search != "" {
		w.add(`(name ILIKE ? OR description ILIKE ? OR city ILIKE ?)`, likePattern(q.Search))
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM hotels`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count hotels: %w", err)
	}

	limit, args := w.page(q.Limit, q.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+hotelColumns+` FROM hotels`+w.String()+` ORDER BY stars DESC, name`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list hotels: %w", err)
	}
	hotels, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Hotel, error) {
		return scanHotel(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan hotels: %w", err)
	}
	return hotels, total, nil
}

func (r *HotelRepository) Update(ctx context.Context, id uuid.UUID, in model.HotelInput) (*model.Hotel, error) {
	h, err := scanHotel(r.db.QueryRow(ctx, `
		UPDATE hotels SET
			name = $2, description = $3, city = $4, country = $5, address = $6, stars = $7,
			price_per_night = $8, total_rooms = $9, amenities = $10, images = $11, is_active = $12,
			updated_at = now()
		WHERE id = $1
		RETURNING `+hotelColumns,
		id, in.Name, in.Description, in.City, in.Country, in.Address, in.Stars, in.PricePerNight,
		in.TotalRooms, nonNil(in.Amenities), nonNil(in.Images), in.Active(),
	))
	if err != nil {
		return nil, notFound("hotels", err)
	}
	return &h, nil
}

func (r *HotelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "hotels", id)
}
