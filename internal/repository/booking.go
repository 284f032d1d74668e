package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/tourism/internal/database"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	bookingSelect = `
		SELECT b.id, b.user_id, b.type, b.item_id, b.start_date, b.end_date, b.guests, b.rooms,
			b.total_price, b.status, b.notes, b.created_at, b.updated_at,
			COALESCE(h.name, c.brand || ' ' || c.model, t.title, '') AS item_name
		FROM bookings b
		LEFT JOIN hotels h ON b.type = 'hotel' AND h.id = b.item_id
		LEFT JOIN cars c ON b.type = 'car' AND c.id = b.item_id
		LEFT JOIN tours t ON b.type = 'tour' AND t.id = b.item_id`

	bookingReturning = `id, user_id, type, item_id, start_date, end_date, guests, rooms,
		total_price, status, notes, created_at, updated_at, '' AS item_name`
)

type BookingRepository struct {
	db database.DBTX
}

func NewBookingRepository(db database.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func scanBooking(row pgx.Row) (model.Booking, error) {
	var b model.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.Type,
		&b.ItemID,
		&b.StartDate,
		&b.EndDate,
		&b.Guests,
		&b.Rooms,
		&b.TotalPrice,
		&b.Status,
		&b.Notes,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.ItemName,
	)
	return b, err
}

func collectBookings(rows pgx.Rows) ([]model.Booking, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Booking, error) {
		return scanBooking(row)
	})
}

func (r *BookingRepository) Create(ctx context.Context, b *model.Booking) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO bookings (user_id, type, item_id, start_date, end_date, guests, rooms, total_price, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		b.UserID, b.Type, b.ItemID, b.StartDate, b.EndDate, b.Guests, b.Rooms, b.TotalPrice, b.Status, b.Notes,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, bookingSelect+` WHERE b.id = $1`, id))
	if err != nil {
		return nil, notFound("bookings", err)
	}
	return &b, nil
}

// GetForUpdate locks the booking row until the surrounding transaction ends.
func (r *BookingRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, bookingSelect+` WHERE b.id = $1 FOR UPDATE OF b`, id))
	if err != nil {
		return nil, notFound("bookings", err)
	}
	return &b, nil
}

// ListActiveForItem returns pending and confirmed bookings of one item
// that intersect [start, end).
func (r *BookingRepository) ListActiveForItem(
	ctx context.Context,
	itemType model.BookingType,
	itemID uuid.UUID,
	start, end time.Time,
) ([]model.Booking, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bookingReturning+`
		FROM bookings
		WHERE type = $1 AND item_id = $2
			AND status IN ('pending', 'confirmed')
			AND start_date < $4 AND end_date > $3
		ORDER BY start_date`,
		itemType, itemID, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("list active bookings: %w", err)
	}
	bookings, err := collectBookings(rows)
	if err != nil {
		return nil, fmt.Errorf("scan active bookings: %w", err)
	}
	return bookings, nil
}

// SumActiveGuests returns the seats held on a tour by pending and
// confirmed bookings, whatever dates those bookings carry.
func (r *BookingRepository) SumActiveGuests(ctx context.Context, tourID uuid.UUID) (int, error) {
	var guests int
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(guests), 0)::int
		FROM bookings
		WHERE type = 'tour' AND item_id = $1 AND status IN ('pending', 'confirmed')`,
		tourID,
	).Scan(&guests)
	if err != nil {
		return 0, fmt.Errorf("sum tour guests: %w", err)
	}
	return guests, nil
}

func (r *BookingRepository) List(ctx context.Context, f model.BookingFilter, p model.PaginationQuery) ([]model.Booking, int64, error) {
	var w where
	if f.UserID != nil {
		w.add(`b.user_id = ?`, *f.UserID)
	}
	if f.Status != "" {
		w.add(`b.status = ?`, f.Status)
	}
	if f.Type != "" {
		w.add(`b.type = ?`, f.Type)
	}
	if f.From != nil {
		w.add(`b.end_date > ?`, *f.From)
	}
	if f.To != nil {
		w.add(`b.start_date <= ?`, *f.To)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings b`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	limit, args := w.page(p.Limit, p.Offset())
	rows, err := r.db.Query(ctx, bookingSelect+w.String()+` ORDER BY b.created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	bookings, err := collectBookings(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("scan bookings: %w", err)
	}
	return bookings, total, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("bookings", pgx.ErrNoRows)
	}
	return nil
}

// CancelStalePending cancels pending bookings created before cutoff and
// returns them.
func (r *BookingRepository) CancelStalePending(ctx context.Context, cutoff time.Time) ([]model.Booking, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE bookings SET status = 'cancelled', updated_at = now()
		WHERE status = 'pending' AND created_at < $1
		RETURNING `+bookingReturning, cutoff)
	if err != nil {
		return nil, fmt.Errorf("cancel stale bookings: %w", err)
	}
	bookings, err := collectBookings(rows)
	if err != nil {
		return nil, fmt.Errorf("scan cancelled bookings: %w", err)
	}
	return bookings, nil
}
