package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/tourism/internal/database"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	umrahPackageColumns = `id, title, description, duration_days, price, hotel_makkah, hotel_madinah,
		includes, departure_date, seats, is_active, created_at, updated_at`

	umrahRequestColumns = `id, package_id, user_id, name, email, phone, travelers, preferred_date,
		notes, status, created_at, updated_at`
)

// UmrahRepository stores Umrah packages and the enquiries made for them.
type UmrahRepository struct {
	db database.DBTX
}

func NewUmrahRepository(db database.DBTX) *UmrahRepository {
	return &UmrahRepository{db: db}
}

func scanUmrahPackage(row pgx.Row) (model.UmrahPackage, error) {
	var p model.UmrahPackage
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.DurationDays,
		&p.Price,
		&p.HotelMakkah,
		&p.HotelMadinah,
		&p.Includes,
		&p.DepartureDate,
		&p.Seats,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func scanUmrahRequest(row pgx.Row) (model.UmrahRequest, error) {
	var r model.UmrahRequest
	err := row.Scan(
		&r.ID,
		&r.PackageID,
		&r.UserID,
		&r.Name,
		&r.Email,
		&r.Phone,
		&r.Travelers,
		&r.PreferredDate,
		&r.Notes,
		&r.Status,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

func (r *UmrahRepository) CreatePackage(ctx context.Context, in model.UmrahPackageInput) (*model.UmrahPackage, error) {
	p, err := scanUmrahPackage(r.db.QueryRow(ctx, `
		INSERT INTO umrah_packages (title, description, duration_days, price, hotel_makkah, hotel_madinah,
			includes, departure_date, seats, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+umrahPackageColumns,
		in.Title, in.Description, in.DurationDays, in.Price, in.HotelMakkah, in.HotelMadinah,
		nonNil(in.Includes), in.DepartureDateValue(), in.Seats, in.Active(),
	))
	if err != nil {
		return nil, fmt.Errorf("insert umrah package: %w", err)
	}
	return &p, nil
}

func (r *UmrahRepository) GetPackage(ctx context.Context, id uuid.UUID) (*model.UmrahPackage, error) {
	p, err := scanUmrahPackage(r.db.QueryRow(ctx, `SELECT `+umrahPackageColumns+` FROM umrah_packages WHERE id = $1`, id))
	if err != nil {
		return nil, notFound("umrah_packages", err)
	}
	return &p, nil
}

func (r *UmrahRepository) ListPackages(ctx context.Context, q model.ListUmrahPackagesQuery) ([]model.UmrahPackage, int64, error) {
	var w where
	if !q.IncludeInactive {
		w.raw(`is_active`)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM umrah_packages`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count umrah packages: %w", err)
	}

	limit, args := w.page(q.Limit, q.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+umrahPackageColumns+` FROM umrah_packages`+w.String()+
		` ORDER BY departure_date NULLS LAST, price`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list umrah packages: %w", err)
	}
	packages, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.UmrahPackage, error) {
		return scanUmrahPackage(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan umrah packages: %w", err)
	}
	return packages, total, nil
}

func (r *UmrahRepository) UpdatePackage(ctx context.Context, id uuid.UUID, in model.UmrahPackageInput) (*model.UmrahPackage, error) {
	p, err := scanUmrahPackage(r.db.QueryRow(ctx, `
		UPDATE umrah_packages SET
			title = $2, description = $3, duration_days = $4, price = $5, hotel_makkah = $6,
			hotel_madinah = $7, includes = $8, departure_date = $9, seats = $10, is_active = $11,
			updated_at = now()
		WHERE id = $1
		RETURNING `+umrahPackageColumns,
		id, in.Title, in.Description, in.DurationDays, in.Price, in.HotelMakkah, in.HotelMadinah,
		nonNil(in.Includes), in.DepartureDateValue(), in.Seats, in.Active(),
	))
	if err != nil {
		return nil, notFound("umrah_packages", err)
	}
	return &p, nil
}

func (r *UmrahRepository) DeletePackage(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "umrah_packages", id)
}

func (r *UmrahRepository) CreateRequest(ctx context.Context, req *model.UmrahRequest) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO umrah_requests (package_id, user_id, name, email, phone, travelers, preferred_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, status, created_at, updated_at`,
		req.PackageID, req.UserID, req.Name, req.Email, req.Phone, req.Travelers, req.PreferredDate, req.Notes,
	).Scan(&req.ID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert umrah request: %w", err)
	}
	return nil
}

// ListRequests lists enquiries, optionally only those of one user.
func (r *UmrahRepository) ListRequests(ctx context.Context, userID *uuid.UUID, q model.ListUmrahRequestsQuery) ([]model.UmrahRequest, int64, error) {
	var w where
	if userID != nil {
		w.add(`user_id = ?`, *userID)
	}
	if q.Status != "" {
		w.add(`status = ?`, q.Status)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM umrah_requests`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count umrah requests: %w", err)
	}

	limit, args := w.page(q.Limit, q.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+umrahRequestColumns+` FROM umrah_requests`+w.String()+` ORDER BY created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list umrah requests: %w", err)
	}
	requests, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.UmrahRequest, error) {
		return scanUmrahRequest(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan umrah requests: %w", err)
	}
	return requests, total, nil
}

func (r *UmrahRepository) UpdateRequestStatus(ctx context.Context, id uuid.UUID, status model.UmrahRequestStatus) (*model.UmrahRequest, error) {
	req, err := scanUmrahRequest(r.db.QueryRow(ctx, `
		UPDATE umrah_requests SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+umrahRequestColumns, id, status))
	if err != nil {
		return nil, notFound("umrah_requests", err)
	}
	return &req, nil
}
