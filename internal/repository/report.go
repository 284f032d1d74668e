package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/tourism/internal/database"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/jackc/pgx/v5"
)

// ReportRepository runs the aggregate queries behind the admin reports.
type ReportRepository struct {
	db database.DBTX
}

func NewReportRepository(db database.DBTX) *ReportRepository {
	return &ReportRepository{db: db}
}

// Revenue sums confirmed and completed bookings per period and type.
// Bookings are attributed to the period of their start date.
func (r *ReportRepository) Revenue(ctx context.Context, groupBy model.ReportGroupBy, from, to *time.Time) ([]model.RevenueRow, error) {
	format := "YYYY-MM"
	if groupBy == model.GroupByDay {
		format = "YYYY-MM-DD"
	}

	var w where
	w.add(`status = ANY(?)`, []string{string(model.BookingStatusConfirmed), string(model.BookingStatusCompleted)})
	if from != nil {
		w.add(`start_date >= ?`, *from)
	}
	if to != nil {
		w.add(`start_date <= ?`, *to)
	}

	// format is one of two constants, never user input.
	rows, err := r.db.Query(ctx, `
		SELECT to_char(start_date, '`+format+`') AS period, type, COUNT(*), COALESCE(SUM(total_price), 0)
		FROM bookings`+w.String()+`
		GROUP BY period, type
		ORDER BY period, type`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("revenue report: %w", err)
	}

	report, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.RevenueRow, error) {
		var rr model.RevenueRow
		err := row.Scan(&rr.Period, &rr.Type, &rr.Bookings, &rr.Revenue)
		return rr, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan revenue report: %w", err)
	}
	return report, nil
}

func (r *ReportRepository) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	d := &model.Dashboard{BookingsByStatus: map[model.BookingStatus]int64{}}

	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM hotels),
			(SELECT COUNT(*) FROM cars),
			(SELECT COUNT(*) FROM tours),
			(SELECT COUNT(*) FROM umrah_packages),
			(SELECT COUNT(*) FROM contact_forms WHERE status = 'new'),
			(SELECT COUNT(*) FROM umrah_requests WHERE status = 'new'),
			(SELECT COALESCE(SUM(total_price), 0) FROM bookings WHERE status IN ('confirmed', 'completed'))`,
	).Scan(
		&d.Users,
		&d.Hotels,
		&d.Cars,
		&d.Tours,
		&d.UmrahPackages,
		&d.PendingContactForms,
		&d.PendingUmrahRequests,
		&d.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard totals: %w", err)
	}

	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("dashboard bookings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status model.BookingStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan booking counts: %w", err)
		}
		d.BookingsByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking counts: %w", err)
	}

	for _, s := range []model.BookingStatus{
		model.BookingStatusPending,
		model.BookingStatusConfirmed,
		model.BookingStatusCompleted,
		model.BookingStatusCancelled,
	} {
		if _, ok := d.BookingsByStatus[s]; !ok {
			d.BookingsByStatus[s] = 0
		}
	}
	return d, nil
}
