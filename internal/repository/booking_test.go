package repository

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/tourism/internal/model"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingCols = []string{
	"id", "user_id", "type", "item_id", "start_date", "end_date", "guests", "rooms",
	"total_price", "status", "notes", "created_at", "updated_at", "item_name",
}

func bookingRow(rows *pgxmock.Rows, b model.Booking) *pgxmock.Rows {
	return rows.AddRow(b.ID, b.UserID, b.Type, b.ItemID, b.StartDate, b.EndDate, b.Guests, b.Rooms,
		b.TotalPrice, b.Status, b.Notes, b.CreatedAt, b.UpdatedAt, b.ItemName)
}

func fakeBooking(status model.BookingStatus, start, end string) model.Booking {
	s, _ := time.Parse("2006-01-02", start)
	e, _ := time.Parse("2006-01-02", end)
	now := time.Now().UTC()
	return model.Booking{
		Base:       model.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:     uuid.New(),
		Type:       model.BookingTypeHotel,
		ItemID:     uuid.New(),
		StartDate:  s,
		EndDate:    e,
		Guests:     2,
		Rooms:      1,
		TotalPrice: decimal.RequireFromString("300.00"),
		Status:     status,
	}
}

func TestBookingRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewBookingRepository(mock)

	b := fakeBooking(model.BookingStatusPending, "2025-06-01", "2025-06-04")
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`INSERT INTO bookings`).
		WithArgs(b.UserID, b.Type, b.ItemID, b.StartDate, b.EndDate, b.Guests, b.Rooms, b.TotalPrice, b.Status, b.Notes).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id, now, now))

	require.NoError(t, repo.Create(context.Background(), &b))
	assert.Equal(t, id, b.ID)
}

func TestBookingRepository_ListActiveForItem(t *testing.T) {
	mock := newMock(t)
	repo := NewBookingRepository(mock)

	existing := fakeBooking(model.BookingStatusConfirmed, "2025-06-02", "2025-06-05")
	start, _ := time.Parse("2006-01-02", "2025-06-01")
	end, _ := time.Parse("2006-01-02", "2025-06-03")

	mock.ExpectQuery(`(?s)FROM bookings.+status IN \('pending', 'confirmed'\).+start_date < \$4 AND end_date > \$3`).
		WithArgs(model.BookingTypeHotel, existing.ItemID, start, end).
		WillReturnRows(bookingRow(pgxmock.NewRows(bookingCols), existing))

	got, err := repo.ListActiveForItem(context.Background(), model.BookingTypeHotel, existing.ItemID, start, end)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, existing.ID, got[0].ID)
}

func TestBookingRepository_SumActiveGuests(t *testing.T) {
	mock := newMock(t)
	repo := NewBookingRepository(mock)
	tourID := uuid.New()

	// No date predicate: bookings made before a reschedule still hold seats.
	mock.ExpectQuery(`(?s)SUM\(guests\).+type = 'tour' AND item_id = \$1 AND status IN \('pending', 'confirmed'\)`).
		WithArgs(tourID).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(7))

	got, err := repo.SumActiveGuests(context.Background(), tourID)
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestBookingRepository_List_ForUser(t *testing.T) {
	mock := newMock(t)
	repo := NewBookingRepository(mock)

	userID := uuid.New()
	p := model.PaginationQuery{Page: 2, Limit: 10}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings b WHERE b.user_id = \$1 AND b.status = \$2`).
		WithArgs(userID, model.BookingStatusPending).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(11)))

	b := fakeBooking(model.BookingStatusPending, "2025-06-01", "2025-06-02")
	b.UserID = userID
	b.ItemName = "Hilton Makkah"
	mock.ExpectQuery(`(?s)LEFT JOIN tours t .+ WHERE b.user_id = \$1 AND b.status = \$2 ORDER BY b.created_at DESC LIMIT \$3 OFFSET \$4`).
		WithArgs(userID, model.BookingStatusPending, 10, 10).
		WillReturnRows(bookingRow(pgxmock.NewRows(bookingCols), b))

	bookings, total, err := repo.List(context.Background(), model.BookingFilter{
		UserID: &userID,
		Status: model.BookingStatusPending,
	}, p)
	require.NoError(t, err)
	assert.Equal(t, int64(11), total)
	require.Len(t, bookings, 1)
	assert.Equal(t, "Hilton Makkah", bookings[0].ItemName)
}

func TestBookingRepository_CancelStalePending(t *testing.T) {
	mock := newMock(t)
	repo := NewBookingRepository(mock)

	cutoff := time.Now().Add(-48 * time.Hour)
	b := fakeBooking(model.BookingStatusCancelled, "2025-06-01", "2025-06-02")

	mock.ExpectQuery(`UPDATE bookings SET status = 'cancelled'`).
		WithArgs(cutoff).
		WillReturnRows(bookingRow(pgxmock.NewRows(bookingCols), b))

	cancelled, err := repo.CancelStalePending(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Len(t, cancelled, 1)
}
