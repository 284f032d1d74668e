package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/deppfellow/tourism/internal/errs"
	"github.com/deppfellow/tourism/internal/lib/job"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	hotelCols = []string{
		"id", "name", "description", "city", "country", "address", "stars", "price_per_night",
		"total_rooms", "amenities", "images", "is_active", "created_at", "updated_at",
	}
	carCols = []string{
		"id", "brand", "model", "year", "category", "seats", "transmission", "price_per_day", "city",
		"images", "is_active", "created_at", "updated_at",
	}
	tourCols = []string{
		"id", "title", "description", "destination", "start_date", "end_date", "duration_days",
		"price_per_person", "capacity", "images", "is_active", "created_at", "updated_at",
	}
	bookingCols = []string{
		"id", "user_id", "type", "item_id", "start_date", "end_date", "guests", "rooms",
		"total_price", "status", "notes", "created_at", "updated_at", "item_name",
	}
	notificationCols = []string{"id", "user_id", "type", "title", "message", "link", "is_read", "read_at", "created_at"}
	userCols         = []string{"id", "name", "email", "password_hash", "phone", "role", "external_id", "created_at", "updated_at"}
)

func newBookingService(t *testing.T) (*BookingService, pgxmock.PgxPoolIface, *mockEnqueuer) {
	t.Helper()
	db := newDB(t)
	q := &mockEnqueuer{}
	t.Cleanup(func() { q.AssertExpectations(t) })

	s := NewBookingService(db, q, 48*time.Hour, func(context.Context) string { return "SAR" }, &nopLogger)
	s.now = func() time.Time { return time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC) }
	return s, db, q
}

func hotelRow(h model.Hotel) *pgxmock.Rows {
	return pgxmock.NewRows(hotelCols).AddRow(h.ID, h.Name, h.Description, h.City, h.Country, h.Address, h.Stars,
		h.PricePerNight, h.TotalRooms, h.Amenities, h.Images, h.IsActive, h.CreatedAt, h.UpdatedAt)
}

func carRow(c model.Car) *pgxmock.Rows {
	return pgxmock.NewRows(carCols).AddRow(c.ID, c.Brand, c.Model, c.Year, c.Category, c.Seats, c.Transmission,
		c.PricePerDay, c.City, c.Images, c.IsActive, c.CreatedAt, c.UpdatedAt)
}

func tourRow(t model.Tour) *pgxmock.Rows {
	return pgxmock.NewRows(tourCols).AddRow(t.ID, t.Title, t.Description, t.Destination, t.StartDate, t.EndDate,
		t.DurationDays, t.PricePerPerson, t.Capacity, t.Images, t.IsActive, t.CreatedAt, t.UpdatedAt)
}

func guestsRow(n int) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"coalesce"}).AddRow(n)
}

func bookingRows(bookings ...model.Booking) *pgxmock.Rows {
	rows := pgxmock.NewRows(bookingCols)
	for _, b := range bookings {
		rows.AddRow(b.ID, b.UserID, b.Type, b.ItemID, b.StartDate, b.EndDate, b.Guests, b.Rooms,
			b.TotalPrice, b.Status, b.Notes, b.CreatedAt, b.UpdatedAt, b.ItemName)
	}
	return rows
}

func notificationRow(userID uuid.UUID) *pgxmock.Rows {
	var readAt *time.Time
	link := "/bookings/x"
	return pgxmock.NewRows(notificationCols).
		AddRow(uuid.New(), userID, model.NotificationTypeBooking, "t", "m", &link, false, readAt, time.Now())
}

func userRow(u model.User) *pgxmock.Rows {
	return pgxmock.NewRows(userCols).
		AddRow(u.ID, u.Name, u.Email, u.PasswordHash, u.Phone, u.Role, u.ExternalID, u.CreatedAt, u.UpdatedAt)
}

func fakeUser() model.User {
	var hash, phone, external *string
	return model.User{
		Base:         model.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:         gofakeit.Name(),
		Email:        gofakeit.Email(),
		PasswordHash: hash,
		Phone:        phone,
		Role:         model.RoleUser,
		ExternalID:   external,
	}
}

func fakeHotel(rooms int, price string) model.Hotel {
	return model.Hotel{
		Base:          model.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:          "Dar Al Tawhid",
		City:          "Makkah",
		Country:       "Saudi Arabia",
		Stars:         5,
		PricePerNight: decimal.RequireFromString(price),
		TotalRooms:    rooms,
		Amenities:     []string{},
		Images:        []string{},
		IsActive:      true,
	}
}

func fakeTour(capacity int, start string, days int) model.Tour {
	return model.Tour{
		Base:           model.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Title:          "Historic Madinah",
		Destination:    "Madinah",
		StartDate:      date(start),
		EndDate:        date(start).AddDate(0, 0, days),
		DurationDays:   days,
		PricePerPerson: decimal.RequireFromString("450"),
		Capacity:       capacity,
		Images:         []string{},
		IsActive:       true,
	}
}

func activeBooking(itemType model.BookingType, itemID uuid.UUID, start, end string, rooms, guests int) model.Booking {
	return model.Booking{
		Base:       model.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		UserID:     uuid.New(),
		Type:       itemType,
		ItemID:     itemID,
		StartDate:  date(start),
		EndDate:    date(end),
		Guests:     guests,
		Rooms:      rooms,
		TotalPrice: decimal.RequireFromString("100.00"),
		Status:     model.BookingStatusConfirmed,
	}
}

func TestBookingService_Create_Hotel(t *testing.T) {
	s, db, q := newBookingService(t)
	user := fakeUser()
	hotel := fakeHotel(5, "120.50")

	req := &model.CreateBookingRequest{
		Type:      model.BookingTypeHotel,
		ItemID:    hotel.ID.String(),
		StartDate: "2025-06-10",
		EndDate:   "2025-06-13",
		Rooms:     3,
	}
	require.NoError(t, req.Validate())
	start, end := date("2025-06-10"), date("2025-06-13")

	// Two rooms are held on the 10th and two on the 12th, never four at once.
	db.ExpectBegin()
	db.ExpectQuery(`FROM hotels WHERE id = \$1 FOR UPDATE`).
		WithArgs(hotel.ID).
		WillReturnRows(hotelRow(hotel))
	db.ExpectQuery(`(?s)FROM bookings.+start_date < \$4 AND end_date > \$3`).
		WithArgs(model.BookingTypeHotel, hotel.ID, start, end).
		WillReturnRows(bookingRows(
			activeBooking(model.BookingTypeHotel, hotel.ID, "2025-06-09", "2025-06-11", 2, 2),
			activeBooking(model.BookingTypeHotel, hotel.ID, "2025-06-12", "2025-06-14", 2, 2),
		))
	bookingID := uuid.New()
	db.ExpectQuery(`INSERT INTO bookings`).
		WithArgs(user.ID, model.BookingTypeHotel, hotel.ID, start, end, 1, 3, pgxmock.AnyArg(), model.BookingStatusPending, "").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(bookingID, time.Now(), time.Now()))
	db.ExpectQuery(`INSERT INTO notifications`).
		WithArgs(user.ID, model.NotificationTypeBooking, "Booking received", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(notificationRow(user.ID))
	db.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(user.ID).
		WillReturnRows(userRow(user))
	db.ExpectCommit()
	expectTask(q, job.TaskBookingReceived)

	booking, err := s.Create(context.Background(), user.ID, req)
	require.NoError(t, err)

	assert.Equal(t, bookingID, booking.ID)
	assert.Equal(t, model.BookingStatusPending, booking.Status)
	assert.Equal(t, "Dar Al Tawhid", booking.ItemName)
	// 120.50 x 3 nights x 3 rooms
	assert.True(t, decimal.RequireFromString("1084.50").Equal(booking.TotalPrice), booking.TotalPrice.String())
}

func TestBookingService_Create_HotelFull(t *testing.T) {
	s, db, _ := newBookingService(t)
	hotel := fakeHotel(4, "90")

	req := &model.CreateBookingRequest{
		Type:      model.BookingTypeHotel,
		ItemID:    hotel.ID.String(),
		StartDate: "2025-06-10",
		EndDate:   "2025-06-12",
		Rooms:     2,
	}
	require.NoError(t, req.Validate())

	db.ExpectBegin()
	db.ExpectQuery(`FROM hotels WHERE id = \$1 FOR UPDATE`).WithArgs(hotel.ID).WillReturnRows(hotelRow(hotel))
	db.ExpectQuery(`FROM bookings`).
		WithArgs(model.BookingTypeHotel, hotel.ID, date("2025-06-10"), date("2025-06-12")).
		WillReturnRows(bookingRows(
			activeBooking(model.BookingTypeHotel, hotel.ID, "2025-06-11", "2025-06-13", 1, 1),
			activeBooking(model.BookingTypeHotel, hotel.ID, "2025-06-08", "2025-06-12", 2, 2),
		))
	db.ExpectRollback()

	_, err := s.Create(context.Background(), uuid.New(), req)
	he := requireHTTPError(t, err, http.StatusConflict, errs.CodeBookingConflict)
	assert.Contains(t, he.Message, "1 room(s)")
}

func TestBookingService_Create_CarOverlap(t *testing.T) {
	s, db, _ := newBookingService(t)
	car := model.Car{
		Base:         model.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Brand:        "Toyota",
		Model:        "Land Cruiser",
		Year:         2023,
		Category:     "suv",
		Seats:        7,
		Transmission: model.TransmissionAutomatic,
		PricePerDay:  decimal.RequireFromString("350"),
		City:         "Jeddah",
		Images:       []string{},
		IsActive:     true,
	}

	req := &model.CreateBookingRequest{
		Type:      model.BookingTypeCar,
		ItemID:    car.ID.String(),
		StartDate: "2025-06-03",
		EndDate:   "2025-06-05",
	}
	require.NoError(t, req.Validate())

	db.ExpectBegin()
	db.ExpectQuery(`FROM cars WHERE id = \$1 FOR UPDATE`).WithArgs(car.ID).WillReturnRows(carRow(car))
	db.ExpectQuery(`FROM bookings`).
		WithArgs(model.BookingTypeCar, car.ID, date("2025-06-03"), date("2025-06-05")).
		WillReturnRows(bookingRows(activeBooking(model.BookingTypeCar, car.ID, "2025-06-04", "2025-06-06", 1, 1)))
	db.ExpectRollback()

	_, err := s.Create(context.Background(), uuid.New(), req)
	requireHTTPError(t, err, http.StatusConflict, errs.CodeBookingConflict)
}

func TestBookingService_Create_InactiveHotel(t *testing.T) {
	s, db, _ := newBookingService(t)
	hotel := fakeHotel(10, "100")
	hotel.IsActive = false

	req := &model.CreateBookingRequest{
		Type:      model.BookingTypeHotel,
		ItemID:    hotel.ID.String(),
		StartDate: "2025-06-10",
		EndDate:   "2025-06-11",
	}
	require.NoError(t, req.Validate())

	db.ExpectBegin()
	db.ExpectQuery(`FROM hotels WHERE id = \$1 FOR UPDATE`).WithArgs(hotel.ID).WillReturnRows(hotelRow(hotel))
	db.ExpectRollback()

	_, err := s.Create(context.Background(), uuid.New(), req)
	requireHTTPError(t, err, http.StatusNotFound, "")
}

func TestBookingService_Create_PastStartDate(t *testing.T) {
	s, db, _ := newBookingService(t)
	hotel := fakeHotel(10, "100")

	req := &model.CreateBookingRequest{
		Type:      model.BookingTypeHotel,
		ItemID:    hotel.ID.String(),
		StartDate: "2025-05-30",
		EndDate:   "2025-06-02",
	}
	require.NoError(t, req.Validate())

	db.ExpectBegin()
	db.ExpectQuery(`FROM hotels WHERE id = \$1 FOR UPDATE`).WithArgs(hotel.ID).WillReturnRows(hotelRow(hotel))
	db.ExpectQuery(`FROM bookings`).
		WithArgs(model.BookingTypeHotel, hotel.ID, date("2025-05-30"), date("2025-06-02")).
		WillReturnRows(bookingRows())
	db.ExpectRollback()

	_, err := s.Create(context.Background(), uuid.New(), req)
	he := requireHTTPError(t, err, http.StatusBadRequest, "")
	require.Len(t, he.Errors, 1)
	assert.Equal(t, "start_date", he.Errors[0].Field)
}

func TestBookingService_UpdateStatus_TerminalRejected(t *testing.T) {
	s, db, _ := newBookingService(t)
	b := activeBooking(model.BookingTypeHotel, uuid.New(), "2025-06-10", "2025-06-12", 1, 1)
	b.Status = model.BookingStatusCompleted

	db.ExpectBegin()
	db.ExpectQuery(`(?s)FROM bookings b.+WHERE b.id = \$1 FOR UPDATE OF b`).
		WithArgs(b.ID).
		WillReturnRows(bookingRows(b))
	db.ExpectRollback()

	req := &model.UpdateBookingStatusRequest{IDParam: model.IDParam{ID: b.ID.String()}, Status: model.BookingStatusCancelled}
	_, err := s.UpdateStatus(context.Background(), req)
	requireHTTPError(t, err, http.StatusBadRequest, errs.CodeInvalidStatusTransition)
}

func TestBookingService_Cancel(t *testing.T) {
	s, db, q := newBookingService(t)
	user := fakeUser()
	b := activeBooking(model.BookingTypeHotel, uuid.New(), "2025-06-10", "2025-06-12", 1, 1)
	b.UserID = user.ID
	b.Status = model.BookingStatusPending
	b.ItemName = "Dar Al Tawhid"

	db.ExpectBegin()
	db.ExpectQuery(`FOR UPDATE OF b`).WithArgs(b.ID).WillReturnRows(bookingRows(b))
	db.ExpectExec(`UPDATE bookings SET status = \$2`).
		WithArgs(b.ID, model.BookingStatusCancelled).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	db.ExpectQuery(`INSERT INTO notifications`).
		WithArgs(user.ID, model.NotificationTypeBooking, "Booking cancelled", "Your booking for Dar Al Tawhid is now cancelled.", pgxmock.AnyArg()).
		WillReturnRows(notificationRow(user.ID))
	db.ExpectQuery(`FROM users WHERE id = \$1`).WithArgs(user.ID).WillReturnRows(userRow(user))
	db.ExpectCommit()
	expectTask(q, job.TaskBookingStatus)

	got, err := s.Cancel(context.Background(), user.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, got.Status)
}

func TestBookingService_Cancel_NotOwner(t *testing.T) {
	s, db, _ := newBookingService(t)
	b := activeBooking(model.BookingTypeCar, uuid.New(), "2025-06-10", "2025-06-12", 1, 1)

	db.ExpectBegin()
	db.ExpectQuery(`FOR UPDATE OF b`).WithArgs(b.ID).WillReturnRows(bookingRows(b))
	db.ExpectRollback()

	_, err := s.Cancel(context.Background(), uuid.New(), b.ID)
	requireHTTPError(t, err, http.StatusNotFound, "")
}

func TestBookingService_ExpireStale(t *testing.T) {
	s, db, q := newBookingService(t)
	owner := fakeUser()
	b1 := activeBooking(model.BookingTypeTour, uuid.New(), "2025-07-01", "2025-07-08", 1, 2)
	b2 := activeBooking(model.BookingTypeHotel, uuid.New(), "2025-07-03", "2025-07-05", 1, 1)
	b1.UserID, b2.UserID = owner.ID, owner.ID
	b1.Status, b2.Status = model.BookingStatusCancelled, model.BookingStatusCancelled

	db.ExpectBegin()
	db.ExpectQuery(`UPDATE bookings SET status = 'cancelled'`).
		WithArgs(s.now().Add(-48 * time.Hour)).
		WillReturnRows(bookingRows(b1, b2))
	for range 2 {
		db.ExpectQuery(`INSERT INTO notifications`).
			WithArgs(owner.ID, model.NotificationTypeBooking, "Booking cancelled", "Your booking was cancelled because it was not confirmed in time.", pgxmock.AnyArg()).
			WillReturnRows(notificationRow(owner.ID))
	}
	db.ExpectCommit()
	// One owner lookup serves both bookings.
	db.ExpectQuery(`FROM users WHERE id = \$1`).WithArgs(owner.ID).WillReturnRows(userRow(owner))
	expectTask(q, job.TaskBookingStatus)
	expectTask(q, job.TaskBookingStatus)

	n, err := s.ExpireStale(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestBookingService_ExpireStale_MissingOwner(t *testing.T) {
	s, db, q := newBookingService(t)
	b := activeBooking(model.BookingTypeCar, uuid.New(), "2025-07-01", "2025-07-03", 1, 1)
	b.Status = model.BookingStatusCancelled

	db.ExpectBegin()
	db.ExpectQuery(`UPDATE bookings SET status = 'cancelled'`).WillReturnRows(bookingRows(b))
	db.ExpectQuery(`INSERT INTO notifications`).WillReturnRows(notificationRow(b.UserID))
	db.ExpectCommit()
	db.ExpectQuery(`FROM users WHERE id = \$1`).WithArgs(b.UserID).WillReturnError(pgx.ErrNoRows)

	n, err := s.ExpireStale(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	q.AssertNotCalled(t, "EnqueueContext", mock.Anything, mock.Anything)
}

func TestBookingService_Create_Tour(t *testing.T) {
	s, db, q := newBookingService(t)
	user := fakeUser()
	tour := fakeTour(10, "2025-07-01", 7)

	req := &model.CreateBookingRequest{Type: model.BookingTypeTour, ItemID: tour.ID.String(), Guests: 3}
	require.NoError(t, req.Validate())

	db.ExpectBegin()
	db.ExpectQuery(`FROM tours WHERE id = \$1 FOR UPDATE`).WithArgs(tour.ID).WillReturnRows(tourRow(tour))
	db.ExpectQuery(`SUM\(guests\)`).WithArgs(tour.ID).WillReturnRows(guestsRow(7))
	db.ExpectQuery(`INSERT INTO bookings`).
		WithArgs(user.ID, model.BookingTypeTour, tour.ID, tour.StartDate, tour.EndDate, 3, 1, pgxmock.AnyArg(), model.BookingStatusPending, "").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(uuid.New(), time.Now(), time.Now()))
	db.ExpectQuery(`INSERT INTO notifications`).WillReturnRows(notificationRow(user.ID))
	db.ExpectQuery(`FROM users WHERE id = \$1`).WithArgs(user.ID).WillReturnRows(userRow(user))
	db.ExpectCommit()
	expectTask(q, job.TaskBookingReceived)

	booking, err := s.Create(context.Background(), user.ID, req)
	require.NoError(t, err)
	assert.Equal(t, tour.StartDate, booking.StartDate)
	assert.Equal(t, tour.EndDate, booking.EndDate)
	assert.Equal(t, "Historic Madinah", booking.ItemName)
	assert.True(t, decimal.RequireFromString("1350").Equal(booking.TotalPrice), booking.TotalPrice.String())
}

func TestBookingService_Create_TourFull(t *testing.T) {
	s, db, _ := newBookingService(t)
	tour := fakeTour(10, "2025-07-01", 7)

	req := &model.CreateBookingRequest{Type: model.BookingTypeTour, ItemID: tour.ID.String(), Guests: 3}
	require.NoError(t, req.Validate())

	// Seats held by bookings made before a reschedule still count.
	db.ExpectBegin()
	db.ExpectQuery(`FROM tours WHERE id = \$1 FOR UPDATE`).WithArgs(tour.ID).WillReturnRows(tourRow(tour))
	db.ExpectQuery(`SUM\(guests\)`).WithArgs(tour.ID).WillReturnRows(guestsRow(8))
	db.ExpectRollback()

	_, err := s.Create(context.Background(), uuid.New(), req)
	he := requireHTTPError(t, err, http.StatusConflict, errs.CodeBookingConflict)
	assert.Contains(t, he.Message, "2 seat(s)")
}

func TestBookingService_Create_TourDeparted(t *testing.T) {
	s, db, _ := newBookingService(t)
	tour := fakeTour(10, "2025-05-28", 7)

	req := &model.CreateBookingRequest{Type: model.BookingTypeTour, ItemID: tour.ID.String()}
	require.NoError(t, req.Validate())

	db.ExpectBegin()
	db.ExpectQuery(`FROM tours WHERE id = \$1 FOR UPDATE`).WithArgs(tour.ID).WillReturnRows(tourRow(tour))
	db.ExpectQuery(`SUM\(guests\)`).WithArgs(tour.ID).WillReturnRows(guestsRow(0))
	db.ExpectRollback()

	_, err := s.Create(context.Background(), uuid.New(), req)
	requireHTTPError(t, err, http.StatusBadRequest, errs.CodeItemUnavailable)
}

func TestBookingService_Availability_DatesRequired(t *testing.T) {
	s, db, _ := newBookingService(t)
	hotel := fakeHotel(3, "100")
	car := model.Car{
		Base:        model.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Brand:       "Hyundai",
		Model:       "Elantra",
		PricePerDay: decimal.RequireFromString("120"),
		Images:      []string{},
		IsActive:    true,
	}

	tests := []struct {
		name     string
		itemType model.BookingType
		id       uuid.UUID
		expect   func()
	}{
		{
			name:     "hotel",
			itemType: model.BookingTypeHotel,
			id:       hotel.ID,
			expect: func() {
				db.ExpectQuery(`FROM hotels WHERE id = \$1`).WithArgs(hotel.ID).WillReturnRows(hotelRow(hotel))
			},
		},
		{
			name:     "car",
			itemType: model.BookingTypeCar,
			id:       car.ID,
			expect: func() {
				db.ExpectQuery(`FROM cars WHERE id = \$1`).WithArgs(car.ID).WillReturnRows(carRow(car))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.expect()
			q := &model.AvailabilityQuery{IDParam: model.IDParam{ID: tt.id.String()}}
			require.NoError(t, q.Validate())

			_, err := s.Availability(context.Background(), tt.itemType, q)
			he := requireHTTPError(t, err, http.StatusBadRequest, "")
			require.Len(t, he.Errors, 2)
			assert.Equal(t, "start_date", he.Errors[0].Field)
			assert.Equal(t, "end_date", he.Errors[1].Field)
		})
	}
}

func TestBookingService_Availability_Hotel(t *testing.T) {
	s, db, _ := newBookingService(t)
	hotel := fakeHotel(3, "100")

	q := &model.AvailabilityQuery{IDParam: model.IDParam{ID: hotel.ID.String()}, StartDate: "2025-06-10", EndDate: "2025-06-12", Rooms: 2}
	require.NoError(t, q.Validate())

	db.ExpectQuery(`FROM hotels WHERE id = \$1`).WithArgs(hotel.ID).WillReturnRows(hotelRow(hotel))
	db.ExpectQuery(`FROM bookings`).
		WithArgs(model.BookingTypeHotel, hotel.ID, date("2025-06-10"), date("2025-06-12")).
		WillReturnRows(bookingRows(activeBooking(model.BookingTypeHotel, hotel.ID, "2025-06-11", "2025-06-12", 2, 2)))

	got, err := s.Availability(context.Background(), model.BookingTypeHotel, q)
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.Equal(t, 1, got.Remaining)
	assert.True(t, decimal.RequireFromString("400").Equal(got.TotalPrice), got.TotalPrice.String())
}

func TestBookingService_Availability_PastStart(t *testing.T) {
	s, db, _ := newBookingService(t)
	hotel := fakeHotel(3, "100")
	tour := fakeTour(20, "2025-05-20", 5)

	q := &model.AvailabilityQuery{IDParam: model.IDParam{ID: hotel.ID.String()}, StartDate: "2025-05-30", EndDate: "2025-06-02"}
	require.NoError(t, q.Validate())
	db.ExpectQuery(`FROM hotels WHERE id = \$1`).WithArgs(hotel.ID).WillReturnRows(hotelRow(hotel))
	db.ExpectQuery(`FROM bookings`).WillReturnRows(bookingRows())

	got, err := s.Availability(context.Background(), model.BookingTypeHotel, q)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Remaining)
	assert.False(t, got.Available)

	// Tours ignore requested dates and report their own schedule.
	q = &model.AvailabilityQuery{IDParam: model.IDParam{ID: tour.ID.String()}, StartDate: "2025-07-01", EndDate: "2025-07-02"}
	require.NoError(t, q.Validate())
	db.ExpectQuery(`FROM tours WHERE id = \$1`).WithArgs(tour.ID).WillReturnRows(tourRow(tour))
	db.ExpectQuery(`SUM\(guests\)`).WithArgs(tour.ID).WillReturnRows(guestsRow(4))

	got, err = s.Availability(context.Background(), model.BookingTypeTour, q)
	require.NoError(t, err)
	assert.Equal(t, 16, got.Remaining)
	assert.Equal(t, tour.StartDate, got.StartDate)
	assert.False(t, got.Available)
}

func TestBookingService_Get_HidesOthersBookings(t *testing.T) {
	s, db, _ := newBookingService(t)
	b := activeBooking(model.BookingTypeHotel, uuid.New(), "2025-06-10", "2025-06-12", 1, 1)

	db.ExpectQuery(`WHERE b.id = \$1`).WithArgs(b.ID).WillReturnRows(bookingRows(b))
	_, err := s.Get(context.Background(), uuid.New(), model.RoleUser, b.ID)
	requireHTTPError(t, err, http.StatusNotFound, "")

	db.ExpectQuery(`WHERE b.id = \$1`).WithArgs(b.ID).WillReturnRows(bookingRows(b))
	got, err := s.Get(context.Background(), uuid.New(), model.RoleAdmin, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}
