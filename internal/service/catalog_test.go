package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/deppfellow/tourism/internal/errs"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockHotelStore struct {
	mock.Mock
}

func (m *mockHotelStore) Create(ctx context.Context, in model.HotelInput) (*model.Hotel, error) {
	args := m.Called(ctx, in)
	h, _ := args.Get(0).(*model.Hotel)
	return h, args.Error(1)
}

func (m *mockHotelStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Hotel, error) {
	args := m.Called(ctx, id)
	h, _ := args.Get(0).(*model.Hotel)
	return h, args.Error(1)
}

func (m *mockHotelStore) List(ctx context.Context, q model.ListHotelsQuery) ([]model.Hotel, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Hotel)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *mockHotelStore) Update(ctx context.Context, id uuid.UUID, in model.HotelInput) (*model.Hotel, error) {
	args := m.Called(ctx, id, in)
	h, _ := args.Get(0).(*model.Hotel)
	return h, args.Error(1)
}

func (m *mockHotelStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockCarStore struct {
	mock.Mock
}

func (m *mockCarStore) Create(ctx context.Context, in model.CarInput) (*model.Car, error) {
	args := m.Called(ctx, in)
	c, _ := args.Get(0).(*model.Car)
	return c, args.Error(1)
}

func (m *mockCarStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.Car)
	return c, args.Error(1)
}

func (m *mockCarStore) List(ctx context.Context, q model.ListCarsQuery) ([]model.Car, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Car)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *mockCarStore) Update(ctx context.Context, id uuid.UUID, in model.CarInput) (*model.Car, error) {
	args := m.Called(ctx, id, in)
	c, _ := args.Get(0).(*model.Car)
	return c, args.Error(1)
}

func (m *mockCarStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockTourStore struct {
	mock.Mock
}

func (m *mockTourStore) Create(ctx context.Context, in model.TourInput) (*model.Tour, error) {
	args := m.Called(ctx, in)
	t, _ := args.Get(0).(*model.Tour)
	return t, args.Error(1)
}

func (m *mockTourStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Tour, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*model.Tour)
	return t, args.Error(1)
}

func (m *mockTourStore) List(ctx context.Context, q model.ListToursQuery) ([]model.Tour, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Tour)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *mockTourStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func TestCatalog_InactiveHiddenFromVisitors(t *testing.T) {
	hotel := fakeHotel(4, "100")
	hotel.IsActive = false
	car := &model.Car{Base: model.Base{ID: uuid.New()}, Brand: "Kia", Model: "Carnival"}
	tour := fakeTour(12, "2025-08-01", 5)
	tour.IsActive = false

	hotels := new(mockHotelStore)
	hotels.On("GetByID", mock.Anything, hotel.ID).Return(&hotel, nil)
	cars := new(mockCarStore)
	cars.On("GetByID", mock.Anything, car.ID).Return(car, nil)
	tours := new(mockTourStore)
	tours.On("GetByID", mock.Anything, tour.ID).Return(&tour, nil)

	hs := NewHotelService(hotels, &nopLogger)
	cs := NewCarService(cars, &nopLogger)
	ts := NewTourService(nil, tours, &nopLogger)
	ctx := context.Background()

	tests := []struct {
		name string
		get  func(admin bool) (any, error)
	}{
		{"hotel", func(admin bool) (any, error) { return hs.Get(ctx, hotel.ID, admin) }},
		{"car", func(admin bool) (any, error) { return cs.Get(ctx, car.ID, admin) }},
		{"tour", func(admin bool) (any, error) { return ts.Get(ctx, tour.ID, admin) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.get(false)
			requireHTTPError(t, err, http.StatusNotFound, "")

			got, err := tt.get(true)
			require.NoError(t, err)
			assert.NotNil(t, got)
		})
	}
}

func TestCatalog_ListIncludesInactiveForAdmins(t *testing.T) {
	hotels := new(mockHotelStore)
	hotels.On("List", mock.Anything, mock.MatchedBy(func(q model.ListHotelsQuery) bool { return !q.IncludeInactive })).
		Return([]model.Hotel{}, int64(0), nil).Once()
	hotels.On("List", mock.Anything, mock.MatchedBy(func(q model.ListHotelsQuery) bool { return q.IncludeInactive })).
		Return([]model.Hotel{}, int64(0), nil).Once()

	s := NewHotelService(hotels, &nopLogger)
	q := &model.ListHotelsQuery{PaginationQuery: model.PaginationQuery{Page: 1, Limit: 20}}

	// A visitor cannot opt in by reusing a query value an admin filled.
	_, err := s.List(context.Background(), q, true)
	require.NoError(t, err)
	_, err = s.List(context.Background(), q, false)
	require.NoError(t, err)
	hotels.AssertExpectations(t)
}

func updateTourRequest(t *testing.T, tour model.Tour, start string, days, capacity int) *model.UpdateTourRequest {
	t.Helper()
	req := &model.UpdateTourRequest{
		IDParam: model.IDParam{ID: tour.ID.String()},
		TourInput: model.TourInput{
			Title:          tour.Title,
			Destination:    tour.Destination,
			StartDate:      start,
			DurationDays:   days,
			PricePerPerson: tour.PricePerPerson,
			Capacity:       capacity,
		},
	}
	require.NoError(t, req.Validate())
	return req
}

func TestTourService_Update_WithActiveBookings(t *testing.T) {
	tour := fakeTour(20, "2025-09-01", 7)

	tests := []struct {
		name    string
		start   string
		days    int
		seats   int
		message string
	}{
		{name: "moved start date", start: "2025-09-15", days: 7, seats: 20, message: "cannot be rescheduled"},
		{name: "longer trip", start: "2025-09-01", days: 9, seats: 20, message: "cannot be rescheduled"},
		{name: "capacity below seats taken", start: "2025-09-01", days: 7, seats: 5, message: "6 seat(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newDB(t)
			s := NewTourService(db, new(mockTourStore), &nopLogger)

			db.ExpectBegin()
			db.ExpectQuery(`FROM tours WHERE id = \$1 FOR UPDATE`).WithArgs(tour.ID).WillReturnRows(tourRow(tour))
			db.ExpectQuery(`SUM\(guests\)`).WithArgs(tour.ID).WillReturnRows(guestsRow(6))
			db.ExpectRollback()

			_, err := s.Update(context.Background(), updateTourRequest(t, tour, tt.start, tt.days, tt.seats))
			he := requireHTTPError(t, err, http.StatusConflict, errs.CodeTourHasBookings)
			assert.Contains(t, he.Message, tt.message)
		})
	}
}

func TestTourService_Update(t *testing.T) {
	tour := fakeTour(20, "2025-09-01", 7)

	tests := []struct {
		name   string
		booked int
		start  string
		seats  int
	}{
		{name: "reschedule without bookings", booked: 0, start: "2025-10-01", seats: 20},
		{name: "capacity down to seats taken", booked: 6, start: "2025-09-01", seats: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newDB(t)
			s := NewTourService(db, new(mockTourStore), &nopLogger)
			updated := tour
			updated.StartDate = date(tt.start)
			updated.Capacity = tt.seats

			db.ExpectBegin()
			db.ExpectQuery(`FROM tours WHERE id = \$1 FOR UPDATE`).WithArgs(tour.ID).WillReturnRows(tourRow(tour))
			db.ExpectQuery(`SUM\(guests\)`).WithArgs(tour.ID).WillReturnRows(guestsRow(tt.booked))
			db.ExpectQuery(`UPDATE tours SET`).
				WithArgs(tour.ID, tour.Title, "", tour.Destination, date(tt.start), 7, tour.PricePerPerson, tt.seats,
					pgxmock.AnyArg(), true).
				WillReturnRows(tourRow(updated))
			db.ExpectCommit()

			got, err := s.Update(context.Background(), updateTourRequest(t, tour, tt.start, 7, tt.seats))
			require.NoError(t, err)
			assert.Equal(t, date(tt.start), got.StartDate)
			assert.Equal(t, tt.seats, got.Capacity)
		})
	}
}
