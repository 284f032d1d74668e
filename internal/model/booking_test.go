package model

import (
	"testing"
	"time"

	"github.com/deppfellow/tourism/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name       string
		aStart     string
		aEnd       string
		bStart     string
		bEnd       string
		overlapped bool
	}{
		{"identical", "2025-03-01", "2025-03-05", "2025-03-01", "2025-03-05", true},
		{"inner", "2025-03-01", "2025-03-10", "2025-03-03", "2025-03-04", true},
		{"partial tail", "2025-03-01", "2025-03-05", "2025-03-04", "2025-03-08", true},
		{"checkout equals checkin", "2025-03-01", "2025-03-05", "2025-03-05", "2025-03-07", false},
		{"checkin equals checkout", "2025-03-05", "2025-03-07", "2025-03-01", "2025-03-05", false},
		{"disjoint", "2025-03-01", "2025-03-02", "2025-04-01", "2025-04-02", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(day(tt.aStart), day(tt.aEnd), day(tt.bStart), day(tt.bEnd))
			assert.Equal(t, tt.overlapped, got)
		})
	}
}

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	all := []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled}
	allowed := map[BookingStatus][]BookingStatus{
		BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
		BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equalf(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 3, DaysBetween(day("2025-03-01"), day("2025-03-04")))
	assert.Equal(t, 1, DaysBetween(day("2024-12-31"), day("2025-01-01")))
	assert.Equal(t, 30, DaysBetween(day("2025-03-15"), day("2025-04-14")))
}

func TestCreateBookingRequest_Validate(t *testing.T) {
	t.Run("hotel requires dates", func(t *testing.T) {
		req := &CreateBookingRequest{Type: BookingTypeHotel, ItemID: "8b0f7e4c-5a2d-4a4e-9a3c-1f5f0c8e2b11"}
		err := req.Validate()

		var custom validation.CustomValidationErrors
		require.ErrorAs(t, err, &custom)
		assert.Len(t, custom, 2)
	})

	t.Run("end must follow start", func(t *testing.T) {
		req := &CreateBookingRequest{
			Type:      BookingTypeCar,
			ItemID:    "8b0f7e4c-5a2d-4a4e-9a3c-1f5f0c8e2b11",
			StartDate: "2025-05-10",
			EndDate:   "2025-05-10",
		}
		var custom validation.CustomValidationErrors
		require.ErrorAs(t, req.Validate(), &custom)
		assert.Equal(t, "end_date", custom[0].Field)
	})

	t.Run("tour defaults", func(t *testing.T) {
		req := &CreateBookingRequest{Type: BookingTypeTour, ItemID: "8b0f7e4c-5a2d-4a4e-9a3c-1f5f0c8e2b11"}
		require.NoError(t, req.Validate())
		assert.Equal(t, 1, req.Guests)
		assert.Equal(t, 1, req.Rooms)

		start, end := req.Dates()
		assert.Nil(t, start)
		assert.Nil(t, end)
	})

	t.Run("unknown type", func(t *testing.T) {
		req := &CreateBookingRequest{Type: "boat", ItemID: "8b0f7e4c-5a2d-4a4e-9a3c-1f5f0c8e2b11"}
		assert.Error(t, req.Validate())
	})
}

func TestPaginationQuery(t *testing.T) {
	p := PaginationQuery{}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageLimit, p.Limit)
	assert.Equal(t, 0, p.Offset())

	p = PaginationQuery{Page: 3, Limit: 500}
	p.Normalize()
	assert.Equal(t, MaxPageLimit, p.Limit)
	assert.Equal(t, 200, p.Offset())

	resp := NewPaginatedResponse[Hotel](nil, PaginationQuery{Page: 1, Limit: 20}, 41)
	assert.Equal(t, 3, resp.TotalPages)
	assert.NotNil(t, resp.Data)
}

func TestUpdateSettingsRequest_Validate(t *testing.T) {
	req := &UpdateSettingsRequest{Settings: map[string]string{"site_name": "Sky Trips"}}
	require.NoError(t, req.Validate())

	req = &UpdateSettingsRequest{Settings: map[string]string{"Site Name": "x"}}
	var custom validation.CustomValidationErrors
	require.ErrorAs(t, req.Validate(), &custom)
}
