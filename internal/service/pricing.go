package service

import (
	"time"

	"github.com/deppfellow/tourism/internal/model"
	"github.com/shopspring/decimal"
)

func hotelTotal(pricePerNight decimal.Decimal, nights, rooms int) decimal.Decimal {
	return pricePerNight.Mul(decimal.NewFromInt(int64(nights))).Mul(decimal.NewFromInt(int64(rooms)))
}

func carTotal(pricePerDay decimal.Decimal, days int) decimal.Decimal {
	return pricePerDay.Mul(decimal.NewFromInt(int64(days)))
}

func tourTotal(pricePerPerson decimal.Decimal, guests int) decimal.Decimal {
	return pricePerPerson.Mul(decimal.NewFromInt(int64(guests)))
}

// peakRooms returns the highest number of rooms held on any single night
// of [start, end). Bookings that only touch the range at its edges are
// ignored.
func peakRooms(bookings []model.Booking, start, end time.Time) int {
	peak := 0
	for night := start; night.Before(end); night = night.AddDate(0, 0, 1) {
		next := night.AddDate(0, 0, 1)
		held := 0
		for _, b := range bookings {
			if b.Status.IsActive() && model.Overlaps(b.StartDate, b.EndDate, night, next) {
				held += b.Rooms
			}
		}
		peak = max(peak, held)
	}
	return peak
}
