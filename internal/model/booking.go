package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingType string

const (
	BookingTypeHotel BookingType = "hotel"
	BookingTypeCar   BookingType = "car"
	BookingTypeTour  BookingType = "tour"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ActiveBookingStatuses hold inventory.
var ActiveBookingStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed}

// RevenueBookingStatuses count towards revenue reports.
var RevenueBookingStatuses = []BookingStatus{BookingStatusConfirmed, BookingStatusCompleted}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
}

// CanTransitionTo reports whether a booking in status s may move to next.
// Completed and cancelled bookings are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// Booking reserves an item for the half-open date range [StartDate, EndDate).
type Booking struct {
	Base
	UserID     uuid.UUID       `json:"user_id"`
	Type       BookingType     `json:"type"`
	ItemID     uuid.UUID       `json:"item_id"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    time.Time       `json:"end_date"`
	Guests     int             `json:"guests"`
	Rooms      int             `json:"rooms"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     BookingStatus   `json:"status"`
	Notes      string          `json:"notes"`

	// ItemName is filled by detail queries.
	ItemName string `json:"item_name,omitempty"`
}

// Nights is the number of nights (or rental days) the booking covers.
func (b *Booking) Nights() int {
	return DaysBetween(b.StartDate, b.EndDate)
}

// Overlaps reports whether [aStart,aEnd) and [bStart,bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// DaysBetween counts calendar days from start to end.
func DaysBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours() / 24)
}

type CreateBookingRequest struct {
	Type      BookingType `json:"type" validate:"required,oneof=hotel car tour"`
	ItemID    string      `json:"item_id" validate:"required,uuid"`
	StartDate string      `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string      `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Guests    int         `json:"guests" validate:"omitempty,min=1,max=100"`
	Rooms     int         `json:"rooms" validate:"omitempty,min=1,max=50"`
	Notes     string      `json:"notes" validate:"max=1000"`

	startDate *time.Time
	endDate   *time.Time
}

func (r *CreateBookingRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}

	if r.Guests == 0 {
		r.Guests = 1
	}
	if r.Rooms == 0 {
		r.Rooms = 1
	}

	var fe fieldErrors
	// Tours take their dates from the tour itself.
	if r.Type != BookingTypeTour {
		if r.StartDate == "" {
			fe.add("start_date", "is required")
		}
		if r.EndDate == "" {
			fe.add("end_date", "is required")
		}
	}
	r.startDate = fe.date("start_date", r.StartDate)
	r.endDate = fe.date("end_date", r.EndDate)
	if r.startDate != nil && r.endDate != nil && !r.endDate.After(*r.startDate) {
		fe.add("end_date", "must be after start_date")
	}
	return fe.err()
}

func (r *CreateBookingRequest) ItemUUID() uuid.UUID {
	id, _ := uuid.Parse(r.ItemID)
	return id
}

func (r *CreateBookingRequest) Dates() (start, end *time.Time) {
	return r.startDate, r.endDate
}

type ListMyBookingsQuery struct {
	PaginationQuery
	Status BookingStatus `query:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
}

func (q *ListMyBookingsQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return err
	}
	q.Normalize()
	return nil
}

type ListBookingsQuery struct {
	PaginationQuery
	Status BookingStatus `query:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Type   BookingType   `query:"type" validate:"omitempty,oneof=hotel car tour"`
	UserID string        `query:"user_id" validate:"omitempty,uuid"`
	From   string        `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To     string        `query:"to" validate:"omitempty,datetime=2006-01-02"`

	from *time.Time
	to   *time.Time
}

func (q *ListBookingsQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return err
	}
	q.Normalize()

	var fe fieldErrors
	q.from = fe.date("from", q.From)
	q.to = fe.date("to", q.To)
	return fe.err()
}

func (q *ListBookingsQuery) Range() (from, to *time.Time) {
	return q.from, q.to
}

// BookingFilter is the repository side of a booking listing.
type BookingFilter struct {
	UserID *uuid.UUID
	Status BookingStatus
	Type   BookingType
	From   *time.Time
	To     *time.Time
}

type UpdateBookingStatusRequest struct {
	IDParam
	Status BookingStatus `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

func (r *UpdateBookingStatusRequest) Validate() error {
	return validate.Struct(r)
}

type AvailabilityQuery struct {
	IDParam
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Rooms     int    `query:"rooms" validate:"omitempty,min=1,max=50"`
	Guests    int    `query:"guests" validate:"omitempty,min=1,max=100"`

	startDate *time.Time
	endDate   *time.Time
}

func (q *AvailabilityQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return err
	}
	if q.Rooms == 0 {
		q.Rooms = 1
	}
	if q.Guests == 0 {
		q.Guests = 1
	}

	var fe fieldErrors
	q.startDate = fe.date("start_date", q.StartDate)
	q.endDate = fe.date("end_date", q.EndDate)
	if q.startDate != nil && q.endDate != nil && !q.endDate.After(*q.startDate) {
		fe.add("end_date", "must be after start_date")
	}
	return fe.err()
}

func (q *AvailabilityQuery) Dates() (start, end *time.Time) {
	return q.startDate, q.endDate
}

// Availability answers whether an item can take a booking.
type Availability struct {
	ItemID     uuid.UUID       `json:"item_id"`
	Type       BookingType     `json:"type"`
	Available  bool            `json:"available"`
	Remaining  int             `json:"remaining"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    time.Time       `json:"end_date"`
	TotalPrice decimal.Decimal `json:"total_price"`
}
