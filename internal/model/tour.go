package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tour is a scheduled group trip. EndDate is derived from StartDate and
// DurationDays and is exclusive.
type Tour struct {
	Base
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Destination    string          `json:"destination"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	DurationDays   int             `json:"duration_days"`
	PricePerPerson decimal.Decimal `json:"price_per_person"`
	Capacity       int             `json:"capacity"`
	Images         []string        `json:"images"`
	IsActive       bool            `json:"is_active"`
}

type TourInput struct {
	Title          string          `json:"title" validate:"required,min=2,max=200"`
	Description    string          `json:"description" validate:"max=5000"`
	Destination    string          `json:"destination" validate:"required,max=200"`
	StartDate      string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	DurationDays   int             `json:"duration_days" validate:"required,min=1,max=365"`
	PricePerPerson decimal.Decimal `json:"price_per_person"`
	Capacity       int             `json:"capacity" validate:"required,min=1"`
	Images         []string        `json:"images" validate:"max=20,dive,max=500"`
	IsActive       *bool           `json:"is_active"`

	startDate time.Time
}

func (in *TourInput) check() error {
	var fe fieldErrors
	fe.nonNegative("price_per_person", in.PricePerPerson)
	if d := fe.date("start_date", in.StartDate); d != nil {
		in.startDate = *d
	}
	in.Images = cleanList(in.Images)
	return fe.err()
}

func (in TourInput) Active() bool {
	return in.IsActive == nil || *in.IsActive
}

func (in TourInput) StartDateValue() time.Time {
	return in.startDate
}

type CreateTourRequest struct {
	TourInput
}

func (r *CreateTourRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	return r.check()
}

type UpdateTourRequest struct {
	IDParam
	TourInput
}

func (r *UpdateTourRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	return r.check()
}

type ListToursQuery struct {
	PaginationQuery
	Destination string `query:"destination" validate:"omitempty,max=200"`
	MaxPrice    string `query:"max_price" validate:"omitempty,numeric"`
	From        string `query:"from" validate:"omitempty,datetime=2006-01-02"`

	IncludeInactive bool `query:"-"`

	maxPrice *decimal.Decimal
	from     *time.Time
}

func (q *ListToursQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return err
	}
	q.Normalize()
	q.maxPrice = parseOptionalDecimal(q.MaxPrice)

	var fe fieldErrors
	q.from = fe.date("from", q.From)
	return fe.err()
}

func (q *ListToursQuery) MaxPriceValue() *decimal.Decimal {
	return q.maxPrice
}

func (q *ListToursQuery) FromValue() *time.Time {
	return q.from
}
