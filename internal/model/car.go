package model

import (
	"github.com/shopspring/decimal"
)

type Transmission string

const (
	TransmissionManual    Transmission = "manual"
	TransmissionAutomatic Transmission = "automatic"
)

// Car is a single rentable vehicle.
type Car struct {
	Base
	Brand        string          `json:"brand"`
	Model        string          `json:"model"`
	Year         int             `json:"year"`
	Category     string          `json:"category"`
	Seats        int             `json:"seats"`
	Transmission Transmission    `json:"transmission"`
	PricePerDay  decimal.Decimal `json:"price_per_day"`
	City         string          `json:"city"`
	Images       []string        `json:"images"`
	IsActive     bool            `json:"is_active"`
}

type CarInput struct {
	Brand        string          `json:"brand" validate:"required,max=100"`
	Model        string          `json:"model" validate:"required,max=100"`
	Year         int             `json:"year" validate:"required,min=1950,max=2100"`
	Category     string          `json:"category" validate:"required,max=50"`
	Seats        int             `json:"seats" validate:"required,min=1,max=60"`
	Transmission Transmission    `json:"transmission" validate:"required,oneof=manual automatic"`
	PricePerDay  decimal.Decimal `json:"price_per_day"`
	City         string          `json:"city" validate:"required,max=100"`
	Images       []string        `json:"images" validate:"max=20,dive,max=500"`
	IsActive     *bool           `json:"is_active"`
}

func (in *CarInput) check() error {
	var fe fieldErrors
	fe.nonNegative("price_per_day", in.PricePerDay)
	in.Images = cleanList(in.Images)
	return fe.err()
}

func (in CarInput) Active() bool {
	return in.IsActive == nil || *in.IsActive
}

type CreateCarRequest struct {
	CarInput
}

func (r *CreateCarRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	return r.check()
}

type UpdateCarRequest struct {
	IDParam
	CarInput
}

func (r *UpdateCarRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	return r.check()
}

type ListCarsQuery struct {
	PaginationQuery
	City     string `query:"city" validate:"omitempty,max=100"`
	Category string `query:"category" validate:"omitempty,max=50"`
	MaxPrice string `query:"max_price" validate:"omitempty,numeric"`
	Seats    int    `query:"seats" validate:"omitempty,min=1"`

	IncludeInactive bool `query:"-"`

	maxPrice *decimal.Decimal
}

func (q *ListCarsQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return err
	}
	q.Normalize()
	q.maxPrice = parseOptionalDecimal(q.MaxPrice)
	return nil
}

func (q *ListCarsQuery) MaxPriceValue() *decimal.Decimal {
	return q.maxPrice
}
