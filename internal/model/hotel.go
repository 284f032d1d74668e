package model

import (
	"github.com/shopspring/decimal"
)

type Hotel struct {
	Base
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	City          string          `json:"city"`
	Country       string          `json:"country"`
	Address       string          `json:"address"`
	Stars         int             `json:"stars"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	TotalRooms    int             `json:"total_rooms"`
	Amenities     []string        `json:"amenities"`
	Images        []string        `json:"images"`
	IsActive      bool            `json:"is_active"`
}

type HotelInput struct {
	Name          string          `json:"name" validate:"required,min=2,max=200"`
	Description   string          `json:"description" validate:"max=5000"`
	City          string          `json:"city" validate:"required,max=100"`
	Country       string          `json:"country" validate:"required,max=100"`
	Address       string          `json:"address" validate:"max=300"`
	Stars         int             `json:"stars" validate:"required,min=1,max=5"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	TotalRooms    int             `json:"total_rooms" validate:"required,min=1"`
	Amenities     []string        `json:"amenities" validate:"max=50,dive,max=100"`
	Images        []string        `json:"images" validate:"max=20,dive,max=500"`
	IsActive      *bool           `json:"is_active"`
}

func (in *HotelInput) check() error {
	var fe fieldErrors
	fe.nonNegative("price_per_night", in.PricePerNight)
	in.Amenities = cleanList(in.Amenities)
	in.Images = cleanList(in.Images)
	return fe.err()
}

// Active defaults to true when the flag is omitted.
func (in HotelInput) Active() bool {
	return in.IsActive == nil || *in.IsActive
}

type CreateHotelRequest struct {
	HotelInput
}

func (r *CreateHotelRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	return r.check()
}

type UpdateHotelRequest struct {
	IDParam
	HotelInput
}

func (r *UpdateHotelRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	return r.check()
}

type ListHotelsQuery struct {
	PaginationQuery
	City     string `query:"city" validate:"omitempty,max=100"`
	MinStars int    `query:"min_stars" validate:"omitempty,min=1,max=5"`
	MaxPrice string `query:"max_price" validate:"omitempty,numeric"`
	Search   string `query:"search" validate:"omitempty,max=100"`

	// IncludeInactive is set by admin listings only.
	IncludeInactive bool `query:"-"`

	maxPrice *decimal.Decimal
}

func (q *ListHotelsQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return err
	}
	q.Normalize()
	q.maxPrice = parseOptionalDecimal(q.MaxPrice)
	return nil
}

func (q *ListHotelsQuery) MaxPriceValue() *decimal.Decimal {
	return q.maxPrice
}

func parseOptionalDecimal(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}
