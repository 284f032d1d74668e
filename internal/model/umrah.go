package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UmrahPackage struct {
	Base
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	DurationDays  int             `json:"duration_days"`
	Price         decimal.Decimal `json:"price"`
	HotelMakkah   string          `json:"hotel_makkah"`
	HotelMadinah  string          `json:"hotel_madinah"`
	Includes      []string        `json:"includes"`
	DepartureDate *time.Time      `json:"departure_date"`
	Seats         int             `json:"seats"`
	IsActive      bool            `json:"is_active"`
}

type UmrahPackageInput struct {
	Title         string          `json:"title" validate:"required,min=2,max=200"`
	Description   string          `json:"description" validate:"max=5000"`
	DurationDays  int             `json:"duration_days" validate:"required,min=1,max=90"`
	Price         decimal.Decimal `json:"price"`
	HotelMakkah   string          `json:"hotel_makkah" validate:"max=200"`
	HotelMadinah  string          `json:"hotel_madinah" validate:"max=200"`
	Includes      []string        `json:"includes" validate:"max=50,dive,max=200"`
	DepartureDate string          `json:"departure_date" validate:"omitempty,datetime=2006-01-02"`
	Seats         int             `json:"seats" validate:"required,min=1"`
	IsActive      *bool           `json:"is_active"`

	departureDate *time.Time
}

func (in *UmrahPackageInput) check() error {
	var fe fieldErrors
	fe.nonNegative("price", in.Price)
	in.departureDate = fe.date("departure_date", in.DepartureDate)
	in.Includes = cleanList(in.Includes)
	return fe.err()
}

func (in UmrahPackageInput) Active() bool {
	return in.IsActive == nil || *in.IsActive
}

func (in UmrahPackageInput) DepartureDateValue() *time.Time {
	return in.departureDate
}

type CreateUmrahPackageRequest struct {
	UmrahPackageInput
}

func (r *CreateUmrahPackageRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	return r.check()
}

type UpdateUmrahPackageRequest struct {
	IDParam
	UmrahPackageInput
}

func (r *UpdateUmrahPackageRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	return r.check()
}

type ListUmrahPackagesQuery struct {
	PaginationQuery
	IncludeInactive bool `query:"-"`
}

func (q *ListUmrahPackagesQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return err
	}
	q.Normalize()
	return nil
}

type UmrahRequestStatus string

const (
	UmrahRequestStatusNew       UmrahRequestStatus = "new"
	UmrahRequestStatusContacted UmrahRequestStatus = "contacted"
	UmrahRequestStatusConfirmed UmrahRequestStatus = "confirmed"
	UmrahRequestStatusCancelled UmrahRequestStatus = "cancelled"
)

type UmrahRequest struct {
	Base
	PackageID     *uuid.UUID         `json:"package_id"`
	UserID        *uuid.UUID         `json:"user_id"`
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	Phone         string             `json:"phone"`
	Travelers     int                `json:"travelers"`
	PreferredDate *time.Time         `json:"preferred_date"`
	Notes         string             `json:"notes"`
	Status        UmrahRequestStatus `json:"status"`
}

type CreateUmrahRequestRequest struct {
	PackageID     string `json:"package_id" validate:"omitempty,uuid"`
	Name          string `json:"name" validate:"required,min=2,max=120"`
	Email         string `json:"email" validate:"required,email,max=254"`
	Phone         string `json:"phone" validate:"required,max=32"`
	Travelers     int    `json:"travelers" validate:"required,min=1,max=100"`
	PreferredDate string `json:"preferred_date" validate:"omitempty,datetime=2006-01-02"`
	Notes         string `json:"notes" validate:"max=2000"`

	packageID     *uuid.UUID
	preferredDate *time.Time
}

func (r *CreateUmrahRequestRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	if err := validate.Struct(r); err != nil {
		return err
	}

	if r.PackageID != "" {
		id, _ := uuid.Parse(r.PackageID)
		r.packageID = &id
	}

	var fe fieldErrors
	r.preferredDate = fe.date("preferred_date", r.PreferredDate)
	return fe.err()
}

func (r *CreateUmrahRequestRequest) PackageUUID() *uuid.UUID {
	return r.packageID
}

func (r *CreateUmrahRequestRequest) PreferredDateValue() *time.Time {
	return r.preferredDate
}

type ListUmrahRequestsQuery struct {
	PaginationQuery
	Status UmrahRequestStatus `query:"status" validate:"omitempty,oneof=new contacted confirmed cancelled"`
}

func (q *ListUmrahRequestsQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return err
	}
	q.Normalize()
	return nil
}

type UpdateUmrahRequestStatusRequest struct {
	IDParam
	Status UmrahRequestStatus `json:"status" validate:"required,oneof=new contacted confirmed cancelled"`
}

func (r *UpdateUmrahRequestStatusRequest) Validate() error {
	return validate.Struct(r)
}
