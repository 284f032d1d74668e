// Package model holds the domain entities and the request/response
// payloads exchanged over the HTTP API.
package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Base carries the columns every table shares.
type Base struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PaginationQuery is embedded by list requests.
type PaginationQuery struct {
	Page  int `query:"page" validate:"omitempty,min=1"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// Normalize fills in defaults for missing values.
func (p *PaginationQuery) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
}

func (p PaginationQuery) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

type PaginatedResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func NewPaginatedResponse[T any](data []T, p PaginationQuery, total int64) *PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := 0
	if p.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	return &PaginatedResponse[T]{
		Data:       data,
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// IDParam binds the :id path segment.
type IDParam struct {
	ID string `param:"id" json:"-" validate:"required,uuid"`
}

func (p *IDParam) Validate() error {
	return validate.Struct(p)
}

// UUID returns the parsed id. Call it after Validate succeeded.
func (p IDParam) UUID() uuid.UUID {
	id, _ := uuid.Parse(p.ID)
	return id
}

// Empty is the request type of endpoints without input.
type Empty struct{}

func (Empty) Validate() error { return nil }
