package service

import (
	"context"

	"github.com/deppfellow/tourism/internal/errs"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type HotelStore interface {
	Create(ctx context.Context, in model.HotelInput) (*model.Hotel, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Hotel, error)
	List(ctx context.Context, q model.ListHotelsQuery) ([]model.Hotel, int64, error)
	Update(ctx context.Context, id uuid.UUID, in model.HotelInput) (*model.Hotel, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type HotelService struct {
	hotels HotelStore
	logger *zerolog.Logger
}

func NewHotelService(hotels HotelStore, logger *zerolog.Logger) *HotelService {
	return &HotelService{hotels: hotels, logger: logger}
}

// List returns active hotels, or every hotel for admins.
func (s *HotelService) List(ctx context.Context, q *model.ListHotelsQuery, admin bool) (*model.PaginatedResponse[model.Hotel], error) {
	q.IncludeInactive = admin
	items, total, err := s.hotels.List(ctx, *q)
	if err != nil {
		return nil, err
	}
	return model.NewPaginatedResponse(items, q.PaginationQuery, total), nil
}

// Get hides inactive hotels from everyone but admins.
func (s *HotelService) Get(ctx context.Context, id uuid.UUID, admin bool) (*model.Hotel, error) {
	hotel, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !hotel.IsActive && !admin {
		return nil, errs.NewNotFoundError("Hotel not found", true, nil)
	}
	return hotel, nil
}

func (s *HotelService) Create(ctx context.Context, req *model.CreateHotelRequest) (*model.Hotel, error) {
	hotel, err := s.hotels.Create(ctx, req.HotelInput)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("hotel_id", hotel.ID.String()).Msg("hotel created")
	return hotel, nil
}

func (s *HotelService) Update(ctx context.Context, req *model.UpdateHotelRequest) (*model.Hotel, error) {
	return s.hotels.Update(ctx, req.UUID(), req.HotelInput)
}

func (s *HotelService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.hotels.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("hotel_id", id.String()).Msg("hotel deleted")
	return nil
}
