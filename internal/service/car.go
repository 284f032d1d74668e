package service

import (
	"context"

	"github.com/deppfellow/tourism/internal/errs"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type CarStore interface {
	Create(ctx context.Context, in model.CarInput) (*model.Car, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Car, error)
	List(ctx context.Context, q model.ListCarsQuery) ([]model.Car, int64, error)
	Update(ctx context.Context, id uuid.UUID, in model.CarInput) (*model.Car, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CarService struct {
	cars   CarStore
	logger *zerolog.Logger
}

func NewCarService(cars CarStore, logger *zerolog.Logger) *CarService {
	return &CarService{cars: cars, logger: logger}
}

// List returns active cars, or every car for admins.
func (s *CarService) List(ctx context.Context, q *model.ListCarsQuery, admin bool) (*model.PaginatedResponse[model.Car], error) {
	q.IncludeInactive = admin
	items, total, err := s.cars.List(ctx, *q)
	if err != nil {
		return nil, err
	}
	return model.NewPaginatedResponse(items, q.PaginationQuery, total), nil
}

// Get hides inactive cars from everyone but admins.
func (s *CarService) Get(ctx context.Context, id uuid.UUID, admin bool) (*model.Car, error) {
	car, err := s.cars.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !car.IsActive && !admin {
		return nil, errs.NewNotFoundError("Car not found", true, nil)
	}
	return car, nil
}

func (s *CarService) Create(ctx context.Context, req *model.CreateCarRequest) (*model.Car, error) {
	car, err := s.cars.Create(ctx, req.CarInput)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("car_id", car.ID.String()).Msg("car created")
	return car, nil
}

func (s *CarService) Update(ctx context.Context, req *model.UpdateCarRequest) (*model.Car, error) {
	return s.cars.Update(ctx, req.UUID(), req.CarInput)
}

func (s *CarService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.cars.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("car_id", id.String()).Msg("car deleted")
	return nil
}
