package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/tourism/internal/database"
	"github.com/deppfellow/tourism/internal/errs"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/deppfellow/tourism/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type TourStore interface {
	Create(ctx context.Context, in model.TourInput) (*model.Tour, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tour, error)
	List(ctx context.Context, q model.ListToursQuery) ([]model.Tour, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TourService struct {
	db     database.DBTX
	tours  TourStore
	logger *zerolog.Logger
}

// NewTourService builds the service. Updates go through db so they can
// lock the tour against concurrent bookings.
func NewTourService(db database.DBTX, tours TourStore, logger *zerolog.Logger) *TourService {
	return &TourService{db: db, tours: tours, logger: logger}
}

// List returns active tours, or every tour for admins.
func (s *TourService) List(ctx context.Context, q *model.ListToursQuery, admin bool) (*model.PaginatedResponse[model.Tour], error) {
	q.IncludeInactive = admin
	items, total, err := s.tours.List(ctx, *q)
	if err != nil {
		return nil, err
	}
	return model.NewPaginatedResponse(items, q.PaginationQuery, total), nil
}

// Get hides inactive tours from everyone but admins.
func (s *TourService) Get(ctx context.Context, id uuid.UUID, admin bool) (*model.Tour, error) {
	tour, err := s.tours.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !tour.IsActive && !admin {
		return nil, errs.NewNotFoundError("Tour not found", true, nil)
	}
	return tour, nil
}

func (s *TourService) Create(ctx context.Context, req *model.CreateTourRequest) (*model.Tour, error) {
	tour, err := s.tours.Create(ctx, req.TourInput)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("tour_id", tour.ID.String()).Msg("tour created")
	return tour, nil
}

// Update rewrites a tour. While bookings hold seats the schedule is
// frozen and capacity cannot drop below the seats taken.
func (s *TourService) Update(ctx context.Context, req *model.UpdateTourRequest) (*model.Tour, error) {
	var tour *model.Tour
	err := database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		tours := repository.NewTourRepository(tx)
		current, err := tours.GetForUpdate(ctx, req.UUID())
		if err != nil {
			return err
		}

		booked, err := repository.NewBookingRepository(tx).SumActiveGuests(ctx, current.ID)
		if err != nil {
			return err
		}
		if booked > 0 {
			if !current.StartDate.Equal(req.StartDateValue()) || current.DurationDays != req.DurationDays {
				return errs.NewConflictError("Tours with active bookings cannot be rescheduled", true, errs.Ptr(errs.CodeTourHasBookings))
			}
			if req.Capacity < booked {
				return errs.NewConflictError(fmt.Sprintf("Capacity cannot go below the %d seat(s) already booked", booked), true, errs.Ptr(errs.CodeTourHasBookings))
			}
		}

		tour, err = tours.Update(ctx, current.ID, req.TourInput)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("tour_id", tour.ID.String()).Msg("tour updated")
	return tour, nil
}

func (s *TourService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.tours.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("tour_id", id.String()).Msg("tour deleted")
	return nil
}
