package service

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/tourism/internal/database"
	"github.com/deppfellow/tourism/internal/errs"
	"github.com/deppfellow/tourism/internal/lib/email"
	"github.com/deppfellow/tourism/internal/lib/job"
	"github.com/deppfellow/tourism/internal/lib/metrics"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/deppfellow/tourism/internal/repository"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// BookingService owns the booking lifecycle. Every write runs in a
// transaction that locks the booked item (or the booking) first, so
// concurrent requests for the same item are serialized by PostgreSQL.
type BookingService struct {
	db         database.DBTX
	jobs       job.Enqueuer
	logger     *zerolog.Logger
	pendingTTL time.Duration
	currency   func(ctx context.Context) string
	now        func() time.Time
}

// NewBookingService builds the service. currency may be nil.
func NewBookingService(db database.DBTX, jobs job.Enqueuer, pendingTTL time.Duration, currency func(ctx context.Context) string, logger *zerolog.Logger) *BookingService {
	if currency == nil {
		currency = func(context.Context) string { return "" }
	}
	return &BookingService{
		db:         db,
		jobs:       jobs,
		logger:     logger,
		pendingTTL: pendingTTL,
		currency:   currency,
		now:        time.Now,
	}
}

// quote is the outcome of checking one item for a date range.
type quote struct {
	itemName  string
	start     time.Time
	end       time.Time
	remaining int
	requested int
	total     decimal.Decimal
}

func (q quote) available() bool {
	return q.requested <= q.remaining
}

// quoteInput describes what is being asked for. Dates are ignored for tours.
type quoteInput struct {
	itemType model.BookingType
	itemID   uuid.UUID
	start    *time.Time
	end      *time.Time
	guests   int
	rooms    int
}

func (s *BookingService) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func itemNotFound(t model.BookingType) error {
	switch t {
	case model.BookingTypeHotel:
		return errs.NewNotFoundError("Hotel not found", true, nil)
	case model.BookingTypeCar:
		return errs.NewNotFoundError("Car not found", true, nil)
	default:
		return errs.NewNotFoundError("Tour not found", true, nil)
	}
}

func datesRequired() error {
	return errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{
		{Field: "start_date", Error: "is required"},
		{Field: "end_date", Error: "is required"},
	}, nil)
}

// evaluate loads the item (locking it when lock is set), scans the active
// bookings that intersect the requested range and prices the request.
func (s *BookingService) evaluate(ctx context.Context, db database.DBTX, lock bool, in quoteInput) (*quote, error) {
	bookings := repository.NewBookingRepository(db)

	switch in.itemType {
	case model.BookingTypeHotel:
		hotels := repository.NewHotelRepository(db)
		get := hotels.GetByID
		if lock {
			get = hotels.GetForUpdate
		}
		hotel, err := get(ctx, in.itemID)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, itemNotFound(in.itemType)
			}
			return nil, err
		}
		if !hotel.IsActive {
			return nil, itemNotFound(in.itemType)
		}
		if in.start == nil || in.end == nil {
			return nil, datesRequired()
		}

		existing, err := bookings.ListActiveForItem(ctx, in.itemType, in.itemID, *in.start, *in.end)
		if err != nil {
			return nil, err
		}
		nights := model.DaysBetween(*in.start, *in.end)
		return &quote{
			itemName:  hotel.Name,
			start:     *in.start,
			end:       *in.end,
			remaining: max(hotel.TotalRooms-peakRooms(existing, *in.start, *in.end), 0),
			requested: in.rooms,
			total:     hotelTotal(hotel.PricePerNight, nights, in.rooms),
		}, nil

	case model.BookingTypeCar:
		cars := repository.NewCarRepository(db)
		get := cars.GetByID
		if lock {
			get = cars.GetForUpdate
		}
		car, err := get(ctx, in.itemID)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, itemNotFound(in.itemType)
			}
			return nil, err
		}
		if !car.IsActive {
			return nil, itemNotFound(in.itemType)
		}
		if in.start == nil || in.end == nil {
			return nil, datesRequired()
		}

		existing, err := bookings.ListActiveForItem(ctx, in.itemType, in.itemID, *in.start, *in.end)
		if err != nil {
			return nil, err
		}
		remaining := 1
		if len(existing) > 0 {
			remaining = 0
		}
		return &quote{
			itemName:  car.Brand + " " + car.Model,
			start:     *in.start,
			end:       *in.end,
			remaining: remaining,
			requested: 1,
			total:     carTotal(car.PricePerDay, model.DaysBetween(*in.start, *in.end)),
		}, nil

	case model.BookingTypeTour:
		tours := repository.NewTourRepository(db)
		get := tours.GetByID
		if lock {
			get = tours.GetForUpdate
		}
		tour, err := get(ctx, in.itemID)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, itemNotFound(in.itemType)
			}
			return nil, err
		}
		if !tour.IsActive {
			return nil, itemNotFound(in.itemType)
		}

		booked, err := bookings.SumActiveGuests(ctx, in.itemID)
		if err != nil {
			return nil, err
		}
		return &quote{
			itemName:  tour.Title,
			start:     tour.StartDate,
			end:       tour.EndDate,
			remaining: max(tour.Capacity-booked, 0),
			requested: in.guests,
			total:     tourTotal(tour.PricePerPerson, in.guests),
		}, nil
	}

	return nil, errs.NewBadRequestError("Unknown booking type", true, nil, nil, nil)
}

// Availability answers whether the item can take the request without
// reserving anything.
func (s *BookingService) Availability(ctx context.Context, itemType model.BookingType, q *model.AvailabilityQuery) (*model.Availability, error) {
	start, end := q.Dates()
	qt, err := s.evaluate(ctx, s.db, false, quoteInput{
		itemType: itemType,
		itemID:   q.UUID(),
		start:    start,
		end:      end,
		guests:   q.Guests,
		rooms:    q.Rooms,
	})
	if err != nil {
		return nil, err
	}
	return &model.Availability{
		ItemID:     q.UUID(),
		Type:       itemType,
		Available:  qt.available() && !qt.start.Before(s.today()),
		Remaining:  qt.remaining,
		StartDate:  qt.start,
		EndDate:    qt.end,
		TotalPrice: qt.total,
	}, nil
}

func (s *BookingService) Create(ctx context.Context, userID uuid.UUID, req *model.CreateBookingRequest) (*model.Booking, error) {
	start, end := req.Dates()
	in := quoteInput{
		itemType: req.Type,
		itemID:   req.ItemUUID(),
		start:    start,
		end:      end,
		guests:   req.Guests,
		rooms:    req.Rooms,
	}

	var (
		booking *model.Booking
		user    *model.User
	)
	err := database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		qt, err := s.evaluate(ctx, tx, true, in)
		if err != nil {
			return err
		}
		if qt.start.Before(s.today()) {
			if req.Type == model.BookingTypeTour {
				return errs.NewBadRequestError("This tour has already departed", true, errs.Ptr(errs.CodeItemUnavailable), nil, nil)
			}
			return errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{
				{Field: "start_date", Error: "must not be in the past"},
			}, nil)
		}
		if !qt.available() {
			metrics.BookingConflicts.WithLabelValues(string(req.Type)).Inc()
			return errs.NewConflictError(conflictMessage(req.Type, qt.remaining), true, errs.Ptr(errs.CodeBookingConflict))
		}

		rooms := req.Rooms
		if req.Type != model.BookingTypeHotel {
			rooms = 1
		}
		booking = &model.Booking{
			UserID:     userID,
			Type:       req.Type,
			ItemID:     in.itemID,
			StartDate:  qt.start,
			EndDate:    qt.end,
			Guests:     req.Guests,
			Rooms:      rooms,
			TotalPrice: qt.total,
			Status:     model.BookingStatusPending,
			Notes:      req.Notes,
			ItemName:   qt.itemName,
		}
		if err := repository.NewBookingRepository(tx).Create(ctx, booking); err != nil {
			return err
		}

		if _, err := repository.NewNotificationRepository(tx).Create(ctx, model.NewNotification{
			UserID:  userID,
			Type:    model.NotificationTypeBooking,
			Title:   "Booking received",
			Message: fmt.Sprintf("Your booking for %s is pending confirmation.", qt.itemName),
			Link:    bookingLink(booking.ID),
		}); err != nil {
			return err
		}

		user, err = repository.NewUserRepository(tx).GetByID(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.BookingsCreated.WithLabelValues(string(booking.Type)).Inc()
	s.logger.Info().
		Str("booking_id", booking.ID.String()).
		Str("type", string(booking.Type)).
		Str("item_id", booking.ItemID.String()).
		Str("total", booking.TotalPrice.StringFixed(2)).
		Msg("booking created")

	data := s.emailData(ctx, user, booking)
	enqueue(ctx, s.jobs, s.logger, func() (*asynq.Task, error) {
		return job.NewBookingReceivedTask(user.Email, data)
	})
	return booking, nil
}

func conflictMessage(t model.BookingType, remaining int) string {
	switch t {
	case model.BookingTypeHotel:
		return fmt.Sprintf("Only %d room(s) left for these dates", remaining)
	case model.BookingTypeTour:
		return fmt.Sprintf("Only %d seat(s) left on this tour", remaining)
	default:
		return "This car is already booked for these dates"
	}
}

// Get returns a booking to its owner or to an admin. Other users get a
// 404 so booking ids cannot be enumerated.
func (s *BookingService) Get(ctx context.Context, userID uuid.UUID, role model.UserRole, id uuid.UUID) (*model.Booking, error) {
	booking, err := repository.NewBookingRepository(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID && role != model.RoleAdmin {
		return nil, errs.NewNotFoundError("Booking not found", true, nil)
	}
	return booking, nil
}

func (s *BookingService) ListMine(ctx context.Context, userID uuid.UUID, q *model.ListMyBookingsQuery) (*model.PaginatedResponse[model.Booking], error) {
	items, total, err := repository.NewBookingRepository(s.db).List(ctx, model.BookingFilter{
		UserID: &userID,
		Status: q.Status,
	}, q.PaginationQuery)
	if err != nil {
		return nil, err
	}
	return model.NewPaginatedResponse(items, q.PaginationQuery, total), nil
}

func (s *BookingService) List(ctx context.Context, q *model.ListBookingsQuery) (*model.PaginatedResponse[model.Booking], error) {
	f := model.BookingFilter{Status: q.Status, Type: q.Type}
	if q.UserID != "" {
		id, _ := uuid.Parse(q.UserID)
		f.UserID = &id
	}
	f.From, f.To = q.Range()

	items, total, err := repository.NewBookingRepository(s.db).List(ctx, f, q.PaginationQuery)
	if err != nil {
		return nil, err
	}
	return model.NewPaginatedResponse(items, q.PaginationQuery, total), nil
}

// Cancel lets the owner cancel an active booking that has not started yet.
func (s *BookingService) Cancel(ctx context.Context, userID, id uuid.UUID) (*model.Booking, error) {
	return s.transition(ctx, id, model.BookingStatusCancelled, func(b *model.Booking) error {
		if b.UserID != userID {
			return errs.NewNotFoundError("Booking not found", true, nil)
		}
		if b.StartDate.Before(s.today()) {
			return errs.NewBadRequestError("Bookings that already started cannot be cancelled", true, errs.Ptr(errs.CodeInvalidStatusTransition), nil, nil)
		}
		return nil
	})
}

// UpdateStatus moves a booking along the status machine on behalf of an admin.
func (s *BookingService) UpdateStatus(ctx context.Context, req *model.UpdateBookingStatusRequest) (*model.Booking, error) {
	return s.transition(ctx, req.UUID(), req.Status, nil)
}

func (s *BookingService) transition(ctx context.Context, id uuid.UUID, next model.BookingStatus, guard func(*model.Booking) error) (*model.Booking, error) {
	var (
		booking *model.Booking
		user    *model.User
	)
	err := database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		bookings := repository.NewBookingRepository(tx)

		var err error
		booking, err = bookings.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if guard != nil {
			if err := guard(booking); err != nil {
				return err
			}
		}
		if !booking.Status.CanTransitionTo(next) {
			return errs.NewBadRequestError(
				fmt.Sprintf("Cannot change a %s booking to %s", booking.Status, next),
				true, errs.Ptr(errs.CodeInvalidStatusTransition), nil, nil,
			)
		}
		if err := bookings.UpdateStatus(ctx, id, next); err != nil {
			return err
		}
		booking.Status = next

		if _, err := repository.NewNotificationRepository(tx).Create(ctx, statusNotification(booking)); err != nil {
			return err
		}

		user, err = repository.NewUserRepository(tx).GetByID(ctx, booking.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("booking_id", booking.ID.String()).
		Str("status", string(next)).
		Msg("booking status changed")

	data := s.emailData(ctx, user, booking)
	enqueue(ctx, s.jobs, s.logger, func() (*asynq.Task, error) {
		return job.NewBookingStatusTask(user.Email, data)
	})
	return booking, nil
}

// ExpireStale cancels pending bookings older than the pending TTL and
// tells their owners, in-app inside the transaction and by email after it
// commits.
func (s *BookingService) ExpireStale(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.pendingTTL)

	var cancelled []model.Booking
	err := database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		cancelled, err = repository.NewBookingRepository(tx).CancelStalePending(ctx, cutoff)
		if err != nil {
			return err
		}
		notifications := repository.NewNotificationRepository(tx)
		for i := range cancelled {
			n := statusNotification(&cancelled[i])
			n.Message = "Your booking was cancelled because it was not confirmed in time."
			if _, err := notifications.Create(ctx, n); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	users := repository.NewUserRepository(s.db)
	owners := make(map[uuid.UUID]*model.User)
	for i := range cancelled {
		b := &cancelled[i]
		user, ok := owners[b.UserID]
		if !ok {
			user, err = users.GetByID(ctx, b.UserID)
			if err != nil {
				s.logger.Error().
					Err(err).
					Str("booking_id", b.ID.String()).
					Msg("failed to load booking owner, skipping expiry email")
				continue
			}
			owners[b.UserID] = user
		}

		data := s.emailData(ctx, user, b)
		enqueue(ctx, s.jobs, s.logger, func() (*asynq.Task, error) {
			return job.NewBookingStatusTask(user.Email, data)
		})
	}
	return int64(len(cancelled)), nil
}

func statusNotification(b *model.Booking) model.NewNotification {
	msg := fmt.Sprintf("Your booking is now %s.", b.Status)
	if b.ItemName != "" {
		msg = fmt.Sprintf("Your booking for %s is now %s.", b.ItemName, b.Status)
	}
	return model.NewNotification{
		UserID:  b.UserID,
		Type:    model.NotificationTypeBooking,
		Title:   "Booking " + string(b.Status),
		Message: msg,
		Link:    bookingLink(b.ID),
	}
}

func bookingLink(id uuid.UUID) *string {
	link := "/bookings/" + id.String()
	return &link
}

func (s *BookingService) emailData(ctx context.Context, user *model.User, b *model.Booking) email.BookingData {
	data := email.BookingData{
		Name:       user.Name,
		Reference:  b.ID.String(),
		Type:       string(b.Type),
		ItemName:   b.ItemName,
		StartDate:  b.StartDate.Format(time.DateOnly),
		TotalPrice: b.TotalPrice.StringFixed(2),
		Currency:   s.currency(ctx),
		Status:     string(b.Status),
	}
	if b.Type != model.BookingTypeTour {
		data.EndDate = b.EndDate.Format(time.DateOnly)
	}
	return data
}
