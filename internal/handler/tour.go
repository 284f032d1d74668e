package handler

import (
	"github.com/deppfellow/tourism/internal/middleware"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/deppfellow/tourism/internal/server"
	"github.com/deppfellow/tourism/internal/service"
	"github.com/labstack/echo/v4"
)

type TourHandler struct {
	Handler
	tours    *service.TourService
	bookings *service.BookingService
}

func NewTourHandler(s *server.Server, tours *service.TourService, bookings *service.BookingService) *TourHandler {
	return &TourHandler{Handler: NewHandler(s), tours: tours, bookings: bookings}
}

func (h *TourHandler) List(c echo.Context, q *model.ListToursQuery) (*model.PaginatedResponse[model.Tour], error) {
	return h.tours.List(c.Request().Context(), q, middleware.IsAdmin(c))
}

func (h *TourHandler) Get(c echo.Context, p *model.IDParam) (*model.Tour, error) {
	return h.tours.Get(c.Request().Context(), p.UUID(), middleware.IsAdmin(c))
}

// Availability reports the seats left on the tour's fixed dates.
func (h *TourHandler) Availability(c echo.Context, q *model.AvailabilityQuery) (*model.Availability, error) {
	return h.bookings.Availability(c.Request().Context(), model.BookingTypeTour, q)
}

func (h *TourHandler) Create(c echo.Context, req *model.CreateTourRequest) (*model.Tour, error) {
	return h.tours.Create(c.Request().Context(), req)
}

func (h *TourHandler) Update(c echo.Context, req *model.UpdateTourRequest) (*model.Tour, error) {
	return h.tours.Update(c.Request().Context(), req)
}

func (h *TourHandler) Delete(c echo.Context, p *model.IDParam) error {
	return h.tours.Delete(c.Request().Context(), p.UUID())
}
