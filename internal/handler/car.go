package handler

import (
	"github.com/deppfellow/tourism/internal/middleware"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/deppfellow/tourism/internal/server"
	"github.com/deppfellow/tourism/internal/service"
	"github.com/labstack/echo/v4"
)

// CarHandler serves rental cars. Each record is a single vehicle.
type CarHandler struct {
	Handler
	cars     *service.CarService
	bookings *service.BookingService
}

func NewCarHandler(s *server.Server, cars *service.CarService, bookings *service.BookingService) *CarHandler {
	return &CarHandler{Handler: NewHandler(s), cars: cars, bookings: bookings}
}

func (h *CarHandler) List(c echo.Context, q *model.ListCarsQuery) (*model.PaginatedResponse[model.Car], error) {
	return h.cars.List(c.Request().Context(), q, middleware.IsAdmin(c))
}

func (h *CarHandler) Get(c echo.Context, p *model.IDParam) (*model.Car, error) {
	return h.cars.Get(c.Request().Context(), p.UUID(), middleware.IsAdmin(c))
}

func (h *CarHandler) Availability(c echo.Context, q *model.AvailabilityQuery) (*model.Availability, error) {
	return h.bookings.Availability(c.Request().Context(), model.BookingTypeCar, q)
}

func (h *CarHandler) Create(c echo.Context, req *model.CreateCarRequest) (*model.Car, error) {
	return h.cars.Create(c.Request().Context(), req)
}

func (h *CarHandler) Update(c echo.Context, req *model.UpdateCarRequest) (*model.Car, error) {
	return h.cars.Update(c.Request().Context(), req)
}

func (h *CarHandler) Delete(c echo.Context, p *model.IDParam) error {
	return h.cars.Delete(c.Request().Context(), p.UUID())
}
