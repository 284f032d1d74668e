package handler

import (
	"github.com/deppfellow/tourism/internal/middleware"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/deppfellow/tourism/internal/server"
	"github.com/deppfellow/tourism/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	Handler
	bookings *service.BookingService
}

func NewBookingHandler(s *server.Server, bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{Handler: NewHandler(s), bookings: bookings}
}

func (h *BookingHandler) Create(c echo.Context, req *model.CreateBookingRequest) (*model.Booking, error) {
	return h.bookings.Create(c.Request().Context(), middleware.GetUserID(c), req)
}

func (h *BookingHandler) ListMine(c echo.Context, q *model.ListMyBookingsQuery) (*model.PaginatedResponse[model.Booking], error) {
	return h.bookings.ListMine(c.Request().Context(), middleware.GetUserID(c), q)
}

func (h *BookingHandler) Get(c echo.Context, p *model.IDParam) (*model.Booking, error) {
	return h.bookings.Get(c.Request().Context(), middleware.GetUserID(c), middleware.GetUserRole(c), p.UUID())
}

func (h *BookingHandler) Cancel(c echo.Context, p *model.IDParam) (*model.Booking, error) {
	return h.bookings.Cancel(c.Request().Context(), middleware.GetUserID(c), p.UUID())
}

func (h *BookingHandler) List(c echo.Context, q *model.ListBookingsQuery) (*model.PaginatedResponse[model.Booking], error) {
	return h.bookings.List(c.Request().Context(), q)
}

func (h *BookingHandler) UpdateStatus(c echo.Context, req *model.UpdateBookingStatusRequest) (*model.Booking, error) {
	return h.bookings.UpdateStatus(c.Request().Context(), req)
}
