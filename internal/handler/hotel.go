package handler

import (
	"github.com/deppfellow/tourism/internal/middleware"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/deppfellow/tourism/internal/server"
	"github.com/deppfellow/tourism/internal/service"
	"github.com/labstack/echo/v4"
)

// HotelHandler serves the public catalogue and the admin CRUD. Signed in
// admins also see inactive hotels on the public routes.
type HotelHandler struct {
	Handler
	hotels   *service.HotelService
	bookings *service.BookingService
}

func NewHotelHandler(s *server.Server, hotels *service.HotelService, bookings *service.BookingService) *HotelHandler {
	return &HotelHandler{Handler: NewHandler(s), hotels: hotels, bookings: bookings}
}

func (h *HotelHandler) List(c echo.Context, q *model.ListHotelsQuery) (*model.PaginatedResponse[model.Hotel], error) {
	return h.hotels.List(c.Request().Context(), q, middleware.IsAdmin(c))
}

func (h *HotelHandler) Get(c echo.Context, p *model.IDParam) (*model.Hotel, error) {
	return h.hotels.Get(c.Request().Context(), p.UUID(), middleware.IsAdmin(c))
}

func (h *HotelHandler) Availability(c echo.Context, q *model.AvailabilityQuery) (*model.Availability, error) {
	return h.bookings.Availability(c.Request().Context(), model.BookingTypeHotel, q)
}

func (h *HotelHandler) Create(c echo.Context, req *model.CreateHotelRequest) (*model.Hotel, error) {
	return h.hotels.Create(c.Request().Context(), req)
}

func (h *HotelHandler) Update(c echo.Context, req *model.UpdateHotelRequest) (*model.Hotel, error) {
	return h.hotels.Update(c.Request().Context(), req)
}

func (h *HotelHandler) Delete(c echo.Context, p *model.IDParam) error {
	return h.hotels.Delete(c.Request().Context(), p.UUID())
}
