// Package handler is the HTTP layer. Each endpoint binds and validates a
// typed request, calls one service method and writes the result.
package handler

import (
	"github.com/deppfellow/tourism/internal/server"
	"github.com/deppfellow/tourism/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health       *HealthHandler
	OpenAPI      *OpenAPIHandler
	Auth         *AuthHandler
	User         *UserHandler
	Hotel        *HotelHandler
	Car          *CarHandler
	Tour         *TourHandler
	Booking      *BookingHandler
	Notification *NotificationHandler
	Contact      *ContactHandler
	Umrah        *UmrahHandler
	Blog         *BlogHandler
	Setting      *SettingHandler
	Upload       *UploadHandler
	Report       *ReportHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(s),
		OpenAPI:      NewOpenAPIHandler(s),
		Auth:         NewAuthHandler(s, services.Auth),
		User:         NewUserHandler(s, services.User),
		Hotel:        NewHotelHandler(s, services.Hotel, services.Booking),
		Car:          NewCarHandler(s, services.Car, services.Booking),
		Tour:         NewTourHandler(s, services.Tour, services.Booking),
		Booking:      NewBookingHandler(s, services.Booking),
		Notification: NewNotificationHandler(s, services.Notification),
		Contact:      NewContactHandler(s, services.Contact),
		Umrah:        NewUmrahHandler(s, services.Umrah),
		Blog:         NewBlogHandler(s, services.Blog),
		Setting:      NewSettingHandler(s, services.Setting),
		Upload:       NewUploadHandler(s, services.Upload),
		Report:       NewReportHandler(s, services.Report),
	}
}
