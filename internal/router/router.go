// Package router builds the echo instance: global middleware, system
// routes and the /api/v1 tree.
package router

import (
	"fmt"
	"net/http"

	"github.com/deppfellow/tourism/internal/handler"
	"github.com/deppfellow/tourism/internal/middleware"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/deppfellow/tourism/internal/server"
	"github.com/deppfellow/tourism/internal/service"
	"github.com/labstack/echo/v4"
)

const (
	// multipart framing on top of the largest accepted file
	bodyOverhead = 1 << 20

	contactPerMinute = 5
	contactBurst     = 3
	authPerMinute    = 20
	authBurst        = 10
)

func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s, services.Auth)

	router := echo.New()
	router.HideBanner = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.Metrics(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
		middlewares.Global.BodyLimit(fmt.Sprintf("%dB", services.Upload.MaxBytes()+bodyOverhead)),
	)

	registerSystemRoutes(router, h)
	router.Static("/uploads", s.Config.Storage.UploadDir)

	v1 := router.Group("/api/v1")
	registerPublicRoutes(v1, h, middlewares)
	registerUserRoutes(v1, h, middlewares)
	registerAdminRoutes(v1, h, middlewares)

	// Group middleware also guards the group's catch-all route, so unknown
	// paths under /api/v1 would otherwise answer 401 instead of 404.
	v1.RouteNotFound("", echo.NotFoundHandler)
	v1.RouteNotFound("/*", echo.NotFoundHandler)

	return router
}

func registerPublicRoutes(v1 *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	auth := v1.Group("/auth", m.RateLimit.PerIP("auth", authPerMinute, authBurst))
	auth.POST("/register", handler.Handle(h.Auth.Handler, h.Auth.Register, http.StatusCreated, &model.RegisterRequest{}))
	auth.POST("/login", handler.Handle(h.Auth.Handler, h.Auth.Login, http.StatusOK, &model.LoginRequest{}))

	// Admins see inactive catalogue items on the public routes too.
	public := v1.Group("", m.Auth.OptionalAuth)

	public.GET("/hotels", handler.Handle(h.Hotel.Handler, h.Hotel.List, http.StatusOK, &model.ListHotelsQuery{}))
	public.GET("/hotels/:id", handler.Handle(h.Hotel.Handler, h.Hotel.Get, http.StatusOK, &model.IDParam{}))
	public.GET("/hotels/:id/availability", handler.Handle(h.Hotel.Handler, h.Hotel.Availability, http.StatusOK, &model.AvailabilityQuery{}))

	public.GET("/cars", handler.Handle(h.Car.Handler, h.Car.List, http.StatusOK, &model.ListCarsQuery{}))
	public.GET("/cars/:id", handler.Handle(h.Car.Handler, h.Car.Get, http.StatusOK, &model.IDParam{}))
	public.GET("/cars/:id/availability", handler.Handle(h.Car.Handler, h.Car.Availability, http.StatusOK, &model.AvailabilityQuery{}))

	public.GET("/tours", handler.Handle(h.Tour.Handler, h.Tour.List, http.StatusOK, &model.ListToursQuery{}))
	public.GET("/tours/:id", handler.Handle(h.Tour.Handler, h.Tour.Get, http.StatusOK, &model.IDParam{}))
	public.GET("/tours/:id/availability", handler.Handle(h.Tour.Handler, h.Tour.Availability, http.StatusOK, &model.AvailabilityQuery{}))

	public.GET("/umrah/packages", handler.Handle(h.Umrah.Handler, h.Umrah.ListPackages, http.StatusOK, &model.ListUmrahPackagesQuery{}))
	public.GET("/umrah/packages/:id", handler.Handle(h.Umrah.Handler, h.Umrah.GetPackage, http.StatusOK, &model.IDParam{}))
	public.POST("/umrah/requests", handler.Handle(h.Umrah.Handler, h.Umrah.CreateRequest, http.StatusCreated, &model.CreateUmrahRequestRequest{}))

	public.GET("/blogs", handler.Handle(h.Blog.Handler, h.Blog.List, http.StatusOK, &model.ListBlogsQuery{}))
	public.GET("/blogs/:slug", handler.Handle(h.Blog.Handler, h.Blog.GetBySlug, http.StatusOK, &model.SlugParam{}))

	public.GET("/settings", handler.Handle(h.Setting.Handler, h.Setting.Public, http.StatusOK, &model.Empty{}))

	v1.POST("/contact",
		handler.Handle(h.Contact.Handler, h.Contact.Submit, http.StatusCreated, &model.CreateContactRequest{}),
		m.RateLimit.PerIP("contact", contactPerMinute, contactBurst),
	)
}

func registerUserRoutes(v1 *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	user := v1.Group("", m.Auth.RequireAuth)

	user.GET("/auth/me", handler.Handle(h.Auth.Handler, h.Auth.Me, http.StatusOK, &model.Empty{}))
	user.PUT("/auth/password", handler.HandleNoContent(h.Auth.Handler, h.Auth.ChangePassword, http.StatusNoContent, &model.ChangePasswordRequest{}))

	user.POST("/bookings", handler.Handle(h.Booking.Handler, h.Booking.Create, http.StatusCreated, &model.CreateBookingRequest{}))
	user.GET("/bookings", handler.Handle(h.Booking.Handler, h.Booking.ListMine, http.StatusOK, &model.ListMyBookingsQuery{}))
	user.GET("/bookings/:id", handler.Handle(h.Booking.Handler, h.Booking.Get, http.StatusOK, &model.IDParam{}))
	user.POST("/bookings/:id/cancel", handler.Handle(h.Booking.Handler, h.Booking.Cancel, http.StatusOK, &model.IDParam{}))

	user.GET("/notifications", handler.Handle(h.Notification.Handler, h.Notification.List, http.StatusOK, &model.ListNotificationsQuery{}))
	user.GET("/notifications/unread-count", handler.Handle(h.Notification.Handler, h.Notification.UnreadCount, http.StatusOK, &model.Empty{}))
	user.POST("/notifications/read-all", handler.HandleNoContent(h.Notification.Handler, h.Notification.MarkAllRead, http.StatusNoContent, &model.Empty{}))
	user.POST("/notifications/:id/read", handler.Handle(h.Notification.Handler, h.Notification.MarkRead, http.StatusOK, &model.IDParam{}))
	user.DELETE("/notifications/:id", handler.HandleNoContent(h.Notification.Handler, h.Notification.Delete, http.StatusNoContent, &model.IDParam{}))

	user.GET("/umrah/requests", handler.Handle(h.Umrah.Handler, h.Umrah.ListMyRequests, http.StatusOK, &model.ListUmrahRequestsQuery{}))
}

func registerAdminRoutes(v1 *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	admin := v1.Group("/admin", m.Auth.RequireAuth, m.Auth.RequireRole(model.RoleAdmin))

	admin.GET("/users", handler.Handle(h.User.Handler, h.User.List, http.StatusOK, &model.ListUsersQuery{}))
	admin.GET("/users/:id", handler.Handle(h.User.Handler, h.User.Get, http.StatusOK, &model.IDParam{}))
	admin.PATCH("/users/:id/role", handler.Handle(h.User.Handler, h.User.UpdateRole, http.StatusOK, &model.UpdateUserRoleRequest{}))
	admin.DELETE("/users/:id", handler.HandleNoContent(h.User.Handler, h.User.Delete, http.StatusNoContent, &model.IDParam{}))

	admin.POST("/hotels", handler.Handle(h.Hotel.Handler, h.Hotel.Create, http.StatusCreated, &model.CreateHotelRequest{}))
	admin.PUT("/hotels/:id", handler.Handle(h.Hotel.Handler, h.Hotel.Update, http.StatusOK, &model.UpdateHotelRequest{}))
	admin.DELETE("/hotels/:id", handler.HandleNoContent(h.Hotel.Handler, h.Hotel.Delete, http.StatusNoContent, &model.IDParam{}))

	admin.POST("/cars", handler.Handle(h.Car.Handler, h.Car.Create, http.StatusCreated, &model.CreateCarRequest{}))
	admin.PUT("/cars/:id", handler.Handle(h.Car.Handler, h.Car.Update, http.StatusOK, &model.UpdateCarRequest{}))
	admin.DELETE("/cars/:id", handler.HandleNoContent(h.Car.Handler, h.Car.Delete, http.StatusNoContent, &model.IDParam{}))

	admin.POST("/tours", handler.Handle(h.Tour.Handler, h.Tour.Create, http.StatusCreated, &model.CreateTourRequest{}))
	admin.PUT("/tours/:id", handler.Handle(h.Tour.Handler, h.Tour.Update, http.StatusOK, &model.UpdateTourRequest{}))
	admin.DELETE("/tours/:id", handler.HandleNoContent(h.Tour.Handler, h.Tour.Delete, http.StatusNoContent, &model.IDParam{}))

	admin.GET("/bookings", handler.Handle(h.Booking.Handler, h.Booking.List, http.StatusOK, &model.ListBookingsQuery{}))
	admin.PATCH("/bookings/:id/status", handler.Handle(h.Booking.Handler, h.Booking.UpdateStatus, http.StatusOK, &model.UpdateBookingStatusRequest{}))

	admin.POST("/notifications/broadcast", handler.Handle(h.Notification.Handler, h.Notification.Broadcast, http.StatusAccepted, &model.BroadcastRequest{}))

	admin.GET("/contact", handler.Handle(h.Contact.Handler, h.Contact.List, http.StatusOK, &model.ListContactQuery{}))
	admin.PATCH("/contact/:id", handler.Handle(h.Contact.Handler, h.Contact.UpdateStatus, http.StatusOK, &model.UpdateContactRequest{}))
	admin.DELETE("/contact/:id", handler.HandleNoContent(h.Contact.Handler, h.Contact.Delete, http.StatusNoContent, &model.IDParam{}))

	admin.POST("/umrah/packages", handler.Handle(h.Umrah.Handler, h.Umrah.CreatePackage, http.StatusCreated, &model.CreateUmrahPackageRequest{}))
	admin.PUT("/umrah/packages/:id", handler.Handle(h.Umrah.Handler, h.Umrah.UpdatePackage, http.StatusOK, &model.UpdateUmrahPackageRequest{}))
	admin.DELETE("/umrah/packages/:id", handler.HandleNoContent(h.Umrah.Handler, h.Umrah.DeletePackage, http.StatusNoContent, &model.IDParam{}))
	admin.GET("/umrah/requests", handler.Handle(h.Umrah.Handler, h.Umrah.ListRequests, http.StatusOK, &model.ListUmrahRequestsQuery{}))
	admin.PATCH("/umrah/requests/:id/status", handler.Handle(h.Umrah.Handler, h.Umrah.UpdateRequestStatus, http.StatusOK, &model.UpdateUmrahRequestStatusRequest{}))

	admin.GET("/blogs", handler.Handle(h.Blog.Handler, h.Blog.AdminList, http.StatusOK, &model.ListBlogsQuery{}))
	admin.GET("/blogs/:id", handler.Handle(h.Blog.Handler, h.Blog.AdminGet, http.StatusOK, &model.IDParam{}))
	admin.POST("/blogs", handler.Handle(h.Blog.Handler, h.Blog.Create, http.StatusCreated, &model.CreateBlogRequest{}))
	admin.PUT("/blogs/:id", handler.Handle(h.Blog.Handler, h.Blog.Update, http.StatusOK, &model.UpdateBlogRequest{}))
	admin.DELETE("/blogs/:id", handler.HandleNoContent(h.Blog.Handler, h.Blog.Delete, http.StatusNoContent, &model.IDParam{}))

	admin.GET("/settings", handler.Handle(h.Setting.Handler, h.Setting.List, http.StatusOK, &model.Empty{}))
	admin.PUT("/settings", handler.Handle(h.Setting.Handler, h.Setting.Update, http.StatusOK, &model.UpdateSettingsRequest{}))

	admin.POST("/uploads", handler.Handle(h.Upload.Handler, h.Upload.Upload, http.StatusCreated, &model.Empty{}))

	admin.GET("/reports/revenue", handler.Handle(h.Report.Handler, h.Report.Revenue, http.StatusOK, &model.RevenueQuery{}))
	admin.GET("/reports/revenue.csv", handler.HandleFile(h.Report.Handler, h.Report.RevenueCSV, http.StatusOK, &model.RevenueQuery{}, "revenue.csv", "text/csv"))
	admin.GET("/reports/dashboard", handler.Handle(h.Report.Handler, h.Report.Dashboard, http.StatusOK, &model.Empty{}))
}
