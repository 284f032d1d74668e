package handler

import (
	"github.com/deppfellow/tourism/internal/middleware"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/deppfellow/tourism/internal/server"
	"github.com/deppfellow/tourism/internal/service"
	"github.com/labstack/echo/v4"
)

type UmrahHandler struct {
	Handler
	umrah *service.UmrahService
}

func NewUmrahHandler(s *server.Server, umrah *service.UmrahService) *UmrahHandler {
	return &UmrahHandler{Handler: NewHandler(s), umrah: umrah}
}

func (h *UmrahHandler) ListPackages(c echo.Context, q *model.ListUmrahPackagesQuery) (*model.PaginatedResponse[model.UmrahPackage], error) {
	return h.umrah.ListPackages(c.Request().Context(), q, middleware.IsAdmin(c))
}

func (h *UmrahHandler) GetPackage(c echo.Context, p *model.IDParam) (*model.UmrahPackage, error) {
	return h.umrah.GetPackage(c.Request().Context(), p.UUID(), middleware.IsAdmin(c))
}

func (h *UmrahHandler) CreatePackage(c echo.Context, req *model.CreateUmrahPackageRequest) (*model.UmrahPackage, error) {
	return h.umrah.CreatePackage(c.Request().Context(), req)
}

func (h *UmrahHandler) UpdatePackage(c echo.Context, req *model.UpdateUmrahPackageRequest) (*model.UmrahPackage, error) {
	return h.umrah.UpdatePackage(c.Request().Context(), req)
}

func (h *UmrahHandler) DeletePackage(c echo.Context, p *model.IDParam) error {
	return h.umrah.DeletePackage(c.Request().Context(), p.UUID())
}

// CreateRequest is open to guests; signed in callers get the request
// attached to their account.
func (h *UmrahHandler) CreateRequest(c echo.Context, req *model.CreateUmrahRequestRequest) (*model.UmrahRequest, error) {
	return h.umrah.CreateRequest(c.Request().Context(), middleware.OptionalUserID(c), req)
}

func (h *UmrahHandler) ListMyRequests(c echo.Context, q *model.ListUmrahRequestsQuery) (*model.PaginatedResponse[model.UmrahRequest], error) {
	return h.umrah.ListMyRequests(c.Request().Context(), middleware.GetUserID(c), q)
}

func (h *UmrahHandler) ListRequests(c echo.Context, q *model.ListUmrahRequestsQuery) (*model.PaginatedResponse[model.UmrahRequest], error) {
	return h.umrah.ListRequests(c.Request().Context(), q)
}

func (h *UmrahHandler) UpdateRequestStatus(c echo.Context, req *model.UpdateUmrahRequestStatusRequest) (*model.UmrahRequest, error) {
	return h.umrah.UpdateRequestStatus(c.Request().Context(), req)
}
