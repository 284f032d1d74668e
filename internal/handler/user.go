package handler

import (
	"github.com/deppfellow/tourism/internal/middleware"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/deppfellow/tourism/internal/server"
	"github.com/deppfellow/tourism/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Handler
	users *service.UserService
}

func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{Handler: NewHandler(s), users: users}
}

func (h *UserHandler) List(c echo.Context, q *model.ListUsersQuery) (*model.PaginatedResponse[model.User], error) {
	return h.users.List(c.Request().Context(), q)
}

func (h *UserHandler) Get(c echo.Context, p *model.IDParam) (*model.User, error) {
	return h.users.Get(c.Request().Context(), p.UUID())
}

func (h *UserHandler) UpdateRole(c echo.Context, req *model.UpdateUserRoleRequest) (*model.User, error) {
	return h.users.UpdateRole(c.Request().Context(), middleware.GetUserID(c), req)
}

func (h *UserHandler) Delete(c echo.Context, p *model.IDParam) error {
	return h.users.Delete(c.Request().Context(), middleware.GetUserID(c), p.UUID())
}
