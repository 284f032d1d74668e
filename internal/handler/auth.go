package handler

import (
	"github.com/deppfellow/tourism/internal/middleware"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/deppfellow/tourism/internal/server"
	"github.com/deppfellow/tourism/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Handler
	auth *service.AuthService
}

func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Handler: NewHandler(s), auth: auth}
}

func (h *AuthHandler) Register(c echo.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	return h.auth.Register(c.Request().Context(), req)
}

func (h *AuthHandler) Login(c echo.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	return h.auth.Login(c.Request().Context(), req)
}

func (h *AuthHandler) Me(c echo.Context, _ *model.Empty) (*model.User, error) {
	return h.auth.Me(c.Request().Context(), middleware.GetUserID(c))
}

func (h *AuthHandler) ChangePassword(c echo.Context, req *model.ChangePasswordRequest) error {
	return h.auth.ChangePassword(c.Request().Context(), middleware.GetUserID(c), req)
}
