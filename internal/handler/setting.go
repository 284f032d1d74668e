package handler

import (
	"github.com/deppfellow/tourism/internal/model"
	"github.com/deppfellow/tourism/internal/server"
	"github.com/deppfellow/tourism/internal/service"
	"github.com/labstack/echo/v4"
)

type SettingHandler struct {
	Handler
	settings *service.SettingService
}

func NewSettingHandler(s *server.Server, settings *service.SettingService) *SettingHandler {
	return &SettingHandler{Handler: NewHandler(s), settings: settings}
}

func (h *SettingHandler) Public(c echo.Context, _ *model.Empty) (map[string]string, error) {
	return h.settings.Public(c.Request().Context())
}

func (h *SettingHandler) List(c echo.Context, _ *model.Empty) ([]model.Setting, error) {
	return h.settings.List(c.Request().Context())
}

func (h *SettingHandler) Update(c echo.Context, req *model.UpdateSettingsRequest) ([]model.Setting, error) {
	return h.settings.Update(c.Request().Context(), req)
}
