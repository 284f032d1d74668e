package handler

import (
	"github.com/deppfellow/tourism/internal/middleware"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/deppfellow/tourism/internal/server"
	"github.com/deppfellow/tourism/internal/service"
	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	Handler
	notifications *service.NotificationService
}

func NewNotificationHandler(s *server.Server, notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{Handler: NewHandler(s), notifications: notifications}
}

func (h *NotificationHandler) List(c echo.Context, q *model.ListNotificationsQuery) (*model.PaginatedResponse[model.Notification], error) {
	return h.notifications.List(c.Request().Context(), middleware.GetUserID(c), q)
}

func (h *NotificationHandler) UnreadCount(c echo.Context, _ *model.Empty) (*model.UnreadCount, error) {
	return h.notifications.UnreadCount(c.Request().Context(), middleware.GetUserID(c))
}

func (h *NotificationHandler) MarkRead(c echo.Context, p *model.IDParam) (*model.Notification, error) {
	return h.notifications.MarkRead(c.Request().Context(), middleware.GetUserID(c), p.UUID())
}

func (h *NotificationHandler) MarkAllRead(c echo.Context, _ *model.Empty) error {
	return h.notifications.MarkAllRead(c.Request().Context(), middleware.GetUserID(c))
}

func (h *NotificationHandler) Delete(c echo.Context, p *model.IDParam) error {
	return h.notifications.Delete(c.Request().Context(), middleware.GetUserID(c), p.UUID())
}

// Broadcast answers 202 once the fan-out task is queued.
func (h *NotificationHandler) Broadcast(c echo.Context, req *model.BroadcastRequest) (*model.BroadcastAccepted, error) {
	return h.notifications.QueueBroadcast(c.Request().Context(), req)
}
