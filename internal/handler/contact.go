package handler

import (
	"github.com/deppfellow/tourism/internal/model"
	"github.com/deppfellow/tourism/internal/server"
	"github.com/deppfellow/tourism/internal/service"
	"github.com/labstack/echo/v4"
)

type ContactHandler struct {
	Handler
	contact *service.ContactService
}

func NewContactHandler(s *server.Server, contact *service.ContactService) *ContactHandler {
	return &ContactHandler{Handler: NewHandler(s), contact: contact}
}

func (h *ContactHandler) Submit(c echo.Context, req *model.CreateContactRequest) (*model.ContactForm, error) {
	return h.contact.Submit(c.Request().Context(), req)
}

func (h *ContactHandler) List(c echo.Context, q *model.ListContactQuery) (*model.PaginatedResponse[model.ContactForm], error) {
	return h.contact.List(c.Request().Context(), q)
}

func (h *ContactHandler) UpdateStatus(c echo.Context, req *model.UpdateContactRequest) (*model.ContactForm, error) {
	return h.contact.UpdateStatus(c.Request().Context(), req)
}

func (h *ContactHandler) Delete(c echo.Context, p *model.IDParam) error {
	return h.contact.Delete(c.Request().Context(), p.UUID())
}
