package handler

import (
	"github.com/deppfellow/tourism/internal/middleware"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/deppfellow/tourism/internal/server"
	"github.com/deppfellow/tourism/internal/service"
	"github.com/labstack/echo/v4"
)

type BlogHandler struct {
	Handler
	blogs *service.BlogService
}

func NewBlogHandler(s *server.Server, blogs *service.BlogService) *BlogHandler {
	return &BlogHandler{Handler: NewHandler(s), blogs: blogs}
}

func (h *BlogHandler) List(c echo.Context, q *model.ListBlogsQuery) (*model.PaginatedResponse[model.Blog], error) {
	return h.blogs.List(c.Request().Context(), q, false)
}

func (h *BlogHandler) GetBySlug(c echo.Context, p *model.SlugParam) (*model.Blog, error) {
	return h.blogs.GetBySlug(c.Request().Context(), p.Slug)
}

func (h *BlogHandler) AdminList(c echo.Context, q *model.ListBlogsQuery) (*model.PaginatedResponse[model.Blog], error) {
	return h.blogs.List(c.Request().Context(), q, true)
}

func (h *BlogHandler) AdminGet(c echo.Context, p *model.IDParam) (*model.Blog, error) {
	return h.blogs.Get(c.Request().Context(), p.UUID())
}

func (h *BlogHandler) Create(c echo.Context, req *model.CreateBlogRequest) (*model.Blog, error) {
	return h.blogs.Create(c.Request().Context(), middleware.GetUserID(c), req)
}

func (h *BlogHandler) Update(c echo.Context, req *model.UpdateBlogRequest) (*model.Blog, error) {
	return h.blogs.Update(c.Request().Context(), req)
}

func (h *BlogHandler) Delete(c echo.Context, p *model.IDParam) error {
	return h.blogs.Delete(c.Request().Context(), p.UUID())
}
