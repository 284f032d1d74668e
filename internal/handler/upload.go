package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/deppfellow/tourism/internal/errs"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/deppfellow/tourism/internal/server"
	"github.com/deppfellow/tourism/internal/service"
	"github.com/labstack/echo/v4"
)

const uploadField = "file"

type UploadHandler struct {
	Handler
	uploads *service.UploadService
}

func NewUploadHandler(s *server.Server, uploads *service.UploadService) *UploadHandler {
	return &UploadHandler{Handler: NewHandler(s), uploads: uploads}
}

// Upload stores the multipart field "file" and returns its public URL.
func (h *UploadHandler) Upload(c echo.Context, _ *model.Empty) (*model.UploadResult, error) {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, errs.NewBadRequestError("Missing file", true, nil,
				[]errs.FieldError{{Field: uploadField, Error: "is required"}}, nil)
		}
		return nil, errs.NewBadRequestError("Invalid multipart form", true, nil, nil, nil)
	}
	if fh.Size > h.uploads.MaxBytes() {
		return nil, errs.NewRequestEntityTooLargeError(
			fmt.Sprintf("File exceeds the %d byte limit", h.uploads.MaxBytes()))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	return h.uploads.Upload(c.Request().Context(), f)
}
