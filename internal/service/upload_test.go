package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/deppfellow/tourism/internal/errs"
	"github.com/deppfellow/tourism/internal/lib/storage"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fileStoreFunc func(r io.Reader) (*storage.File, error)

func (f fileStoreFunc) Save(r io.Reader) (*storage.File, error) {
	return f(r)
}

func TestUploadService_Upload(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "too large", err: storage.ErrTooLarge, status: http.StatusRequestEntityTooLarge, code: "REQUEST_ENTITY_TOO_LARGE"},
		{name: "unsupported", err: errors.Join(storage.ErrUnsupportedType, errors.New("text/plain")), status: http.StatusBadRequest, code: errs.CodeUnsupportedMediaType},
		{name: "empty", err: storage.ErrEmpty, status: http.StatusBadRequest, code: "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewUploadService(fileStoreFunc(func(io.Reader) (*storage.File, error) {
				return nil, tt.err
			}), 1024, &nopLogger)

			_, err := s.Upload(context.Background(), strings.NewReader("x"))
			requireHTTPError(t, err, tt.status, tt.code)
		})
	}

	t.Run("stored", func(t *testing.T) {
		s := NewUploadService(fileStoreFunc(func(io.Reader) (*storage.File, error) {
			return &storage.File{URL: "/uploads/2025/03/a.png", Path: "/srv/uploads/2025/03/a.png", Size: 42, ContentType: "image/png"}, nil
		}), 1024, &nopLogger)

		res, err := s.Upload(context.Background(), strings.NewReader("png"))
		require.NoError(t, err)
		assert.Equal(t, &model.UploadResult{URL: "/uploads/2025/03/a.png", Size: 42, ContentType: "image/png"}, res)
	})
}
