package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/deppfellow/tourism/internal/errs"
	"github.com/deppfellow/tourism/internal/lib/storage"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/rs/zerolog"
)

type FileStore interface {
	Save(r io.Reader) (*storage.File, error)
}

type UploadService struct {
	files    FileStore
	maxBytes int64
	logger   *zerolog.Logger
}

func NewUploadService(files FileStore, maxBytes int64, logger *zerolog.Logger) *UploadService {
	return &UploadService{files: files, maxBytes: maxBytes, logger: logger}
}

func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

func (s *UploadService) Upload(ctx context.Context, r io.Reader) (*model.UploadResult, error) {
	f, err := s.files.Save(r)
	switch {
	case errors.Is(err, storage.ErrTooLarge):
		return nil, errs.NewRequestEntityTooLargeError(fmt.Sprintf("File exceeds %d bytes", s.maxBytes))
	case errors.Is(err, storage.ErrUnsupportedType):
		return nil, errs.NewBadRequestError(
			"Unsupported file type, allowed: "+allowedTypes(), true, errs.Ptr(errs.CodeUnsupportedMediaType), nil, nil)
	case errors.Is(err, storage.ErrEmpty):
		return nil, errs.NewBadRequestError("File is empty", true, nil, nil, nil)
	case err != nil:
		return nil, err
	}

	s.logger.Info().Str("url", f.URL).Int64("size", f.Size).Str("content_type", f.ContentType).Msg("file uploaded")
	return &model.UploadResult{URL: f.URL, Size: f.Size, ContentType: f.ContentType}, nil
}

func allowedTypes() string {
	types := make([]string, 0, len(storage.AllowedTypes))
	for t := range storage.AllowedTypes {
		types = append(types, t)
	}
	slices.Sort(types)
	return strings.Join(types, ", ")
}
