// Package storage keeps uploaded files on the local filesystem.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrTooLarge        = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrEmpty           = errors.New("empty file")
)

// AllowedTypes maps accepted MIME types to the extension files are saved with.
var AllowedTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"image/gif":       ".gif",
	"application/pdf": ".pdf",
}

// sniffLen covers every signature mimetype needs for the allowed types.
const sniffLen = 3072

type File struct {
	URL         string
	Path        string
	Size        int64
	ContentType string
}

type Local struct {
	root      string
	publicURL string
	maxBytes  int64
	now       func() time.Time
}

func NewLocal(root, publicURL string, maxBytes int64) *Local {
	return &Local{
		root:      root,
		publicURL: publicURL,
		maxBytes:  maxBytes,
		now:       time.Now,
	}
}

func (l *Local) Root() string {
	return l.root
}

// Save sniffs the content type of r, then writes it under
// <root>/<yyyy>/<mm>/<uuid><ext>. Nothing is left on disk when it fails.
func (l *Local) Save(r io.Reader) (*File, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if n == 0 {
		return nil, ErrEmpty
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	ext, ok := AllowedTypes[mt.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
	}

	now := l.now().UTC()
	rel := path.Join(fmt.Sprintf("%04d", now.Year()), fmt.Sprintf("%02d", int(now.Month())), uuid.NewString()+ext)
	full := filepath.Join(l.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create upload: %w", err)
	}

	body := io.MultiReader(bytes.NewReader(head), r)
	size, err := io.Copy(f, io.LimitReader(body, l.maxBytes+1))
	closeErr := f.Close()
	switch {
	case err != nil:
		os.Remove(full)
		return nil, fmt.Errorf("write upload: %w", err)
	case closeErr != nil:
		os.Remove(full)
		return nil, fmt.Errorf("write upload: %w", closeErr)
	case size > l.maxBytes:
		os.Remove(full)
		return nil, ErrTooLarge
	}

	return &File{
		URL:         l.publicURL + "/" + rel,
		Path:        full,
		Size:        size,
		ContentType: mt.String(),
	}, nil
}
