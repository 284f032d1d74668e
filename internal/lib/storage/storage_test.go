package storage

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG.
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func newLocal(t *testing.T, max int64) *Local {
	t.Helper()
	l := NewLocal(t.TempDir(), "/uploads", max)
	l.now = func() time.Time { return time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC) }
	return l
}

func TestLocal_Save_PNG(t *testing.T) {
	l := newLocal(t, 1<<20)

	f, err := l.Save(bytes.NewReader(pngPixel))
	require.NoError(t, err)

	assert.Equal(t, "image/png", f.ContentType)
	assert.Equal(t, int64(len(pngPixel)), f.Size)
	assert.True(t, strings.HasPrefix(f.URL, "/uploads/2025/03/"))
	assert.True(t, strings.HasSuffix(f.URL, ".png"))

	written, err := os.ReadFile(f.Path)
	require.NoError(t, err)
	assert.Equal(t, pngPixel, written)
}

func TestLocal_Save_PDF(t *testing.T) {
	l := newLocal(t, 1<<20)

	f, err := l.Save(strings.NewReader("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n"))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", f.ContentType)
	assert.True(t, strings.HasSuffix(f.URL, ".pdf"))
}

func TestLocal_Save_RejectsText(t *testing.T) {
	l := newLocal(t, 1<<20)

	_, err := l.Save(strings.NewReader("#!/bin/sh\necho hi\n"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestLocal_Save_RejectsEmpty(t *testing.T) {
	l := newLocal(t, 1<<20)

	_, err := l.Save(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLocal_Save_TooLargeLeavesNothing(t *testing.T) {
	l := newLocal(t, 16)

	_, err := l.Save(bytes.NewReader(pngPixel))
	assert.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(l.Root() + "/2025/03")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
