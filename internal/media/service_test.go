// AngelaMos | 2026
// service_test.go

package media_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/cms-blog/internal/access"
	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/gate"
	"github.com/carterperez-dev/cms-blog/internal/media"
)

type bucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	fail    error
}

func newBucket() *bucket {
	return &bucket{objects: map[string][]byte{}, types: map[string]string{}}
}

func (b *bucket) Put(_ context.Context, key string, body io.Reader, _ int64, ct string) error {
	if b.fail != nil {
		return b.fail
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = data
	b.types[key] = ct
	return nil
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n0000000000000000")

func author() *gate.Principal {
	return &gate.Principal{
		ID:          "author-1",
		Role:        access.RoleAuthor,
		Permissions: access.RolePermissions(access.RoleAuthor),
		IsActive:    true,
	}
}

func TestUploadStoresUnderAuthorPrefix(t *testing.T) {
	b := newBucket()
	svc := media.NewService(b, "https://cdn.example.com/media/", 1<<20)

	asset, err := svc.Upload(context.Background(), author(), media.Upload{
		Filename:    "cover.png",
		ContentType: "image/png",
		Size:        int64(len(pngHeader)),
		Body:        bytes.NewReader(pngHeader),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(asset.Key, "posts/author-1/"))
	assert.True(t, strings.HasSuffix(asset.Key, ".png"))
	assert.Equal(t, "https://cdn.example.com/media/"+asset.Key, asset.URL)
	assert.Equal(t, media.KindImage, asset.Kind)
	assert.Equal(t, "cover.png", asset.Name)
	assert.Equal(t, pngHeader, b.objects[asset.Key])
	assert.Equal(t, "image/png", b.types[asset.Key])
}

func TestUploadRejections(t *testing.T) {
	svc := media.NewService(newBucket(), "https://cdn.example.com", 16)

	tests := []struct {
		name string
		up   media.Upload
	}{
		{"unsupported type", media.Upload{ContentType: "application/pdf", Size: 4}},
		{"empty file", media.Upload{ContentType: "image/png", Size: 0}},
		{"too large", media.Upload{ContentType: "image/png", Size: 17}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.up.Body = bytes.NewReader(make([]byte, tt.up.Size))
			_, err := svc.Upload(context.Background(), author(), tt.up)
			assert.ErrorIs(t, err, core.ErrInvalidInput)
		})
	}
}

func TestUploadStoreFailureIsInternal(t *testing.T) {
	b := newBucket()
	b.fail = errors.New("connection refused")
	svc := media.NewService(b, "https://cdn.example.com", 1<<20)

	_, err := svc.Upload(context.Background(), author(), media.Upload{
		ContentType: "image/png",
		Size:        int64(len(pngHeader)),
		Body:        bytes.NewReader(pngHeader),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, core.ToAppError(err, "media").StatusCode)
}

func TestHandlerSniffsContentType(t *testing.T) {
	b := newBucket()
	h := media.NewHandler(media.NewService(b, "https://cdn.example.com", 1<<20))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "photo.txt")
	require.NoError(t, err)
	_, err = part.Write(pngHeader)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := chi.NewRouter()
	r.Post("/media", h.Upload)

	req := httptest.NewRequest(http.MethodPost, "/media", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = req.WithContext(gate.WithPrincipal(req.Context(), author()))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, b.objects, 1)
	for _, ct := range b.types {
		assert.Equal(t, "image/png", ct)
	}
}

func TestHandlerRequiresFile(t *testing.T) {
	h := media.NewHandler(media.NewService(newBucket(), "https://cdn.example.com", 1<<20))

	req := httptest.NewRequest(http.MethodPost, "/media", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Upload(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
