// AngelaMos | 2026
// service.go

// Package media accepts post images and videos and stores them in an
// S3-compatible bucket. Posts keep only the returned URLs.
package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/gate"
)

const (
	KindImage = "image"
	KindVideo = "video"
)

var allowedTypes = map[string]struct {
	kind string
	ext  string
}{
	"image/jpeg": {KindImage, ".jpg"},
	"image/png":  {KindImage, ".png"},
	"image/gif":  {KindImage, ".gif"},
	"image/webp": {KindImage, ".webp"},
	"video/mp4":  {KindVideo, ".mp4"},
	"video/webm": {KindVideo, ".webm"},
}

type Asset struct {
	Name        string `json:"name"`
	Key         string `json:"key"`
	URL         string `json:"url"`
	Kind        string `json:"kind"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Service struct {
	store     ObjectStore
	publicURL string
	maxBytes  int64
	now       func() time.Time
}

func NewService(store ObjectStore, publicURL string, maxBytes int64) *Service {
	return &Service{
		store:     store,
		publicURL: strings.TrimRight(publicURL, "/"),
		maxBytes:  maxBytes,
		now:       time.Now,
	}
}

func (s *Service) MaxBytes() int64 {
	return s.maxBytes
}

// Upload stores the file under the uploader's prefix and returns its
// public URL.
func (s *Service) Upload(ctx context.Context, actor *gate.Principal, up Upload) (*Asset, error) {
	contentType := strings.ToLower(strings.TrimSpace(strings.Split(up.ContentType, ";")[0]))
	allowed, ok := allowedTypes[contentType]
	if !ok {
		return nil, fmt.Errorf(
			"upload media: only jpeg, png, gif, webp, mp4 and webm files are accepted: %w",
			core.ErrInvalidInput,
		)
	}

	if up.Size <= 0 {
		return nil, fmt.Errorf("upload media: file is empty: %w", core.ErrInvalidInput)
	}
	if up.Size > s.maxBytes {
		return nil, fmt.Errorf(
			"upload media: file exceeds the %d MB limit: %w",
			s.maxBytes>>20,
			core.ErrInvalidInput,
		)
	}

	key := path.Join(
		"posts",
		actor.ID,
		s.now().UTC().Format("2006/01"),
		uuid.New().String()+allowed.ext,
	)

	if err := s.store.Put(ctx, key, up.Body, up.Size, contentType); err != nil {
		return nil, fmt.Errorf("upload media: %w", err)
	}

	return &Asset{
		Name:        path.Base(up.Filename),
		Key:         key,
		URL:         s.publicURL + "/" + key,
		Kind:        allowed.kind,
		ContentType: contentType,
		Size:        up.Size,
	}, nil
}
