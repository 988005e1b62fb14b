// AngelaMos | 2026
// handler.go

package media

import (
	"bufio"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/cms-blog/internal/access"
	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/gate"
)

const multipartOverhead = 1 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router, g *gate.Gate) {
	r.With(g.Require(access.CreatePost, access.ScopePost)).Post("/media", h.Upload)
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.service.MaxBytes()+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			core.BadRequest(w, "file is too large")
			return
		}
		core.BadRequest(w, "file field is required")
		return
	}
	defer file.Close() //nolint:errcheck

	body := bufio.NewReader(file)
	sniff, _ := body.Peek(512) //nolint:errcheck // short files peek less

	asset, err := h.service.Upload(r.Context(), gate.PrincipalFrom(r.Context()), Upload{
		Filename:    header.Filename,
		ContentType: http.DetectContentType(sniff),
		Size:        header.Size,
		Body:        body,
	})
	if err != nil {
		core.HandleError(w, err, "media")
		return
	}

	core.Created(w, asset)
}
