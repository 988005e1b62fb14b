// AngelaMos | 2026
// handler.go

package reaction

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/cms-blog/internal/access"
	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/gate"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router, g *gate.Gate) {
	react := g.Require(access.React, "")

	r.With(g.Optional).Get("/posts/{slug}/reactions", h.List)
	r.With(react).Post("/posts/{slug}/reactions", h.Add)
	r.With(react).Delete("/posts/{slug}/reactions", h.Remove)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.List(
		r.Context(),
		gate.PrincipalFrom(r.Context()),
		chi.URLParam(r, "slug"),
	)
	if err != nil {
		core.HandleError(w, err, "post")
		return
	}

	core.OK(w, groups)
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	group, err := h.service.Add(
		r.Context(),
		gate.PrincipalFrom(r.Context()),
		chi.URLParam(r, "slug"),
		req.Emoji,
	)
	if err != nil {
		core.HandleError(w, err, "post")
		return
	}

	core.Created(w, group)
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	shortcode := r.URL.Query().Get("emoji")
	if shortcode == "" {
		core.BadRequest(w, "emoji query parameter is required")
		return
	}

	group, err := h.service.Remove(
		r.Context(),
		gate.PrincipalFrom(r.Context()),
		chi.URLParam(r, "slug"),
		shortcode,
	)
	if err != nil {
		core.HandleError(w, err, "reaction")
		return
	}

	core.OK(w, group)
}
