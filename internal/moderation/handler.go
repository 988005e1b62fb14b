// AngelaMos | 2026
// handler.go

package moderation

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

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

// RegisterRoutes expects r to be already guarded by manage_users.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/users/{userID}/ban", h.Ban)
	r.Post("/users/{userID}/unban", h.Unban)
	r.Post("/users/{userID}/activate", h.Activate)
	r.Post("/users/{userID}/deactivate", h.Deactivate)

	r.Get("/users/{userID}/mutes", h.ListMutes)
	r.Post("/users/{userID}/mutes", h.IssueMute)
	r.Delete("/users/{userID}/mutes/{muteID}", h.RevokeMute)
}

func (h *Handler) IssueMute(w http.ResponseWriter, r *http.Request) {
	var req IssueMuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	mute, err := h.service.IssueMute(r.Context(), IssueMuteInput{
		TargetID:        chi.URLParam(r, "userID"),
		ActorID:         gate.PrincipalFrom(r.Context()).ID,
		Scope:           req.Scope,
		Reason:          req.Reason,
		DurationMinutes: req.Duration,
	})
	if err != nil {
		core.HandleError(w, err, "user")
		return
	}

	core.Created(w, ToMuteResponse(mute, h.service.now()))
}

func (h *Handler) RevokeMute(w http.ResponseWriter, r *http.Request) {
	err := h.service.RevokeMute(
		r.Context(),
		chi.URLParam(r, "userID"),
		chi.URLParam(r, "muteID"),
	)
	if err != nil {
		core.HandleError(w, err, "mute")
		return
	}

	core.NoContent(w)
}

func (h *Handler) ListMutes(w http.ResponseWriter, r *http.Request) {
	mutes, err := h.service.ListMutes(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		core.HandleError(w, err, "user")
		return
	}

	core.OK(w, ToMuteResponseList(mutes, h.service.now()))
}

func (h *Handler) Ban(w http.ResponseWriter, r *http.Request) {
	var req BanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil &&
		!errors.Is(err, io.EOF) {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	status, err := h.service.Ban(
		r.Context(),
		chi.URLParam(r, "userID"),
		gate.PrincipalFrom(r.Context()).ID,
		req.Reason,
	)
	if err != nil {
		core.HandleError(w, err, "user")
		return
	}

	core.OK(w, toBanStatusResponse(status))
}

func (h *Handler) Unban(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Unban(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		core.HandleError(w, err, "user")
		return
	}

	core.OK(w, toBanStatusResponse(status))
}

func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Activate(r.Context(), chi.URLParam(r, "userID")); err != nil {
		core.HandleError(w, err, "user")
		return
	}

	core.NoContent(w)
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	err := h.service.Deactivate(
		r.Context(),
		chi.URLParam(r, "userID"),
		gate.PrincipalFrom(r.Context()).ID,
	)
	if err != nil {
		core.HandleError(w, err, "user")
		return
	}

	core.NoContent(w)
}
