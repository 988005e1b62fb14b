// AngelaMos | 2026
// handler.go

package settings

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/cms-blog/internal/core"
)

type Handler struct {
	service   Service
	validator *validator.Validate
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/settings", h.Get)
}

// RegisterAdminRoutes expects r to be already guarded by manage_users.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Put("/settings", h.Update)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	current, err := h.service.Get(r.Context())
	if err != nil {
		core.HandleError(w, err, "settings")
		return
	}

	core.OK(w, current)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	updated, err := h.service.Update(r.Context(), req)
	if err != nil {
		core.HandleError(w, err, "settings")
		return
	}

	core.OK(w, updated)
}
