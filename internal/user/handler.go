// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"net/http"
	"strconv"

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticated func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		r.Use(authenticated)

		r.Get("/me", h.GetMe)
		r.Put("/me", h.UpdateMe)
	})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	principal := gate.PrincipalFrom(r.Context())

	account, err := h.service.GetAccount(r.Context(), principal.ID)
	if err != nil {
		core.HandleError(w, err, "user")
		return
	}

	core.OK(w, ToAccountResponse(account))
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	principal := gate.PrincipalFrom(r.Context())

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	account, err := h.service.UpdateProfile(r.Context(), principal.ID, req)
	if err != nil {
		core.HandleError(w, err, "user")
		return
	}

	core.OK(w, ToAccountResponse(account))
}

// RegisterAdminRoutes expects r to be already guarded by manage_users.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/users", h.ListAccounts)
	r.Get("/users/{userID}", h.GetAccount)
	r.Put("/users/{userID}/role", h.ChangeRole)
	r.Put("/users/{userID}/permissions", h.OverridePermissions)
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Search:   q.Get("search"),
		Role:     q.Get("role"),
		Status:   q.Get("status"),
	}
	filter.Normalize()

	accounts, total, err := h.service.ListAccounts(r.Context(), filter)
	if err != nil {
		core.HandleError(w, err, "user")
		return
	}

	core.Paginated(w, accounts, filter.Page, filter.PageSize, total)
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.service.GetAccount(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		core.HandleError(w, err, "user")
		return
	}

	core.OK(w, ToAccountResponse(account))
}

func (h *Handler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	account, err := h.service.ChangeRole(r.Context(), chi.URLParam(r, "userID"), req.Role)
	if err != nil {
		core.HandleError(w, err, "user")
		return
	}

	core.OK(w, ToAccountResponse(account))
}

func (h *Handler) OverridePermissions(w http.ResponseWriter, r *http.Request) {
	var req UpdatePermissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	account, err := h.service.OverridePermissions(
		r.Context(),
		chi.URLParam(r, "userID"),
		req.Permissions,
	)
	if err != nil {
		core.HandleError(w, err, "user")
		return
	}

	core.OK(w, ToAccountResponse(account))
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
