// AngelaMos | 2026
// handler.go

package comment

import (
	"encoding/json"
	"net/http"
	"strconv"

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
	r.With(g.Optional).Get("/posts/{slug}/comments", h.ListForPost)
	r.With(g.Require(access.Comment, access.ScopeComment)).
		Post("/posts/{slug}/comments", h.Create)
	r.With(g.Authenticated).Post("/comments/{commentID}/like", h.ToggleLike)
}

// RegisterAdminRoutes expects r to be already guarded by moderate_comments.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/comments", h.ListForModeration)
	r.Patch("/comments/{commentID}", h.SetApproval)
	r.Delete("/comments/{commentID}", h.Delete)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.Create(
		r.Context(),
		gate.PrincipalFrom(r.Context()),
		chi.URLParam(r, "slug"),
		req,
	)
	if err != nil {
		core.HandleError(w, err, "post")
		return
	}

	core.Created(w, ToCommentResponse(c))
}

func (h *Handler) ListForPost(w http.ResponseWriter, r *http.Request) {
	page := parseIntQuery(r, "page", 1)
	pageSize := parseIntQuery(r, "page_size", 20)

	threads, total, err := h.service.ListForPost(
		r.Context(),
		gate.PrincipalFrom(r.Context()),
		chi.URLParam(r, "slug"),
		page,
		pageSize,
	)
	if err != nil {
		core.HandleError(w, err, "post")
		return
	}

	out := make([]CommentResponse, 0, len(threads))
	for i := range threads {
		out = append(out, ToThreadResponse(&threads[i]))
	}

	filter := ModerationFilter{Page: page, PageSize: pageSize}
	filter.Normalize()
	core.Paginated(w, out, filter.Page, filter.PageSize, total)
}

func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ToggleLike(
		r.Context(),
		gate.PrincipalFrom(r.Context()),
		chi.URLParam(r, "commentID"),
	)
	if err != nil {
		core.HandleError(w, err, "comment")
		return
	}

	core.OK(w, result)
}

func (h *Handler) ListForModeration(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ModerationFilter{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Search:   q.Get("search"),
		Status:   q.Get("status"),
	}
	filter.Normalize()

	items, total, err := h.service.ListForModeration(r.Context(), filter)
	if err != nil {
		core.HandleError(w, err, "comment")
		return
	}

	out := make([]ModerationResponse, 0, len(items))
	for i := range items {
		out = append(out, ToModerationResponse(&items[i]))
	}

	core.Paginated(w, out, filter.Page, filter.PageSize, total)
}

func (h *Handler) SetApproval(w http.ResponseWriter, r *http.Request) {
	var req ApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.SetApproval(r.Context(), chi.URLParam(r, "commentID"), *req.IsApproved)
	if err != nil {
		core.HandleError(w, err, "comment")
		return
	}

	core.OK(w, ToCommentResponse(c))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.Delete(r.Context(), chi.URLParam(r, "commentID")); err != nil {
		core.HandleError(w, err, "comment")
		return
	}

	core.NoContent(w)
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
