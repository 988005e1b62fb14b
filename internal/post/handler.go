// AngelaMos | 2026
// handler.go

package post

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
	r.With(g.Optional).Get("/posts", h.List)
	r.With(g.Require(access.CreatePost, access.ScopePost)).Post("/posts", h.Create)
	r.With(g.Optional).Get("/posts/{slug}", h.Get)
	r.With(g.Require(access.EditPost, "")).Put("/posts/{slug}", h.Update)
	r.With(g.Require(access.DeletePost, "")).Delete("/posts/{slug}", h.Delete)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Create(r.Context(), gate.PrincipalFrom(r.Context()), req)
	if err != nil {
		core.HandleError(w, err, "post")
		return
	}

	core.Created(w, ToPostResponse(p))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(
		r.Context(),
		gate.PrincipalFrom(r.Context()),
		chi.URLParam(r, "slug"),
	)
	if err != nil {
		core.HandleError(w, err, "post")
		return
	}

	core.OK(w, ToPostResponse(p))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Update(
		r.Context(),
		gate.PrincipalFrom(r.Context()),
		chi.URLParam(r, "slug"),
		req,
	)
	if err != nil {
		core.HandleError(w, err, "post")
		return
	}

	core.OK(w, ToPostResponse(p))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(
		r.Context(),
		gate.PrincipalFrom(r.Context()),
		chi.URLParam(r, "slug"),
	)
	if err != nil {
		core.HandleError(w, err, "post")
		return
	}

	core.NoContent(w)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 10),
		Status:   Status(q.Get("status")),
		Category: q.Get("category"),
		Tag:      q.Get("tag"),
		AuthorID: q.Get("author"),
		Search:   q.Get("search"),
	}
	filter.Normalize()

	posts, total, err := h.service.List(r.Context(), gate.PrincipalFrom(r.Context()), filter)
	if err != nil {
		core.HandleError(w, err, "post")
		return
	}

	core.Paginated(w, ToPostResponseList(posts), filter.Page, filter.PageSize, total)
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
