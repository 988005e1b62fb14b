// AngelaMos | 2026
// handler.go

package emoji

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
	manage := g.Require(access.ManageEmojis, "")

	r.Get("/emoji-packs", h.ListPacks)
	r.With(manage).Post("/emoji-packs", h.CreatePack)
	r.With(manage).Delete("/emoji-packs/{packID}", h.DeletePack)

	r.Get("/emojis", h.ListEmojis)
	r.With(manage).Post("/emojis", h.CreateEmoji)
	r.With(manage).Delete("/emojis/{emojiID}", h.DeleteEmoji)
}

func (h *Handler) CreatePack(w http.ResponseWriter, r *http.Request) {
	var req CreatePackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.CreatePack(r.Context(), gate.PrincipalFrom(r.Context()), req)
	if err != nil {
		core.HandleError(w, err, "emoji pack")
		return
	}

	core.Created(w, ToPackResponse(p))
}

func (h *Handler) ListPacks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := PackFilter{AuthorID: q.Get("author")}
	if v := q.Get("public"); v != "" {
		if public, err := strconv.ParseBool(v); err == nil {
			filter.Public = &public
		}
	}

	packs, err := h.service.ListPacks(r.Context(), filter)
	if err != nil {
		core.HandleError(w, err, "emoji pack")
		return
	}

	out := make([]PackResponse, 0, len(packs))
	for i := range packs {
		out = append(out, ToPackResponse(&packs[i]))
	}
	core.OK(w, out)
}

func (h *Handler) DeletePack(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePack(r.Context(), chi.URLParam(r, "packID")); err != nil {
		core.HandleError(w, err, "emoji pack")
		return
	}

	core.NoContent(w)
}

func (h *Handler) CreateEmoji(w http.ResponseWriter, r *http.Request) {
	var req CreateEmojiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	e, err := h.service.CreateEmoji(r.Context(), req)
	if err != nil {
		core.HandleError(w, err, "emoji pack")
		return
	}

	core.Created(w, ToEmojiResponse(e))
}

func (h *Handler) ListEmojis(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	emojis, err := h.service.ListEmojis(r.Context(), EmojiFilter{
		PackID:   q.Get("pack"),
		Category: q.Get("category"),
		Search:   q.Get("search"),
	})
	if err != nil {
		core.HandleError(w, err, "emoji")
		return
	}

	out := make([]EmojiResponse, 0, len(emojis))
	for i := range emojis {
		out = append(out, ToEmojiResponse(&emojis[i]))
	}
	core.OK(w, out)
}

func (h *Handler) DeleteEmoji(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteEmoji(r.Context(), chi.URLParam(r, "emojiID")); err != nil {
		core.HandleError(w, err, "emoji")
		return
	}

	core.NoContent(w)
}
