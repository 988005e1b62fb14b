// AngelaMos | 2026
// routes_test.go

package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/cms-blog/internal/access"
	"github.com/carterperez-dev/cms-blog/internal/auth"
	"github.com/carterperez-dev/cms-blog/internal/comment"
	"github.com/carterperez-dev/cms-blog/internal/emoji"
	"github.com/carterperez-dev/cms-blog/internal/gate"
	"github.com/carterperez-dev/cms-blog/internal/moderation"
	"github.com/carterperez-dev/cms-blog/internal/post"
	"github.com/carterperez-dev/cms-blog/internal/reaction"
	"github.com/carterperez-dev/cms-blog/internal/server"
	"github.com/carterperez-dev/cms-blog/internal/settings"
	"github.com/carterperez-dev/cms-blog/internal/testutil"
	"github.com/carterperez-dev/cms-blog/internal/user"
)

type site struct {
	t        *testing.T
	router   *chi.Mux
	jwt      *auth.JWTManager
	accounts *testutil.Accounts
	now      time.Time
}

func newSite(t *testing.T) *site {
	t.Helper()

	s := &site{
		t:        t,
		router:   chi.NewRouter(),
		jwt:      testutil.NewJWTManager(t),
		accounts: testutil.NewAccounts(),
		now:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	ledger := moderation.NewService(testutil.NewMutes(), s.accounts,
		moderation.WithClock(func() time.Time { return s.now }))
	users := user.NewService(s.accounts, ledger)
	siteSettings := settings.NewStore(testutil.NewSiteSettings(), nil, 0)

	posts := post.NewService(testutil.NewPosts())
	emojiStore := testutil.NewEmojis()
	emojis := emoji.NewService(emojiStore)

	g := gate.New(s.jwt, users, ledger)

	server.API{
		Gate:         g,
		Settings:     siteSettings,
		Auth:         auth.NewHandler(auth.NewService(users, s.jwt, siteSettings)),
		Users:        user.NewHandler(users),
		Moderation:   moderation.NewHandler(ledger),
		Posts:        post.NewHandler(posts),
		Comments:     comment.NewHandler(comment.NewService(testutil.NewComments(), posts)),
		Reactions:    reaction.NewHandler(reaction.NewService(testutil.NewReactions(emojiStore, s.accounts), posts, emojis)),
		Emojis:       emoji.NewHandler(emojis),
		SiteSettings: settings.NewHandler(siteSettings),
	}.Mount(s.router)

	return s
}

func (s *site) seed(name string, role access.Role) (id, token string) {
	s.t.Helper()
	a := s.accounts.Seed(name, role)
	tok, _, err := s.jwt.IssueToken(a.ID, string(role))
	require.NoError(s.t, err)
	return a.ID, tok
}

func (s *site) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}

	r := httptest.NewRequest(method, path, &buf)
	r.Header.Set("Content-Type", "application/json")
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, r)
	return w
}

func data[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	return envelope.Data
}

func TestRegisteredUserNeedsPromotionToPost(t *testing.T) {
	s := newSite(t)
	_, admin := s.seed("admin", access.RoleAdmin)

	w := s.do(http.MethodPost, "/v1/auth/register", "", auth.RegisterRequest{
		Username: "newbie",
		Email:    "newbie@example.com",
		Password: "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	registered := data[auth.AuthResponse](t, w)
	assert.Equal(t, "user", registered.Account.Role)
	assert.ElementsMatch(t, []string{"comment", "react"}, registered.Account.Permissions)
	token := registered.Token.AccessToken

	newPost := post.CreatePostRequest{Title: "My First Post", Content: "hello"}

	w = s.do(http.MethodPost, "/v1/posts", token, newPost)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPut, "/v1/admin/users/"+registered.Account.ID+"/role", admin,
		user.UpdateRoleRequest{Role: "author"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/v1/posts", token, newPost)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := data[post.PostResponse](t, w)
	assert.Equal(t, "my-first-post", created.Slug)
	assert.Equal(t, "draft", created.Status)
}

func TestCommentMuteExpires(t *testing.T) {
	s := newSite(t)
	_, admin := s.seed("admin", access.RoleAdmin)
	_, author := s.seed("writer", access.RoleAuthor)
	readerID, reader := s.seed("reader", access.RoleUser)

	w := s.do(http.MethodPost, "/v1/posts", author, post.CreatePostRequest{
		Title:   "Open thread",
		Content: "talk to me",
		Status:  "published",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	slug := data[post.PostResponse](t, w).Slug

	w = s.do(http.MethodPost, "/v1/admin/users/"+readerID+"/mutes", admin,
		moderation.IssueMuteRequest{Scope: "comment", Reason: "spam", Duration: 60})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	say := comment.CreateCommentRequest{Content: "first!"}

	w = s.do(http.MethodPost, "/v1/posts/"+slug+"/comments", reader, say)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/v1/posts/"+slug+"/reactions", reader,
		reaction.AddReactionRequest{Emoji: "smile"})
	assert.Equal(t, http.StatusNotFound, w.Code, "comment mute must not block reactions")

	s.now = s.now.Add(61 * time.Minute)

	w = s.do(http.MethodPost, "/v1/posts/"+slug+"/comments", reader, say)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestReactionConflictThenRemove(t *testing.T) {
	s := newSite(t)
	_, admin := s.seed("admin", access.RoleAdmin)
	_, reader := s.seed("reader", access.RoleUser)

	w := s.do(http.MethodPost, "/v1/emoji-packs", admin, emoji.CreatePackRequest{Name: "basics"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	pack := data[emoji.PackResponse](t, w)

	w = s.do(http.MethodPost, "/v1/emojis", admin, emoji.CreateEmojiRequest{
		Name:      "Smile",
		Shortcode: "smile",
		URL:       "https://cdn.example.com/smile.png",
		PackID:    pack.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/v1/posts", admin, post.CreatePostRequest{
		Title:   "Launch",
		Content: "we are live",
		Status:  "published",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	path := "/v1/posts/" + data[post.PostResponse](t, w).Slug + "/reactions"

	w = s.do(http.MethodPost, path, reader, reaction.AddReactionRequest{Emoji: ":smile:"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 1, data[reaction.Group](t, w).Count)

	w = s.do(http.MethodPost, path, reader, reaction.AddReactionRequest{Emoji: ":smile:"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodDelete, path+"?emoji=:smile:", reader, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 0, data[reaction.Group](t, w).Count)

	w = s.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, data[[]reaction.Group](t, w))
}

func TestBanLocksOutIssuedToken(t *testing.T) {
	s := newSite(t)
	_, admin := s.seed("admin", access.RoleAdmin)
	readerID, reader := s.seed("reader", access.RoleUser)

	w := s.do(http.MethodGet, "/v1/users/me", reader, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/v1/admin/users/"+readerID+"/ban", admin,
		moderation.BanRequest{Reason: "abuse"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/v1/users/me", reader, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/v1/admin/users/"+readerID+"/unban", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/v1/users/me", reader, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRoutesNeedTheirPermission(t *testing.T) {
	s := newSite(t)
	_, moderator := s.seed("mod", access.RoleModerator)

	w := s.do(http.MethodGet, "/v1/admin/comments", moderator, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/v1/admin/users", moderator, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPut, "/v1/admin/settings", moderator, settings.UpdateRequest{})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/v1/settings", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
