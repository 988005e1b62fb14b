// AngelaMos | 2026
// service_test.go

package post_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/cms-blog/internal/access"
	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/gate"
	"github.com/carterperez-dev/cms-blog/internal/post"
	"github.com/carterperez-dev/cms-blog/internal/testutil"
)

func principal(role access.Role) *gate.Principal {
	return &gate.Principal{
		ID:          uuid.NewString(),
		Username:    string(role),
		Role:        role,
		Permissions: access.RolePermissions(role),
		IsActive:    true,
	}
}

func newPostService() (*post.Service, *testutil.Posts) {
	repo := testutil.NewPosts()
	return post.NewService(repo), repo
}

func create(t *testing.T, svc *post.Service, actor *gate.Principal, title string) *post.Post {
	t.Helper()
	p, err := svc.Create(context.Background(), actor, post.CreatePostRequest{
		Title:   title,
		Content: "Body of " + title,
	})
	require.NoError(t, err)
	return p
}

func TestCreateDefaults(t *testing.T) {
	svc, _ := newPostService()
	author := principal(access.RoleAuthor)

	p := create(t, svc, author, "My First Post")

	assert.Equal(t, "my-first-post", p.Slug)
	assert.Equal(t, post.StatusDraft, p.Status)
	assert.Equal(t, post.DefaultCategory, p.Category)
	assert.Equal(t, "Body of My First Post", p.Excerpt)
	assert.Equal(t, author.ID, p.AuthorID)
	assert.Nil(t, p.PublishedAt)
}

func TestSequentialSlugsGetSuffixes(t *testing.T) {
	svc, _ := newPostService()
	author := principal(access.RoleAuthor)

	first := create(t, svc, author, "Hello World")
	second := create(t, svc, author, "Hello World")
	third := create(t, svc, author, "hello   world!")

	assert.Equal(t, "hello-world", first.Slug)
	assert.Equal(t, "hello-world-1", second.Slug)
	assert.Equal(t, "hello-world-2", third.Slug)
}

func TestCreateValidation(t *testing.T) {
	svc, repo := newPostService()
	author := principal(access.RoleAuthor)
	ctx := context.Background()

	_, err := svc.Create(ctx, author, post.CreatePostRequest{Title: "  ", Content: "x"})
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = svc.Create(ctx, author, post.CreatePostRequest{Title: "T", Content: "x", Status: "live"})
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	assert.Equal(t, 0, repo.Count())
}

func TestPublishStampsOnce(t *testing.T) {
	stamp := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	now := stamp
	svc := post.NewService(testutil.NewPosts(), post.WithClock(func() time.Time { return now }))
	author := principal(access.RoleAuthor)
	ctx := context.Background()

	p := create(t, svc, author, "Launch")

	published := "published"
	p, err := svc.Update(ctx, author, p.Slug, post.UpdatePostRequest{Status: &published})
	require.NoError(t, err)
	require.NotNil(t, p.PublishedAt)
	assert.Equal(t, stamp, *p.PublishedAt)

	now = stamp.Add(48 * time.Hour)
	archived := "archived"
	_, err = svc.Update(ctx, author, p.Slug, post.UpdatePostRequest{Status: &archived})
	require.NoError(t, err)

	p, err = svc.Update(ctx, author, p.Slug, post.UpdatePostRequest{Status: &published})
	require.NoError(t, err)
	assert.Equal(t, stamp, *p.PublishedAt, "published_at is never re-stamped")
}

func TestPublishRequiresPermission(t *testing.T) {
	svc, _ := newPostService()
	ctx := context.Background()

	writer := principal(access.RoleUser)
	writer.Permissions = access.NewSet(access.CreatePost, access.EditPost)

	_, err := svc.Create(ctx, writer, post.CreatePostRequest{
		Title:   "Straight to print",
		Content: "x",
		Status:  "published",
	})
	assert.ErrorIs(t, err, core.ErrForbidden)

	p := create(t, svc, writer, "Draft first")
	published := "published"
	_, err = svc.Update(ctx, writer, p.Slug, post.UpdatePostRequest{Status: &published})
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestUpdateOwnership(t *testing.T) {
	svc, _ := newPostService()
	ctx := context.Background()
	owner := principal(access.RoleAuthor)
	other := principal(access.RoleModerator)
	admin := principal(access.RoleAdmin)

	p := create(t, svc, owner, "Owned")
	title := "Hijacked"

	_, err := svc.Update(ctx, other, p.Slug, post.UpdatePostRequest{Title: &title})
	assert.ErrorIs(t, err, core.ErrForbidden)

	title = "Edited by admin"
	updated, err := svc.Update(ctx, admin, p.Slug, post.UpdatePostRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "edited-by-admin", updated.Slug)
	assert.Equal(t, owner.ID, updated.AuthorID)
}

func TestUpdateRegeneratesSlugOnlyOnTitleChange(t *testing.T) {
	svc, _ := newPostService()
	ctx := context.Background()
	author := principal(access.RoleAuthor)

	create(t, svc, author, "Taken Title")
	p := create(t, svc, author, "Original")

	body := "new body"
	p, err := svc.Update(ctx, author, p.Slug, post.UpdatePostRequest{Content: &body})
	require.NoError(t, err)
	assert.Equal(t, "original", p.Slug)

	same := "Original"
	p, err = svc.Update(ctx, author, p.Slug, post.UpdatePostRequest{Title: &same})
	require.NoError(t, err)
	assert.Equal(t, "original", p.Slug)

	taken := "Taken Title"
	p, err = svc.Update(ctx, author, p.Slug, post.UpdatePostRequest{Title: &taken})
	require.NoError(t, err)
	assert.Equal(t, "taken-title-1", p.Slug)
}

func TestUpdateBlankCategoryFallsBackToDefault(t *testing.T) {
	svc, _ := newPostService()
	ctx := context.Background()
	author := principal(access.RoleAuthor)
	p := create(t, svc, author, "Filed Away")

	news := "news"
	p, err := svc.Update(ctx, author, p.Slug, post.UpdatePostRequest{Category: &news})
	require.NoError(t, err)
	assert.Equal(t, "news", p.Category)

	for _, blank := range []string{"", "   "} {
		p, err = svc.Update(ctx, author, p.Slug, post.UpdatePostRequest{Category: &blank})
		require.NoError(t, err)
		assert.Equal(t, post.DefaultCategory, p.Category)
	}
}

func TestDraftVisibility(t *testing.T) {
	svc, _ := newPostService()
	ctx := context.Background()
	owner := principal(access.RoleAuthor)
	stranger := principal(access.RoleUser)
	admin := principal(access.RoleAdmin)

	p := create(t, svc, owner, "Secret draft")

	_, err := svc.Get(ctx, nil, p.Slug)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.Get(ctx, stranger, p.Slug)
	assert.ErrorIs(t, err, core.ErrNotFound)

	got, err := svc.Get(ctx, owner, p.Slug)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ViewCount)

	got, err = svc.Get(ctx, admin, p.Slug)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ViewCount)
}

func TestDeleteOwnership(t *testing.T) {
	svc, repo := newPostService()
	ctx := context.Background()
	owner := principal(access.RoleAuthor)
	other := principal(access.RoleAdmin)
	other.Role = access.RoleModerator

	p := create(t, svc, owner, "Doomed")

	assert.ErrorIs(t, svc.Delete(ctx, other, p.Slug), core.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, owner, p.Slug))
	assert.Equal(t, 0, repo.Count())
	assert.ErrorIs(t, svc.Delete(ctx, owner, p.Slug), core.ErrNotFound)
}

func TestListRestrictsDrafts(t *testing.T) {
	svc, _ := newPostService()
	ctx := context.Background()
	alice := principal(access.RoleAuthor)
	bob := principal(access.RoleAuthor)
	admin := principal(access.RoleAdmin)

	create(t, svc, alice, "Alice draft")
	create(t, svc, bob, "Bob draft")
	live, err := svc.Create(ctx, bob, post.CreatePostRequest{
		Title: "Bob live", Content: "x", Status: "published",
	})
	require.NoError(t, err)

	posts, total, err := svc.List(ctx, nil, post.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, live.ID, posts[0].ID)

	_, _, err = svc.List(ctx, nil, post.ListFilter{Status: post.StatusDraft})
	assert.ErrorIs(t, err, core.ErrUnauthorized)

	posts, total, err = svc.List(ctx, alice, post.ListFilter{Status: post.StatusDraft})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, alice.ID, posts[0].AuthorID)

	_, total, err = svc.List(ctx, admin, post.ListFilter{Status: post.StatusDraft})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	_, _, err = svc.List(ctx, admin, post.ListFilter{Status: "deleted"})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}
