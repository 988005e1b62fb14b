// AngelaMos | 2026
// service_test.go

package reaction_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/cms-blog/internal/access"
	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/emoji"
	"github.com/carterperez-dev/cms-blog/internal/gate"
	"github.com/carterperez-dev/cms-blog/internal/post"
	"github.com/carterperez-dev/cms-blog/internal/reaction"
	"github.com/carterperez-dev/cms-blog/internal/settings"
	"github.com/carterperez-dev/cms-blog/internal/testutil"
)

type fixture struct {
	svc       *reaction.Service
	reactions *testutil.Reactions
	accounts  *testutil.Accounts
	posts     *post.Service
	author    *gate.Principal
	live      *post.Post
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	accounts := testutil.NewAccounts()
	emojiStore := testutil.NewEmojis()
	emojis := emoji.NewService(emojiStore)
	posts := post.NewService(testutil.NewPosts())
	reactions := testutil.NewReactions(emojiStore, accounts)

	admin := seed(accounts, "admin", access.RoleAdmin)
	pack, err := emojis.CreatePack(ctx, admin, emoji.CreatePackRequest{Name: "basics"})
	require.NoError(t, err)
	for _, code := range []string{"smile", "heart"} {
		_, err := emojis.CreateEmoji(ctx, emoji.CreateEmojiRequest{
			Name:      code,
			Shortcode: code,
			URL:       "https://cdn.example.com/" + code + ".png",
			PackID:    pack.ID,
		})
		require.NoError(t, err)
	}

	f := &fixture{
		svc:       reaction.NewService(reactions, posts, emojis),
		reactions: reactions,
		accounts:  accounts,
		posts:     posts,
		author:    seed(accounts, "writer", access.RoleAuthor),
	}

	live, err := posts.Create(ctx, f.author, post.CreatePostRequest{
		Title:   "Reactable",
		Content: "body",
		Status:  "published",
	})
	require.NoError(t, err)
	f.live = live
	return f
}

func seed(accounts *testutil.Accounts, name string, role access.Role) *gate.Principal {
	a := accounts.Seed(name, role)
	return &gate.Principal{
		ID:          a.ID,
		Username:    a.Username,
		Role:        a.Role,
		Permissions: a.Permissions,
		IsActive:    true,
	}
}

func TestAddRemoveRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reader := seed(f.accounts, "reader", access.RoleUser)

	g, err := f.svc.Add(ctx, reader, f.live.Slug, ":smile:")
	require.NoError(t, err)
	assert.Equal(t, "smile", g.Emoji)
	assert.Equal(t, 1, g.Count)
	require.Len(t, g.Users, 1)
	assert.Equal(t, reader.ID, g.Users[0].ID)
	assert.Equal(t, "reader", g.Users[0].Username)

	_, err = f.svc.Add(ctx, reader, f.live.Slug, "smile")
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
	assert.Equal(t, 409, core.ToAppError(err, "reaction").StatusCode)

	g, err = f.svc.Remove(ctx, reader, f.live.Slug, ":smile:")
	require.NoError(t, err)
	assert.Equal(t, 0, g.Count)
	assert.Empty(t, g.Users)
	assert.Zero(t, f.reactions.Count())

	_, err = f.svc.Remove(ctx, reader, f.live.Slug, ":smile:")
	assert.ErrorIs(t, err, core.ErrNotFound)

	g, err = f.svc.Add(ctx, reader, f.live.Slug, ":smile:")
	require.NoError(t, err)
	assert.Equal(t, 1, g.Count)
}

func TestDifferentEmojisAreIndependent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reader := seed(f.accounts, "reader", access.RoleUser)
	other := seed(f.accounts, "other", access.RoleUser)

	_, err := f.svc.Add(ctx, reader, f.live.Slug, "smile")
	require.NoError(t, err)
	_, err = f.svc.Add(ctx, reader, f.live.Slug, "heart")
	require.NoError(t, err)
	g, err := f.svc.Add(ctx, other, f.live.Slug, "smile")
	require.NoError(t, err)
	assert.Equal(t, 2, g.Count)

	groups, err := f.svc.List(ctx, nil, f.live.Slug)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "smile", groups[0].Emoji)
	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, "heart", groups[1].Emoji)
	assert.Equal(t, 1, groups[1].Count)
	assert.Equal(t, "https://cdn.example.com/heart.png", groups[1].URL)
}

func TestUnknownEmojiAndPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reader := seed(f.accounts, "reader", access.RoleUser)

	_, err := f.svc.Add(ctx, reader, f.live.Slug, ":nope:")
	require.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, "emoji not found", core.ToAppError(err, "post").Message)

	_, err = f.svc.Add(ctx, reader, "missing-post", ":smile:")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = f.svc.Add(ctx, reader, f.live.Slug, "::")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestDraftPostsHideReactions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reader := seed(f.accounts, "reader", access.RoleUser)

	draft, err := f.posts.Create(ctx, f.author, post.CreatePostRequest{
		Title:   "Unfinished",
		Content: "wip",
	})
	require.NoError(t, err)

	_, err = f.svc.Add(ctx, reader, draft.Slug, "smile")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = f.svc.List(ctx, nil, draft.Slug)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = f.svc.Add(ctx, f.author, draft.Slug, "smile")
	assert.NoError(t, err)
}

func TestReactionCapFromSettings(t *testing.T) {
	f := newFixture(t)
	store := testutil.NewSiteSettings()
	limit := 1
	_, err := store.Service().Update(context.Background(), settings.UpdateRequest{
		MaxReactionsPerPost: &limit,
	})
	require.NoError(t, err)
	ctx := settings.WithService(context.Background(), store.Service())

	first := seed(f.accounts, "first", access.RoleUser)
	second := seed(f.accounts, "second", access.RoleUser)

	_, err = f.svc.Add(ctx, first, f.live.Slug, "smile")
	require.NoError(t, err)

	_, err = f.svc.Add(ctx, second, f.live.Slug, "smile")
	require.ErrorIs(t, err, core.ErrLimitReached)
	assert.Equal(t, 400, core.ToAppError(err, "post").StatusCode)
	assert.Equal(t, 1, f.reactions.Count())
}
