// AngelaMos | 2026
// service_test.go

package emoji_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/cms-blog/internal/access"
	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/emoji"
	"github.com/carterperez-dev/cms-blog/internal/gate"
	"github.com/carterperez-dev/cms-blog/internal/testutil"
)

func admin() *gate.Principal {
	return &gate.Principal{
		ID:          uuid.NewString(),
		Role:        access.RoleAdmin,
		Permissions: access.RolePermissions(access.RoleAdmin),
		IsActive:    true,
	}
}

func TestPackNamesAreUniquePerAuthor(t *testing.T) {
	svc := emoji.NewService(testutil.NewEmojis())
	ctx := context.Background()
	alice, bob := admin(), admin()

	p, err := svc.CreatePack(ctx, alice, emoji.CreatePackRequest{Name: "Faces"})
	require.NoError(t, err)
	assert.True(t, p.IsPublic)
	assert.True(t, p.IsActive)

	_, err = svc.CreatePack(ctx, alice, emoji.CreatePackRequest{Name: "Faces"})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)

	_, err = svc.CreatePack(ctx, bob, emoji.CreatePackRequest{Name: "Faces"})
	assert.NoError(t, err)

	private := false
	_, err = svc.CreatePack(ctx, bob, emoji.CreatePackRequest{Name: "Secret", IsPublic: &private})
	require.NoError(t, err)

	public := true
	packs, err := svc.ListPacks(ctx, emoji.PackFilter{Public: &public})
	require.NoError(t, err)
	assert.Len(t, packs, 2)

	packs, err = svc.ListPacks(ctx, emoji.PackFilter{AuthorID: bob.ID})
	require.NoError(t, err)
	assert.Len(t, packs, 2)
}

func TestCreateEmoji(t *testing.T) {
	svc := emoji.NewService(testutil.NewEmojis())
	ctx := context.Background()
	pack, err := svc.CreatePack(ctx, admin(), emoji.CreatePackRequest{Name: "Faces"})
	require.NoError(t, err)

	e, err := svc.CreateEmoji(ctx, emoji.CreateEmojiRequest{
		Name: "Smile", Shortcode: ":smile:", URL: "/e/smile.png", PackID: pack.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "smile", e.Shortcode)
	assert.Equal(t, "general", e.Category)

	_, err = svc.CreateEmoji(ctx, emoji.CreateEmojiRequest{
		Name: "Smile again", Shortcode: "smile", URL: "/e/s2.png", PackID: pack.ID,
	})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)

	_, err = svc.CreateEmoji(ctx, emoji.CreateEmojiRequest{
		Name: "Bad", Shortcode: "no-dashes", URL: "/e/x.png", PackID: pack.ID,
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = svc.CreateEmoji(ctx, emoji.CreateEmojiRequest{
		Name: "Lost", Shortcode: "lost", URL: "/e/x.png", PackID: uuid.NewString(),
	})
	assert.ErrorIs(t, err, core.ErrNotFound)

	found, err := svc.Lookup(ctx, ":smile:")
	require.NoError(t, err)
	assert.Equal(t, e.ID, found.ID)

	list, err := svc.ListEmojis(ctx, emoji.EmojiFilter{Search: "SMI"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDeletePackRejectsNonEmpty(t *testing.T) {
	svc := emoji.NewService(testutil.NewEmojis())
	ctx := context.Background()
	pack, err := svc.CreatePack(ctx, admin(), emoji.CreatePackRequest{Name: "Faces"})
	require.NoError(t, err)

	e, err := svc.CreateEmoji(ctx, emoji.CreateEmojiRequest{
		Name: "Wink", Shortcode: "wink", URL: "/e/wink.png", PackID: pack.ID,
	})
	require.NoError(t, err)

	err = svc.DeletePack(ctx, pack.ID)
	assert.ErrorIs(t, err, core.ErrConflictPresent)
	assert.Equal(t, 409, core.ToAppError(err, "emoji pack").StatusCode)

	require.NoError(t, svc.DeleteEmoji(ctx, e.ID))
	require.NoError(t, svc.DeletePack(ctx, pack.ID))
	assert.ErrorIs(t, svc.DeletePack(ctx, pack.ID), core.ErrNotFound)
}
