// AngelaMos | 2026
// service_test.go

package user_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/cms-blog/internal/access"
	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/moderation"
	"github.com/carterperez-dev/cms-blog/internal/testutil"
	"github.com/carterperez-dev/cms-blog/internal/user"
)

func newUserService(t *testing.T) (*user.Service, *testutil.Accounts, *moderation.Service) {
	t.Helper()
	accounts := testutil.NewAccounts()
	ledger := moderation.NewService(testutil.NewMutes(), accounts)
	return user.NewService(accounts, ledger), accounts, ledger
}

func TestCreateAssignsUserRole(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	info, err := svc.Create(ctx, "writer", "Writer@Example.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, "user", info.Role)
	assert.Equal(t, "writer@example.com", info.Email)
	assert.ElementsMatch(t, []string{"comment", "react"}, info.Permissions)

	_, err = svc.Create(ctx, "WRITER", "other@example.com", "hash")
	assert.ErrorIs(t, err, core.ErrDuplicateKey)

	_, err = svc.Create(ctx, "other", "writer@EXAMPLE.com", "hash")
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestChangeRoleRecomputesPermissions(t *testing.T) {
	svc, accounts, _ := newUserService(t)
	ctx := context.Background()
	a := accounts.Seed("jane", access.RoleUser)

	_, err := svc.OverridePermissions(ctx, a.ID, []string{"create_post", "view_analytics"})
	require.NoError(t, err)

	got, err := svc.GetAccount(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, access.RoleUser, got.Role, "override leaves role alone")
	assert.ElementsMatch(t, []string{"create_post", "view_analytics"}, got.Permissions.Strings())

	_, err = svc.ChangeRole(ctx, a.ID, "Author")
	require.NoError(t, err)

	got, err = svc.GetAccount(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, access.RoleAuthor, got.Role)
	assert.True(t, got.Permissions.Equal(access.RolePermissions(access.RoleAuthor)))
	assert.False(t, got.Permissions.Has(access.ViewAnalytics))
}

func TestChangeRoleAndOverrideRejectUnknownValues(t *testing.T) {
	svc, accounts, _ := newUserService(t)
	ctx := context.Background()
	a := accounts.Seed("jane", access.RoleUser)

	_, err := svc.ChangeRole(ctx, a.ID, "superuser")
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = svc.OverridePermissions(ctx, a.ID, []string{"create_post", "fly"})
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = svc.ChangeRole(ctx, uuid.NewString(), "admin")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestOverrideWithEmptySetIsAllowed(t *testing.T) {
	svc, accounts, _ := newUserService(t)
	ctx := context.Background()
	a := accounts.Seed("mod", access.RoleModerator)

	updated, err := svc.OverridePermissions(ctx, a.ID, []string{})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Permissions.Len())
	assert.Equal(t, access.RoleModerator, updated.Role)
}

func TestLookupPrincipal(t *testing.T) {
	svc, accounts, ledger := newUserService(t)
	ctx := context.Background()
	admin := accounts.Seed("admin", access.RoleAdmin)
	a := accounts.Seed("jane", access.RoleAuthor)

	p, err := svc.LookupPrincipal(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane", p.Username)
	assert.True(t, p.IsActive)
	assert.True(t, p.Can(access.CreatePost))

	_, err = ledger.Ban(ctx, a.ID, admin.ID, "")
	require.NoError(t, err)

	p, err = svc.LookupPrincipal(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, p.IsBanned)
	assert.False(t, p.IsActive)

	_, err = svc.LookupPrincipal(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svc, accounts, _ := newUserService(t)
	ctx := context.Background()
	accounts.Seed("taken", access.RoleUser)
	a := accounts.Seed("jane", access.RoleUser)

	name := "  janedoe "
	avatar := "https://cdn.example.com/a.png"
	updated, err := svc.UpdateProfile(ctx, a.ID, user.UpdateProfileRequest{
		Username: &name,
		Avatar:   &avatar,
	})
	require.NoError(t, err)
	assert.Equal(t, "janedoe", updated.Username)
	assert.Equal(t, avatar, updated.Avatar)

	taken := "TAKEN"
	_, err = svc.UpdateProfile(ctx, a.ID, user.UpdateProfileRequest{Username: &taken})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestListAccountsIncludesActiveMutes(t *testing.T) {
	svc, accounts, ledger := newUserService(t)
	ctx := context.Background()
	admin := accounts.Seed("admin", access.RoleAdmin)
	a := accounts.Seed("loud", access.RoleUser)
	b := accounts.Seed("quiet", access.RoleUser)

	m, err := ledger.IssueMute(ctx, moderation.IssueMuteInput{
		TargetID:        a.ID,
		ActorID:         admin.ID,
		Scope:           "comment",
		Reason:          "spam",
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	_, err = ledger.Ban(ctx, b.ID, admin.ID, "abuse")
	require.NoError(t, err)

	list, total, err := svc.ListAccounts(ctx, user.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	byName := make(map[string]user.AdminAccountResponse, len(list))
	for _, r := range list {
		byName[r.Username] = r
	}
	require.Len(t, byName["loud"].ActiveMutes, 1)
	assert.Equal(t, m.ID, byName["loud"].ActiveMutes[0].ID)
	assert.Empty(t, byName["quiet"].ActiveMutes)

	banned, total, err := svc.ListAccounts(ctx, user.ListFilter{Status: user.StatusBanned})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, banned, 1)
	assert.Equal(t, "quiet", banned[0].Username)

	_, _, err = svc.ListAccounts(ctx, user.ListFilter{Status: "asleep"})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}
