// AngelaMos | 2026
// service_test.go

package moderation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/cms-blog/internal/access"
	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/moderation"
	"github.com/carterperez-dev/cms-blog/internal/testutil"
)

type clock struct{ t time.Time }

func newClock() *clock {
	return &clock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time { return c.t }

func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type ledgerFixture struct {
	svc      *moderation.Service
	accounts *testutil.Accounts
	clock    *clock
	admin    string
	target   string
}

func newLedger(t *testing.T) *ledgerFixture {
	t.Helper()
	accounts := testutil.NewAccounts()
	c := newClock()
	return &ledgerFixture{
		svc:      moderation.NewService(testutil.NewMutes(), accounts, moderation.WithClock(c.Now)),
		accounts: accounts,
		clock:    c,
		admin:    accounts.Seed("admin", access.RoleAdmin).ID,
		target:   accounts.Seed("target", access.RoleAuthor).ID,
	}
}

func (f *ledgerFixture) mute(t *testing.T, scope string, minutes int) *moderation.Mute {
	t.Helper()
	m, err := f.svc.IssueMute(context.Background(), moderation.IssueMuteInput{
		TargetID:        f.target,
		ActorID:         f.admin,
		Scope:           scope,
		Reason:          "spam",
		DurationMinutes: minutes,
	})
	require.NoError(t, err)
	return m
}

func TestIsRestrictedTruthTable(t *testing.T) {
	scopes := []access.Scope{access.ScopeComment, access.ScopePost, access.ScopeAll}

	tests := []struct {
		muteScope string
		want      map[access.Scope]bool
	}{
		{"comment", map[access.Scope]bool{access.ScopeComment: true, access.ScopePost: false, access.ScopeAll: false}},
		{"post", map[access.Scope]bool{access.ScopeComment: false, access.ScopePost: true, access.ScopeAll: false}},
		{"all", map[access.Scope]bool{access.ScopeComment: true, access.ScopePost: true, access.ScopeAll: true}},
	}

	for _, tt := range tests {
		t.Run(tt.muteScope, func(t *testing.T) {
			f := newLedger(t)
			f.mute(t, tt.muteScope, 60)

			for _, s := range scopes {
				got, err := f.svc.IsRestricted(context.Background(), f.target, s)
				require.NoError(t, err)
				assert.Equal(t, tt.want[s], got, "checking %s", s)
			}
		})
	}
}

func TestMuteExpiresWithoutRevoke(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()
	m := f.mute(t, "comment", 60)

	assert.Equal(t, f.clock.Now().Add(time.Hour), m.ExpiresAt)

	restricted, err := f.svc.IsRestricted(ctx, f.target, access.ScopeComment)
	require.NoError(t, err)
	assert.True(t, restricted)

	f.clock.Advance(60 * time.Minute)
	restricted, err = f.svc.IsRestricted(ctx, f.target, access.ScopeComment)
	require.NoError(t, err)
	assert.False(t, restricted, "expiry is exclusive at expires_at")

	all, err := f.svc.ListMutes(ctx, f.target)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Active, "expiry does not rewrite the ledger")
}

func TestRevokeMute(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()
	m := f.mute(t, "all", 30)

	err := f.svc.RevokeMute(ctx, f.admin, m.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)

	err = f.svc.RevokeMute(ctx, f.target, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, f.svc.RevokeMute(ctx, f.target, m.ID))

	restricted, err := f.svc.IsRestricted(ctx, f.target, access.ScopePost)
	require.NoError(t, err)
	assert.False(t, restricted)

	active, err := f.svc.ActiveMutes(ctx, f.target)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestOverlappingMutesExpireIndependently(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()
	f.mute(t, "post", 10)
	f.mute(t, "post", 120)

	f.clock.Advance(30 * time.Minute)
	restricted, err := f.svc.IsRestricted(ctx, f.target, access.ScopePost)
	require.NoError(t, err)
	assert.True(t, restricted)

	active, err := f.svc.ActiveMutes(ctx, f.target)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestIssueMuteValidation(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   moderation.IssueMuteInput
		want error
	}{
		{"bad scope", moderation.IssueMuteInput{TargetID: f.target, Scope: "react", Reason: "x", DurationMinutes: 5}, core.ErrInvalidInput},
		{"no reason", moderation.IssueMuteInput{TargetID: f.target, Scope: "post", DurationMinutes: 5}, core.ErrInvalidInput},
		{"no duration", moderation.IssueMuteInput{TargetID: f.target, Scope: "post", Reason: "x"}, core.ErrInvalidInput},
		{"duration past the cap", moderation.IssueMuteInput{TargetID: f.target, Scope: "all", Reason: "x", DurationMinutes: 200_000_000}, core.ErrInvalidInput},
		{"unknown target", moderation.IssueMuteInput{TargetID: "nobody", Scope: "post", Reason: "x", DurationMinutes: 5}, core.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.ActorID = f.admin
			_, err := f.svc.IssueMute(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBanDeactivatesAndUnbanRestores(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()

	status, err := f.svc.Ban(ctx, f.target, f.admin, "")
	require.NoError(t, err)
	assert.Equal(t, moderation.DefaultBanReason, status.BanReason)

	acct, err := f.accounts.GetByID(ctx, f.target)
	require.NoError(t, err)
	assert.True(t, acct.IsBanned)
	assert.False(t, acct.IsActive)
	require.NotNil(t, acct.BannedBy)
	assert.Equal(t, f.admin, *acct.BannedBy)
	require.NotNil(t, acct.BannedAt)
	assert.Equal(t, f.clock.Now(), *acct.BannedAt)

	_, err = f.svc.Unban(ctx, f.target)
	require.NoError(t, err)

	acct, err = f.accounts.GetByID(ctx, f.target)
	require.NoError(t, err)
	assert.False(t, acct.IsBanned)
	assert.True(t, acct.IsActive)
	assert.Nil(t, acct.BanReason)
}

func TestBanAndDeactivateGuards(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()

	_, err := f.svc.Ban(ctx, f.admin, f.admin, "self")
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = f.svc.Ban(ctx, "ghost", f.admin, "x")
	assert.ErrorIs(t, err, core.ErrNotFound)

	assert.ErrorIs(t, f.svc.Deactivate(ctx, f.admin, f.admin), core.ErrInvalidInput)

	require.NoError(t, f.svc.Deactivate(ctx, f.target, f.admin))
	acct, err := f.accounts.GetByID(ctx, f.target)
	require.NoError(t, err)
	assert.False(t, acct.IsActive)
	assert.False(t, acct.IsBanned)

	require.NoError(t, f.svc.Activate(ctx, f.target))
	acct, err = f.accounts.GetByID(ctx, f.target)
	require.NoError(t, err)
	assert.True(t, acct.IsActive)
}

func TestActivateRefusesBannedAccount(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()

	_, err := f.svc.Ban(ctx, f.target, f.admin, "spam")
	require.NoError(t, err)

	err = f.svc.Activate(ctx, f.target)
	require.ErrorIs(t, err, core.ErrConflictPresent)
	assert.Equal(t, 409, core.ToAppError(err, "account").StatusCode)

	acct, err := f.accounts.GetByID(ctx, f.target)
	require.NoError(t, err)
	assert.False(t, acct.IsActive)
	assert.True(t, acct.IsBanned)

	assert.ErrorIs(t, f.svc.Activate(ctx, "ghost"), core.ErrNotFound)
}

func TestLongestMuteStillTakesEffect(t *testing.T) {
	f := newLedger(t)
	ctx := context.Background()

	m := f.mute(t, "all", moderation.MaxMuteMinutes)
	assert.True(t, m.ExpiresAt.After(f.clock.Now()))

	restricted, err := f.svc.IsRestricted(ctx, f.target, access.ScopeComment)
	require.NoError(t, err)
	assert.True(t, restricted)

	mutes, err := f.svc.ListMutes(ctx, f.target)
	require.NoError(t, err)
	assert.Len(t, mutes, 1)
}
