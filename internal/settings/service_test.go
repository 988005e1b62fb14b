// AngelaMos | 2026
// service_test.go

package settings_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/settings"
	"github.com/carterperez-dev/cms-blog/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestUpdateAppliesOnlyPresentFields(t *testing.T) {
	repo := testutil.NewSiteSettings()
	store := settings.NewStore(repo, nil, time.Minute)
	ctx := context.Background()

	updated, err := store.Update(ctx, settings.UpdateRequest{
		SiteName:           ptr("Field Notes"),
		MaxCommentsPerPost: ptr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, "Field Notes", updated.SiteName)
	assert.Equal(t, 5, updated.MaxCommentsPerPost)
	assert.Equal(t, 50, updated.MaxReactionsPerPost)
	assert.True(t, updated.AllowRegistration)

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Field Notes", got.SiteName)
}

func TestUpdateRejectsBadValues(t *testing.T) {
	store := settings.NewStore(testutil.NewSiteSettings(), nil, time.Minute)
	ctx := context.Background()

	_, err := store.Update(ctx, settings.UpdateRequest{SiteName: ptr("   ")})
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = store.Update(ctx, settings.UpdateRequest{MaxReactionsPerPost: ptr(0)})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestRegistrationOpen(t *testing.T) {
	store := settings.NewStore(testutil.NewSiteSettings(), nil, time.Minute)
	ctx := context.Background()

	open, err := store.RegistrationOpen(ctx)
	require.NoError(t, err)
	assert.True(t, open)

	_, err = store.Update(ctx, settings.UpdateRequest{AllowRegistration: ptr(false)})
	require.NoError(t, err)

	open, err = store.RegistrationOpen(ctx)
	require.NoError(t, err)
	assert.False(t, open)
}

func TestUnreachableCacheFallsBackToStore(t *testing.T) {
	repo := testutil.NewSiteSettings()
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	store := settings.NewStore(repo, rdb, time.Minute)

	got, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "CMS Blog", got.SiteName)
	assert.Equal(t, 1, repo.Reads)
}

func TestInjectAndCurrent(t *testing.T) {
	got, err := settings.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults(), *got)

	repo := testutil.NewSiteSettings()
	_, err = repo.Service().Update(context.Background(), settings.UpdateRequest{
		MaxCommentsPerPost: ptr(3),
	})
	require.NoError(t, err)

	var seen int
	h := settings.Inject(repo.Service())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current, err := settings.Current(r.Context())
		require.NoError(t, err)
		seen = current.MaxCommentsPerPost
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, 3, seen)
}
