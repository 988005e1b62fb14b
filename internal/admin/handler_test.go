// AngelaMos | 2026
// handler_test.go

package admin_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/cms-blog/internal/admin"
)

type counts struct {
	stats *admin.ContentStats
	err   error
}

func (c counts) ContentCounts(context.Context) (*admin.ContentStats, error) {
	if c.err != nil {
		return nil, c.err
	}
	cp := *c.stats
	return &cp, nil
}

type muteCount int

func (m muteCount) CountActiveMutes(context.Context) (int, error) {
	return int(m), nil
}

func get(t *testing.T, h *admin.Handler, path string, out any) int {
	t.Helper()
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	if out != nil && w.Code == http.StatusOK {
		envelope := struct {
			Data json.RawMessage `json:"data"`
		}{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
	return w.Code
}

func TestContentStatsIncludeActiveMutes(t *testing.T) {
	h := admin.NewHandler(admin.HandlerConfig{
		Content: counts{stats: &admin.ContentStats{Accounts: 4, PublishedPosts: 2, PendingComments: 1}},
		Mutes:   muteCount(3),
	})

	var got admin.ContentStats
	require.Equal(t, http.StatusOK, get(t, h, "/stats/content", &got))
	assert.Equal(t, 4, got.Accounts)
	assert.Equal(t, 2, got.PublishedPosts)
	assert.Equal(t, 1, got.PendingComments)
	assert.Equal(t, 3, got.ActiveMutes)
}

func TestContentStatsFailure(t *testing.T) {
	h := admin.NewHandler(admin.HandlerConfig{
		Content: counts{err: errors.New("db down")},
	})
	assert.Equal(t, http.StatusInternalServerError, get(t, h, "/stats/content", nil))
}

func TestSystemStatsReportsUnhealthyDependencies(t *testing.T) {
	h := admin.NewHandler(admin.HandlerConfig{
		DBStats:   func() sql.DBStats { return sql.DBStats{OpenConnections: 7} },
		DBPing:    func(context.Context) error { return nil },
		RedisPing: func(context.Context) error { return errors.New("refused") },
		Content:   counts{err: errors.New("db down")},
	})

	var got admin.SystemStatsResponse
	require.Equal(t, http.StatusOK, get(t, h, "/stats", &got))
	assert.True(t, got.Database.Healthy)
	require.NotNil(t, got.Database.Stats)
	assert.Equal(t, 7, got.Database.Stats.OpenConnections)
	assert.False(t, got.Redis.Healthy)
	assert.Nil(t, got.Redis.Stats)
	assert.Nil(t, got.Content)
	assert.NotEmpty(t, got.Runtime.GoVersion)
}
