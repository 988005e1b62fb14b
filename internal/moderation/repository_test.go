// AngelaMos | 2026
// repository_test.go

package moderation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/cms-blog/internal/access"
)

func TestRestrictionQuery(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		scopes   []access.Scope
		wantIn   string
		wantArgs []any
	}{
		{
			name:     "single scope",
			scopes:   []access.Scope{access.ScopeAll},
			wantIn:   "scope IN ($3)",
			wantArgs: []any{"acct-1", now, "all"},
		},
		{
			name:     "scope plus all",
			scopes:   []access.Scope{access.ScopeComment, access.ScopeAll},
			wantIn:   "scope IN ($3, $4)",
			wantArgs: []any{"acct-1", now, "comment", "all"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := restrictionQuery("acct-1", tt.scopes, now)
			require.NoError(t, err)

			assert.Contains(t, query, "account_id = $1")
			assert.Contains(t, query, "expires_at > $2")
			assert.Contains(t, query, tt.wantIn)
			assert.NotContains(t, query, "?")
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestRestrictionQueryRejectsEmptyScopes(t *testing.T) {
	_, _, err := restrictionQuery("acct-1", nil, time.Now())
	assert.Error(t, err)
}

func TestActiveForAccountsQuery(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	query, args, err := activeForAccountsQuery([]string{"a", "b", "c"}, now)
	require.NoError(t, err)

	assert.Contains(t, query, "account_id IN ($1, $2, $3)")
	assert.Contains(t, query, "expires_at > $4")
	assert.NotContains(t, query, "?")
	assert.Equal(t, []any{"a", "b", "c", now}, args)

	for _, col := range strings.Split(muteColumns, ",") {
		assert.Contains(t, query, strings.TrimSpace(col))
	}
}
