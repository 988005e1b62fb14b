// AngelaMos | 2026
// access_test.go

package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/cms-blog/internal/access"
)

func TestRolePermissionsTable(t *testing.T) {
	tests := []struct {
		role access.Role
		want []string
	}{
		{
			role: access.RoleAdmin,
			want: []string{
				"comment", "create_post", "delete_post", "edit_post",
				"manage_emojis", "manage_users", "moderate_comments",
				"publish_post", "react", "view_analytics",
			},
		},
		{
			role: access.RoleModerator,
			want: []string{
				"comment", "create_post", "edit_post", "moderate_comments",
				"publish_post", "react", "view_analytics",
			},
		},
		{
			role: access.RoleAuthor,
			want: []string{"comment", "create_post", "edit_post", "publish_post", "react"},
		},
		{
			role: access.RoleUser,
			want: []string{"comment", "react"},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, access.RolePermissions(tt.role).Strings())
		})
	}
}

func TestAuthorCannotDeletePosts(t *testing.T) {
	perms := access.RolePermissions(access.RoleAuthor)
	assert.False(t, access.HasPermission(perms, access.DeletePost))
	assert.True(t, access.HasPermission(perms, access.CreatePost))
}

func TestRolePermissionsReturnsCopy(t *testing.T) {
	a := access.RolePermissions(access.RoleUser)
	a[access.ManageUsers] = struct{}{}

	assert.False(t, access.RolePermissions(access.RoleUser).Has(access.ManageUsers))
}

func TestUnknownRoleHasNoPermissions(t *testing.T) {
	assert.Zero(t, access.RolePermissions(access.Role("owner")).Len())
}

func TestParse(t *testing.T) {
	r, err := access.ParseRole(" Moderator ")
	require.NoError(t, err)
	assert.Equal(t, access.RoleModerator, r)

	_, err = access.ParseRole("superuser")
	assert.Error(t, err)

	sc, err := access.ParseScope("ALL")
	require.NoError(t, err)
	assert.Equal(t, access.ScopeAll, sc)

	_, err = access.ParseScope("reactions")
	assert.Error(t, err)

	_, err = access.ParsePermission("fly")
	assert.Error(t, err)
}

func TestParseSet(t *testing.T) {
	s, err := access.ParseSet([]string{"react", "comment", "react"})
	require.NoError(t, err)
	assert.Equal(t, []string{"comment", "react"}, s.Strings())

	_, err = access.ParseSet([]string{"comment", "root"})
	assert.Error(t, err)
}

func TestSetRoundTripsThroughColumn(t *testing.T) {
	in := access.RolePermissions(access.RoleAuthor)

	v, err := in.Value()
	require.NoError(t, err)
	assert.Equal(t, "comment,create_post,edit_post,publish_post,react", v)

	var out access.Set
	require.NoError(t, out.Scan([]byte(v.(string))))
	assert.True(t, in.Equal(out))

	var empty access.Set
	require.NoError(t, empty.Scan(""))
	assert.Zero(t, empty.Len())
}
