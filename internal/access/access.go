// AngelaMos | 2026
// access.go

// Package access resolves roles into permission sets. It is the only place
// the role table lives; every other package asks it rather than comparing
// role names.
package access

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleAuthor    Role = "author"
	RoleUser      Role = "user"
)

type Permission string

const (
	CreatePost       Permission = "create_post"
	EditPost         Permission = "edit_post"
	DeletePost       Permission = "delete_post"
	PublishPost      Permission = "publish_post"
	ManageUsers      Permission = "manage_users"
	ManageEmojis     Permission = "manage_emojis"
	ModerateComments Permission = "moderate_comments"
	ViewAnalytics    Permission = "view_analytics"
	Comment          Permission = "comment"
	React            Permission = "react"
)

// Scope is the kind of activity a mute restricts.
type Scope string

const (
	ScopeComment Scope = "comment"
	ScopePost    Scope = "post"
	ScopeAll     Scope = "all"
)

var allPermissions = []Permission{
	CreatePost,
	EditPost,
	DeletePost,
	PublishPost,
	ManageUsers,
	ManageEmojis,
	ModerateComments,
	ViewAnalytics,
	Comment,
	React,
}

var roleTable = map[Role][]Permission{
	RoleAdmin: {
		CreatePost, EditPost, DeletePost, PublishPost, ManageUsers,
		ManageEmojis, ModerateComments, ViewAnalytics, Comment, React,
	},
	RoleModerator: {
		CreatePost, EditPost, PublishPost, ModerateComments,
		ViewAnalytics, Comment, React,
	},
	RoleAuthor: {
		CreatePost, EditPost, PublishPost, Comment, React,
	},
	RoleUser: {
		Comment, React,
	},
}

// RolePermissions returns a fresh copy of the default set for role. Unknown
// roles get an empty set.
func RolePermissions(role Role) Set {
	return NewSet(roleTable[role]...)
}

func HasPermission(set Set, required Permission) bool {
	return set.Has(required)
}

func Roles() []Role {
	return []Role{RoleAdmin, RoleModerator, RoleAuthor, RoleUser}
}

func Permissions() []Permission {
	return slices.Clone(allPermissions)
}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := roleTable[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func ParsePermission(s string) (Permission, error) {
	p := Permission(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(allPermissions, p) {
		return "", fmt.Errorf("unknown permission %q", s)
	}
	return p, nil
}

func ParseScope(s string) (Scope, error) {
	switch sc := Scope(strings.ToLower(strings.TrimSpace(s))); sc {
	case ScopeComment, ScopePost, ScopeAll:
		return sc, nil
	default:
		return "", fmt.Errorf("unknown mute scope %q", s)
	}
}

func (r Role) String() string { return string(r) }

func (p Permission) String() string { return string(p) }

func (s Scope) String() string { return string(s) }

// Set is an unordered permission set. The zero value is empty and usable.
type Set map[Permission]struct{}

func NewSet(perms ...Permission) Set {
	s := make(Set, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

// ParseSet validates every entry; duplicates collapse.
func ParseSet(values []string) (Set, error) {
	s := make(Set, len(values))
	for _, v := range values {
		p, err := ParsePermission(v)
		if err != nil {
			return nil, err
		}
		s[p] = struct{}{}
	}
	return s, nil
}

func (s Set) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

func (s Set) Len() int { return len(s) }

// Strings returns the members sorted, which is also the persisted order.
func (s Set) Strings() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, string(p))
	}
	sort.Strings(out)
	return out
}

func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for p := range s {
		if !other.Has(p) {
			return false
		}
	}
	return true
}

func (s Set) Value() (driver.Value, error) {
	return strings.Join(s.Strings(), ","), nil
}

func (s *Set) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("scan permission set: unsupported type %T", src)
	}

	out := make(Set)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out[Permission(part)] = struct{}{}
		}
	}
	*s = out
	return nil
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

func (s *Set) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	parsed, err := ParseSet(values)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
