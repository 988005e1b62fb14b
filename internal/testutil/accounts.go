// AngelaMos | 2026
// accounts.go

package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/cms-blog/internal/access"
	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/user"
)

// Accounts is an in-memory user.Repository that enforces the same unique
// constraints as the accounts table.
type Accounts struct {
	mu   sync.Mutex
	rows map[string]*user.Account
}

func NewAccounts() *Accounts {
	return &Accounts{rows: make(map[string]*user.Account)}
}

// Seed inserts an active account with the role's default permissions.
func (s *Accounts) Seed(username string, role access.Role) *user.Account {
	a := &user.Account{
		ID:          uuid.NewString(),
		Username:    username,
		Email:       strings.ToLower(username) + "@example.com",
		Role:        role,
		Permissions: access.RolePermissions(role),
		IsActive:    true,
	}
	if err := s.Create(context.Background(), a); err != nil {
		panic(err)
	}
	return a
}

func (s *Accounts) Create(_ context.Context, a *user.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.rows {
		if strings.EqualFold(row.Username, a.Username) {
			return fmt.Errorf("create account: username already exists: %w", core.ErrDuplicateKey)
		}
		if strings.EqualFold(row.Email, a.Email) {
			return fmt.Errorf("create account: email already exists: %w", core.ErrDuplicateKey)
		}
	}

	now := time.Now()
	a.IsActive = true
	a.CreatedAt = now
	a.UpdatedAt = now
	cp := *a
	cp.Permissions = access.NewSet(mustPerms(a.Permissions)...)
	s.rows[a.ID] = &cp
	return nil
}

func (s *Accounts) GetByID(_ context.Context, id string) (*user.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, fmt.Errorf("get account: %w", core.ErrNotFound)
	}
	return clone(row), nil
}

func (s *Accounts) GetByEmail(_ context.Context, email string) (*user.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.rows {
		if strings.EqualFold(row.Email, email) {
			return clone(row), nil
		}
	}
	return nil, fmt.Errorf("get account by email: %w", core.ErrNotFound)
}

func (s *Accounts) UpdateProfile(_ context.Context, a *user.Account) error {
	return s.mutate(a.ID, func(row *user.Account) error {
		for id, other := range s.rows {
			if id != a.ID && strings.EqualFold(other.Username, a.Username) {
				return fmt.Errorf("update profile: username already exists: %w", core.ErrDuplicateKey)
			}
		}
		row.Username = a.Username
		row.Avatar = a.Avatar
		return nil
	})
}

func (s *Accounts) UpdatePassword(_ context.Context, id, hash string) error {
	return s.mutate(id, func(row *user.Account) error {
		row.PasswordHash = hash
		return nil
	})
}

func (s *Accounts) UpdateRole(
	_ context.Context,
	id string,
	role access.Role,
	perms access.Set,
) error {
	return s.mutate(id, func(row *user.Account) error {
		row.Role = role
		row.Permissions = access.NewSet(mustPerms(perms)...)
		return nil
	})
}

func (s *Accounts) UpdatePermissions(_ context.Context, id string, perms access.Set) error {
	return s.mutate(id, func(row *user.Account) error {
		row.Permissions = access.NewSet(mustPerms(perms)...)
		return nil
	})
}

func (s *Accounts) Exists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rows[id]
	return ok, nil
}

func (s *Accounts) IsBanned(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return false, fmt.Errorf("account %s: %w", id, core.ErrNotFound)
	}
	return row.IsBanned, nil
}

func (s *Accounts) SetBan(
	_ context.Context,
	id, actorID, reason string,
	at time.Time,
) error {
	return s.mutate(id, func(row *user.Account) error {
		row.IsBanned = true
		row.IsActive = false
		row.BanReason = &reason
		row.BannedBy = &actorID
		row.BannedAt = &at
		return nil
	})
}

func (s *Accounts) ClearBan(_ context.Context, id string) error {
	return s.mutate(id, func(row *user.Account) error {
		row.IsBanned = false
		row.IsActive = true
		row.BanReason = nil
		row.BannedBy = nil
		row.BannedAt = nil
		return nil
	})
}

func (s *Accounts) SetActive(_ context.Context, id string, active bool) error {
	return s.mutate(id, func(row *user.Account) error {
		row.IsActive = active
		return nil
	})
}

func (s *Accounts) List(_ context.Context, f user.ListFilter) ([]user.Account, int, error) {
	f.Normalize()
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []user.Account
	for _, row := range s.rows {
		if f.Search != "" &&
			!strings.Contains(strings.ToLower(row.Username), strings.ToLower(f.Search)) &&
			!strings.Contains(strings.ToLower(row.Email), strings.ToLower(f.Search)) {
			continue
		}
		if f.Role != "" && string(row.Role) != f.Role {
			continue
		}
		switch f.Status {
		case user.StatusActive:
			if !row.IsActive || row.IsBanned {
				continue
			}
		case user.StatusBanned:
			if !row.IsBanned {
				continue
			}
		case user.StatusInactive:
			if row.IsActive {
				continue
			}
		}
		matched = append(matched, *clone(row))
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return page(matched, f.Offset(), f.PageSize), len(matched), nil
}

func (s *Accounts) mutate(id string, fn func(*user.Account) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok {
		return fmt.Errorf("update account: %w", core.ErrNotFound)
	}
	if err := fn(row); err != nil {
		return err
	}
	row.UpdatedAt = time.Now()
	return nil
}

func clone(a *user.Account) *user.Account {
	cp := *a
	cp.Permissions = access.NewSet(mustPerms(a.Permissions)...)
	return &cp
}

func mustPerms(s access.Set) []access.Permission {
	out := make([]access.Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	return out
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

var _ user.Repository = (*Accounts)(nil)
