// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/cms-blog/internal/access"
	"github.com/carterperez-dev/cms-blog/internal/auth"
	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/gate"
	"github.com/carterperez-dev/cms-blog/internal/moderation"
)

// MuteSource supplies the mutes shown next to each account in admin
// listings.
type MuteSource interface {
	ActiveMutesByAccount(ctx context.Context, ids []string) (map[string][]moderation.Mute, error)
}

type Service struct {
	repo  Repository
	mutes MuteSource
}

func NewService(repo Repository, mutes MuteSource) *Service {
	return &Service{repo: repo, mutes: mutes}
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.AccountInfo, error) {
	account, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toAccountInfo(account), nil
}

// Create stores a new self-registered account with the user role.
func (s *Service) Create(
	ctx context.Context,
	username, email, passwordHash string,
) (*auth.AccountInfo, error) {
	account := &Account{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		Role:         access.RoleUser,
		Permissions:  access.RolePermissions(access.RoleUser),
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	return toAccountInfo(account), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	accountID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, accountID, passwordHash)
}

// LookupPrincipal feeds the gate with the live account state.
func (s *Service) LookupPrincipal(
	ctx context.Context,
	accountID string,
) (*gate.Principal, error) {
	if _, err := uuid.Parse(accountID); err != nil {
		return nil, fmt.Errorf("lookup principal: %w", core.ErrNotFound)
	}

	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &gate.Principal{
		ID:          account.ID,
		Username:    account.Username,
		Role:        account.Role,
		Permissions: account.Permissions,
		IsActive:    account.IsActive,
		IsBanned:    account.IsBanned,
	}, nil
}

func (s *Service) GetAccount(ctx context.Context, id string) (*Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	id string,
	req UpdateProfileRequest,
) (*Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		name := strings.TrimSpace(*req.Username)
		if len(name) < 3 {
			return nil, fmt.Errorf(
				"update profile: username must be at least 3 characters: %w",
				core.ErrInvalidInput,
			)
		}
		account.Username = name
	}
	if req.Avatar != nil {
		account.Avatar = strings.TrimSpace(*req.Avatar)
	}

	if err := s.repo.UpdateProfile(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// ChangeRole sets role and replaces the permission set with the role's
// defaults, discarding any earlier override.
func (s *Service) ChangeRole(
	ctx context.Context,
	id, role string,
) (*Account, error) {
	parsed, err := access.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf(
			"change role: role must be one of admin, moderator, author, user: %w",
			core.ErrInvalidInput,
		)
	}

	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	perms := access.RolePermissions(parsed)
	if err := s.repo.UpdateRole(ctx, id, parsed, perms); err != nil {
		return nil, err
	}

	account.Role = parsed
	account.Permissions = perms
	return account, nil
}

// OverridePermissions writes the set verbatim. Role is left unchanged.
func (s *Service) OverridePermissions(
	ctx context.Context,
	id string,
	permissions []string,
) (*Account, error) {
	perms, err := access.ParseSet(permissions)
	if err != nil {
		return nil, fmt.Errorf(
			"override permissions: unknown permission: %w",
			core.ErrInvalidInput,
		)
	}

	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePermissions(ctx, id, perms); err != nil {
		return nil, err
	}

	account.Permissions = perms
	return account, nil
}

func (s *Service) ListAccounts(
	ctx context.Context,
	filter ListFilter,
) ([]AdminAccountResponse, int, error) {
	if filter.Role != "" {
		if _, err := access.ParseRole(filter.Role); err != nil {
			return nil, 0, fmt.Errorf("list accounts: unknown role: %w", core.ErrInvalidInput)
		}
	}
	switch filter.Status {
	case "", StatusActive, StatusBanned, StatusInactive:
	default:
		return nil, 0, fmt.Errorf(
			"list accounts: status must be one of active, banned, inactive: %w",
			core.ErrInvalidInput,
		)
	}

	accounts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}

	var active map[string][]moderation.Mute
	if s.mutes != nil {
		active, err = s.mutes.ActiveMutesByAccount(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
	}

	now := time.Now()
	out := make([]AdminAccountResponse, 0, len(accounts))
	for i := range accounts {
		a := &accounts[i]
		mutes := active[a.ID]
		resp := AdminAccountResponse{
			AccountResponse: ToAccountResponse(a),
			ActiveMutes:     make([]moderation.MuteResponse, 0, len(mutes)),
		}
		for j := range mutes {
			resp.ActiveMutes = append(resp.ActiveMutes,
				moderation.ToMuteResponse(&mutes[j], now))
		}
		out = append(out, resp)
	}

	return out, total, nil
}

func toAccountInfo(a *Account) *auth.AccountInfo {
	return &auth.AccountInfo{
		ID:           a.ID,
		Username:     a.Username,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Avatar:       a.Avatar,
		Role:         string(a.Role),
		Permissions:  a.Permissions.Strings(),
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
	}
}

var (
	_ auth.AccountProvider = (*Service)(nil)
	_ gate.AccountLookup   = (*Service)(nil)
)
