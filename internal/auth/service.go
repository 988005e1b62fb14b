// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/carterperez-dev/cms-blog/internal/core"
)

const minPasswordLength = 6

// AccountInfo is the slice of an account the issuer needs.
type AccountInfo struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Avatar       string
	Role         string
	Permissions  []string
	IsActive     bool
	CreatedAt    time.Time
}

type AccountProvider interface {
	GetByEmail(ctx context.Context, email string) (*AccountInfo, error)
	Create(
		ctx context.Context,
		username, email, passwordHash string,
	) (*AccountInfo, error)
	UpdatePassword(ctx context.Context, accountID, passwordHash string) error
}

// RegistrationPolicy reports whether self-service sign up is open.
type RegistrationPolicy interface {
	RegistrationOpen(ctx context.Context) (bool, error)
}

type TokenIssuer interface {
	IssueToken(accountID, role string) (string, time.Time, error)
	TokenLifetime() time.Duration
}

type Service struct {
	accounts AccountProvider
	tokens   TokenIssuer
	policy   RegistrationPolicy
}

func NewService(
	accounts AccountProvider,
	tokens TokenIssuer,
	policy RegistrationPolicy,
) *Service {
	return &Service{
		accounts: accounts,
		tokens:   tokens,
		policy:   policy,
	}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if username == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf(
			"register: username, email and password are required: %w",
			core.ErrInvalidInput,
		)
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf(
			"register: password must be at least 6 characters: %w",
			core.ErrInvalidInput,
		)
	}

	if s.policy != nil {
		open, err := s.policy.RegistrationOpen(ctx)
		if err != nil {
			return nil, fmt.Errorf("register: load settings: %w", err)
		}
		if !open {
			return nil, fmt.Errorf(
				"register: registration is disabled: %w",
				core.ErrForbidden,
			)
		}
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.accounts.Create(ctx, username, email, passwordHash)
	if err != nil {
		return nil, err
	}

	return s.authResponse(account)
}

// Login answers unknown email and wrong password identically, and spends
// the same hashing work on both.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // equalises timing with the found path
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, fmt.Errorf("login: %w", core.ErrInvalidCreds)
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&account.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, fmt.Errorf("login: %w", core.ErrInvalidCreds)
	}

	if !account.IsActive {
		return nil, fmt.Errorf("login: account is deactivated: %w", core.ErrForbidden)
	}

	if newHash != "" {
		if err := s.accounts.UpdatePassword(ctx, account.ID, newHash); err != nil {
			slog.Warn("password rehash failed",
				"account_id", account.ID,
				"error", err,
			)
		}
	}

	return s.authResponse(account)
}

func (s *Service) authResponse(account *AccountInfo) (*AuthResponse, error) {
	token, expiresAt, err := s.tokens.IssueToken(account.ID, account.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	perms := account.Permissions
	if perms == nil {
		perms = []string{}
	}

	return &AuthResponse{
		Account: AccountResponse{
			ID:          account.ID,
			Username:    account.Username,
			Email:       account.Email,
			Avatar:      account.Avatar,
			Role:        account.Role,
			Permissions: perms,
			IsActive:    account.IsActive,
			CreatedAt:   account.CreatedAt,
		},
		Token: TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   int(s.tokens.TokenLifetime() / time.Second),
			ExpiresAt:   expiresAt,
		},
	}, nil
}
