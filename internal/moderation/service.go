// AngelaMos | 2026
// service.go

package moderation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/cms-blog/internal/access"
	"github.com/carterperez-dev/cms-blog/internal/core"
)

const (
	maxReasonLength = 500
	// MaxMuteMinutes is one hundred years. Anything longer overflows
	// time.Duration.
	MaxMuteMinutes = 100 * 365 * 24 * 60
)

// AccountStore is the part of the account table the ledger writes to.
type AccountStore interface {
	Exists(ctx context.Context, id string) (bool, error)
	IsBanned(ctx context.Context, id string) (bool, error)
	SetBan(ctx context.Context, id, actorID, reason string, at time.Time) error
	ClearBan(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
}

type Service struct {
	repo     Repository
	accounts AccountStore
	now      func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now, which is how expiry gets tested.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, accounts AccountStore, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		accounts: accounts,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type IssueMuteInput struct {
	TargetID        string
	ActorID         string
	Scope           string
	Reason          string
	DurationMinutes int
}

// IssueMute records a new mute. Overlapping mutes are allowed; each one
// expires on its own.
func (s *Service) IssueMute(ctx context.Context, in IssueMuteInput) (*Mute, error) {
	scope, err := access.ParseScope(in.Scope)
	if err != nil {
		return nil, fmt.Errorf(
			"issue mute: scope must be one of comment, post, all: %w",
			core.ErrInvalidInput,
		)
	}

	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, fmt.Errorf("issue mute: reason is required: %w", core.ErrInvalidInput)
	}
	if len(reason) > maxReasonLength {
		return nil, fmt.Errorf(
			"issue mute: reason must be at most 500 characters: %w",
			core.ErrInvalidInput,
		)
	}
	if in.DurationMinutes <= 0 {
		return nil, fmt.Errorf(
			"issue mute: duration must be a positive number of minutes: %w",
			core.ErrInvalidInput,
		)
	}
	if in.DurationMinutes > MaxMuteMinutes {
		return nil, fmt.Errorf(
			"issue mute: duration must be at most %d minutes: %w",
			MaxMuteMinutes,
			core.ErrInvalidInput,
		)
	}

	if err := s.requireAccount(ctx, in.TargetID); err != nil {
		return nil, err
	}

	now := s.now()
	expiresAt := now.Add(time.Duration(in.DurationMinutes) * time.Minute)
	if !expiresAt.After(now) {
		return nil, fmt.Errorf("issue mute: expiry must be in the future: %w", core.ErrInvalidInput)
	}

	mute := &Mute{
		ID:        uuid.New().String(),
		AccountID: in.TargetID,
		MutedBy:   in.ActorID,
		Scope:     scope,
		Reason:    reason,
		ExpiresAt: expiresAt,
		Active:    true,
	}

	if err := s.repo.Create(ctx, mute); err != nil {
		return nil, err
	}

	return mute, nil
}

// RevokeMute deactivates muteID, which must belong to targetID.
func (s *Service) RevokeMute(ctx context.Context, targetID, muteID string) error {
	mute, err := s.repo.GetByID(ctx, muteID)
	if err != nil {
		return err
	}

	if mute.AccountID != targetID {
		return fmt.Errorf(
			"revoke mute: mute belongs to another account: %w",
			core.ErrForbidden,
		)
	}

	return s.repo.Deactivate(ctx, muteID)
}

// IsRestricted is evaluated against the store on every call so a revoke
// or expiry takes effect on the very next request.
func (s *Service) IsRestricted(
	ctx context.Context,
	accountID string,
	scope access.Scope,
) (bool, error) {
	scopes := []access.Scope{scope}
	if scope != access.ScopeAll {
		scopes = append(scopes, access.ScopeAll)
	}
	return s.repo.HasActive(ctx, accountID, scopes, s.now())
}

func (s *Service) ListMutes(ctx context.Context, targetID string) ([]Mute, error) {
	if err := s.requireAccount(ctx, targetID); err != nil {
		return nil, err
	}
	return s.repo.ListByAccount(ctx, targetID)
}

func (s *Service) ActiveMutes(ctx context.Context, targetID string) ([]Mute, error) {
	mutes, err := s.repo.ActiveForAccounts(ctx, []string{targetID}, s.now())
	if err != nil {
		return nil, err
	}
	return mutes, nil
}

// ActiveMutesByAccount groups the mutes in effect for each of ids.
func (s *Service) ActiveMutesByAccount(
	ctx context.Context,
	ids []string,
) (map[string][]Mute, error) {
	mutes, err := s.repo.ActiveForAccounts(ctx, ids, s.now())
	if err != nil {
		return nil, err
	}

	out := make(map[string][]Mute, len(ids))
	for _, m := range mutes {
		out[m.AccountID] = append(out[m.AccountID], m)
	}
	return out, nil
}

func (s *Service) CountActiveMutes(ctx context.Context) (int, error) {
	return s.repo.CountActive(ctx, s.now())
}

// Ban flags the account and deactivates it, which is what locks out
// sessions that are already issued.
func (s *Service) Ban(
	ctx context.Context,
	targetID, actorID, reason string,
) (*BanStatus, error) {
	if targetID == actorID {
		return nil, fmt.Errorf("ban: cannot ban yourself: %w", core.ErrInvalidInput)
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultBanReason
	}
	if len(reason) > maxReasonLength {
		return nil, fmt.Errorf(
			"ban: reason must be at most 500 characters: %w",
			core.ErrInvalidInput,
		)
	}

	at := s.now()
	if err := s.accounts.SetBan(ctx, targetID, actorID, reason, at); err != nil {
		return nil, err
	}

	return &BanStatus{
		AccountID: targetID,
		IsActive:  false,
		IsBanned:  true,
		BanReason: reason,
		BannedBy:  actorID,
		BannedAt:  &at,
	}, nil
}

func (s *Service) Unban(ctx context.Context, targetID string) (*BanStatus, error) {
	if err := s.accounts.ClearBan(ctx, targetID); err != nil {
		return nil, err
	}
	return &BanStatus{AccountID: targetID, IsActive: true}, nil
}

// Activate toggles is_active only. A banned account has to be unbanned,
// which reactivates it.
func (s *Service) Activate(ctx context.Context, targetID string) error {
	banned, err := s.accounts.IsBanned(ctx, targetID)
	if err != nil {
		return err
	}
	if banned {
		return fmt.Errorf(
			"activate: account is banned, unban it instead: %w",
			core.ErrConflictPresent,
		)
	}
	return s.accounts.SetActive(ctx, targetID, true)
}

func (s *Service) Deactivate(ctx context.Context, targetID, actorID string) error {
	if targetID == actorID {
		return fmt.Errorf(
			"deactivate: cannot deactivate yourself: %w",
			core.ErrInvalidInput,
		)
	}
	return s.accounts.SetActive(ctx, targetID, false)
}

func (s *Service) requireAccount(ctx context.Context, id string) error {
	exists, err := s.accounts.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("account %s: %w", id, core.ErrNotFound)
	}
	return nil
}
