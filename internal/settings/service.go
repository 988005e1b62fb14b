// AngelaMos | 2026
// service.go

// Package settings owns the site-wide configuration row. Callers receive a
// Service through the request context instead of reading a global.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/cms-blog/internal/core"
)

const cacheKey = "cms:settings"

type Service interface {
	Get(ctx context.Context) (*Settings, error)
	Update(ctx context.Context, req UpdateRequest) (*Settings, error)
}

// Store reads through a Redis copy of the row. rdb may be nil, in which
// case every Get hits Postgres.
type Store struct {
	repo Repository
	rdb  *redis.Client
	ttl  time.Duration
}

func NewStore(repo Repository, rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{repo: repo, rdb: rdb, ttl: ttl}
}

func (s *Store) Get(ctx context.Context) (*Settings, error) {
	if cached, ok := s.cached(ctx); ok {
		return cached, nil
	}

	current, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	s.store(ctx, current)
	return current, nil
}

func (s *Store) Update(ctx context.Context, req UpdateRequest) (*Settings, error) {
	if req.SiteName != nil && strings.TrimSpace(*req.SiteName) == "" {
		return nil, fmt.Errorf("update settings: site name cannot be empty: %w", core.ErrInvalidInput)
	}
	if (req.MaxCommentsPerPost != nil && *req.MaxCommentsPerPost < 1) ||
		(req.MaxReactionsPerPost != nil && *req.MaxReactionsPerPost < 1) {
		return nil, fmt.Errorf("update settings: limits must be positive: %w", core.ErrInvalidInput)
	}

	current, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	req.apply(current)

	if err := s.repo.Save(ctx, current); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return current, nil
}

// RegistrationOpen satisfies auth.RegistrationPolicy.
func (s *Store) RegistrationOpen(ctx context.Context) (bool, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return current.AllowRegistration, nil
}

func (s *Store) cached(ctx context.Context) (*Settings, bool) {
	if s.rdb == nil {
		return nil, false
	}

	data, err := s.rdb.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("settings cache read failed", "error", err)
		}
		return nil, false
	}

	var out Settings
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false
	}
	return &out, true
}

func (s *Store) store(ctx context.Context, v *Settings) {
	if s.rdb == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, cacheKey, data, s.ttl).Err(); err != nil {
		slog.Warn("settings cache write failed", "error", err)
	}
}

func (s *Store) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		slog.Warn("settings cache invalidate failed", "error", err)
	}
}

var _ Service = (*Store)(nil)
