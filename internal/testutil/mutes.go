// AngelaMos | 2026
// mutes.go

package testutil

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/carterperez-dev/cms-blog/internal/access"
	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/moderation"
)

type Mutes struct {
	mu   sync.Mutex
	rows []*moderation.Mute
	seq  int
}

func NewMutes() *Mutes {
	return &Mutes{}
}

func (s *Mutes) Create(_ context.Context, m *moderation.Mute) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	created := time.Now().Add(time.Duration(s.seq) * time.Microsecond)
	m.CreatedAt = created
	m.UpdatedAt = created
	cp := *m
	s.rows = append(s.rows, &cp)
	return nil
}

func (s *Mutes) GetByID(_ context.Context, id string) (*moderation.Mute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.rows {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get mute: %w", core.ErrNotFound)
}

func (s *Mutes) Deactivate(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.rows {
		if m.ID == id {
			m.Active = false
			m.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("revoke mute: %w", core.ErrNotFound)
}

func (s *Mutes) ListByAccount(_ context.Context, accountID string) ([]moderation.Mute, error) {
	return s.filter(func(m *moderation.Mute) bool {
		return m.AccountID == accountID
	}), nil
}

func (s *Mutes) ActiveForAccounts(
	_ context.Context,
	ids []string,
	now time.Time,
) ([]moderation.Mute, error) {
	return s.filter(func(m *moderation.Mute) bool {
		return slices.Contains(ids, m.AccountID) && m.InEffect(now)
	}), nil
}

func (s *Mutes) HasActive(
	_ context.Context,
	accountID string,
	scopes []access.Scope,
	now time.Time,
) (bool, error) {
	found := s.filter(func(m *moderation.Mute) bool {
		return m.AccountID == accountID && m.InEffect(now) && slices.Contains(scopes, m.Scope)
	})
	return len(found) > 0, nil
}

func (s *Mutes) CountActive(_ context.Context, now time.Time) (int, error) {
	return len(s.filter(func(m *moderation.Mute) bool { return m.InEffect(now) })), nil
}

func (s *Mutes) filter(keep func(*moderation.Mute) bool) []moderation.Mute {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []moderation.Mute{}
	for _, m := range s.rows {
		if keep(m) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

var _ moderation.Repository = (*Mutes)(nil)
