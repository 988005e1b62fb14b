// AngelaMos | 2026
// reactions.go

package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/reaction"
)

// Reactions is an in-memory reaction.Repository. Rows are joined against
// the given emoji store, and against accounts when one is supplied.
type Reactions struct {
	mu       sync.Mutex
	rows     []reaction.Reaction
	emojis   *Emojis
	accounts *Accounts
	seq      int
}

func NewReactions(emojis *Emojis, accounts *Accounts) *Reactions {
	return &Reactions{emojis: emojis, accounts: accounts}
}

func (s *Reactions) Add(_ context.Context, r *reaction.Reaction, maxPerPost int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, row := range s.rows {
		if row.PostID != r.PostID {
			continue
		}
		count++
		if row.AccountID == r.AccountID && row.EmojiID == r.EmojiID {
			return fmt.Errorf("add reaction: you already reacted with this emoji: %w",
				core.ErrDuplicateKey)
		}
	}
	if maxPerPost > 0 && count >= maxPerPost {
		return fmt.Errorf(
			"add reaction: post has reached the maximum of %d reactions: %w",
			maxPerPost, core.ErrLimitReached,
		)
	}
	if _, ok := s.emojis.byID(r.EmojiID); !ok {
		return fmt.Errorf("add reaction: emoji: %w", core.ErrNotFound)
	}

	s.seq++
	r.CreatedAt = time.Now().Add(time.Duration(s.seq) * time.Microsecond)
	s.rows = append(s.rows, *r)
	return nil
}

func (s *Reactions) Remove(_ context.Context, accountID, postID, emojiID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, row := range s.rows {
		if row.AccountID == accountID && row.PostID == postID && row.EmojiID == emojiID {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove reaction: %w", core.ErrNotFound)
}

func (s *Reactions) ListForPost(ctx context.Context, postID string) ([]reaction.Row, error) {
	s.mu.Lock()
	matched := []reaction.Reaction{}
	for _, row := range s.rows {
		if row.PostID == postID {
			matched = append(matched, row)
		}
	}
	s.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	out := make([]reaction.Row, 0, len(matched))
	for _, row := range matched {
		e, ok := s.emojis.byID(row.EmojiID)
		if !ok {
			continue
		}
		out = append(out, reaction.Row{
			AccountID: row.AccountID,
			Username:  s.username(ctx, row.AccountID),
			Shortcode: e.Shortcode,
			URL:       e.URL,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

func (s *Reactions) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *Reactions) username(ctx context.Context, id string) string {
	if s.accounts == nil {
		return ""
	}
	a, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return ""
	}
	return a.Username
}

var _ reaction.Repository = (*Reactions)(nil)
