// AngelaMos | 2026
// comments.go

package testutil

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/carterperez-dev/cms-blog/internal/comment"
	"github.com/carterperez-dev/cms-blog/internal/core"
)

type likeKey struct{ comment, account string }

// Comments is an in-memory comment.Repository.
type Comments struct {
	mu    sync.Mutex
	rows  map[string]*comment.Comment
	likes map[likeKey]struct{}
	seq   int
}

func NewComments() *Comments {
	return &Comments{
		rows:  make(map[string]*comment.Comment),
		likes: make(map[likeKey]struct{}),
	}
}

func (s *Comments) Create(_ context.Context, c *comment.Comment, maxPerPost int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, row := range s.rows {
		if row.PostID == c.PostID {
			count++
		}
	}
	if maxPerPost > 0 && count >= maxPerPost {
		return fmt.Errorf(
			"create comment: post has reached the maximum of %d comments: %w",
			maxPerPost, core.ErrLimitReached,
		)
	}
	if c.ParentID != nil {
		if _, ok := s.rows[*c.ParentID]; !ok {
			return fmt.Errorf("create comment: parent comment: %w", core.ErrNotFound)
		}
	}

	s.seq++
	at := time.Now().Add(time.Duration(s.seq) * time.Microsecond)
	c.CreatedAt = at
	c.UpdatedAt = at
	cp := *c
	s.rows[c.ID] = &cp
	return nil
}

func (s *Comments) GetByID(_ context.Context, id string) (*comment.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, fmt.Errorf("get comment: %w", core.ErrNotFound)
	}
	return s.withLikes(row), nil
}

func (s *Comments) ListRoots(
	_ context.Context,
	postID string,
	limit, offset int,
) ([]comment.Comment, int, error) {
	roots := s.collect(func(c *comment.Comment) bool {
		return c.PostID == postID && c.IsRoot() && c.IsApproved
	}, false)
	return page(roots, offset, limit), len(roots), nil
}

func (s *Comments) ListReplies(_ context.Context, rootIDs []string) ([]comment.Comment, error) {
	return s.collect(func(c *comment.Comment) bool {
		return c.ParentID != nil && slices.Contains(rootIDs, *c.ParentID) && c.IsApproved
	}, true), nil
}

func (s *Comments) Delete(_ context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return 0, fmt.Errorf("delete comment: %w", core.ErrNotFound)
	}

	removed := 0
	for rid, row := range s.rows {
		if rid == id || (row.ParentID != nil && *row.ParentID == id) {
			delete(s.rows, rid)
			removed++
		}
	}
	return removed, nil
}

func (s *Comments) SetApproval(_ context.Context, id string, approved bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok {
		return fmt.Errorf("set approval: %w", core.ErrNotFound)
	}
	row.IsApproved = approved
	row.UpdatedAt = time.Now()
	return nil
}

func (s *Comments) ListForModeration(
	_ context.Context,
	f comment.ModerationFilter,
) ([]comment.ModerationItem, int, error) {
	f.Normalize()
	matched := s.collect(func(c *comment.Comment) bool {
		if f.Search != "" && !strings.Contains(strings.ToLower(c.Content), strings.ToLower(f.Search)) {
			return false
		}
		switch f.Status {
		case comment.ModerationApproved:
			return c.IsApproved
		case comment.ModerationPending:
			return !c.IsApproved
		}
		return true
	}, false)

	items := make([]comment.ModerationItem, 0, len(matched))
	for _, c := range page(matched, f.Offset(), f.PageSize) {
		items = append(items, comment.ModerationItem{Comment: c})
	}
	return items, len(matched), nil
}

func (s *Comments) ToggleLike(_ context.Context, commentID, accountID string) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[commentID]; !ok {
		return false, 0, fmt.Errorf("like comment: %w", core.ErrNotFound)
	}

	key := likeKey{commentID, accountID}
	_, had := s.likes[key]
	if had {
		delete(s.likes, key)
	} else {
		s.likes[key] = struct{}{}
	}
	return !had, s.likeCount(commentID), nil
}

// Count returns the number of stored comments.
func (s *Comments) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *Comments) collect(keep func(*comment.Comment) bool, oldestFirst bool) []comment.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []comment.Comment{}
	for _, row := range s.rows {
		if keep(row) {
			out = append(out, *s.withLikes(row))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if oldestFirst {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Comments) withLikes(row *comment.Comment) *comment.Comment {
	cp := *row
	cp.LikeCount = s.likeCount(row.ID)
	return &cp
}

func (s *Comments) likeCount(commentID string) int {
	n := 0
	for k := range s.likes {
		if k.comment == commentID {
			n++
		}
	}
	return n
}

var _ comment.Repository = (*Comments)(nil)
