// AngelaMos | 2026
// posts.go

package testutil

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/post"
)

// Posts is an in-memory post.Repository with the posts_slug_key constraint.
type Posts struct {
	mu   sync.Mutex
	rows map[string]*post.Post
	seq  int
}

func NewPosts() *Posts {
	return &Posts{rows: make(map[string]*post.Post)}
}

func (s *Posts) Create(_ context.Context, p *post.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slugTaken(p.Slug, p.ID) {
		return fmt.Errorf("create post: %w", post.ErrSlugTaken)
	}

	s.seq++
	now := time.Now().Add(time.Duration(s.seq) * time.Microsecond)
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	s.rows[p.ID] = &cp
	return nil
}

func (s *Posts) GetBySlug(_ context.Context, slug string) (*post.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.rows {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get post: %w", core.ErrNotFound)
}

func (s *Posts) Update(_ context.Context, p *post.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[p.ID]
	if !ok {
		return fmt.Errorf("update post: %w", core.ErrNotFound)
	}
	if s.slugTaken(p.Slug, p.ID) {
		return fmt.Errorf("update post: %w", post.ErrSlugTaken)
	}

	p.UpdatedAt = time.Now()
	cp := *p
	cp.ViewCount = row.ViewCount
	cp.CreatedAt = row.CreatedAt
	s.rows[p.ID] = &cp
	return nil
}

func (s *Posts) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return fmt.Errorf("delete post: %w", core.ErrNotFound)
	}
	delete(s.rows, id)
	return nil
}

func (s *Posts) IncrementViews(_ context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok {
		return 0, fmt.Errorf("increment views: %w", core.ErrNotFound)
	}
	row.ViewCount++
	return row.ViewCount, nil
}

func (s *Posts) List(_ context.Context, f post.ListFilter) ([]post.Post, int, error) {
	f.Normalize()
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []post.Post
	for _, p := range s.rows {
		if p.Status != f.Status {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Tag != "" && !slices.Contains(p.Tags, f.Tag) {
			continue
		}
		if f.AuthorID != "" && p.AuthorID != f.AuthorID {
			continue
		}
		if f.Search != "" &&
			!strings.Contains(strings.ToLower(p.Title+" "+p.Content), strings.ToLower(f.Search)) {
			continue
		}
		matched = append(matched, *p)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return page(matched, f.Offset(), f.PageSize), len(matched), nil
}

// Count returns the number of stored posts.
func (s *Posts) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *Posts) slugTaken(slug, selfID string) bool {
	for id, p := range s.rows {
		if id != selfID && p.Slug == slug {
			return true
		}
	}
	return false
}

var _ post.Repository = (*Posts)(nil)
