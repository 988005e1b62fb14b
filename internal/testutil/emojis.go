// AngelaMos | 2026
// emojis.go

package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/emoji"
)

// Emojis is an in-memory emoji.Repository with the pack name and
// shortcode constraints.
type Emojis struct {
	mu     sync.Mutex
	packs  map[string]*emoji.Pack
	emojis map[string]*emoji.Emoji
}

func NewEmojis() *Emojis {
	return &Emojis{
		packs:  make(map[string]*emoji.Pack),
		emojis: make(map[string]*emoji.Emoji),
	}
}

func (s *Emojis) CreatePack(_ context.Context, p *emoji.Pack) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, other := range s.packs {
		if other.AuthorID == p.AuthorID && other.Name == p.Name {
			return fmt.Errorf("create pack: you already have a pack with this name: %w",
				core.ErrDuplicateKey)
		}
	}

	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	s.packs[p.ID] = &cp
	return nil
}

func (s *Emojis) GetPack(_ context.Context, id string) (*emoji.Pack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.packs[id]
	if !ok {
		return nil, fmt.Errorf("get pack: %w", core.ErrNotFound)
	}
	return s.counted(p), nil
}

func (s *Emojis) ListPacks(_ context.Context, f emoji.PackFilter) ([]emoji.Pack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []emoji.Pack{}
	for _, p := range s.packs {
		if !p.IsActive {
			continue
		}
		if f.Public != nil && p.IsPublic != *f.Public {
			continue
		}
		if f.AuthorID != "" && p.AuthorID != f.AuthorID {
			continue
		}
		out = append(out, *s.counted(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Emojis) DeletePack(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.packs[id]
	if !ok {
		return fmt.Errorf("delete pack: %w", core.ErrNotFound)
	}
	if n := s.counted(p).EmojiCount; n > 0 {
		return fmt.Errorf("delete pack: pack still contains %d emojis: %w", n, core.ErrConflictPresent)
	}
	delete(s.packs, id)
	return nil
}

func (s *Emojis) CreateEmoji(_ context.Context, e *emoji.Emoji) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.packs[e.PackID]; !ok {
		return fmt.Errorf("create emoji: pack: %w", core.ErrNotFound)
	}
	for _, other := range s.emojis {
		if other.Shortcode == e.Shortcode {
			return fmt.Errorf("create emoji: shortcode already exists: %w", core.ErrDuplicateKey)
		}
	}

	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	cp := *e
	s.emojis[e.ID] = &cp
	return nil
}

func (s *Emojis) GetByShortcode(_ context.Context, code string) (*emoji.Emoji, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.emojis {
		if e.Shortcode == code {
			cp := *e
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get emoji: %w", core.ErrNotFound)
}

func (s *Emojis) ListEmojis(_ context.Context, f emoji.EmojiFilter) ([]emoji.Emoji, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []emoji.Emoji{}
	for _, e := range s.emojis {
		if f.PackID != "" && e.PackID != f.PackID {
			continue
		}
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(e.Name), q) &&
				!strings.Contains(strings.ToLower(e.Shortcode), q) {
				continue
			}
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Shortcode < out[j].Shortcode })
	return out, nil
}

func (s *Emojis) DeleteEmoji(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.emojis[id]; !ok {
		return fmt.Errorf("delete emoji: %w", core.ErrNotFound)
	}
	delete(s.emojis, id)
	return nil
}

// counted must be called with s.mu held.
func (s *Emojis) counted(p *emoji.Pack) *emoji.Pack {
	cp := *p
	for _, e := range s.emojis {
		if e.PackID == p.ID {
			cp.EmojiCount++
		}
	}
	return &cp
}

func (s *Emojis) byID(id string) (emoji.Emoji, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.emojis[id]
	if !ok {
		return emoji.Emoji{}, false
	}
	return *e, true
}

var _ emoji.Repository = (*Emojis)(nil)
