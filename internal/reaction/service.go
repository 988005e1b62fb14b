// AngelaMos | 2026
// service.go

package reaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/emoji"
	"github.com/carterperez-dev/cms-blog/internal/gate"
	"github.com/carterperez-dev/cms-blog/internal/post"
	"github.com/carterperez-dev/cms-blog/internal/settings"
)

type PostResolver interface {
	Resolve(ctx context.Context, slug string) (*post.Post, error)
}

type EmojiLookup interface {
	Lookup(ctx context.Context, shortcode string) (*emoji.Emoji, error)
}

type Service struct {
	repo   Repository
	posts  PostResolver
	emojis EmojiLookup
}

func NewService(repo Repository, posts PostResolver, emojis EmojiLookup) *Service {
	return &Service{repo: repo, posts: posts, emojis: emojis}
}

// Add records actor's reaction and returns the updated group for that
// emoji. A second identical reaction fails with a conflict.
func (s *Service) Add(
	ctx context.Context,
	actor *gate.Principal,
	slug, shortcode string,
) (*Group, error) {
	p, e, err := s.resolve(ctx, actor, slug, shortcode)
	if err != nil {
		return nil, err
	}

	current, err := settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	rec := &Reaction{
		ID:        uuid.New().String(),
		AccountID: actor.ID,
		PostID:    p.ID,
		EmojiID:   e.ID,
	}
	if err := s.repo.Add(ctx, rec, current.MaxReactionsPerPost); err != nil {
		return nil, err
	}

	return s.group(ctx, p.ID, e)
}

// Remove deletes actor's reaction. The returned group may have a zero
// count.
func (s *Service) Remove(
	ctx context.Context,
	actor *gate.Principal,
	slug, shortcode string,
) (*Group, error) {
	p, e, err := s.resolve(ctx, actor, slug, shortcode)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Remove(ctx, actor.ID, p.ID, e.ID); err != nil {
		return nil, err
	}

	return s.group(ctx, p.ID, e)
}

// List groups every reaction on the post by emoji.
func (s *Service) List(ctx context.Context, viewer *gate.Principal, slug string) ([]Group, error) {
	p, err := s.visiblePost(ctx, viewer, slug)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListForPost(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	return groupRows(rows), nil
}

func (s *Service) resolve(
	ctx context.Context,
	actor *gate.Principal,
	slug, shortcode string,
) (*post.Post, *emoji.Emoji, error) {
	p, err := s.visiblePost(ctx, actor, slug)
	if err != nil {
		return nil, nil, err
	}

	e, err := s.emojis.Lookup(ctx, shortcode)
	if errors.Is(err, core.ErrNotFound) {
		return nil, nil, core.NotFoundError("emoji")
	}
	if err != nil {
		return nil, nil, err
	}

	return p, e, nil
}

func (s *Service) group(ctx context.Context, postID string, e *emoji.Emoji) (*Group, error) {
	rows, err := s.repo.ListForPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	for _, g := range groupRows(rows) {
		if g.Emoji == e.Shortcode {
			return &g, nil
		}
	}

	return &Group{Emoji: e.Shortcode, URL: e.URL, Users: []Reactor{}}, nil
}

func (s *Service) visiblePost(
	ctx context.Context,
	viewer *gate.Principal,
	slug string,
) (*post.Post, error) {
	p, err := s.posts.Resolve(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !p.IsPublished() && !gate.CanModify(viewer, p.AuthorID) {
		return nil, fmt.Errorf("resolve post: %w", core.ErrNotFound)
	}
	return p, nil
}
