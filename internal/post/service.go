// AngelaMos | 2026
// service.go

package post

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/cms-blog/internal/access"
	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/gate"
)

const maxSlugAttempts = 100

type Service struct {
	repo Repository
	now  func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a post owned by actor. The slug is claimed by inserting and
// retrying with the next numeric suffix on a unique violation, so two
// concurrent posts with the same title cannot share a slug.
func (s *Service) Create(
	ctx context.Context,
	actor *gate.Principal,
	req CreatePostRequest,
) (*Post, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("create post: title and content are required: %w", core.ErrInvalidInput)
	}

	status := StatusDraft
	if req.Status != "" {
		parsed, ok := ParseStatus(req.Status)
		if !ok {
			return nil, fmt.Errorf(
				"create post: status must be one of draft, published, archived: %w",
				core.ErrInvalidInput,
			)
		}
		status = parsed
	}

	excerpt := strings.TrimSpace(req.Excerpt)
	if excerpt == "" {
		excerpt = defaultExcerpt(req.Content)
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = DefaultCategory
	}

	p := &Post{
		ID:             uuid.New().String(),
		Title:          title,
		Content:        req.Content,
		Excerpt:        excerpt,
		AuthorID:       actor.ID,
		AuthorUsername: actor.Username,
		Status:         StatusDraft,
		Category:       category,
		Tags:           req.Tags,
		FeaturedImage:  req.FeaturedImage,
		Images:         req.Images,
		Videos:         req.Videos,
	}

	if err := s.applyStatus(actor, p, status); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	base := Slugify(title)
	err := s.claimSlug(base, func(slug string) error {
		p.Slug = slug
		return s.repo.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Get returns the post at slug and bumps its view counter. Drafts and
// archived posts are only visible to their author and admins.
func (s *Service) Get(
	ctx context.Context,
	viewer *gate.Principal,
	slug string,
) (*Post, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if !p.IsPublished() && !gate.CanModify(viewer, p.AuthorID) {
		return nil, fmt.Errorf("get post: %w", core.ErrNotFound)
	}

	views, err := s.repo.IncrementViews(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.ViewCount = views

	return p, nil
}

// Resolve looks up a post without touching the view counter.
func (s *Service) Resolve(ctx context.Context, slug string) (*Post, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *Service) Update(
	ctx context.Context,
	actor *gate.Principal,
	slug string,
	req UpdatePostRequest,
) (*Post, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if !gate.CanModify(actor, p.AuthorID) {
		return nil, fmt.Errorf("update post: you can only edit your own posts: %w", core.ErrForbidden)
	}

	titleChanged := false
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("update post: title cannot be empty: %w", core.ErrInvalidInput)
		}
		titleChanged = title != p.Title
		p.Title = title
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, fmt.Errorf("update post: content cannot be empty: %w", core.ErrInvalidInput)
		}
		p.Content = *req.Content
	}
	if req.Excerpt != nil {
		p.Excerpt = strings.TrimSpace(*req.Excerpt)
	}
	if req.Category != nil {
		p.Category = strings.TrimSpace(*req.Category)
		if p.Category == "" {
			p.Category = DefaultCategory
		}
	}
	if req.Tags != nil {
		p.Tags = *req.Tags
	}
	if req.FeaturedImage != nil {
		p.FeaturedImage = req.FeaturedImage
	}
	if req.Images != nil {
		p.Images = *req.Images
	}
	if req.Videos != nil {
		p.Videos = *req.Videos
	}
	if req.Status != nil {
		status, ok := ParseStatus(*req.Status)
		if !ok {
			return nil, fmt.Errorf(
				"update post: status must be one of draft, published, archived: %w",
				core.ErrInvalidInput,
			)
		}
		if err := s.applyStatus(actor, p, status); err != nil {
			return nil, fmt.Errorf("update post: %w", err)
		}
	}

	if !titleChanged {
		if err := s.repo.Update(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	}

	err = s.claimSlug(Slugify(p.Title), func(candidate string) error {
		p.Slug = candidate
		return s.repo.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Delete(ctx context.Context, actor *gate.Principal, slug string) error {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}

	if !gate.CanModify(actor, p.AuthorID) {
		return fmt.Errorf("delete post: you can only delete your own posts: %w", core.ErrForbidden)
	}

	return s.repo.Delete(ctx, p.ID)
}

// List returns one page of posts. Listing anything other than published
// posts is limited to the viewer's own posts unless the viewer is an admin.
func (s *Service) List(
	ctx context.Context,
	viewer *gate.Principal,
	filter ListFilter,
) ([]Post, int, error) {
	filter.Normalize()

	if _, ok := ParseStatus(string(filter.Status)); !ok {
		return nil, 0, fmt.Errorf(
			"list posts: status must be one of draft, published, archived: %w",
			core.ErrInvalidInput,
		)
	}

	if filter.Status != StatusPublished && !viewer.IsAdmin() {
		if viewer == nil {
			return nil, 0, fmt.Errorf("list posts: %w", core.ErrUnauthorized)
		}
		filter.AuthorID = viewer.ID
	}

	return s.repo.List(ctx, filter)
}

// applyStatus moves p to status. Publishing needs publish_post and stamps
// PublishedAt only once.
func (s *Service) applyStatus(actor *gate.Principal, p *Post, status Status) error {
	if status == StatusPublished && p.Status != StatusPublished &&
		!actor.Can(access.PublishPost) {
		return fmt.Errorf("publishing requires the publish_post permission: %w", core.ErrForbidden)
	}

	if status == StatusPublished {
		p.publish(s.now())
		return nil
	}

	p.Status = status
	return nil
}

func (s *Service) claimSlug(base string, try func(slug string) error) error {
	for attempt := range maxSlugAttempts {
		err := try(slugCandidate(base, attempt))
		if errors.Is(err, ErrSlugTaken) {
			continue
		}
		return err
	}
	return fmt.Errorf("claim slug: no free slug for %q: %w", base, core.ErrDuplicateKey)
}
