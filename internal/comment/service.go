// AngelaMos | 2026
// service.go

package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/gate"
	"github.com/carterperez-dev/cms-blog/internal/post"
	"github.com/carterperez-dev/cms-blog/internal/settings"
)

// PostResolver finds the post a comment hangs off.
type PostResolver interface {
	Resolve(ctx context.Context, slug string) (*post.Post, error)
}

type Service struct {
	repo  Repository
	posts PostResolver
}

func NewService(repo Repository, posts PostResolver) *Service {
	return &Service{repo: repo, posts: posts}
}

// Create adds a root comment or, with parentID set, a reply to a root
// comment of the same post. The per-post cap comes from site settings.
func (s *Service) Create(
	ctx context.Context,
	actor *gate.Principal,
	slug string,
	req CreateCommentRequest,
) (*Comment, error) {
	if actor.IsBanned {
		return nil, fmt.Errorf("create comment: account is banned: %w", core.ErrForbidden)
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("create comment: content is required: %w", core.ErrInvalidInput)
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return nil, fmt.Errorf(
			"create comment: content must be at most 1000 characters: %w",
			core.ErrInvalidInput,
		)
	}

	p, err := s.visiblePost(ctx, actor, slug)
	if err != nil {
		return nil, err
	}

	c := &Comment{
		ID:             uuid.New().String(),
		Content:        content,
		AuthorID:       actor.ID,
		AuthorUsername: actor.Username,
		PostID:         p.ID,
		IsApproved:     true,
	}

	if req.ParentID != nil && *req.ParentID != "" {
		parent, err := s.repo.GetByID(ctx, *req.ParentID)
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("parent comment")
		}
		if err != nil {
			return nil, err
		}
		if parent.PostID != p.ID {
			return nil, fmt.Errorf(
				"create comment: parent comment belongs to another post: %w",
				core.ErrInvalidInput,
			)
		}
		if !parent.IsRoot() {
			return nil, fmt.Errorf(
				"create comment: replies can only answer a top level comment: %w",
				core.ErrInvalidInput,
			)
		}
		c.ParentID = &parent.ID
	}

	current, err := settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c, current.MaxCommentsPerPost); err != nil {
		return nil, err
	}

	return c, nil
}

// ListForPost returns approved root comments with their approved replies.
func (s *Service) ListForPost(
	ctx context.Context,
	viewer *gate.Principal,
	slug string,
	page, pageSize int,
) ([]Thread, int, error) {
	filter := ModerationFilter{Page: page, PageSize: pageSize}
	filter.Normalize()

	p, err := s.visiblePost(ctx, viewer, slug)
	if err != nil {
		return nil, 0, err
	}

	roots, total, err := s.repo.ListRoots(ctx, p.ID, filter.PageSize, filter.Offset())
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, 0, len(roots))
	for _, c := range roots {
		ids = append(ids, c.ID)
	}

	replies, err := s.repo.ListReplies(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	byParent := make(map[string][]Comment, len(roots))
	for _, reply := range replies {
		byParent[*reply.ParentID] = append(byParent[*reply.ParentID], reply)
	}

	threads := make([]Thread, 0, len(roots))
	for _, root := range roots {
		threads = append(threads, Thread{Comment: root, Replies: byParent[root.ID]})
	}

	return threads, total, nil
}

// Delete removes a comment. Deleting a root takes its replies with it;
// deleting a reply leaves the root's other replies in place.
func (s *Service) Delete(ctx context.Context, id string) (int, error) {
	return s.repo.Delete(ctx, id)
}

func (s *Service) SetApproval(ctx context.Context, id string, approved bool) (*Comment, error) {
	if err := s.repo.SetApproval(ctx, id, approved); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListForModeration(
	ctx context.Context,
	filter ModerationFilter,
) ([]ModerationItem, int, error) {
	switch filter.Status {
	case "", ModerationApproved, ModerationPending:
	default:
		return nil, 0, fmt.Errorf(
			"list comments: status must be approved or pending: %w",
			core.ErrInvalidInput,
		)
	}
	filter.Normalize()
	return s.repo.ListForModeration(ctx, filter)
}

// ToggleLike flips the actor's like on the comment.
func (s *Service) ToggleLike(
	ctx context.Context,
	actor *gate.Principal,
	commentID string,
) (*LikeResponse, error) {
	if _, err := s.repo.GetByID(ctx, commentID); err != nil {
		return nil, err
	}

	liked, count, err := s.repo.ToggleLike(ctx, commentID, actor.ID)
	if err != nil {
		return nil, err
	}

	return &LikeResponse{Liked: liked, Likes: count}, nil
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
