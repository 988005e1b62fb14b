// AngelaMos | 2026
// service.go

package emoji

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/gate"
)

var shortcodePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// NormalizeShortcode accepts both "smile" and ":smile:".
func NormalizeShortcode(s string) string {
	return strings.Trim(strings.TrimSpace(s), ":")
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePack(
	ctx context.Context,
	actor *gate.Principal,
	req CreatePackRequest,
) (*Pack, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("create pack: name is required: %w", core.ErrInvalidInput)
	}

	p := &Pack{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		AuthorID:    actor.ID,
		IsActive:    true,
		IsPublic:    req.IsPublic == nil || *req.IsPublic,
	}

	if err := s.repo.CreatePack(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListPacks(ctx context.Context, filter PackFilter) ([]Pack, error) {
	return s.repo.ListPacks(ctx, filter)
}

// DeletePack rejects packs that still hold emojis; remove the emojis first.
func (s *Service) DeletePack(ctx context.Context, id string) error {
	return s.repo.DeletePack(ctx, id)
}

func (s *Service) CreateEmoji(ctx context.Context, req CreateEmojiRequest) (*Emoji, error) {
	code := NormalizeShortcode(req.Shortcode)
	if !shortcodePattern.MatchString(code) {
		return nil, fmt.Errorf(
			"create emoji: shortcode may only contain letters, digits and underscores: %w",
			core.ErrInvalidInput,
		)
	}

	name := strings.TrimSpace(req.Name)
	url := strings.TrimSpace(req.URL)
	if name == "" || url == "" {
		return nil, fmt.Errorf("create emoji: name and url are required: %w", core.ErrInvalidInput)
	}

	if _, err := s.repo.GetPack(ctx, req.PackID); err != nil {
		return nil, err
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = "general"
	}

	e := &Emoji{
		ID:        uuid.New().String(),
		Name:      name,
		Shortcode: code,
		URL:       url,
		Category:  category,
		Tags:      req.Tags,
		IsCustom:  true,
		PackID:    req.PackID,
	}

	if err := s.repo.CreateEmoji(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) ListEmojis(ctx context.Context, filter EmojiFilter) ([]Emoji, error) {
	return s.repo.ListEmojis(ctx, filter)
}

// Lookup resolves a shortcode, with or without colons.
func (s *Service) Lookup(ctx context.Context, shortcode string) (*Emoji, error) {
	code := NormalizeShortcode(shortcode)
	if code == "" {
		return nil, fmt.Errorf("lookup emoji: emoji is required: %w", core.ErrInvalidInput)
	}
	return s.repo.GetByShortcode(ctx, code)
}

// DeleteEmoji removes the emoji; reactions that used it go with it.
func (s *Service) DeleteEmoji(ctx context.Context, id string) error {
	return s.repo.DeleteEmoji(ctx, id)
}
