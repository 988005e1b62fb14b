// AngelaMos | 2026
// convert.go

package legacy

import (
	"fmt"
	"strings"

	"github.com/carterperez-dev/cms-blog/internal/access"
	"github.com/carterperez-dev/cms-blog/internal/comment"
	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/emoji"
	"github.com/carterperez-dev/cms-blog/internal/moderation"
	"github.com/carterperez-dev/cms-blog/internal/post"
	"github.com/carterperez-dev/cms-blog/internal/reaction"
	"github.com/carterperez-dev/cms-blog/internal/settings"
	"github.com/carterperez-dev/cms-blog/internal/user"
)

const (
	kindUser     = "user"
	kindMute     = "mute"
	kindPost     = "post"
	kindComment  = "comment"
	kindPack     = "pack"
	kindEmoji    = "emoji"
	kindReaction = "reaction"
)

// ToAccount keeps the stored bcrypt hash; it is upgraded to argon2id on the
// account's next login. An empty permission list falls back to the role
// defaults, a non-empty one is kept as an override.
func ToAccount(d UserDoc) (*user.Account, error) {
	username := strings.TrimSpace(d.Username)
	email := strings.ToLower(strings.TrimSpace(d.Email))
	if username == "" || email == "" || d.Password == "" {
		return nil, fmt.Errorf("user %s: missing username, email or password: %w",
			d.ID.Hex(), core.ErrInvalidInput)
	}

	role, err := access.ParseRole(d.Role)
	if err != nil {
		role = access.RoleUser
	}

	perms := access.RolePermissions(role)
	if len(d.Permissions) > 0 {
		parsed := make([]access.Permission, 0, len(d.Permissions))
		for _, raw := range d.Permissions {
			if p, err := access.ParsePermission(raw); err == nil {
				parsed = append(parsed, p)
			}
		}
		perms = access.NewSet(parsed...)
	}

	a := &user.Account{
		ID:           MapID(kindUser, d.ID),
		Username:     username,
		Email:        email,
		PasswordHash: d.Password,
		Role:         role,
		Permissions:  perms,
		IsActive:     d.IsActive == nil || *d.IsActive,
		IsBanned:     d.IsBanned,
		BannedBy:     mapOptionalID(kindUser, d.BannedBy),
		BannedAt:     d.BannedAt,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.Avatar != nil {
		a.Avatar = *d.Avatar
	}
	if d.IsBanned {
		a.IsActive = false
		reason := moderation.DefaultBanReason
		if d.BanReason != nil && strings.TrimSpace(*d.BanReason) != "" {
			reason = strings.TrimSpace(*d.BanReason)
		}
		a.BanReason = &reason
	}

	return a, nil
}

func ToMute(d MuteDoc) (*moderation.Mute, error) {
	scope, err := access.ParseScope(d.Type)
	if err != nil {
		return nil, fmt.Errorf("mute %s: %v: %w", d.ID.Hex(), err, core.ErrInvalidInput)
	}

	return &moderation.Mute{
		ID:        MapID(kindMute, d.ID),
		AccountID: MapID(kindUser, d.User),
		MutedBy:   MapID(kindUser, d.MutedBy),
		Scope:     scope,
		Reason:    d.Reason,
		ExpiresAt: d.ExpiresAt,
		Active:    d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

func ToPost(d PostDoc) (*post.Post, error) {
	if strings.TrimSpace(d.Title) == "" {
		return nil, fmt.Errorf("post %s: missing title: %w", d.ID.Hex(), core.ErrInvalidInput)
	}

	status, ok := post.ParseStatus(d.Status)
	if !ok {
		status = post.StatusDraft
	}

	slug := strings.TrimSpace(d.Slug)
	if slug == "" {
		slug = post.Slugify(d.Title)
	}

	category := strings.TrimSpace(d.Category)
	if category == "" {
		category = post.DefaultCategory
	}

	p := &post.Post{
		ID:            MapID(kindPost, d.ID),
		Title:         d.Title,
		Slug:          slug,
		Content:       d.Content,
		Excerpt:       d.Excerpt,
		AuthorID:      MapID(kindUser, d.Author),
		Status:        status,
		Category:      category,
		Tags:          d.Tags,
		FeaturedImage: d.FeaturedImage,
		Images:        d.Images,
		Videos:        d.Videos,
		ViewCount:     d.ViewCount,
		PublishedAt:   d.PublishedAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if status == post.StatusPublished && p.PublishedAt == nil {
		at := d.CreatedAt
		p.PublishedAt = &at
	}

	return p, nil
}

func ToComment(d CommentDoc) *comment.Comment {
	return &comment.Comment{
		ID:         MapID(kindComment, d.ID),
		Content:    d.Content,
		AuthorID:   MapID(kindUser, d.Author),
		PostID:     MapID(kindPost, d.Post),
		ParentID:   mapOptionalID(kindComment, d.ParentComment),
		IsApproved: d.IsApproved == nil || *d.IsApproved,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func ToPack(d PackDoc) *emoji.Pack {
	return &emoji.Pack{
		ID:          MapID(kindPack, d.ID),
		Name:        strings.TrimSpace(d.Name),
		Description: d.Description,
		AuthorID:    MapID(kindUser, d.Author),
		IsActive:    d.IsActive == nil || *d.IsActive,
		IsPublic:    d.IsPublic == nil || *d.IsPublic,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func ToEmoji(d EmojiDoc) (*emoji.Emoji, error) {
	code := emoji.NormalizeShortcode(d.Shortcode)
	if code == "" || d.URL == "" {
		return nil, fmt.Errorf("emoji %s: missing shortcode or url: %w", d.ID.Hex(), core.ErrInvalidInput)
	}

	category := strings.TrimSpace(d.Category)
	if category == "" {
		category = "general"
	}

	return &emoji.Emoji{
		ID:        MapID(kindEmoji, d.ID),
		Name:      d.Name,
		Shortcode: code,
		URL:       d.URL,
		Category:  category,
		Tags:      d.Tags,
		IsCustom:  d.IsCustom == nil || *d.IsCustom,
		PackID:    MapID(kindPack, d.Pack),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

func ToReaction(d ReactionDoc) *reaction.Reaction {
	return &reaction.Reaction{
		ID:        MapID(kindReaction, d.ID),
		AccountID: MapID(kindUser, d.User),
		PostID:    MapID(kindPost, d.Post),
		EmojiID:   MapID(kindEmoji, d.Emoji),
		CreatedAt: d.CreatedAt,
	}
}

// ToSettings overlays the stored values on the defaults; zero values keep
// the default.
func ToSettings(d SettingsDoc) *settings.Settings {
	s := settings.Defaults()
	if d.SiteName != "" {
		s.SiteName = d.SiteName
	}
	if d.SiteDescription != "" {
		s.SiteDescription = d.SiteDescription
	}
	if d.SiteIcon != "" {
		s.SiteIcon = d.SiteIcon
	}
	s.SiteLogo = d.SiteLogo
	if d.PrimaryColor != "" {
		s.PrimaryColor = d.PrimaryColor
	}
	if d.AllowRegistration != nil {
		s.AllowRegistration = *d.AllowRegistration
	}
	s.RequireEmailVerification = d.RequireEmailVerification
	if d.MaxCommentsPerPost > 0 {
		s.MaxCommentsPerPost = d.MaxCommentsPerPost
	}
	if d.MaxReactionsPerPost > 0 {
		s.MaxReactionsPerPost = d.MaxReactionsPerPost
	}
	return &s
}
