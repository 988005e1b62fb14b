// AngelaMos | 2026
// sink.go

package legacy

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/cms-blog/internal/comment"
	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/emoji"
	"github.com/carterperez-dev/cms-blog/internal/moderation"
	"github.com/carterperez-dev/cms-blog/internal/post"
	"github.com/carterperez-dev/cms-blog/internal/reaction"
	"github.com/carterperez-dev/cms-blog/internal/settings"
	"github.com/carterperez-dev/cms-blog/internal/user"
)

// Sink receives converted rows. Every write is idempotent on the primary
// key so an interrupted import can simply be run again.
type Sink interface {
	Account(ctx context.Context, a *user.Account) error
	LinkBan(ctx context.Context, accountID, bannedBy string) error
	Mute(ctx context.Context, m *moderation.Mute) error
	Post(ctx context.Context, p *post.Post) error
	Comment(ctx context.Context, c *comment.Comment) error
	Like(ctx context.Context, commentID, accountID string) error
	Pack(ctx context.Context, p *emoji.Pack) error
	Emoji(ctx context.Context, e *emoji.Emoji) error
	Reaction(ctx context.Context, r *reaction.Reaction) error
	Settings(ctx context.Context, s *settings.Settings) error
}

type PostgresSink struct {
	db       *sqlx.DB
	settings settings.Repository
}

func NewPostgresSink(db *sqlx.DB) *PostgresSink {
	return &PostgresSink{db: db, settings: settings.NewRepository(db)}
}

// Account is written without banned_by; the banning account may not exist
// yet, so LinkBan fills it in once every account is present.
func (s *PostgresSink) Account(ctx context.Context, a *user.Account) error {
	query := `
		INSERT INTO accounts (
			id, username, email, password_hash, avatar, role, permissions,
			is_active, is_banned, ban_reason, banned_at, created_at, updated_at
		) VALUES (
			:id, :username, :email, :password_hash, :avatar, :role, :permissions,
			:is_active, :is_banned, :ban_reason, :banned_at, :created_at, :updated_at
		)
		ON CONFLICT (id) DO NOTHING`

	return s.exec(ctx, "account", query, a)
}

func (s *PostgresSink) LinkBan(ctx context.Context, accountID, bannedBy string) error {
	query := `UPDATE accounts SET banned_by = $2 WHERE id = $1 AND banned_by IS NULL`

	if _, err := s.db.ExecContext(ctx, query, accountID, bannedBy); err != nil {
		return wrapWrite("link ban", err)
	}
	return nil
}

func (s *PostgresSink) Mute(ctx context.Context, m *moderation.Mute) error {
	query := `
		INSERT INTO mutes (
			id, account_id, muted_by, scope, reason, expires_at, active,
			created_at, updated_at
		) VALUES (
			:id, :account_id, :muted_by, :scope, :reason, :expires_at, :active,
			:created_at, :updated_at
		)
		ON CONFLICT (id) DO NOTHING`

	return s.exec(ctx, "mute", query, m)
}

func (s *PostgresSink) Post(ctx context.Context, p *post.Post) error {
	query := `
		INSERT INTO posts (
			id, title, slug, content, excerpt, author_id, status, category, tags,
			featured_image, images, videos, view_count, published_at,
			created_at, updated_at
		) VALUES (
			:id, :title, :slug, :content, :excerpt, :author_id, :status, :category, :tags,
			:featured_image, :images, :videos, :view_count, :published_at,
			:created_at, :updated_at
		)
		ON CONFLICT (id) DO NOTHING`

	return s.exec(ctx, "post", query, p)
}

func (s *PostgresSink) Comment(ctx context.Context, c *comment.Comment) error {
	query := `
		INSERT INTO comments (
			id, content, author_id, post_id, parent_id, is_approved,
			created_at, updated_at
		) VALUES (
			:id, :content, :author_id, :post_id, :parent_id, :is_approved,
			:created_at, :updated_at
		)
		ON CONFLICT (id) DO NOTHING`

	return s.exec(ctx, "comment", query, c)
}

func (s *PostgresSink) Like(ctx context.Context, commentID, accountID string) error {
	query := `
		INSERT INTO comment_likes (comment_id, account_id)
		VALUES ($1, $2)
		ON CONFLICT (comment_id, account_id) DO NOTHING`

	if _, err := s.db.ExecContext(ctx, query, commentID, accountID); err != nil {
		return wrapWrite("like", err)
	}
	return nil
}

func (s *PostgresSink) Pack(ctx context.Context, p *emoji.Pack) error {
	query := `
		INSERT INTO emoji_packs (
			id, name, description, author_id, is_active, is_public,
			created_at, updated_at
		) VALUES (
			:id, :name, :description, :author_id, :is_active, :is_public,
			:created_at, :updated_at
		)
		ON CONFLICT (id) DO NOTHING`

	return s.exec(ctx, "emoji pack", query, p)
}

func (s *PostgresSink) Emoji(ctx context.Context, e *emoji.Emoji) error {
	query := `
		INSERT INTO emojis (
			id, name, shortcode, url, category, tags, is_custom, pack_id,
			created_at, updated_at
		) VALUES (
			:id, :name, :shortcode, :url, :category, :tags, :is_custom, :pack_id,
			:created_at, :updated_at
		)
		ON CONFLICT (id) DO NOTHING`

	return s.exec(ctx, "emoji", query, e)
}

func (s *PostgresSink) Reaction(ctx context.Context, r *reaction.Reaction) error {
	query := `
		INSERT INTO reactions (id, account_id, post_id, emoji_id, created_at)
		VALUES (:id, :account_id, :post_id, :emoji_id, :created_at)
		ON CONFLICT (id) DO NOTHING`

	return s.exec(ctx, "reaction", query, r)
}

func (s *PostgresSink) Settings(ctx context.Context, st *settings.Settings) error {
	return s.settings.Save(ctx, st)
}

func (s *PostgresSink) exec(ctx context.Context, what, query string, arg any) error {
	if _, err := s.db.NamedExecContext(ctx, query, arg); err != nil {
		return wrapWrite("insert "+what, err)
	}
	return nil
}

// wrapWrite turns constraint failures into sentinels the importer counts as
// skipped rows. Anything else aborts the run.
func wrapWrite(op string, err error) error {
	if constraint, ok := core.UniqueViolation(err); ok {
		return fmt.Errorf("%s: violates %s: %w", op, constraint, core.ErrDuplicateKey)
	}
	if core.ForeignKeyViolation(err) {
		return fmt.Errorf("%s: references a missing row: %w", op, core.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

var _ Sink = (*PostgresSink)(nil)
