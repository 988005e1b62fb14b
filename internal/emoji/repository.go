// AngelaMos | 2026
// repository.go

package emoji

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/cms-blog/internal/core"
)

const (
	packNameConstraint  = "emoji_packs_author_name_key"
	shortcodeConstraint = "emojis_shortcode_key"
)

type Repository interface {
	CreatePack(ctx context.Context, p *Pack) error
	GetPack(ctx context.Context, id string) (*Pack, error)
	ListPacks(ctx context.Context, filter PackFilter) ([]Pack, error)
	// DeletePack refuses to remove a pack that still holds emojis.
	DeletePack(ctx context.Context, id string) error

	CreateEmoji(ctx context.Context, e *Emoji) error
	GetByShortcode(ctx context.Context, shortcode string) (*Emoji, error)
	ListEmojis(ctx context.Context, filter EmojiFilter) ([]Emoji, error)
	DeleteEmoji(ctx context.Context, id string) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const packColumns = `p.id, p.name, p.description, p.author_id, p.is_active, p.is_public,
		       (SELECT COUNT(*) FROM emojis e WHERE e.pack_id = p.id) AS emoji_count,
		       p.created_at, p.updated_at`

const emojiColumns = `id, name, shortcode, url, category, tags, is_custom, pack_id,
		       created_at, updated_at`

func (r *repository) CreatePack(ctx context.Context, p *Pack) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO emoji_packs (id, name, description, author_id, is_active, is_public)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Description, p.AuthorID, p.IsActive, p.IsPublic,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if constraint, ok := core.UniqueViolation(err); ok && constraint == packNameConstraint {
			return fmt.Errorf("create pack: you already have a pack with this name: %w",
				core.ErrDuplicateKey)
		}
		return fmt.Errorf("create pack: %w", err)
	}
	return nil
}

func (r *repository) GetPack(ctx context.Context, id string) (*Pack, error) {
	var p Pack
	err := r.db.GetContext(ctx, &p,
		`SELECT `+packColumns+` FROM emoji_packs p WHERE p.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get pack: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get pack: %w", err)
	}
	return &p, nil
}

func (r *repository) ListPacks(ctx context.Context, filter PackFilter) ([]Pack, error) {
	where := []string{"p.is_active"}
	var args []any
	if filter.Public != nil {
		args = append(args, *filter.Public)
		where = append(where, "p.is_public = $"+strconv.Itoa(len(args)))
	}
	if filter.AuthorID != "" {
		args = append(args, filter.AuthorID)
		where = append(where, "p.author_id = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + packColumns + ` FROM emoji_packs p WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY p.created_at DESC`

	packs := []Pack{}
	if err := r.db.SelectContext(ctx, &packs, query, args...); err != nil {
		return nil, fmt.Errorf("list packs: %w", err)
	}
	return packs, nil
}

func (r *repository) DeletePack(ctx context.Context, id string) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var members int
		if err := tx.GetContext(ctx, &members,
			`SELECT COUNT(*) FROM emojis WHERE pack_id = $1`, id); err != nil {
			return fmt.Errorf("delete pack: count emojis: %w", err)
		}
		if members > 0 {
			return fmt.Errorf("delete pack: pack still contains %d emojis: %w",
				members, core.ErrConflictPresent)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM emoji_packs WHERE id = $1`, id)
		if err != nil {
			if core.ForeignKeyViolation(err) {
				return fmt.Errorf("delete pack: pack still contains emojis: %w",
					core.ErrConflictPresent)
			}
			return fmt.Errorf("delete pack: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete pack: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("delete pack: %w", core.ErrNotFound)
		}
		return nil
	})
}

func (r *repository) CreateEmoji(ctx context.Context, e *Emoji) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO emojis (id, name, shortcode, url, category, tags, is_custom, pack_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		e.ID, e.Name, e.Shortcode, e.URL, e.Category, e.Tags, e.IsCustom, e.PackID,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if constraint, ok := core.UniqueViolation(err); ok && constraint == shortcodeConstraint {
			return fmt.Errorf("create emoji: shortcode already exists: %w", core.ErrDuplicateKey)
		}
		if core.ForeignKeyViolation(err) {
			return fmt.Errorf("create emoji: pack: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create emoji: %w", err)
	}
	return nil
}

func (r *repository) GetByShortcode(ctx context.Context, shortcode string) (*Emoji, error) {
	var e Emoji
	err := r.db.GetContext(ctx, &e,
		`SELECT `+emojiColumns+` FROM emojis WHERE shortcode = $1`, shortcode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get emoji: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get emoji: %w", err)
	}
	return &e, nil
}

func (r *repository) ListEmojis(ctx context.Context, filter EmojiFilter) ([]Emoji, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}

	if filter.PackID != "" {
		add("pack_id = ?", filter.PackID)
	}
	if filter.Category != "" {
		add("category = ?", filter.Category)
	}
	if filter.Search != "" {
		add("(name ILIKE ? OR shortcode ILIKE ?)", "%"+core.EscapeLike(filter.Search)+"%")
	}

	query := `SELECT ` + emojiColumns + ` FROM emojis`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY category, shortcode`

	emojis := []Emoji{}
	if err := r.db.SelectContext(ctx, &emojis, query, args...); err != nil {
		return nil, fmt.Errorf("list emojis: %w", err)
	}
	return emojis, nil
}

func (r *repository) DeleteEmoji(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM emojis WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete emoji: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete emoji: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete emoji: %w", core.ErrNotFound)
	}
	return nil
}
