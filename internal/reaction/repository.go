// AngelaMos | 2026
// repository.go

package reaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/cms-blog/internal/core"
)

const tripleConstraint = "reactions_account_post_emoji_key"

type Repository interface {
	// Add inserts r unless the triple exists or the post already holds
	// maxPerPost reactions.
	Add(ctx context.Context, r *Reaction, maxPerPost int) error
	Remove(ctx context.Context, accountID, postID, emojiID string) error
	ListForPost(ctx context.Context, postID string) ([]Row, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Add(ctx context.Context, rec *Reaction, maxPerPost int) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var locked string
		err := tx.GetContext(ctx, &locked,
			`SELECT id FROM posts WHERE id = $1 FOR UPDATE`, rec.PostID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("add reaction: post: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("add reaction: lock post: %w", err)
		}

		var count int
		if err := tx.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM reactions WHERE post_id = $1`, rec.PostID); err != nil {
			return fmt.Errorf("add reaction: count: %w", err)
		}
		if maxPerPost > 0 && count >= maxPerPost {
			return fmt.Errorf(
				"add reaction: post has reached the maximum of %d reactions: %w",
				maxPerPost,
				core.ErrLimitReached,
			)
		}

		err = tx.QueryRowxContext(ctx, `
			INSERT INTO reactions (id, account_id, post_id, emoji_id)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at`,
			rec.ID, rec.AccountID, rec.PostID, rec.EmojiID,
		).Scan(&rec.CreatedAt)
		if err != nil {
			if constraint, ok := core.UniqueViolation(err); ok && constraint == tripleConstraint {
				return fmt.Errorf("add reaction: you already reacted with this emoji: %w",
					core.ErrDuplicateKey)
			}
			if core.ForeignKeyViolation(err) {
				return fmt.Errorf("add reaction: emoji: %w", core.ErrNotFound)
			}
			return fmt.Errorf("add reaction: %w", err)
		}

		return nil
	})
}

func (r *repository) Remove(ctx context.Context, accountID, postID, emojiID string) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM reactions
		WHERE account_id = $1 AND post_id = $2 AND emoji_id = $3`,
		accountID, postID, emojiID)
	if err != nil {
		return fmt.Errorf("remove reaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove reaction: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("remove reaction: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListForPost(ctx context.Context, postID string) ([]Row, error) {
	rows := []Row{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT r.account_id, COALESCE(a.username, '') AS username,
		       e.shortcode, e.url, r.created_at
		FROM reactions r
		JOIN emojis e ON e.id = r.emoji_id
		LEFT JOIN accounts a ON a.id = r.account_id
		WHERE r.post_id = $1
		ORDER BY r.created_at ASC`, postID)
	if err != nil {
		return nil, fmt.Errorf("list reactions: %w", err)
	}
	return rows, nil
}
