// AngelaMos | 2026
// repository.go

package comment

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

type Repository interface {
	// Create inserts c unless the post already holds maxPerPost comments.
	Create(ctx context.Context, c *Comment, maxPerPost int) error
	GetByID(ctx context.Context, id string) (*Comment, error)
	ListRoots(ctx context.Context, postID string, limit, offset int) ([]Comment, int, error)
	ListReplies(ctx context.Context, rootIDs []string) ([]Comment, error)
	// Delete removes the comment and, for a root, every reply to it.
	Delete(ctx context.Context, id string) (int, error)
	SetApproval(ctx context.Context, id string, approved bool) error
	ListForModeration(ctx context.Context, filter ModerationFilter) ([]ModerationItem, int, error)
	ToggleLike(ctx context.Context, commentID, accountID string) (bool, int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const commentColumns = `c.id, c.content, c.author_id,
		       COALESCE(a.username, '') AS author_username, c.post_id, c.parent_id,
		       c.is_approved,
		       (SELECT COUNT(*) FROM comment_likes l WHERE l.comment_id = c.id) AS like_count,
		       c.created_at, c.updated_at`

const commentFrom = ` FROM comments c LEFT JOIN accounts a ON a.id = c.author_id`

func (r *repository) Create(ctx context.Context, c *Comment, maxPerPost int) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var locked string
		err := tx.GetContext(ctx, &locked,
			`SELECT id FROM posts WHERE id = $1 FOR UPDATE`, c.PostID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("create comment: post: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("create comment: lock post: %w", err)
		}

		var count int
		if err := tx.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM comments WHERE post_id = $1`, c.PostID); err != nil {
			return fmt.Errorf("create comment: count: %w", err)
		}
		if maxPerPost > 0 && count >= maxPerPost {
			return fmt.Errorf(
				"create comment: post has reached the maximum of %d comments: %w",
				maxPerPost,
				core.ErrLimitReached,
			)
		}

		err = tx.QueryRowxContext(ctx, `
			INSERT INTO comments (id, content, author_id, post_id, parent_id, is_approved)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING created_at, updated_at`,
			c.ID,
			c.Content,
			c.AuthorID,
			c.PostID,
			c.ParentID,
			c.IsApproved,
		).Scan(&c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			if core.ForeignKeyViolation(err) {
				return fmt.Errorf("create comment: parent comment: %w", core.ErrNotFound)
			}
			return fmt.Errorf("create comment: %w", err)
		}

		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id string) (*Comment, error) {
	query := `SELECT ` + commentColumns + commentFrom + ` WHERE c.id = $1`

	var c Comment
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get comment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}

	return &c, nil
}

func (r *repository) ListRoots(
	ctx context.Context,
	postID string,
	limit, offset int,
) ([]Comment, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `
		SELECT COUNT(*) FROM comments
		WHERE post_id = $1 AND parent_id IS NULL AND is_approved`, postID); err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	query := `SELECT ` + commentColumns + commentFrom + `
		WHERE c.post_id = $1 AND c.parent_id IS NULL AND c.is_approved
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3`

	roots := []Comment{}
	if err := r.db.SelectContext(ctx, &roots, query, postID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}

	return roots, total, nil
}

func (r *repository) ListReplies(ctx context.Context, rootIDs []string) ([]Comment, error) {
	if len(rootIDs) == 0 {
		return []Comment{}, nil
	}

	query, args, err := sqlx.In(`SELECT `+commentColumns+commentFrom+`
		WHERE c.parent_id IN (?) AND c.is_approved
		ORDER BY c.created_at ASC`, rootIDs)
	if err != nil {
		return nil, fmt.Errorf("build replies query: %w", err)
	}

	replies := []Comment{}
	if err := r.db.SelectContext(ctx, &replies, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}

	return replies, nil
}

func (r *repository) Delete(ctx context.Context, id string) (int, error) {
	var removed int

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		replies, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE parent_id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete replies: %w", err)
		}
		n, err := replies.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete replies: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete comment: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete comment: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("delete comment: %w", core.ErrNotFound)
		}

		removed = int(n + rows)
		return nil
	})

	return removed, err
}

func (r *repository) SetApproval(ctx context.Context, id string, approved bool) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE comments SET is_approved = $2, updated_at = NOW()
		WHERE id = $1`, id, approved)
	if err != nil {
		return fmt.Errorf("set approval: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set approval: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("set approval: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListForModeration(
	ctx context.Context,
	filter ModerationFilter,
) ([]ModerationItem, int, error) {
	filter.Normalize()

	var (
		where []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}

	if filter.Search != "" {
		add(`c.content ILIKE ?`, "%"+core.EscapeLike(filter.Search)+"%")
	}
	switch filter.Status {
	case ModerationApproved:
		add(`c.is_approved = ?`, true)
	case ModerationPending:
		add(`c.is_approved = ?`, false)
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM comments c`+whereClause, args...); err != nil {
		return nil, 0, fmt.Errorf("count moderation queue: %w", err)
	}

	n := len(args)
	query := `SELECT ` + commentColumns + `, p.title AS post_title, p.slug AS post_slug` +
		commentFrom + ` JOIN posts p ON p.id = c.post_id` + whereClause +
		` ORDER BY c.created_at DESC` +
		fmt.Sprintf(` LIMIT $%d OFFSET $%d`, n+1, n+2)

	items := []ModerationItem{}
	if err := r.db.SelectContext(ctx, &items, query,
		append(args, filter.PageSize, filter.Offset())...); err != nil {
		return nil, 0, fmt.Errorf("list moderation queue: %w", err)
	}

	return items, total, nil
}

// insertLikeQuery tolerates a concurrent toggle that inserted the same
// row after our DELETE saw nothing. Either way the like ends up present.
const insertLikeQuery = `INSERT INTO comment_likes (comment_id, account_id) VALUES ($1, $2)
	ON CONFLICT (comment_id, account_id) DO NOTHING`

// ToggleLike removes the like if present and adds it otherwise. The
// primary key on (comment_id, account_id) keeps it a set.
func (r *repository) ToggleLike(
	ctx context.Context,
	commentID, accountID string,
) (bool, int, error) {
	var (
		liked bool
		count int
	)

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			`DELETE FROM comment_likes WHERE comment_id = $1 AND account_id = $2`,
			commentID, accountID)
		if err != nil {
			return fmt.Errorf("unlike comment: %w", err)
		}
		removed, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("unlike comment: %w", err)
		}

		if removed == 0 {
			if _, err := tx.ExecContext(ctx, insertLikeQuery, commentID, accountID); err != nil {
				if core.ForeignKeyViolation(err) {
					return fmt.Errorf("like comment: %w", core.ErrNotFound)
				}
				return fmt.Errorf("like comment: %w", err)
			}
			liked = true
		}

		return tx.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM comment_likes WHERE comment_id = $1`, commentID)
	})

	return liked, count, err
}
