// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	ContentCounts(ctx context.Context) (*ContentStats, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ContentCounts(ctx context.Context) (*ContentStats, error) {
	var stats ContentStats
	err := r.db.GetContext(ctx, &stats, `
		SELECT
			(SELECT COUNT(*) FROM accounts) AS accounts,
			(SELECT COUNT(*) FROM accounts WHERE is_banned) AS banned_accounts,
			(SELECT COUNT(*) FROM posts WHERE status = 'published') AS published_posts,
			(SELECT COUNT(*) FROM posts WHERE status = 'draft') AS draft_posts,
			(SELECT COUNT(*) FROM comments) AS comments,
			(SELECT COUNT(*) FROM comments WHERE NOT is_approved) AS pending_comments,
			(SELECT COUNT(*) FROM reactions) AS reactions,
			(SELECT COUNT(*) FROM emojis) AS emojis`)
	if err != nil {
		return nil, fmt.Errorf("count content: %w", err)
	}
	return &stats, nil
}
