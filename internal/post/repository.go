// AngelaMos | 2026
// repository.go

package post

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/carterperez-dev/cms-blog/internal/core"
)

const slugConstraint = "posts_slug_key"

// ErrSlugTaken is returned by Create and Update when the slug collides.
// The service retries with the next suffix.
var ErrSlugTaken = fmt.Errorf("slug already exists: %w", core.ErrDuplicateKey)

type Repository interface {
	Create(ctx context.Context, post *Post) error
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) (int64, error)
	List(ctx context.Context, filter ListFilter) ([]Post, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const postColumns = `p.id, p.title, p.slug, p.content, p.excerpt, p.author_id,
		       COALESCE(a.username, '') AS author_username, p.status, p.category,
		       p.tags, p.featured_image, p.images, p.videos, p.view_count,
		       p.published_at, p.created_at, p.updated_at`

const postFrom = ` FROM posts p LEFT JOIN accounts a ON a.id = p.author_id`

func (r *repository) Create(ctx context.Context, post *Post) error {
	query := `
		INSERT INTO posts (id, title, slug, content, excerpt, author_id, status,
		                   category, tags, featured_image, images, videos, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		post.ID,
		post.Title,
		post.Slug,
		post.Content,
		post.Excerpt,
		post.AuthorID,
		string(post.Status),
		post.Category,
		post.Tags,
		post.FeaturedImage,
		post.Images,
		post.Videos,
		post.PublishedAt,
	).Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create post: %w", mapWriteError(err))
	}

	return nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	query := `SELECT ` + postColumns + postFrom + ` WHERE p.slug = $1`

	var post Post
	err := r.db.GetContext(ctx, &post, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get post: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	return &post, nil
}

func (r *repository) Update(ctx context.Context, post *Post) error {
	query := `
		UPDATE posts
		SET title = $2, slug = $3, content = $4, excerpt = $5, status = $6,
		    category = $7, tags = $8, featured_image = $9, images = $10,
		    videos = $11, published_at = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &post.UpdatedAt, query,
		post.ID,
		post.Title,
		post.Slug,
		post.Content,
		post.Excerpt,
		string(post.Status),
		post.Category,
		post.Tags,
		post.FeaturedImage,
		post.Images,
		post.Videos,
		post.PublishedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update post: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update post: %w", mapWriteError(err))
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete post: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) IncrementViews(ctx context.Context, id string) (int64, error) {
	var views int64
	err := r.db.GetContext(ctx, &views,
		`UPDATE posts SET view_count = view_count + 1 WHERE id = $1 RETURNING view_count`,
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("increment views: %w", core.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("increment views: %w", err)
	}
	return views, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Post, int, error) {
	filter.Normalize()

	var (
		where []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}

	add("p.status = ?", string(filter.Status))
	if filter.Category != "" {
		add("p.category = ?", filter.Category)
	}
	if filter.Tag != "" {
		add("p.tags @> jsonb_build_array(?::text)", filter.Tag)
	}
	if filter.AuthorID != "" {
		add("p.author_id = ?", filter.AuthorID)
	}
	if filter.Search != "" {
		add("p.search_vector @@ plainto_tsquery('simple', ?)", filter.Search)
	}

	whereClause := " WHERE " + strings.Join(where, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM posts p`+whereClause, args...); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	order := "p.created_at DESC"
	if filter.Status == StatusPublished {
		order = "p.published_at DESC NULLS LAST, p.created_at DESC"
	}

	n := len(args)
	query := `SELECT ` + postColumns + postFrom + whereClause +
		` ORDER BY ` + order +
		fmt.Sprintf(` LIMIT $%d OFFSET $%d`, n+1, n+2)

	var posts []Post
	if err := r.db.SelectContext(ctx, &posts, query,
		append(args, filter.PageSize, filter.Offset())...); err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}

	return posts, total, nil
}

func mapWriteError(err error) error {
	if constraint, ok := core.UniqueViolation(err); ok && constraint == slugConstraint {
		return ErrSlugTaken
	}
	if core.ForeignKeyViolation(err) {
		return fmt.Errorf("author does not exist: %w", core.ErrNotFound)
	}
	return err
}
