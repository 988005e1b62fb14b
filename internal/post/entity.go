// AngelaMos | 2026
// entity.go

package post

import (
	"time"

	"github.com/carterperez-dev/cms-blog/internal/core"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusDraft, StatusPublished, StatusArchived:
		return st, true
	default:
		return "", false
	}
}

const (
	DefaultCategory = "general"
	excerptLength   = 300
)

type Post struct {
	ID             string          `db:"id"`
	Title          string          `db:"title"`
	Slug           string          `db:"slug"`
	Content        string          `db:"content"`
	Excerpt        string          `db:"excerpt"`
	AuthorID       string          `db:"author_id"`
	AuthorUsername string          `db:"author_username"`
	Status         Status          `db:"status"`
	Category       string          `db:"category"`
	Tags           core.StringList `db:"tags"`
	FeaturedImage  *string         `db:"featured_image"`
	Images         core.StringList `db:"images"`
	Videos         core.StringList `db:"videos"`
	ViewCount      int64           `db:"view_count"`
	PublishedAt    *time.Time      `db:"published_at"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func (p *Post) IsPublished() bool {
	return p.Status == StatusPublished
}

// publish stamps PublishedAt the first time the post goes live and never
// again.
func (p *Post) publish(at time.Time) {
	p.Status = StatusPublished
	if p.PublishedAt == nil {
		p.PublishedAt = &at
	}
}

// defaultExcerpt is the first 300 characters of content, rune safe.
func defaultExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLength {
		return content
	}
	return string(runes[:excerptLength])
}
