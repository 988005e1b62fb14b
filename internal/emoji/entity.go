// AngelaMos | 2026
// entity.go

package emoji

import (
	"time"

	"github.com/carterperez-dev/cms-blog/internal/core"
)

// Pack groups emojis. Every emoji belongs to exactly one pack.
type Pack struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	AuthorID    string    `db:"author_id"`
	IsActive    bool      `db:"is_active"`
	IsPublic    bool      `db:"is_public"`
	EmojiCount  int       `db:"emoji_count"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type Emoji struct {
	ID        string          `db:"id"`
	Name      string          `db:"name"`
	Shortcode string          `db:"shortcode"`
	URL       string          `db:"url"`
	Category  string          `db:"category"`
	Tags      core.StringList `db:"tags"`
	IsCustom  bool            `db:"is_custom"`
	PackID    string          `db:"pack_id"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}
