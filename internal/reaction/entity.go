// AngelaMos | 2026
// entity.go

package reaction

import "time"

// Reaction is unique per (account, post, emoji).
type Reaction struct {
	ID        string    `db:"id"`
	AccountID string    `db:"account_id"`
	PostID    string    `db:"post_id"`
	EmojiID   string    `db:"emoji_id"`
	CreatedAt time.Time `db:"created_at"`
}

// Row is one reaction joined with its emoji and reactor.
type Row struct {
	AccountID string    `db:"account_id"`
	Username  string    `db:"username"`
	Shortcode string    `db:"shortcode"`
	URL       string    `db:"url"`
	CreatedAt time.Time `db:"created_at"`
}
