// AngelaMos | 2026
// entity.go

package comment

import "time"

const MaxContentLength = 1000

// Comment is a root when ParentID is nil. Replies always point at a root
// of the same post.
type Comment struct {
	ID             string    `db:"id"`
	Content        string    `db:"content"`
	AuthorID       string    `db:"author_id"`
	AuthorUsername string    `db:"author_username"`
	PostID         string    `db:"post_id"`
	ParentID       *string   `db:"parent_id"`
	IsApproved     bool      `db:"is_approved"`
	LikeCount      int       `db:"like_count"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (c *Comment) IsRoot() bool {
	return c.ParentID == nil
}

// Thread is a root comment with its approved replies, oldest first.
type Thread struct {
	Comment
	Replies []Comment
}

// ModerationItem is a comment with the post it belongs to.
type ModerationItem struct {
	Comment
	PostTitle string `db:"post_title"`
	PostSlug  string `db:"post_slug"`
}
