// AngelaMos | 2026
// dto.go

package comment

import "time"

type CreateCommentRequest struct {
	Content  string  `json:"content"             validate:"required"`
	ParentID *string `json:"parent_id,omitempty" validate:"omitempty,uuid"`
}

type ApprovalRequest struct {
	IsApproved *bool `json:"is_approved" validate:"required"`
}

type CommentResponse struct {
	ID             string            `json:"id"`
	Content        string            `json:"content"`
	AuthorID       string            `json:"author_id"`
	AuthorUsername string            `json:"author_username,omitempty"`
	PostID         string            `json:"post_id"`
	ParentID       *string           `json:"parent_id,omitempty"`
	IsApproved     bool              `json:"is_approved"`
	Likes          int               `json:"likes"`
	Replies        []CommentResponse `json:"replies,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type ModerationResponse struct {
	CommentResponse
	PostTitle string `json:"post_title"`
	PostSlug  string `json:"post_slug"`
}

type LikeResponse struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

const (
	ModerationApproved = "approved"
	ModerationPending  = "pending"
)

// ModerationFilter selects comments for the moderation queue.
type ModerationFilter struct {
	Page     int
	PageSize int
	Search   string
	Status   string
}

func (f *ModerationFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
}

func (f *ModerationFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

func ToCommentResponse(c *Comment) CommentResponse {
	return CommentResponse{
		ID:             c.ID,
		Content:        c.Content,
		AuthorID:       c.AuthorID,
		AuthorUsername: c.AuthorUsername,
		PostID:         c.PostID,
		ParentID:       c.ParentID,
		IsApproved:     c.IsApproved,
		Likes:          c.LikeCount,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func ToThreadResponse(t *Thread) CommentResponse {
	resp := ToCommentResponse(&t.Comment)
	resp.Replies = make([]CommentResponse, 0, len(t.Replies))
	for i := range t.Replies {
		resp.Replies = append(resp.Replies, ToCommentResponse(&t.Replies[i]))
	}
	return resp
}

func ToModerationResponse(m *ModerationItem) ModerationResponse {
	return ModerationResponse{
		CommentResponse: ToCommentResponse(&m.Comment),
		PostTitle:       m.PostTitle,
		PostSlug:        m.PostSlug,
	}
}
