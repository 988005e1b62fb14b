// AngelaMos | 2026
// dto.go

package post

import (
	"time"
)

type CreatePostRequest struct {
	Title         string   `json:"title"                    validate:"required,max=200"`
	Content       string   `json:"content"                  validate:"required"`
	Excerpt       string   `json:"excerpt,omitempty"        validate:"omitempty,max=300"`
	Status        string   `json:"status,omitempty"         validate:"omitempty,oneof=draft published archived"`
	Category      string   `json:"category,omitempty"       validate:"omitempty,max=50"`
	Tags          []string `json:"tags,omitempty"           validate:"omitempty,max=20,dive,required,max=30"`
	FeaturedImage *string  `json:"featured_image,omitempty" validate:"omitempty,max=500"`
	Images        []string `json:"images,omitempty"         validate:"omitempty,dive,required,max=500"`
	Videos        []string `json:"videos,omitempty"         validate:"omitempty,dive,required,max=500"`
}

type UpdatePostRequest struct {
	Title         *string   `json:"title,omitempty"          validate:"omitempty,min=1,max=200"`
	Content       *string   `json:"content,omitempty"        validate:"omitempty,min=1"`
	Excerpt       *string   `json:"excerpt,omitempty"        validate:"omitempty,max=300"`
	Status        *string   `json:"status,omitempty"         validate:"omitempty,oneof=draft published archived"`
	Category      *string   `json:"category,omitempty"       validate:"omitempty,min=1,max=50"`
	Tags          *[]string `json:"tags,omitempty"           validate:"omitempty,max=20,dive,required,max=30"`
	FeaturedImage *string   `json:"featured_image,omitempty" validate:"omitempty,max=500"`
	Images        *[]string `json:"images,omitempty"         validate:"omitempty,dive,required,max=500"`
	Videos        *[]string `json:"videos,omitempty"         validate:"omitempty,dive,required,max=500"`
}

type PostResponse struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Content        string     `json:"content"`
	Excerpt        string     `json:"excerpt"`
	AuthorID       string     `json:"author_id"`
	AuthorUsername string     `json:"author_username,omitempty"`
	Status         string     `json:"status"`
	Category       string     `json:"category"`
	Tags           []string   `json:"tags"`
	FeaturedImage  *string    `json:"featured_image,omitempty"`
	Images         []string   `json:"images"`
	Videos         []string   `json:"videos"`
	ViewCount      int64      `json:"view_count"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ListFilter is compiled into SQL one optional field at a time.
type ListFilter struct {
	Page     int
	PageSize int
	Status   Status
	Category string
	Tag      string
	AuthorID string
	Search   string
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 10
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
	if f.Status == "" {
		f.Status = StatusPublished
	}
}

func (f *ListFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func ToPostResponse(p *Post) PostResponse {
	return PostResponse{
		ID:             p.ID,
		Title:          p.Title,
		Slug:           p.Slug,
		Content:        p.Content,
		Excerpt:        p.Excerpt,
		AuthorID:       p.AuthorID,
		AuthorUsername: p.AuthorUsername,
		Status:         string(p.Status),
		Category:       p.Category,
		Tags:           nonNil(p.Tags),
		FeaturedImage:  p.FeaturedImage,
		Images:         nonNil(p.Images),
		Videos:         nonNil(p.Videos),
		ViewCount:      p.ViewCount,
		PublishedAt:    p.PublishedAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func ToPostResponseList(posts []Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, ToPostResponse(&posts[i]))
	}
	return out
}
