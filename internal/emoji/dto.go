// AngelaMos | 2026
// dto.go

package emoji

import "time"

type CreatePackRequest struct {
	Name        string `json:"name"                  validate:"required,max=50"`
	Description string `json:"description,omitempty" validate:"max=500"`
	IsPublic    *bool  `json:"is_public,omitempty"`
}

type CreateEmojiRequest struct {
	Name      string   `json:"name"               validate:"required,max=50"`
	Shortcode string   `json:"shortcode"          validate:"required,max=50"`
	URL       string   `json:"url"                validate:"required,max=500"`
	Category  string   `json:"category,omitempty" validate:"max=50"`
	Tags      []string `json:"tags,omitempty"     validate:"omitempty,max=20,dive,required,max=30"`
	PackID    string   `json:"pack_id"            validate:"required,uuid"`
}

// PackFilter narrows the pack listing; nil fields are ignored.
type PackFilter struct {
	Public   *bool
	AuthorID string
}

type EmojiFilter struct {
	PackID   string
	Category string
	Search   string
}

type PackResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AuthorID    string    `json:"author_id"`
	IsActive    bool      `json:"is_active"`
	IsPublic    bool      `json:"is_public"`
	EmojiCount  int       `json:"emoji_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type EmojiResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Shortcode string    `json:"shortcode"`
	URL       string    `json:"url"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	IsCustom  bool      `json:"is_custom"`
	PackID    string    `json:"pack_id"`
	CreatedAt time.Time `json:"created_at"`
}

func ToPackResponse(p *Pack) PackResponse {
	return PackResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		AuthorID:    p.AuthorID,
		IsActive:    p.IsActive,
		IsPublic:    p.IsPublic,
		EmojiCount:  p.EmojiCount,
		CreatedAt:   p.CreatedAt,
	}
}

func ToEmojiResponse(e *Emoji) EmojiResponse {
	tags := []string(e.Tags)
	if tags == nil {
		tags = []string{}
	}
	return EmojiResponse{
		ID:        e.ID,
		Name:      e.Name,
		Shortcode: e.Shortcode,
		URL:       e.URL,
		Category:  e.Category,
		Tags:      tags,
		IsCustom:  e.IsCustom,
		PackID:    e.PackID,
		CreatedAt: e.CreatedAt,
	}
}
