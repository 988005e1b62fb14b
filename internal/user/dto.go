// AngelaMos | 2026
// dto.go

package user

import (
	"time"

	"github.com/carterperez-dev/cms-blog/internal/moderation"
)

type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=30"`
	Avatar   *string `json:"avatar,omitempty"   validate:"omitempty,max=500"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin moderator author user"`
}

type UpdatePermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"required,dive,required"`
}

type AccountResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Avatar      string     `json:"avatar"`
	Role        string     `json:"role"`
	Permissions []string   `json:"permissions"`
	IsActive    bool       `json:"is_active"`
	IsBanned    bool       `json:"is_banned"`
	BanReason   *string    `json:"ban_reason,omitempty"`
	BannedBy    *string    `json:"banned_by,omitempty"`
	BannedAt    *time.Time `json:"banned_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// AdminAccountResponse adds the mutes currently in effect.
type AdminAccountResponse struct {
	AccountResponse
	ActiveMutes []moderation.MuteResponse `json:"active_mutes"`
}

type ListFilter struct {
	Page     int
	PageSize int
	Search   string
	Role     string
	Status   string
}

func (f *ListFilter) Normalize() {
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

func (f *ListFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

func ToAccountResponse(a *Account) AccountResponse {
	return AccountResponse{
		ID:          a.ID,
		Username:    a.Username,
		Email:       a.Email,
		Avatar:      a.Avatar,
		Role:        string(a.Role),
		Permissions: a.Permissions.Strings(),
		IsActive:    a.IsActive,
		IsBanned:    a.IsBanned,
		BanReason:   a.BanReason,
		BannedBy:    a.BannedBy,
		BannedAt:    a.BannedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
