// AngelaMos | 2026
// dto.go

package moderation

import (
	"time"
)

type IssueMuteRequest struct {
	Scope    string `json:"scope"    validate:"required,oneof=comment post all"`
	Reason   string `json:"reason"   validate:"required,max=500"`
	Duration int    `json:"duration" validate:"required,min=1,max=52560000"`
}

type BanRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type MuteResponse struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	MutedBy   string    `json:"muted_by"`
	Scope     string    `json:"scope"`
	Reason    string    `json:"reason"`
	ExpiresAt time.Time `json:"expires_at"`
	Active    bool      `json:"active"`
	InEffect  bool      `json:"in_effect"`
	CreatedAt time.Time `json:"created_at"`
}

type BanStatusResponse struct {
	AccountID string     `json:"account_id"`
	IsActive  bool       `json:"is_active"`
	IsBanned  bool       `json:"is_banned"`
	BanReason string     `json:"ban_reason,omitempty"`
	BannedBy  string     `json:"banned_by,omitempty"`
	BannedAt  *time.Time `json:"banned_at,omitempty"`
}

func ToMuteResponse(m *Mute, now time.Time) MuteResponse {
	return MuteResponse{
		ID:        m.ID,
		AccountID: m.AccountID,
		MutedBy:   m.MutedBy,
		Scope:     string(m.Scope),
		Reason:    m.Reason,
		ExpiresAt: m.ExpiresAt,
		Active:    m.Active,
		InEffect:  m.InEffect(now),
		CreatedAt: m.CreatedAt,
	}
}

func ToMuteResponseList(mutes []Mute, now time.Time) []MuteResponse {
	out := make([]MuteResponse, 0, len(mutes))
	for i := range mutes {
		out = append(out, ToMuteResponse(&mutes[i], now))
	}
	return out
}

func toBanStatusResponse(b *BanStatus) BanStatusResponse {
	return BanStatusResponse{
		AccountID: b.AccountID,
		IsActive:  b.IsActive,
		IsBanned:  b.IsBanned,
		BanReason: b.BanReason,
		BannedBy:  b.BannedBy,
		BannedAt:  b.BannedAt,
	}
}
