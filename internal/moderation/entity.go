// AngelaMos | 2026
// entity.go

package moderation

import (
	"time"

	"github.com/carterperez-dev/cms-blog/internal/access"
)

// Mute is a ledger entry. Rows are never deleted; revoking clears Active
// and expiry needs no write at all.
type Mute struct {
	ID        string       `db:"id"`
	AccountID string       `db:"account_id"`
	MutedBy   string       `db:"muted_by"`
	Scope     access.Scope `db:"scope"`
	Reason    string       `db:"reason"`
	ExpiresAt time.Time    `db:"expires_at"`
	Active    bool         `db:"active"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
}

func (m *Mute) InEffect(now time.Time) bool {
	return m.Active && m.ExpiresAt.After(now)
}

// Restricts reports whether this mute blocks activity of the given scope.
func (m *Mute) Restricts(scope access.Scope, now time.Time) bool {
	return m.InEffect(now) && (m.Scope == scope || m.Scope == access.ScopeAll)
}

// BanStatus is the moderation-relevant state of an account after a ban,
// unban, activate or deactivate.
type BanStatus struct {
	AccountID string
	IsActive  bool
	IsBanned  bool
	BanReason string
	BannedBy  string
	BannedAt  *time.Time
}

const DefaultBanReason = "Rules violation"
