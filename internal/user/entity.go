// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/carterperez-dev/cms-blog/internal/access"
)

// Account is never hard-deleted; deactivation and bans are flags.
type Account struct {
	ID           string      `db:"id"`
	Username     string      `db:"username"`
	Email        string      `db:"email"`
	PasswordHash string      `db:"password_hash"`
	Avatar       string      `db:"avatar"`
	Role         access.Role `db:"role"`
	Permissions  access.Set  `db:"permissions"`
	IsActive     bool        `db:"is_active"`
	IsBanned     bool        `db:"is_banned"`
	BanReason    *string     `db:"ban_reason"`
	BannedBy     *string     `db:"banned_by"`
	BannedAt     *time.Time  `db:"banned_at"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
}

func (a *Account) IsAdmin() bool {
	return a.Role == access.RoleAdmin
}

const (
	StatusActive   = "active"
	StatusBanned   = "banned"
	StatusInactive = "inactive"
)
