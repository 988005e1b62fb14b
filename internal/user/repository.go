// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carterperez-dev/cms-blog/internal/access"
	"github.com/carterperez-dev/cms-blog/internal/core"
)

type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	UpdateProfile(ctx context.Context, account *Account) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateRole(ctx context.Context, id string, role access.Role, perms access.Set) error
	UpdatePermissions(ctx context.Context, id string, perms access.Set) error
	List(ctx context.Context, filter ListFilter) ([]Account, int, error)

	Exists(ctx context.Context, id string) (bool, error)
	IsBanned(ctx context.Context, id string) (bool, error)
	SetBan(ctx context.Context, id, actorID, reason string, at time.Time) error
	ClearBan(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const accountColumns = `id, username, email, password_hash, avatar, role, permissions,
		       is_active, is_banned, ban_reason, banned_by, banned_at,
		       created_at, updated_at`

func (r *repository) Create(ctx context.Context, account *Account) error {
	query := `
		INSERT INTO accounts (id, username, email, password_hash, avatar, role, permissions)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING is_active, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		account.ID,
		account.Username,
		account.Email,
		account.PasswordHash,
		account.Avatar,
		string(account.Role),
		account.Permissions,
	).Scan(&account.IsActive, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create account: %w", duplicateError(err))
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	var account Account
	err := r.db.GetContext(ctx, &account, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get account: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	return &account, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE LOWER(email) = LOWER($1)`

	var account Account
	err := r.db.GetContext(ctx, &account, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get account by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get account by email: %w", err)
	}

	return &account, nil
}

func (r *repository) UpdateProfile(ctx context.Context, account *Account) error {
	query := `
		UPDATE accounts
		SET username = $2, avatar = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &account.UpdatedAt, query,
		account.ID,
		account.Username,
		account.Avatar,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update profile: %w", duplicateError(err))
	}

	return nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	return r.execOne(ctx, "update password", `
		UPDATE accounts
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1`, id, passwordHash)
}

func (r *repository) UpdateRole(
	ctx context.Context,
	id string,
	role access.Role,
	perms access.Set,
) error {
	return r.execOne(ctx, "update role", `
		UPDATE accounts
		SET role = $2, permissions = $3, updated_at = NOW()
		WHERE id = $1`, id, string(role), perms)
}

func (r *repository) UpdatePermissions(
	ctx context.Context,
	id string,
	perms access.Set,
) error {
	return r.execOne(ctx, "update permissions", `
		UPDATE accounts
		SET permissions = $2, updated_at = NOW()
		WHERE id = $1`, id, perms)
}

func (r *repository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(
		ctx,
		&exists,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)`,
		id,
	); err != nil {
		return false, fmt.Errorf("check account exists: %w", err)
	}
	return exists, nil
}

func (r *repository) IsBanned(ctx context.Context, id string) (bool, error) {
	var banned bool
	err := r.db.GetContext(ctx, &banned, `SELECT is_banned FROM accounts WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("account %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return false, fmt.Errorf("check account ban: %w", err)
	}
	return banned, nil
}

func (r *repository) SetBan(
	ctx context.Context,
	id, actorID, reason string,
	at time.Time,
) error {
	return r.execOne(ctx, "ban account", `
		UPDATE accounts
		SET is_banned = TRUE, ban_reason = $2, banned_by = $3, banned_at = $4,
		    is_active = FALSE, updated_at = NOW()
		WHERE id = $1`, id, reason, actorID, at)
}

func (r *repository) ClearBan(ctx context.Context, id string) error {
	return r.execOne(ctx, "unban account", `
		UPDATE accounts
		SET is_banned = FALSE, ban_reason = NULL, banned_by = NULL, banned_at = NULL,
		    is_active = TRUE, updated_at = NOW()
		WHERE id = $1`, id)
}

func (r *repository) SetActive(ctx context.Context, id string, active bool) error {
	return r.execOne(ctx, "set account active", `
		UPDATE accounts
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1`, id, active)
}

func (r *repository) List(
	ctx context.Context,
	filter ListFilter,
) ([]Account, int, error) {
	filter.Normalize()

	conditions := []string{"TRUE"}
	var args []any
	argIdx := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(username ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+core.EscapeLike(filter.Search)+"%")
		argIdx++
	}

	if filter.Role != "" {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, filter.Role)
		argIdx++
	}

	switch filter.Status {
	case StatusActive:
		conditions = append(conditions, "is_active AND NOT is_banned")
	case StatusBanned:
		conditions = append(conditions, "is_banned")
	case StatusInactive:
		conditions = append(conditions, "NOT is_active")
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int
	if err := r.db.GetContext(
		ctx,
		&total,
		"SELECT COUNT(*) FROM accounts WHERE "+whereClause,
		args...,
	); err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM accounts
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		accountColumns, whereClause, argIdx, argIdx+1)

	args = append(args, filter.PageSize, filter.Offset())

	var accounts []Account
	if err := r.db.SelectContext(ctx, &accounts, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}

	return accounts, total, nil
}

func (r *repository) execOne(
	ctx context.Context,
	op, query string,
	args ...any,
) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, duplicateError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}

// duplicateError names the field behind a unique violation so the caller
// can tell username and email collisions apart.
func duplicateError(err error) error {
	constraint, ok := core.UniqueViolation(err)
	if !ok {
		return err
	}

	switch constraint {
	case "accounts_username_key":
		return fmt.Errorf("username already exists: %w", core.ErrDuplicateKey)
	case "accounts_email_key":
		return fmt.Errorf("email already exists: %w", core.ErrDuplicateKey)
	default:
		return fmt.Errorf("account already exists: %w", core.ErrDuplicateKey)
	}
}
