// AngelaMos | 2026
// repository.go

package moderation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/cms-blog/internal/access"
	"github.com/carterperez-dev/cms-blog/internal/core"
)

type Repository interface {
	Create(ctx context.Context, mute *Mute) error
	GetByID(ctx context.Context, id string) (*Mute, error)
	Deactivate(ctx context.Context, id string) error
	ListByAccount(ctx context.Context, accountID string) ([]Mute, error)
	ActiveForAccounts(ctx context.Context, accountIDs []string, now time.Time) ([]Mute, error)
	HasActive(ctx context.Context, accountID string, scopes []access.Scope, now time.Time) (bool, error)
	CountActive(ctx context.Context, now time.Time) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const muteColumns = `id, account_id, muted_by, scope, reason, expires_at, active,
		       created_at, updated_at`

func (r *repository) Create(ctx context.Context, mute *Mute) error {
	query := `
		INSERT INTO mutes (id, account_id, muted_by, scope, reason, expires_at, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		mute.ID,
		mute.AccountID,
		mute.MutedBy,
		string(mute.Scope),
		mute.Reason,
		mute.ExpiresAt,
		mute.Active,
	).Scan(&mute.CreatedAt, &mute.UpdatedAt)
	if err != nil {
		if core.ForeignKeyViolation(err) {
			return fmt.Errorf("create mute: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create mute: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Mute, error) {
	query := `SELECT ` + muteColumns + ` FROM mutes WHERE id = $1`

	var mute Mute
	err := r.db.GetContext(ctx, &mute, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get mute: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get mute: %w", err)
	}

	return &mute, nil
}

func (r *repository) Deactivate(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE mutes
		SET active = FALSE, updated_at = NOW()
		WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("revoke mute: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("revoke mute: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("revoke mute: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListByAccount(
	ctx context.Context,
	accountID string,
) ([]Mute, error) {
	query := `
		SELECT ` + muteColumns + `
		FROM mutes
		WHERE account_id = $1
		ORDER BY created_at DESC`

	mutes := []Mute{}
	if err := r.db.SelectContext(ctx, &mutes, query, accountID); err != nil {
		return nil, fmt.Errorf("list mutes: %w", err)
	}

	return mutes, nil
}

func (r *repository) ActiveForAccounts(
	ctx context.Context,
	accountIDs []string,
	now time.Time,
) ([]Mute, error) {
	if len(accountIDs) == 0 {
		return []Mute{}, nil
	}

	query, args, err := activeForAccountsQuery(accountIDs, now)
	if err != nil {
		return nil, err
	}

	mutes := []Mute{}
	if err := r.db.SelectContext(ctx, &mutes, query, args...); err != nil {
		return nil, fmt.Errorf("list active mutes: %w", err)
	}

	return mutes, nil
}

func (r *repository) HasActive(
	ctx context.Context,
	accountID string,
	scopes []access.Scope,
	now time.Time,
) (bool, error) {
	query, args, err := restrictionQuery(accountID, scopes, now)
	if err != nil {
		return false, err
	}

	var restricted bool
	if err := r.db.GetContext(ctx, &restricted, query, args...); err != nil {
		return false, fmt.Errorf("check restriction: %w", err)
	}

	return restricted, nil
}

func (r *repository) CountActive(ctx context.Context, now time.Time) (int, error) {
	var n int
	if err := r.db.GetContext(
		ctx,
		&n,
		`SELECT COUNT(*) FROM mutes WHERE active AND expires_at > $1`,
		now,
	); err != nil {
		return 0, fmt.Errorf("count active mutes: %w", err)
	}
	return n, nil
}

func activeForAccountsQuery(accountIDs []string, now time.Time) (string, []any, error) {
	query, args, err := sqlx.In(`
		SELECT `+muteColumns+`
		FROM mutes
		WHERE account_id IN (?) AND active AND expires_at > ?
		ORDER BY created_at DESC`, accountIDs, now)
	if err != nil {
		return "", nil, fmt.Errorf("build active mutes query: %w", err)
	}
	return sqlx.Rebind(sqlx.DOLLAR, query), args, nil
}

// restrictionQuery expands scopes into an IN list. An empty scope list is
// an error from sqlx.In.
func restrictionQuery(
	accountID string,
	scopes []access.Scope,
	now time.Time,
) (string, []any, error) {
	names := make([]string, 0, len(scopes))
	for _, s := range scopes {
		names = append(names, string(s))
	}

	query, args, err := sqlx.In(`
		SELECT EXISTS(
			SELECT 1 FROM mutes
			WHERE account_id = ? AND active AND expires_at > ? AND scope IN (?)
		)`, accountID, now, names)
	if err != nil {
		return "", nil, fmt.Errorf("build restriction query: %w", err)
	}
	return sqlx.Rebind(sqlx.DOLLAR, query), args, nil
}
