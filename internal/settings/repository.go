// AngelaMos | 2026
// repository.go

package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/cms-blog/internal/core"
)

type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context) (*Settings, error) {
	query := `
		SELECT site_name, site_description, site_icon, site_logo, primary_color,
		       allow_registration, require_email_verification,
		       max_comments_per_post, max_reactions_per_post, updated_at
		FROM site_settings
		WHERE id = 1`

	var s Settings
	err := r.db.GetContext(ctx, &s, query)
	if errors.Is(err, sql.ErrNoRows) {
		d := Defaults()
		return &d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &s, nil
}

// Save upserts the singleton row.
func (r *repository) Save(ctx context.Context, s *Settings) error {
	query := `
		INSERT INTO site_settings (
			id, site_name, site_description, site_icon, site_logo, primary_color,
			allow_registration, require_email_verification,
			max_comments_per_post, max_reactions_per_post
		) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			site_name = EXCLUDED.site_name,
			site_description = EXCLUDED.site_description,
			site_icon = EXCLUDED.site_icon,
			site_logo = EXCLUDED.site_logo,
			primary_color = EXCLUDED.primary_color,
			allow_registration = EXCLUDED.allow_registration,
			require_email_verification = EXCLUDED.require_email_verification,
			max_comments_per_post = EXCLUDED.max_comments_per_post,
			max_reactions_per_post = EXCLUDED.max_reactions_per_post,
			updated_at = NOW()
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &s.UpdatedAt, query,
		s.SiteName,
		s.SiteDescription,
		s.SiteIcon,
		s.SiteLogo,
		s.PrimaryColor,
		s.AllowRegistration,
		s.RequireEmailVerification,
		s.MaxCommentsPerPost,
		s.MaxReactionsPerPost,
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	return nil
}
