// AngelaMos | 2026
// entity.go

package settings

import "time"

// Settings is the single site-wide configuration row.
type Settings struct {
	SiteName                 string    `db:"site_name"                  json:"site_name"`
	SiteDescription          string    `db:"site_description"           json:"site_description"`
	SiteIcon                 string    `db:"site_icon"                  json:"site_icon"`
	SiteLogo                 string    `db:"site_logo"                  json:"site_logo"`
	PrimaryColor             string    `db:"primary_color"              json:"primary_color"`
	AllowRegistration        bool      `db:"allow_registration"         json:"allow_registration"`
	RequireEmailVerification bool      `db:"require_email_verification" json:"require_email_verification"`
	MaxCommentsPerPost       int       `db:"max_comments_per_post"      json:"max_comments_per_post"`
	MaxReactionsPerPost      int       `db:"max_reactions_per_post"     json:"max_reactions_per_post"`
	UpdatedAt                time.Time `db:"updated_at"                 json:"updated_at"`
}

// Defaults mirrors the column defaults of site_settings.
func Defaults() Settings {
	return Settings{
		SiteName:            "CMS Blog",
		SiteDescription:     "A modern CMS for blogs",
		SiteIcon:            "/favicon.ico",
		PrimaryColor:        "#3B82F6",
		AllowRegistration:   true,
		MaxCommentsPerPost:  100,
		MaxReactionsPerPost: 50,
	}
}
