// AngelaMos | 2026
// dto.go

package settings

// UpdateRequest changes only the fields that are present.
type UpdateRequest struct {
	SiteName                 *string `json:"site_name,omitempty"                  validate:"omitempty,min=1,max=100"`
	SiteDescription          *string `json:"site_description,omitempty"           validate:"omitempty,max=500"`
	SiteIcon                 *string `json:"site_icon,omitempty"                  validate:"omitempty,max=500"`
	SiteLogo                 *string `json:"site_logo,omitempty"                  validate:"omitempty,max=500"`
	PrimaryColor             *string `json:"primary_color,omitempty"              validate:"omitempty,hexcolor"`
	AllowRegistration        *bool   `json:"allow_registration,omitempty"`
	RequireEmailVerification *bool   `json:"require_email_verification,omitempty"`
	MaxCommentsPerPost       *int    `json:"max_comments_per_post,omitempty"      validate:"omitempty,min=1,max=10000"`
	MaxReactionsPerPost      *int    `json:"max_reactions_per_post,omitempty"     validate:"omitempty,min=1,max=10000"`
}

func (r UpdateRequest) apply(s *Settings) {
	if r.SiteName != nil {
		s.SiteName = *r.SiteName
	}
	if r.SiteDescription != nil {
		s.SiteDescription = *r.SiteDescription
	}
	if r.SiteIcon != nil {
		s.SiteIcon = *r.SiteIcon
	}
	if r.SiteLogo != nil {
		s.SiteLogo = *r.SiteLogo
	}
	if r.PrimaryColor != nil {
		s.PrimaryColor = *r.PrimaryColor
	}
	if r.AllowRegistration != nil {
		s.AllowRegistration = *r.AllowRegistration
	}
	if r.RequireEmailVerification != nil {
		s.RequireEmailVerification = *r.RequireEmailVerification
	}
	if r.MaxCommentsPerPost != nil {
		s.MaxCommentsPerPost = *r.MaxCommentsPerPost
	}
	if r.MaxReactionsPerPost != nil {
		s.MaxReactionsPerPost = *r.MaxReactionsPerPost
	}
}
