// AngelaMos | 2026
// routes.go

package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/cms-blog/internal/access"
	"github.com/carterperez-dev/cms-blog/internal/admin"
	"github.com/carterperez-dev/cms-blog/internal/auth"
	"github.com/carterperez-dev/cms-blog/internal/comment"
	"github.com/carterperez-dev/cms-blog/internal/emoji"
	"github.com/carterperez-dev/cms-blog/internal/gate"
	"github.com/carterperez-dev/cms-blog/internal/media"
	"github.com/carterperez-dev/cms-blog/internal/moderation"
	"github.com/carterperez-dev/cms-blog/internal/post"
	"github.com/carterperez-dev/cms-blog/internal/reaction"
	"github.com/carterperez-dev/cms-blog/internal/settings"
	"github.com/carterperez-dev/cms-blog/internal/user"
)

// API is everything mounted under /v1. Media and Admin are optional.
type API struct {
	Gate        *gate.Gate
	Settings    settings.Service
	AuthLimiter func(http.Handler) http.Handler

	Auth         *auth.Handler
	Users        *user.Handler
	Moderation   *moderation.Handler
	Posts        *post.Handler
	Comments     *comment.Handler
	Reactions    *reaction.Handler
	Emojis       *emoji.Handler
	SiteSettings *settings.Handler
	Media        *media.Handler
	Admin        *admin.Handler
}

func (a API) Mount(r chi.Router) {
	limiter := a.AuthLimiter
	if limiter == nil {
		limiter = passthrough
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(settings.Inject(a.Settings))

		a.Auth.RegisterRoutes(r, limiter)
		a.Users.RegisterRoutes(r, a.Gate.Authenticated)
		a.SiteSettings.RegisterRoutes(r)

		a.Posts.RegisterRoutes(r, a.Gate)
		a.Comments.RegisterRoutes(r, a.Gate)
		a.Reactions.RegisterRoutes(r, a.Gate)
		a.Emojis.RegisterRoutes(r, a.Gate)
		if a.Media != nil {
			a.Media.RegisterRoutes(r, a.Gate)
		}

		r.Route("/admin", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(a.Gate.Require(access.ManageUsers, ""))
				a.Users.RegisterAdminRoutes(r)
				a.Moderation.RegisterRoutes(r)
				a.SiteSettings.RegisterAdminRoutes(r)
			})

			r.Group(func(r chi.Router) {
				r.Use(a.Gate.Require(access.ModerateComments, ""))
				a.Comments.RegisterAdminRoutes(r)
			})

			if a.Admin != nil {
				r.Group(func(r chi.Router) {
					r.Use(a.Gate.Require(access.ViewAnalytics, ""))
					a.Admin.RegisterRoutes(r)
				})
			}
		})
	})
}

func passthrough(next http.Handler) http.Handler {
	return next
}
