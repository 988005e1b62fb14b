// AngelaMos | 2026
// gate.go

// Package gate decides, per request, whether the caller may perform an
// operation. Tokens only prove identity; every decision re-reads the
// account and the moderation ledger.
package gate

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/cms-blog/internal/access"
	"github.com/carterperez-dev/cms-blog/internal/auth"
	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/middleware"
)

// Principal is the live view of the caller for the duration of a request.
type Principal struct {
	ID          string
	Username    string
	Role        access.Role
	Permissions access.Set
	IsActive    bool
	IsBanned    bool
}

func (p *Principal) Can(perm access.Permission) bool {
	return p != nil && access.HasPermission(p.Permissions, perm)
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == access.RoleAdmin
}

type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (*auth.Session, error)
}

type AccountLookup interface {
	LookupPrincipal(ctx context.Context, accountID string) (*Principal, error)
}

type RestrictionChecker interface {
	IsRestricted(ctx context.Context, accountID string, scope access.Scope) (bool, error)
}

type principalKey struct{}

// Gate composes session, live account, permission and restriction checks.
type Gate struct {
	sessions     SessionVerifier
	accounts     AccountLookup
	restrictions RestrictionChecker
	chain        []func(http.Handler) http.Handler
}

func New(
	sessions SessionVerifier,
	accounts AccountLookup,
	restrictions RestrictionChecker,
) *Gate {
	return &Gate{
		sessions:     sessions,
		accounts:     accounts,
		restrictions: restrictions,
	}
}

// Authorize runs the decision sequence and returns the live principal on
// ALLOW. perm and scope may be empty to skip those steps.
func (g *Gate) Authorize(
	ctx context.Context,
	token string,
	perm access.Permission,
	scope access.Scope,
) (*Principal, error) {
	if token == "" {
		return nil, deny(ctx, reasonMissingToken,
			core.UnauthorizedError("missing authorization token"))
	}

	session, err := g.sessions.VerifySession(ctx, token)
	if err != nil {
		reason := reasonInvalidToken
		if errors.Is(err, core.ErrTokenExpired) {
			reason = reasonExpiredToken
		}
		return nil, deny(ctx, reason, core.ToAppError(err, "session"))
	}

	principal, err := g.accounts.LookupPrincipal(ctx, session.AccountID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, deny(ctx, reasonUnknownAccount,
				core.UnauthorizedError("account no longer exists"))
		}
		return nil, fmt.Errorf("lookup principal: %w", err)
	}

	if principal.IsBanned {
		return nil, deny(ctx, reasonBanned, core.UnauthorizedError("account is banned"))
	}
	if !principal.IsActive {
		return nil, deny(ctx, reasonInactive, core.UnauthorizedError("account is deactivated"))
	}

	if perm != "" && !principal.Can(perm) {
		return nil, deny(ctx, reasonPermission,
			core.ForbiddenError("insufficient permissions"))
	}

	if scope != "" && g.restrictions != nil {
		restricted, err := g.restrictions.IsRestricted(ctx, principal.ID, scope)
		if err != nil {
			return nil, fmt.Errorf("check restriction: %w", err)
		}
		if restricted {
			return nil, deny(ctx, reasonMuted,
				core.ForbiddenError(mutedMessage(scope)))
		}
	}

	allow()
	return principal, nil
}

// Chain adds mw to run after every admitted request, with the principal
// already on the context. Call it before routes are registered.
func (g *Gate) Chain(mw ...func(http.Handler) http.Handler) {
	g.chain = append(g.chain, mw...)
}

func (g *Gate) admitted(next http.Handler) http.Handler {
	for i := len(g.chain) - 1; i >= 0; i-- {
		next = g.chain[i](next)
	}
	return next
}

// Require guards a route with a permission and, optionally, a mute scope.
func (g *Gate) Require(
	perm access.Permission,
	scope access.Scope,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		next = g.admitted(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := g.Authorize(
				r.Context(),
				middleware.ExtractToken(r),
				perm,
				scope,
			)
			if err != nil {
				core.HandleError(w, err, "account")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// Authenticated admits any live, active account.
func (g *Gate) Authenticated(next http.Handler) http.Handler {
	return g.Require("", "")(next)
}

// Optional attaches the principal when a usable token is present and never
// rejects the request.
func (g *Gate) Optional(next http.Handler) http.Handler {
	next = g.admitted(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := middleware.ExtractToken(r)
		if token != "" {
			if principal, err := g.Authorize(r.Context(), token, "", ""); err == nil {
				r = r.WithContext(WithPrincipal(r.Context(), principal))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	ctx = middleware.WithIdentity(ctx, p.ID, string(p.Role))
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) *Principal {
	if p, ok := ctx.Value(principalKey{}).(*Principal); ok {
		return p
	}
	return nil
}

// CanModify reports whether p may change a resource owned by ownerID.
func CanModify(p *Principal, ownerID string) bool {
	if p == nil {
		return false
	}
	return p.ID == ownerID || p.IsAdmin()
}

func mutedMessage(scope access.Scope) string {
	switch scope {
	case access.ScopeComment:
		return "you are muted from commenting"
	case access.ScopePost:
		return "you are muted from posting"
	default:
		return "you are muted"
	}
}

func deny(ctx context.Context, reason string, appErr *core.AppError) error {
	decisionsTotal.WithLabelValues(outcomeDeny, reason).Inc()
	core.AddSpanEvent(ctx, "gate.deny",
		attribute.String("reason", reason),
		attribute.Int("status", appErr.StatusCode),
	)
	return appErr
}

func allow() {
	decisionsTotal.WithLabelValues(outcomeAllow, reasonNone).Inc()
}
