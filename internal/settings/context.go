// AngelaMos | 2026
// context.go

package settings

import (
	"context"
	"net/http"
)

type serviceKey struct{}

// Inject makes svc available to every handler below it.
func Inject(svc Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithService(r.Context(), svc)))
		})
	}
}

func WithService(ctx context.Context, svc Service) context.Context {
	return context.WithValue(ctx, serviceKey{}, svc)
}

// FromContext returns the injected service, or nil outside a request.
func FromContext(ctx context.Context) Service {
	if svc, ok := ctx.Value(serviceKey{}).(Service); ok {
		return svc
	}
	return nil
}

// Current loads the settings from the service in ctx, falling back to the
// column defaults when none was injected.
func Current(ctx context.Context) (*Settings, error) {
	svc := FromContext(ctx)
	if svc == nil {
		d := Defaults()
		return &d, nil
	}
	return svc.Get(ctx)
}
