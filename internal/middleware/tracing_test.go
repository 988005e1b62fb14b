// AngelaMos | 2026
// tracing_test.go

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/middleware"
)

func TestTracingNamesSpanAfterRoute(t *testing.T) {
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))

	var traceID string
	r := chi.NewRouter()
	r.Use(middleware.Tracing(tp.Tracer("test")))
	r.Get("/posts/{slug}", func(w http.ResponseWriter, r *http.Request) {
		traceID = core.TraceIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/broken", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/posts/hello", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/broken", nil))

	ended := spans.Ended()
	require.Len(t, ended, 2)

	ok := ended[0]
	assert.Equal(t, "GET /posts/{slug}", ok.Name())
	assert.Contains(t, ok.Attributes(), attribute.String("http.route", "/posts/{slug}"))
	assert.Contains(t, ok.Attributes(), attribute.Int("http.response.status_code", http.StatusOK))
	assert.Equal(t, codes.Unset, ok.Status().Code)
	assert.Equal(t, ok.SpanContext().TraceID().String(), traceID)

	failed := ended[1]
	assert.Equal(t, "GET /broken", failed.Name())
	assert.Equal(t, codes.Error, failed.Status().Code)
}
