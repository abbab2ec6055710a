package obs

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type routeKey struct{}

// WithRoutePattern pins pattern on ctx. It takes precedence over the chi
// routing context, which is only complete once routing has finished.
func WithRoutePattern(ctx context.Context, pattern string) context.Context {
	return context.WithValue(ctx, routeKey{}, pattern)
}

// RoutePatternFromContext returns the pinned pattern or, failing that, the
// pattern chi has matched so far.
func RoutePatternFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(routeKey{}).(string); ok && v != "" {
		return v
	}
	if rc := chi.RouteContext(ctx); rc != nil {
		return rc.RoutePattern()
	}
	return ""
}

// routeLabel is the low-cardinality route used for metrics and span names.
// Unmatched requests collapse into "unmatched" so stray paths cannot grow
// the label set.
func routeLabel(r *http.Request) string {
	if p := RoutePatternFromContext(r.Context()); p != "" {
		return p
	}
	return "unmatched"
}
