package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
)

// HTTPObs feeds HTTPMetrics from every request passing through it.
type HTTPObs struct {
	Metrics *HTTPMetrics
}

// Middleware is a no-op when no metrics are configured.
func (o HTTPObs) Middleware(next http.Handler) http.Handler {
	m := o.Metrics
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.InFlight.Inc()
		defer m.InFlight.Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		// Routing has completed by now, so the full pattern is available.
		route := routeLabel(r)
		m.Requests.WithLabelValues(r.Method, route, strconv.Itoa(statusOf(ww))).Inc()
		m.Duration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())
		m.ResponseSize.WithLabelValues(route).Observe(float64(ww.BytesWritten()))
	})
}

// TracingMiddleware opens a server span per request. The span is renamed to
// "METHOD /route/pattern" once routing has finished so names stay
// low-cardinality.
func TracingMiddleware(next http.Handler) http.Handler {
	rename := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		trace.SpanFromContext(r.Context()).SetName(r.Method + " " + routeLabel(r))
	})
	return otelhttp.NewHandler(rename, "http.server",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method
		}),
	)
}

// statusOf treats a handler that wrote nothing as a 200.
func statusOf(ww middleware.WrapResponseWriter) int {
	if s := ww.Status(); s != 0 {
		return s
	}
	return http.StatusOK
}
