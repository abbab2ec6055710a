package audit

import (
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Route describes the audit entry produced for one endpoint.
type Route struct {
	Action       string
	ResourceType string
	// ResourceIDParam names the chi URL parameter holding the resource id.
	// When empty the last segment of the Location response header is used.
	ResourceIDParam string
}

// Recorder writes an audit entry after a handler succeeds.
type Recorder struct {
	Service *Service
	OnError func(error)
}

// Middleware records successful (2xx) responses for the route.
func (r Recorder) Middleware(route Route) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if r.Service == nil || !r.Service.Enabled {
				next.ServeHTTP(w, req)
				return
			}
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			next.ServeHTTP(ww, req)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			if status < 200 || status >= 300 {
				return
			}
			id := ""
			if route.ResourceIDParam != "" {
				id = chi.URLParam(req, route.ResourceIDParam)
			} else if loc := ww.Header().Get("Location"); loc != "" {
				id = path.Base(loc)
			}
			err := r.Service.Record(req.Context(), req, Event{
				Action:       route.Action,
				ResourceType: route.ResourceType,
				ResourceID:   id,
				Status:       status,
			})
			if err != nil && r.OnError != nil {
				r.OnError(err)
			}
		})
	}
}
