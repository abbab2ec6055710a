package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/shipledger/internal/audit"
	"github.com/noah-isme/shipledger/internal/auth"
	"github.com/noah-isme/shipledger/internal/common"
	"github.com/noah-isme/shipledger/internal/customer"
	"github.com/noah-isme/shipledger/internal/health"
	"github.com/noah-isme/shipledger/internal/invoice"
	"github.com/noah-isme/shipledger/internal/obs"
	"github.com/noah-isme/shipledger/internal/ratelimit"
	"github.com/noah-isme/shipledger/internal/security"
	"github.com/noah-isme/shipledger/internal/shipment"
)

// RouterOptions toggles the ambient middleware stack.
type RouterOptions struct {
	Tracing     bool
	HTTPMetrics *obs.HTTPMetrics
	// APILimiter wraps /api/v1 when set. See NewAPILimiter.
	APILimiter func(http.Handler) http.Handler
}

// NewRouter mounts health, metrics and the /api/v1 surface.
func NewRouter(d *Dependencies, svc *Services, opts RouterOptions) http.Handler {
	cfg := d.Config
	logger := d.Logger

	authMiddleware := auth.Middleware{Service: svc.Auth}
	attempts := ratelimit.Limiter{Client: d.Redis, Prefix: "shipledger:rl:"}
	authHandler := &auth.Handler{
		Service:     svc.Auth,
		Validator:   d.Validator,
		Attempts:    attempts,
		MaxAttempts: cfg.RateLimit.LoginMax,
		Window:      cfg.RateLimit.LoginWindow,
	}
	exportLimit := attempts.Guard(ratelimit.Rule{
		Key:    ratelimit.ByUser("export:"),
		Window: cfg.RateLimit.ExportWindow,
		Max:    cfg.RateLimit.ExportMax,
	}, func(err error) { logger.Error().Err(err).Msg("export limiter") })
	recorder := audit.Recorder{
		Service: svc.Audit,
		OnError: func(err error) { logger.Error().Err(err).Msg("record audit entry") },
	}
	customerHandler := &customer.Handler{Service: svc.Customers, Validator: d.Validator}
	shipmentHandler := &shipment.Handler{Service: svc.Shipments, Validator: d.Validator}
	invoiceHandler := &invoice.Handler{
		Service: svc.Invoices,
		Seller:  NewSeller(cfg.Seller),
		FinalizeGuard: chain(
			authMiddleware.RequireRole(auth.RoleBilling, auth.RoleAdmin),
			recorder.Middleware(audit.Route{Action: "invoice.finalize", ResourceType: "invoices", ResourceIDParam: "invoiceId"}),
		),
		ExportGuard: exportLimit,
	}
	idem := common.Idem{R: d.Redis, TTL: cfg.IdempotencyTTL}
	auditHandler := audit.Handler{Service: svc.Audit}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if opts.Tracing {
		r.Use(obs.TracingMiddleware)
	}
	if opts.HTTPMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: opts.HTTPMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(security.Headers{EnableHSTS: cfg.AppEnv == "production", HSTSMaxAge: 31536000}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders: []string{"Content-Disposition", "Retry-After", "X-RateLimit-Remaining"},
		MaxAge:         300,
	}))

	if cfg.Obs.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	healthHandler := health.Handler{Dependencies: []health.Dependency{
		health.Postgres(d.DB, cfg.Obs.ReadyDBTimeout),
		health.Redis(d.Redis, cfg.Obs.ReadyRedisTimeout),
	}}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Use(security.BodyLimit{Max: cfg.MaxBodyBytes}.Middleware)
		if opts.APILimiter != nil {
			v.Use(opts.APILimiter)
		}
		v.Route("/auth", func(a chi.Router) {
			a.Post("/login", authHandler.Login)
			a.With(authMiddleware.RequireAuth).Get("/me", authHandler.Me)
		})
		v.Get("/shipment-types", shipment.ListTypes)
		v.Group(func(p chi.Router) {
			p.Use(authMiddleware.RequireAuth)
			p.Route("/customers", func(c chi.Router) {
				c.Use(writesOnly(recorder.Middleware(audit.Route{Action: "customer.create", ResourceType: "customers"})))
				customerHandler.Routes(c)
			})
			p.Route("/shipments", shipmentHandler.Routes(chain(
				idem.Middleware,
				recorder.Middleware(audit.Route{Action: "shipment.create", ResourceType: "shipments"}),
			)))
			p.Route("/invoices", invoiceHandler.Routes)
			p.With(authMiddleware.RequireRole(auth.RoleAdmin)).Get("/audit-logs", auditHandler.List)
		})
	})

	return r
}

// chain applies mws so the first one is outermost.
func chain(mws ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}

// writesOnly applies mw to POST requests and passes reads straight through.
func writesOnly(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		wrapped := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				wrapped.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
