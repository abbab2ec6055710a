// Package health serves the liveness and readiness checks.
package health

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/shipledger/internal/common"
)

var draining atomic.Bool

// SetReady(false) makes /health/ready fail without running the checks so load
// balancers drain the instance during shutdown.
func SetReady(v bool) { draining.Store(!v) }

// Dependency checks one dependency within Timeout.
type Dependency struct {
	Name    string
	Timeout time.Duration
	Check   func(ctx context.Context) error
}

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Postgres pings the pool. A nil pool always fails.
func Postgres(db Pinger, timeout time.Duration) Dependency {
	return Dependency{Name: "db", Timeout: cmpDuration(timeout, 500*time.Millisecond), Check: func(ctx context.Context) error {
		if db == nil {
			return errors.New("db not configured")
		}
		return db.Ping(ctx)
	}}
}

// Redis pings the client. A nil client always fails.
func Redis(rdb redis.UniversalClient, timeout time.Duration) Dependency {
	return Dependency{Name: "redis", Timeout: cmpDuration(timeout, 300*time.Millisecond), Check: func(ctx context.Context) error {
		if rdb == nil {
			return errors.New("redis not configured")
		}
		return rdb.Ping(ctx).Err()
	}}
}

// Handler serves /health/live and /health/ready.
type Handler struct {
	Dependencies []Dependency
}

// Report is the /health/ready body.
type Report struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Live always answers 200 while the process can serve HTTP.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// Ready runs every dependency check concurrently and answers 503 if any fails.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if draining.Load() {
		common.JSON(w, http.StatusServiceUnavailable, Report{Status: "draining"})
		return
	}
	if len(h.Dependencies) == 0 {
		common.JSON(w, http.StatusServiceUnavailable, Report{Status: "unconfigured"})
		return
	}

	var (
		mu     sync.Mutex
		failed bool
		checks = make(map[string]string, len(h.Dependencies))
		g      errgroup.Group
	)
	for _, p := range h.Dependencies {
		g.Go(func() error {
			ctx, cancel := context.WithTimeout(r.Context(), p.Timeout)
			defer cancel()
			result := "ok"
			if err := p.Check(ctx); err != nil {
				result = err.Error()
			}
			mu.Lock()
			defer mu.Unlock()
			checks[p.Name] = result
			failed = failed || result != "ok"
			return nil
		})
	}
	_ = g.Wait()

	if failed {
		common.JSON(w, http.StatusServiceUnavailable, Report{Status: "unavailable", Checks: checks})
		return
	}
	common.JSON(w, http.StatusOK, Report{Status: "ok", Checks: checks})
}

func cmpDuration(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
