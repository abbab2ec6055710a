package common

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	redis "github.com/redis/go-redis/v9"
)

const (
	idemHeader  = "Idempotency-Key"
	idemPending = "pending"
)

// Idem replays the first successful response for a repeated Idempotency-Key.
// Keys are scoped to the caller, method and path. A key is held as "pending"
// while the first request runs and released if that request fails, so the
// client may retry with the same key.
type Idem struct {
	R      redis.UniversalClient
	TTL    time.Duration
	Prefix string // "shipledger:idem:" when empty
}

type storedResponse struct {
	Status   int             `json:"status"`
	Location string          `json:"location,omitempty"`
	Body     json.RawMessage `json:"body"`
}

func (i Idem) key(r *http.Request, idemKey string) string {
	uid, _ := UserID(r.Context())
	sum := sha256.Sum256([]byte(uid + "\x00" + r.Method + "\x00" + r.URL.Path + "\x00" + idemKey))
	prefix := i.Prefix
	if prefix == "" {
		prefix = "shipledger:idem:"
	}
	return prefix + hex.EncodeToString(sum[:])
}

// Middleware is a pass-through for requests without the header.
func (i Idem) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idemKey := r.Header.Get(idemHeader)
		if idemKey == "" || i.R == nil {
			next.ServeHTTP(w, r)
			return
		}
		key := i.key(r, idemKey)
		acquired, err := i.R.SetNX(r.Context(), key, idemPending, i.TTL).Result()
		if err != nil {
			idemStoreError(w, err)
			return
		}
		if !acquired {
			i.replay(r.Context(), w, key)
			return
		}

		var body bytes.Buffer
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Tee(&body)

		stored := false
		defer func() {
			if !stored {
				_ = i.R.Del(context.WithoutCancel(r.Context()), key).Err()
			}
		}()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		if status >= http.StatusBadRequest || !json.Valid(body.Bytes()) {
			return
		}
		payload, err := json.Marshal(storedResponse{
			Status:   status,
			Location: ww.Header().Get("Location"),
			Body:     body.Bytes(),
		})
		if err != nil {
			return
		}
		stored = i.R.Set(context.WithoutCancel(r.Context()), key, payload, i.TTL).Err() == nil
	})
}

func (i Idem) replay(ctx context.Context, w http.ResponseWriter, key string) {
	raw, err := i.R.Get(ctx, key).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		idemStoreError(w, err)
		return
	}
	var stored storedResponse
	if len(raw) == 0 || string(raw) == idemPending || json.Unmarshal(raw, &stored) != nil {
		JSONError(w, http.StatusConflict, "IDEMPOTENT_REPLAY", "a request with this Idempotency-Key is in progress", nil)
		return
	}
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Idempotent-Replayed", "true")
	if stored.Location != "" {
		h.Set("Location", stored.Location)
	}
	w.WriteHeader(stored.Status)
	_, _ = w.Write(stored.Body)
}

func idemStoreError(w http.ResponseWriter, err error) {
	JSONError(w, http.StatusServiceUnavailable, "IDEMPOTENCY_UNAVAILABLE", "idempotency store unavailable", map[string]any{"error": err.Error()})
}
