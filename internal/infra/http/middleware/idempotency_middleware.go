package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/clever-bank/ledger/internal/gateway"
	"github.com/rs/zerolog/log"
)

const (
	IdempotencyHeader    = "Idempotency-Key"
	IdempotencyHitHeader = "X-Idempotency-Hit"
	IdempotencyTTL       = 24 * time.Hour
	maxKeyLength         = 255
)

// cacheKey scopes a client key to the endpoint it was sent to.
func cacheKey(r *http.Request, key string) string {
	return r.Method + " " + r.URL.Path + ":" + key
}

type capture struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (c *capture) WriteHeader(status int) {
	c.status = status
	c.ResponseWriter.WriteHeader(status)
}

func (c *capture) Write(b []byte) (int, error) {
	c.body.Write(b)
	return c.ResponseWriter.Write(b)
}

func (c *capture) cached() gateway.CachedResponse {
	return gateway.CachedResponse{
		StatusCode:  c.status,
		ContentType: c.Header().Get("Content-Type"),
		Body:        c.body.Bytes(),
	}
}

func replay(w http.ResponseWriter, cached *gateway.CachedResponse) {
	contentType := cached.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set(IdempotencyHitHeader, "true")
	w.WriteHeader(cached.StatusCode)
	if _, err := w.Write(cached.Body); err != nil {
		log.Error().Err(err).Msg("failed to write cached response")
	}
}

// Idempotency replays the stored response when a request repeats its
// Idempotency-Key on the same endpoint. A failing store lets the request through.
func Idempotency(store gateway.IdempotencyRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyHeader)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}
			if len(key) > maxKeyLength {
				http.Error(w, "Idempotency-Key is too long", http.StatusBadRequest)
				return
			}

			ctx := r.Context()
			scoped := cacheKey(r, key)
			logger := log.With().Str("idempotency_key", key).Str("path", r.URL.Path).Logger()

			cached, err := store.Get(ctx, scoped)
			switch {
			case err != nil:
				logger.Error().Err(err).Msg("idempotency lookup failed, continuing without it")
				next.ServeHTTP(w, r)
				return
			case cached != nil:
				logger.Info().Int("status", cached.StatusCode).Msg("idempotency cache hit")
				replay(w, cached)
				return
			}

			rec := &capture{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			// 5xx stays uncached so the client can retry.
			if rec.status >= http.StatusInternalServerError {
				return
			}
			if err := store.Save(ctx, scoped, rec.cached(), IdempotencyTTL); err != nil {
				logger.Error().Err(err).Msg("failed to save idempotent response")
			}
		})
	}
}
