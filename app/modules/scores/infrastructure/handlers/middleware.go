package scoreshandlers

import (
	"context"
	"crypto/subtle"
	"net/http"
	"sync"
	"time"

	scoresdomain "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/domain"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"golang.org/x/time/rate"
)

const (
	// cleanupThreshold is the minimum map size before a cleanup pass runs.
	cleanupThreshold = 500
	// maxIdleAge is the duration after which an idle client entry is eligible for cleanup.
	maxIdleAge = 10 * time.Minute
)

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientRateLimiter is a token-bucket limiter per client identifier that
// prunes stale entries inline. It guards the admin endpoints; score
// submissions use the sliding-window gate instead.
type ClientRateLimiter struct {
	clients map[string]*clientEntry
	mu      sync.Mutex
	r       rate.Limit
	b       int
}

// NewClientRateLimiter creates a new ClientRateLimiter.
func NewClientRateLimiter(r rate.Limit, b int) *ClientRateLimiter {
	return &ClientRateLimiter{
		clients: make(map[string]*clientEntry),
		r:       r,
		b:       b,
	}
}

// GetLimiter returns the rate.Limiter for id, pruning stale entries when the
// map exceeds cleanupThreshold.
func (l *ClientRateLimiter) GetLimiter(id string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if len(l.clients) > cleanupThreshold {
		cutoff := now.Add(-maxIdleAge)
		for k, e := range l.clients {
			if e.lastSeen.Before(cutoff) {
				delete(l.clients, k)
			}
		}
	}

	e, exists := l.clients[id]
	if !exists {
		e = &clientEntry{limiter: rate.NewLimiter(l.r, l.b)}
		l.clients[id] = e
	}
	e.lastSeen = now

	return e.limiter
}

// RateLimitMiddleware rejects requests once the client's bucket is empty.
func RateLimitMiddleware(limiter *ClientRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.GetLimiter(ClientIdentifier(r)).Allow() {
				writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: scoresdomain.MsgRateLimited})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CORSMiddleware allows the configured game origins. When allowedOrigins is
// empty no CORS headers are added and the middleware is a no-op.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"Retry-After", RequestIDHeader},
		MaxAge:         600,
	}).Handler
}

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDMiddleware echoes a caller-supplied X-Request-ID or assigns a new
// one, and stores it on the request context.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// RequestIDFromContext returns the id set by RequestIDMiddleware, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// AdminAuth decides who may call the admin endpoints.
type AdminAuth struct {
	// Token is the expected bearer token. Empty disables token auth.
	Token string
	// Environment is the deployment environment; without a token only
	// "development" is let through.
	Environment string
}

// Authorized reports whether r carries the admin credential.
func (a AdminAuth) Authorized(r *http.Request) bool {
	if a.Token == "" {
		return a.Environment == "development"
	}
	got := r.Header.Get("Authorization")
	want := "Bearer " + a.Token
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
