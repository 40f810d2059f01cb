package api

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"tradejournal/internal/domain/user"
	"tradejournal/internal/metrics"
	"tradejournal/pkg/logger"
)

type contextKey string

const (
	contextKeyUser      contextKey = "user"
	contextKeyRequestID contextKey = "request_id"
)

// UserFromContext returns the authenticated user stashed by the auth
// middleware
func UserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(contextKeyUser).(*user.User)
	return u, ok
}

// RequestIDFromContext returns the request's correlation ID
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}

// statusRecorder captures the response status for logging and metrics
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withRequestID assigns a correlation ID to every request, honoring an
// incoming X-Request-ID header
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)

		ctx := context.WithValue(r.Context(), contextKeyRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withLogging logs one line per served request and feeds the Prometheus
// request metrics. The metrics path label uses the registered route
// pattern, not the raw URL, so path parameters cannot explode label
// cardinality.
func withLogging(log *logger.Logger, mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		mux.ServeHTTP(recorder, r)

		duration := time.Since(start)
		metrics.ObserveHTTPRequest(r.Method, routePattern(mux, r), recorder.status, duration)
		log.Infow("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration", duration,
			"request_id", RequestIDFromContext(r.Context()),
		)
	})
}

// routePattern resolves the mux pattern that serves r, stripped of its
// method prefix. Requests matching no route share a single label value.
func routePattern(mux *http.ServeMux, r *http.Request) string {
	_, pattern := mux.Handler(r)
	if pattern == "" {
		return "unmatched"
	}
	if _, path, ok := strings.Cut(pattern, " "); ok {
		return path
	}
	return pattern
}

// ipRateLimiter keeps one token bucket per client IP. Entries idle
// longer than the eviction window are dropped to bound memory.
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiterEntry
	limit    rate.Limit
	burst    int
}

type ipLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const limiterEvictionWindow = 10 * time.Minute

func newIPRateLimiter(limit float64, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: make(map[string]*ipLimiterEntry),
		limit:    rate.Limit(limit),
		burst:    burst,
	}
}

func (l *ipRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipLimiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()

	for key, e := range l.limiters {
		if time.Since(e.lastSeen) > limiterEvictionWindow {
			delete(l.limiters, key)
		}
	}

	return entry.limiter.Allow()
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// withRateLimit guards the auth endpoints against credential stuffing
func withRateLimit(limiter *ipRateLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.allow(clientIP(r)) {
			metrics.AuthAttempts.WithLabelValues("any", "rate_limited").Inc()
			respondJSON(w, http.StatusTooManyRequests, envelope{
				Success: false,
				Error:   "too many requests, slow down",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// tokenValidator resolves a bearer token to a user
type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*user.User, error)
}

// withAuth requires a valid bearer token and stashes the resolved user
// in the request context
func withAuth(validator tokenValidator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			respondJSON(w, http.StatusUnauthorized, envelope{
				Success: false,
				Error:   "missing bearer token",
			})
			return
		}

		usr, err := validator.ValidateToken(r.Context(), token)
		if err != nil {
			respondJSON(w, http.StatusUnauthorized, envelope{
				Success: false,
				Error:   "invalid or expired token",
			})
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUser, usr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
