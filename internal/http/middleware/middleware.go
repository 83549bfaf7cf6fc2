// Package middleware holds the HTTP middleware specific to this service:
// per-client rate limiting of form writes and structured request logs.
package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/aanand-mishra/hackathon-api/internal/utils/response"
)

// Limiter hands out one token bucket per client IP. Buckets idle for
// longer than idleTTL are dropped on the next sweep.
type Limiter struct {
	rps     rate.Limit
	burst   int
	idleTTL time.Duration

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

type client struct {
	limiter *rate.Limiter
	last    time.Time
}

// NewLimiter allows each client rps requests per second with bursts of
// up to burst.
func NewLimiter(rps float64, burst int) *Limiter {
	return &Limiter{
		rps:       rate.Limit(rps),
		burst:     burst,
		idleTTL:   30 * time.Minute,
		clients:   make(map[string]*client),
		lastSweep: time.Now(),
	}
}

// Allow reports whether key may make a request now.
func (l *Limiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > l.idleTTL {
		for k, c := range l.clients {
			if now.Sub(c.last) > l.idleTTL {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[key] = c
	}
	c.last = now

	return c.limiter.AllowN(now, 1)
}

// Handler rejects requests over the limit with 429. Clients are keyed by
// the host part of RemoteAddr; put chi's RealIP in front to honour
// X-Forwarded-For.
func (l *Limiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			key = host
		}

		if !l.Allow(key) {
			slog.Warn("rate limit exceeded", slog.String("client", key), slog.String("path", r.URL.Path))
			w.Header().Set("Retry-After", "1")
			response.WriteJSON(w, http.StatusTooManyRequests, response.Response{
				Status: response.StatusError,
				Error:  "too many requests, slow down",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Logger logs one line per request once the handler has finished.
func Logger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			log.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", chimw.GetReqID(r.Context())),
			)
		})
	}
}
