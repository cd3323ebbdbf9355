package ratelimit

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/jofrance/billeterie/internal/syncx"
	"github.com/jofrance/billeterie/pkg/log"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

type RateLimiter struct {
	rate    rate.Limit
	burst   int
	clients syncx.Map[string, *rate.Limiter]
}

// GetClientKeyFunc identifies the client a request is accounted to.
type GetClientKeyFunc func(r *http.Request) (string, error)

func (l *RateLimiter) Allow(key string) bool {
	limiter, _ := l.clients.LoadOrStore(key, rate.NewLimiter(l.rate, l.burst))
	return limiter.Allow()
}

func (l *RateLimiter) Middleware(getClientKey GetClientKeyFunc) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			clientKey, err := getClientKey(r)
			if err != nil {
				slog.ErrorContext(ctx, "could not retrieve client key", log.Error(errors.WithStack(err)))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			if !l.Allow(clientKey) {
				slog.WarnContext(ctx, "rate limit exceeded", slog.String("client", clientKey))
				http.Error(w, "Trop de tentatives, veuillez réessayer plus tard.", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RemoteAddr keys requests by the client IP address.
func RemoteAddr(r *http.Request) (string, error) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", errors.Wrapf(err, "could not parse remote address '%s'", r.RemoteAddr)
	}

	return host, nil
}

func New(rate rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		rate:  rate,
		burst: burst,
	}
}
