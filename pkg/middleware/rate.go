package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shashiranjanraj/catalog/pkg/cache"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
	"github.com/shashiranjanraj/catalog/pkg/response"
)

// RateLimit allows max requests per client IP per fixed window. Counters
// live in store, so a Redis store shares the budget across instances.
// Store errors let the request through.
func RateLimit(store cache.Store, max int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if max <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			key := "rate:" + clientIP(r)
			n, err := store.Incr(r.Context(), key, window)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("rate limit store unavailable", "error", err.Error())
				next.ServeHTTP(w, r)
				return
			}

			remaining := max - int(n)
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(max))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if int(n) > max {
				metrics.RateLimited.WithLabelValues(store.Driver()).Inc()
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				response.TooManyRequests(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
