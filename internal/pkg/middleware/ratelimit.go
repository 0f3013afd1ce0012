package middleware

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"stockledger/internal/pkg/cache"
	"stockledger/internal/pkg/logger"
	"stockledger/internal/pkg/response"
)

// RateLimiter allows limit requests per client IP within each window. The
// counter lives in the cache so several API instances share it. Cache
// failures let the request through.
func RateLimiter(client cache.Client, limit int, window time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := "rate-limit:" + ip
			ctx := r.Context()

			count, err := client.GetInt(ctx, key)
			switch {
			case errors.Is(err, cache.ErrCacheMiss):
				if err := client.Set(ctx, key, 1, window); err != nil {
					log.Warn("rate limiter could not store counter", map[string]interface{}{"error": err.Error()})
				}
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-1))
				next.ServeHTTP(w, r)
				return
			case err != nil:
				log.Warn("rate limiter unavailable", map[string]interface{}{"error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			if count >= limit {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				response.Status(w, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded")
				return
			}

			if _, err := client.Incr(ctx, key); err != nil {
				log.Warn("rate limiter could not increment counter", map[string]interface{}{"error": err.Error()})
			}
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-count-1))
			next.ServeHTTP(w, r)
		})
	}
}
