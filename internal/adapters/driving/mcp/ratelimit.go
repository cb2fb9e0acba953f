package mcp

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/manuals/internal/logger"
)

// rateLimit rejects requests with 429 once limiter runs out of tokens.
func rateLimit(limiter *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			logger.Debug("Rate limited %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
			w.Header().Set("Retry-After", "1")
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
