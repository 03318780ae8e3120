package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout bounds the context of every request by d. Study requests may spend
// most of it in provider backoff; the gateway stops retrying once the
// deadline passes and answers with a failure.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if d <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
