package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout bounds the request context. Downstream calls (the authorizer
// included) inherit the deadline; the gate itself imposes none of its own.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
