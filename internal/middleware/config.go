package middleware

import (
	"net/http"

	"github.com/streakpost/streakpost/internal/config"
	"github.com/streakpost/streakpost/internal/ctxkeys"
)

// Config places the application config in the request context.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithConfig(r.Context(), cfg)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
