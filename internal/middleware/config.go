package middleware

import (
	"net/http"

	"github.com/webtech/cameralog/internal/config"
	"github.com/webtech/cameralog/internal/ctxkeys"
)

// Config adds the sanitized app configuration to the request context.
// SessionSecret, S3 keys and the database DSN never reach handlers or views.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	safe := cfg.Sanitized()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithConfig(r.Context(), safe)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
