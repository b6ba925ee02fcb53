package ctxkeys

import (
	"context"

	"github.com/webtech/cameralog/internal/config"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	SessionEmailKey contextKey = "session_email"
	URLPathKey      contextKey = "url_path"
	ConfigKey       contextKey = "config"
	CSRFTokenKey    contextKey = "csrf_token"
	RequestIDKey    contextKey = "request_id"
)

// SessionEmail returns the logged-in email, or "" for anonymous requests.
func SessionEmail(ctx context.Context) string {
	email, _ := ctx.Value(SessionEmailKey).(string)
	return email
}

func WithSessionEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, SessionEmailKey, email)
}

func LoggedIn(ctx context.Context) bool {
	return SessionEmail(ctx) != ""
}

func URLPath(ctx context.Context) string {
	path, _ := ctx.Value(URLPathKey).(string)
	return path
}

func WithURLPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, URLPathKey, path)
}

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}

func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(CSRFTokenKey).(string)
	return token
}

func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, CSRFTokenKey, token)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
