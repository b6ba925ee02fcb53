package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/webtech/cameralog/internal/ctxkeys"
)

// SecurityHeaders sets CSP and the usual hardening headers. It must run
// after Config and NonceMiddleware.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", contentSecurityPolicy(r))

		next.ServeHTTP(w, r)
	})
}

func contentSecurityPolicy(r *http.Request) string {
	scriptSrc := "'self'"
	styleSrc := "'self'"
	if nonce := GetNonce(r.Context()); nonce != "" {
		scriptSrc += fmt.Sprintf(" 'nonce-%s'", nonce)
		styleSrc += fmt.Sprintf(" 'nonce-%s'", nonce)
	}

	imgSrc := "'self' data:"
	cfg := ctxkeys.Config(r.Context())
	if cfg != nil && cfg.StorageDriver == "s3" {
		if cfg.S3Endpoint != "" {
			imgSrc += " " + strings.TrimSuffix(cfg.S3Endpoint, "/")
		} else {
			imgSrc += " https://*.amazonaws.com"
		}
	}

	return strings.Join([]string{
		"default-src 'self'",
		"script-src " + scriptSrc,
		"style-src " + styleSrc,
		"img-src " + imgSrc,
		"form-action 'self'",
		"frame-ancestors 'none'",
		"base-uri 'self'",
	}, "; ")
}
