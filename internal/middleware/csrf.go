package middleware

import (
	"crypto/sha256"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/webtech/cameralog/internal/ctxkeys"
)

const (
	csrfCookieName = "csrf_token"
	csrfFormField  = "csrf_token"
	csrfHeader     = "X-CSRF-Token"

	// maxFormMemory is how much of a multipart body is held in memory; the
	// rest of a photo spills to a temp file.
	maxFormMemory = 10 << 20
)

// CSRFProtection checks every unsafe request for the token gorilla/csrf
// issues in the csrf_token cookie, echoed in the csrf_token form field or the
// X-CSRF-Token header. Views read the masked token via ctxkeys.CSRFToken.
//
// The form is parsed before the check so an oversized upload is answered
// with 413 instead of a token failure. secure marks the cookie Secure and
// turns on the HTTPS Referer check.
func CSRFProtection(secret string, secure bool) func(http.Handler) http.Handler {
	key := sha256.Sum256([]byte("csrf:" + secret))

	protect := csrf.Protect(key[:],
		csrf.CookieName(csrfCookieName),
		csrf.FieldName(csrfFormField),
		csrf.RequestHeader(csrfHeader),
		csrf.Path("/"),
		csrf.MaxAge(7*24*60*60),
		csrf.HttpOnly(true),
		csrf.Secure(secure),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailure)),
	)

	return func(next http.Handler) http.Handler {
		protected := protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = r.WithContext(ctxkeys.WithCSRFToken(r.Context(), csrf.Token(r)))
			next.ServeHTTP(w, r)
		}))

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
			default:
				err := parseForm(r)
				if err != nil {
					var maxBytesErr *http.MaxBytesError
					if errors.As(err, &maxBytesErr) {
						slog.Warn("request body too large", "path", r.URL.Path, "limit", maxBytesErr.Limit)
						http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
						return
					}
					slog.Warn("failed to parse form", "path", r.URL.Path, "error", err)
					http.Error(w, "bad request", http.StatusBadRequest)
					return
				}
			}

			if !secure {
				r = csrf.PlaintextHTTPRequest(r)
			}
			protected.ServeHTTP(w, r)
		})
	}
}

// parseForm fills r.PostForm (and r.MultipartForm for uploads). Handlers that
// parse again get the cached result.
func parseForm(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return r.ParseMultipartForm(maxFormMemory)
	}
	return r.ParseForm()
}

func csrfFailure(w http.ResponseWriter, r *http.Request) {
	slog.Warn("csrf validation failed",
		"path", r.URL.Path,
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
		"reason", csrf.FailureReason(r),
	)
	http.Error(w, "Invalid CSRF token", http.StatusForbidden)
}
