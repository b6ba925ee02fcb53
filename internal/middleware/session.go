package middleware

import (
	"net/http"

	"github.com/webtech/cameralog/internal/ctxkeys"
	"github.com/webtech/cameralog/internal/flash"
	"github.com/webtech/cameralog/internal/service"
)

// Session checks the session cookie and adds the logged-in email to context if valid
func Session(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(service.SessionCookieName)
			if err != nil {
				// No cookie, continue anonymous
				next.ServeHTTP(w, r)
				return
			}

			email, err := authService.VerifyToken(cookie.Value)
			if err != nil {
				// Invalid token, clear cookie and continue anonymous
				authService.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithSessionEmail(r.Context(), email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession sends anonymous requests back to the login page with message
func RequireSession(message string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !ctxkeys.LoggedIn(r.Context()) {
				flash.Danger(w, r, message)
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			next(w, r)
		}
	}
}
