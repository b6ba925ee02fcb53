package middleware

import "net/http"

// BodyLimit caps request bodies at n bytes. Reads past the limit fail with
// *http.MaxBytesError.
func BodyLimit(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.MaxBytesHandler(next, n)
	}
}
