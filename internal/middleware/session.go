// internal/middleware/session.go

package middleware

import (
	"net/http"

	"bdaybook/internal/session"
)

// EnsureSession guarantees every request carries a session cookie, so the
// page-size preference and flash message always have a home. The minted
// cookie is injected into the request too, letting handlers resolve the
// same id within this request.
func EnsureSession(sessions *session.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie(session.CookieName); err != nil || c.Value == "" {
				sid := sessions.SessionID(w, r)
				r.AddCookie(&http.Cookie{Name: session.CookieName, Value: sid})
			}
			next.ServeHTTP(w, r)
		})
	}
}
