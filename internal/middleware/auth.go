// internal/middleware/auth.go

package middleware

import (
	"net/http"

	"bdaybook/internal/auth"
)

// AuthCookieName is the cookie the login handler sets and this middleware
// checks.
const AuthCookieName = "auth_token"

// RequireAdmin gates a handler behind a valid auth_token cookie. Requests
// without one are bounced to the login page.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(AuthCookieName)
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if _, err := auth.VerifyToken(cookie.Value); err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoggedIn reports whether the request carries a valid admin token. Page
// templates use it to decide whether to draw the logout control.
func LoggedIn(r *http.Request) bool {
	cookie, err := r.Cookie(AuthCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	_, err = auth.VerifyToken(cookie.Value)
	return err == nil
}
