// internal/handlers/auth.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"bdaybook/internal/auth"
	"bdaybook/internal/middleware"
	"bdaybook/internal/views"
)

// AuthHandler serves the admin login and logout. There is a single admin
// account, configured by email and password hash at startup.
type AuthHandler struct {
	AdminEmail string
	AdminHash  string
	Views      *views.Renderer
	Log        *logrus.Logger
}

func NewAuthHandler(adminEmail, adminHash string, renderer *views.Renderer, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{AdminEmail: adminEmail, AdminHash: adminHash, Views: renderer, Log: log}
}

func (h *AuthHandler) render(w http.ResponseWriter, status int, page views.LoginPage) {
	if err := h.Views.Render(w, status, "login", page); err != nil {
		h.Log.WithError(err).Error("failed to render login page")
	}
}

// ShowLogin renders the sign-in form. An already-authenticated admin goes
// straight to the list.
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if middleware.LoggedIn(r) {
		http.Redirect(w, r, listPath, http.StatusSeeOther)
		return
	}
	h.render(w, http.StatusOK, views.LoginPage{
		Base: views.Base{Title: "Sign in"},
	})
}

// Login checks the posted credentials against the configured admin account
// and sets the auth_token cookie on success.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	failed := func() {
		h.render(w, http.StatusUnauthorized, views.LoginPage{
			Base:  views.Base{Title: "Sign in"},
			Email: email,
			Error: "Invalid email or password.",
		})
	}

	if !strings.EqualFold(email, h.AdminEmail) {
		failed()
		return
	}
	ok, err := auth.VerifyPassword(password, h.AdminHash)
	if err != nil {
		h.Log.WithError(err).Error("failed to verify admin password")
		failed()
		return
	}
	if !ok {
		failed()
		return
	}

	token, err := auth.IssueToken(h.AdminEmail)
	if err != nil {
		h.Log.WithError(err).Error("failed to issue token")
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		HttpOnly: true,
		Path:     "/",
	})
	http.Redirect(w, r, listPath, http.StatusSeeOther)
}

// Logout clears the auth cookie and returns to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		HttpOnly: true,
		Path:     "/",
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
