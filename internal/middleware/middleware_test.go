package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bdaybook/internal/auth"
	"bdaybook/internal/session"
)

func TestStatusWriterCapturesStatus(t *testing.T) {
	w := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

	sw.WriteHeader(http.StatusNotFound)
	sw.Write([]byte("missing"))

	assert.Equal(t, http.StatusNotFound, sw.status)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "missing", w.Body.String())
}

func TestLogMiddlewarePassesThrough(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	handler := LogMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/friends", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	require.NoError(t, auth.Init())

	protected := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("secret"))
	}))

	t.Run("no cookie redirects to login", func(t *testing.T) {
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, httptest.NewRequest("GET", "/friends/manage", nil))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("garbage token redirects to login", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/friends/manage", nil)
		r.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "not-a-token"})

		w := httptest.NewRecorder()
		protected.ServeHTTP(w, r)

		assert.Equal(t, http.StatusSeeOther, w.Code)
	})

	t.Run("valid token passes", func(t *testing.T) {
		token, err := auth.IssueToken("admin@example.com")
		require.NoError(t, err)

		r := httptest.NewRequest("GET", "/friends/manage", nil)
		r.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})

		w := httptest.NewRecorder()
		protected.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "secret", w.Body.String())
	})
}

func TestLoggedIn(t *testing.T) {
	require.NoError(t, auth.Init())

	r := httptest.NewRequest("GET", "/friends", nil)
	assert.False(t, LoggedIn(r))

	token, err := auth.IssueToken("admin@example.com")
	require.NoError(t, err)
	r.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
	assert.True(t, LoggedIn(r))
}

func TestEnsureSession(t *testing.T) {
	sessions := session.NewManager(session.NewMemoryStore())

	var seen string
	wrapped := EnsureSession(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(session.CookieName)
		require.NoError(t, err)
		seen = c.Value
	}))

	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, httptest.NewRequest("GET", "/friends/manage", nil))

	require.NotEmpty(t, seen)
	var minted string
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			minted = c.Value
		}
	}
	assert.Equal(t, seen, minted, "handler and browser must agree on the session id")

	// A request that already has the cookie keeps it and gets no new one.
	r := httptest.NewRequest("GET", "/friends/manage", nil)
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: "existing-sid"})
	w = httptest.NewRecorder()
	wrapped.ServeHTTP(w, r)

	assert.Equal(t, "existing-sid", seen)
	assert.Empty(t, w.Result().Cookies())
}
