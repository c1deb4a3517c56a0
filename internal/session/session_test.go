package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerPageIndexDefaultsWhenUnset(t *testing.T) {
	m := NewManager(NewMemoryStore())
	idx, err := m.PerPageIndex(context.Background(), "sid-1", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestSetPerPageIndexSticks(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore())

	require.NoError(t, m.SetPerPageIndex(ctx, "sid-1", 3))
	idx, err := m.PerPageIndex(ctx, "sid-1", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, idx)

	// Index zero is a real choice, distinct from "never chose".
	require.NoError(t, m.SetPerPageIndex(ctx, "sid-1", 0))
	idx, err = m.PerPageIndex(ctx, "sid-1", 1)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestFlashIsOneTime(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore())

	require.NoError(t, m.SetFlash(ctx, "sid-1", "The friend was saved."))

	msg, err := m.PopFlash(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "The friend was saved.", msg)

	msg, err = m.PopFlash(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "", msg, "a popped flash must not reappear")
}

func TestFlashLeavesOtherValuesAlone(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore())

	require.NoError(t, m.SetPerPageIndex(ctx, "sid-1", 2))
	require.NoError(t, m.SetFlash(ctx, "sid-1", "deleted"))
	if _, err := m.PopFlash(ctx, "sid-1"); err != nil {
		t.Fatalf("pop flash: %v", err)
	}

	idx, err := m.PerPageIndex(ctx, "sid-1", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
}

func TestLastListRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore())

	got, err := m.LastList(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	require.NoError(t, m.SetLastList(ctx, "sid-1", "/friends/manage/3"))
	got, err = m.LastList(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "/friends/manage/3", got)
}

func TestSessionIDMintsOnceThenReuses(t *testing.T) {
	m := NewManager(NewMemoryStore())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/friends/manage", nil)
	sid := m.SessionID(w, r)
	if sid == "" {
		t.Fatalf("expected a minted session id")
	}

	cookies := w.Result().Cookies()
	var found *http.Cookie
	for _, c := range cookies {
		if c.Name == CookieName {
			found = c
		}
	}
	if found == nil {
		t.Fatalf("expected %s cookie to be set", CookieName)
	}
	assert.Equal(t, sid, found.Value)

	// A request that already carries the cookie keeps its id and gets no
	// replacement cookie.
	w2 := httptest.NewRecorder()
	r2 := httptest.NewRequest("GET", "/friends/manage", nil)
	r2.AddCookie(&http.Cookie{Name: CookieName, Value: sid})
	assert.Equal(t, sid, m.SessionID(w2, r2))
	assert.Empty(t, w2.Result().Cookies())
}
