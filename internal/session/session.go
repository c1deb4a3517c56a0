// internal/session/session.go
package session

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// CookieName is the browser cookie carrying the session id.
const CookieName = "session_id"

// Data is everything a session holds: the selected page-size option index,
// a one-time flash message, and the most recent list location. A nil
// PerPageIndex means the visitor never picked one.
type Data struct {
	PerPageIndex *int   `json:"per_page_index,omitempty"`
	Flash        string `json:"flash,omitempty"`
	LastList     string `json:"last_list,omitempty"`
}

// Store persists session data by session id. Get reports found=false for
// an id that was never saved; that is not an error.
type Store interface {
	Get(ctx context.Context, sid string) (Data, bool, error)
	Save(ctx context.Context, sid string, d Data) error
}

// Manager resolves the per-request session id and reads/writes the
// session values handlers care about.
type Manager struct {
	store Store
}

// NewManager wraps a Store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// SessionID returns the request's session id, minting a fresh one (and
// setting the cookie) when the request has none.
func (m *Manager) SessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	sid := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
	})
	return sid
}

// PerPageIndex returns the stored page-size option index, or def when the
// session never chose one.
func (m *Manager) PerPageIndex(ctx context.Context, sid string, def int) (int, error) {
	d, _, err := m.store.Get(ctx, sid)
	if err != nil {
		return def, err
	}
	if d.PerPageIndex == nil {
		return def, nil
	}
	return *d.PerPageIndex, nil
}

// SetPerPageIndex persists the chosen page-size option index.
func (m *Manager) SetPerPageIndex(ctx context.Context, sid string, idx int) error {
	d, _, err := m.store.Get(ctx, sid)
	if err != nil {
		return err
	}
	d.PerPageIndex = &idx
	return m.store.Save(ctx, sid, d)
}

// SetFlash stores a message shown on the next rendered page only.
func (m *Manager) SetFlash(ctx context.Context, sid, msg string) error {
	d, _, err := m.store.Get(ctx, sid)
	if err != nil {
		return err
	}
	d.Flash = msg
	return m.store.Save(ctx, sid, d)
}

// PopFlash returns the pending flash message and removes it, so a reload
// of the next page renders without it.
func (m *Manager) PopFlash(ctx context.Context, sid string) (string, error) {
	d, ok, err := m.store.Get(ctx, sid)
	if err != nil || !ok || d.Flash == "" {
		return "", err
	}
	msg := d.Flash
	d.Flash = ""
	if err := m.store.Save(ctx, sid, d); err != nil {
		return "", err
	}
	return msg, nil
}

// SetLastList remembers the list location a not-found page should offer to
// go back to.
func (m *Manager) SetLastList(ctx context.Context, sid, path string) error {
	d, _, err := m.store.Get(ctx, sid)
	if err != nil {
		return err
	}
	d.LastList = path
	return m.store.Save(ctx, sid, d)
}

// LastList returns the remembered list location, or "" when none exists.
func (m *Manager) LastList(ctx context.Context, sid string) (string, error) {
	d, _, err := m.store.Get(ctx, sid)
	if err != nil {
		return "", err
	}
	return d.LastList, nil
}
