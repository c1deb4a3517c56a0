// internal/handlers/friend.go
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"bdaybook/internal/database"
	"bdaybook/internal/middleware"
	"bdaybook/internal/models"
	"bdaybook/internal/session"
	"bdaybook/internal/validate"
	"bdaybook/internal/views"
)

// perPageOptions are the page sizes the listing offers, selected by index.
var perPageOptions = [...]int{10, 20, 50, 100}

// defaultPerPageIndex picks 20 per page when the session holds no choice
// or an out-of-range one.
const defaultPerPageIndex = 1

const listPath = "/friends/manage"

// FriendStore is what the handlers need from record storage.
type FriendStore interface {
	FetchPage(ctx context.Context, limit, offset int) ([]models.Friend, error)
	FetchByID(ctx context.Context, id int64) (models.Friend, error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, f models.Friend) (int64, error)
	Update(ctx context.Context, id int64, f models.Friend) error
	Delete(ctx context.Context, id int64) error
}

// FriendHandler serves every friends page: listing, create/edit form,
// detail, delete confirmation and the mutations behind them.
type FriendHandler struct {
	Store    FriendStore
	Sessions *session.Manager
	Views    *views.Renderer
	Log      *logrus.Logger
}

func NewFriendHandler(store FriendStore, sessions *session.Manager, renderer *views.Renderer, log *logrus.Logger) *FriendHandler {
	return &FriendHandler{Store: store, Sessions: sessions, Views: renderer, Log: log}
}

// parseID converts a path segment to a record id. Empty or malformed
// segments and negative numbers report !ok; 0 is a valid "no target" id.
func parseID(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

// maxListPage caps the page segment; beyond it (page-1)*size would
// overflow into a negative offset.
const maxListPage = 1 << 20

// parsePage converts the optional page segment of the list route; anything
// that is not a positive integer means page one, and absurd values clamp
// to maxListPage.
func parsePage(s string) int {
	page, err := strconv.Atoi(s)
	if err != nil || page < 1 {
		return 1
	}
	if page > maxListPage {
		return maxListPage
	}
	return page
}

func (h *FriendHandler) base(r *http.Request, title, flash string) views.Base {
	return views.Base{
		Title:    title,
		Flash:    flash,
		LoggedIn: middleware.LoggedIn(r),
	}
}

func (h *FriendHandler) render(w http.ResponseWriter, status int, name string, data interface{}) {
	if err := h.Views.Render(w, status, name, data); err != nil {
		h.Log.WithError(err).WithField("template", name).Error("failed to render page")
	}
}

// renderError serves the generic storage-fault page.
func (h *FriendHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	h.Log.WithError(err).WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Error("request failed")
	h.render(w, http.StatusInternalServerError, "error", views.ErrorPage{
		Base: h.base(r, "Something went wrong", ""),
	})
}

// notFound serves the friendly missing-record page. The back link reuses
// the last list location when there was one.
func (h *FriendHandler) notFound(w http.ResponseWriter, r *http.Request, sid string) {
	back, err := h.Sessions.LastList(r.Context(), sid)
	if err != nil {
		h.Log.WithError(err).Warn("failed to read last list location")
		back = ""
	}
	if !strings.HasPrefix(back, listPath) {
		back = listPath
	}
	h.render(w, http.StatusNotFound, "not_found", views.NotFoundPage{
		Base:     h.base(r, "Friend not found", ""),
		BackPath: back,
	})
}

// perPageIndex reads the session's page-size choice, falling back to the
// default when unset, unreadable or out of range.
func (h *FriendHandler) perPageIndex(ctx context.Context, sid string) int {
	idx, err := h.Sessions.PerPageIndex(ctx, sid, defaultPerPageIndex)
	if err != nil {
		h.Log.WithError(err).Warn("failed to read per-page preference")
		return defaultPerPageIndex
	}
	if idx < 0 || idx >= len(perPageOptions) {
		return defaultPerPageIndex
	}
	return idx
}

// Redirect sends the bare /friends entry point to the list.
func (h *FriendHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, listPath, http.StatusSeeOther)
}

// List renders one page of friends with pagination and the page-size
// selector.
func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := h.Sessions.SessionID(w, r)

	idx := h.perPageIndex(ctx, sid)
	size := perPageOptions[idx]

	page := parsePage(r.PathValue("page"))
	offset := 0
	if page > 1 {
		offset = (page - 1) * size
	}

	friends, err := h.Store.FetchPage(ctx, size, offset)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	total, err := h.Store.Count(ctx)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if err := h.Sessions.SetLastList(ctx, sid, r.URL.Path); err != nil {
		h.Log.WithError(err).Warn("failed to remember list location")
	}
	flash, err := h.Sessions.PopFlash(ctx, sid)
	if err != nil {
		h.Log.WithError(err).Warn("failed to read flash message")
	}

	options := make([]views.PerPageOption, len(perPageOptions))
	for i, opt := range perPageOptions {
		options[i] = views.PerPageOption{Index: i, Size: opt, Active: i == idx}
	}

	h.render(w, http.StatusOK, "list", views.ListPage{
		Base:    h.base(r, "Friends", flash),
		Friends: models.DisplayAll(friends),
		Pagination: views.Pagination{
			Total:    total,
			PerPage:  size,
			Current:  page,
			BasePath: listPath,
		},
		PerPageOptions: options,
	})
}

// formPage assembles the create/edit page around a form state.
func (h *FriendHandler) formPage(r *http.Request, id int64, form models.FriendForm, errs map[string]string) views.FormPage {
	page := views.FormPage{
		Heading:    "Add a friend",
		SubmitPath: "/friends/submit/0",
		CancelPath: listPath,
		Form:       form,
		Errors:     errs,
	}
	if id > 0 {
		page.Heading = "Edit friend"
		page.SubmitPath = fmt.Sprintf("/friends/submit/%d", id)
		page.CancelPath = fmt.Sprintf("/friends/show/%d", id)
	}
	page.Base = h.base(r, page.Heading, "")
	return page
}

// ShowForm renders a blank create form, or an edit form populated from
// storage when the path names an existing friend.
func (h *FriendHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := h.Sessions.SessionID(w, r)

	id, _ := parseID(r.PathValue("id"))

	var form models.FriendForm
	if id > 0 {
		friend, err := h.Store.FetchByID(ctx, id)
		if errors.Is(err, database.ErrNotFound) {
			h.notFound(w, r, sid)
			return
		}
		if err != nil {
			h.renderError(w, r, err)
			return
		}
		form = models.FormFromFriend(friend)
	}

	h.render(w, http.StatusOK, "form", h.formPage(r, id, form, nil))
}

// Submit handles the form post: validate, then insert or update, flash and
// redirect to the detail page. A failed validation redisplays the form
// with the submitted values preserved.
func (h *FriendHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := h.Sessions.SessionID(w, r)

	id, _ := parseID(r.PathValue("id"))

	// An incidental request without the marker shows the form instead.
	if r.FormValue("form_submitted") != "1" {
		target := "/friends/create"
		if id > 0 {
			target = fmt.Sprintf("/friends/create/%d", id)
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	form := models.FriendForm{
		FirstName:    r.FormValue("first_name"),
		LastName:     r.FormValue("last_name"),
		EmailAddress: r.FormValue("email_address"),
		Birthday:     r.FormValue("birthday"),
	}

	if errs := validate.Fields(form); len(errs) > 0 {
		h.render(w, http.StatusUnprocessableEntity, "form", h.formPage(r, id, form, errs))
		return
	}

	affected := id
	flash := "Friend updated."
	if id > 0 {
		if err := h.Store.Update(ctx, id, form.Record()); err != nil {
			h.renderError(w, r, err)
			return
		}
	} else {
		newID, err := h.Store.Insert(ctx, form.Record())
		if err != nil {
			h.renderError(w, r, err)
			return
		}
		affected = newID
		flash = "Friend created."
	}

	if err := h.Sessions.SetFlash(ctx, sid, flash); err != nil {
		h.Log.WithError(err).Warn("failed to set flash message")
	}
	http.Redirect(w, r, fmt.Sprintf("/friends/show/%d", affected), http.StatusSeeOther)
}

// ShowDetail renders one friend.
func (h *FriendHandler) ShowDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := h.Sessions.SessionID(w, r)

	id, ok := parseID(r.PathValue("id"))
	if !ok || id == 0 {
		h.notFound(w, r, sid)
		return
	}

	friend, err := h.Store.FetchByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		h.notFound(w, r, sid)
		return
	}
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	detail := models.Display(friend)
	flash, err := h.Sessions.PopFlash(ctx, sid)
	if err != nil {
		h.Log.WithError(err).Warn("failed to read flash message")
	}

	h.render(w, http.StatusOK, "show", views.ShowPage{
		Base:   h.base(r, detail.FullName, flash),
		Friend: detail,
	})
}

// ConfirmDelete shows the friend about to be removed and asks for
// confirmation.
func (h *FriendHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := h.Sessions.SessionID(w, r)

	id, ok := parseID(r.PathValue("id"))
	if !ok || id == 0 {
		h.notFound(w, r, sid)
		return
	}

	friend, err := h.Store.FetchByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		h.notFound(w, r, sid)
		return
	}
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, http.StatusOK, "delete_confirm", views.ConfirmPage{
		Base:   h.base(r, "Delete friend", ""),
		Friend: models.Display(friend),
	})
}

// SubmitDelete removes a friend after confirmation. Missing ids, posts
// without the confirmation marker and already-gone records land back on
// the list without complaint.
func (h *FriendHandler) SubmitDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := h.Sessions.SessionID(w, r)

	id, ok := parseID(r.PathValue("id"))
	if !ok || id == 0 {
		http.Redirect(w, r, listPath, http.StatusSeeOther)
		return
	}

	// An incidental request without the marker is not a deletion.
	if r.FormValue("delete_confirmed") != "1" {
		http.Redirect(w, r, listPath, http.StatusSeeOther)
		return
	}

	if _, err := h.Store.FetchByID(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			http.Redirect(w, r, listPath, http.StatusSeeOther)
			return
		}
		h.renderError(w, r, err)
		return
	}

	if err := h.Store.Delete(ctx, id); err != nil {
		h.renderError(w, r, err)
		return
	}

	if err := h.Sessions.SetFlash(ctx, sid, "Friend deleted."); err != nil {
		h.Log.WithError(err).Warn("failed to set flash message")
	}
	http.Redirect(w, r, listPath, http.StatusSeeOther)
}

// SetPerPage stores the page-size choice for this session and returns to
// the list. Out-of-range indexes silently fall back to the default.
func (h *FriendHandler) SetPerPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := h.Sessions.SessionID(w, r)

	idx, err := strconv.Atoi(r.PathValue("opt"))
	if err != nil || idx < 0 || idx >= len(perPageOptions) {
		idx = defaultPerPageIndex
	}

	if err := h.Sessions.SetPerPageIndex(ctx, sid, idx); err != nil {
		h.Log.WithError(err).Warn("failed to store per-page preference")
	}
	http.Redirect(w, r, listPath, http.StatusSeeOther)
}
