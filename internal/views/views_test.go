package views

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bdaybook/internal/models"
)

func testDetail() models.FriendDetail {
	return models.Display(models.Friend{
		ID:           7,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		EmailAddress: "ada@example.com",
		Birthday:     "1815-12-10",
	})
}

func render(t *testing.T, name string, data interface{}) *httptest.ResponseRecorder {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	if err := r.Render(w, 200, name, data); err != nil {
		t.Fatalf("failed to render %s: %v", name, err)
	}
	return w
}

func TestRenderList(t *testing.T) {
	w := render(t, "list", ListPage{
		Base:    Base{Title: "Friends", Flash: "Friend created.", LoggedIn: true},
		Friends: []models.FriendDetail{testDetail()},
		Pagination: Pagination{
			Total: 60, PerPage: 20, Current: 2, BasePath: "/friends/manage",
		},
		PerPageOptions: []PerPageOption{
			{Index: 0, Size: 10},
			{Index: 1, Size: 20, Active: true},
		},
	})

	body := w.Body.String()
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, body, "Ada Lovelace")
	assert.Contains(t, body, "Dec 10")
	assert.Contains(t, body, "/friends/show/7")
	assert.Contains(t, body, "/friends/create/7")
	assert.Contains(t, body, "/friends/delete_conf/7")
	assert.Contains(t, body, "/friends/set_per_page/0")
	assert.Contains(t, body, "Friend created.")
	assert.Contains(t, body, "/friends/manage/3")
	assert.Contains(t, body, "Log out")
}

func TestRenderListEmpty(t *testing.T) {
	w := render(t, "list", ListPage{
		Base:       Base{Title: "Friends"},
		Pagination: Pagination{Total: 0, PerPage: 20, Current: 1, BasePath: "/friends/manage"},
	})

	body := w.Body.String()
	assert.Contains(t, body, "No friends recorded yet.")
	assert.NotContains(t, body, "Prev")
	assert.NotContains(t, body, "Log out")
}

func TestRenderForm(t *testing.T) {
	w := render(t, "form", FormPage{
		Base:       Base{Title: "Edit friend"},
		Heading:    "Edit friend",
		SubmitPath: "/friends/submit/7",
		CancelPath: "/friends/show/7",
		Form: models.FriendForm{
			FirstName:    "Ada",
			LastName:     "Lovelace",
			EmailAddress: "not-an-email",
			Birthday:     "1815-12-10",
		},
		Errors: map[string]string{
			"EmailAddress": "The email address field must contain a valid email address.",
		},
	})

	body := w.Body.String()
	assert.Contains(t, body, `action="/friends/submit/7"`)
	assert.Contains(t, body, `name="form_submitted" value="1"`)
	assert.Contains(t, body, `value="not-an-email"`)
	assert.Contains(t, body, "must contain a valid email address")
	assert.NotContains(t, body, "The first name field")
}

func TestRenderShow(t *testing.T) {
	w := render(t, "show", ShowPage{
		Base:   Base{Title: "Ada Lovelace"},
		Friend: testDetail(),
	})

	body := w.Body.String()
	assert.Contains(t, body, "ada@example.com")
	assert.Contains(t, body, "December 10, 1815")
	assert.Contains(t, body, "Dec 10")
}

func TestRenderDeleteConfirm(t *testing.T) {
	w := render(t, "delete_confirm", ConfirmPage{
		Base:   Base{Title: "Delete friend"},
		Friend: testDetail(),
	})

	body := w.Body.String()
	assert.Contains(t, body, `action="/friends/submit_delete/7"`)
	assert.Contains(t, body, `name="delete_confirmed" value="1"`)
}

func TestRenderNotFound(t *testing.T) {
	w := render(t, "not_found", NotFoundPage{
		Base:     Base{Title: "Not found"},
		BackPath: "/friends/manage/3",
	})

	assert.Contains(t, w.Body.String(), `href="/friends/manage/3"`)
}

func TestRenderLogin(t *testing.T) {
	w := render(t, "login", LoginPage{
		Base:  Base{Title: "Sign in"},
		Email: "admin@example.com",
		Error: "Invalid email or password.",
	})

	body := w.Body.String()
	assert.Contains(t, body, `value="admin@example.com"`)
	assert.Contains(t, body, "Invalid email or password.")
}

func TestRenderErrorPage(t *testing.T) {
	w := render(t, "error", ErrorPage{Base: Base{Title: "Error"}})
	assert.Contains(t, w.Body.String(), "Something went wrong")
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	assert.Error(t, r.Render(w, 200, "nope", nil))
}
