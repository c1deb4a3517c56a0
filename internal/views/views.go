// internal/views/views.go
package views

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"bdaybook/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageNames lists every renderable page; each is parsed together with the
// shared layout.
var pageNames = []string{
	"list", "form", "show", "delete_confirm", "not_found", "login", "error",
}

// Renderer parses the embedded templates once and renders complete pages.
// Handlers treat it as an opaque render(name, data) collaborator.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses layout plus every page template, failing fast on a
// broken template rather than at request time.
func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the named page with the given HTTP status.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data interface{}) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return t.ExecuteTemplate(w, "layout", data)
}

// Base carries what the layout needs on every page.
type Base struct {
	Title    string
	Flash    string
	LoggedIn bool
}

// ListPage feeds the friends listing.
type ListPage struct {
	Base
	Friends        []models.FriendDetail
	Pagination     Pagination
	PerPageOptions []PerPageOption
}

// PerPageOption is one choice in the page-size selector.
type PerPageOption struct {
	Index  int
	Size   int
	Active bool
}

// FormPage feeds the create/edit form. Errors holds the per-field inline
// messages of a failed submission, keyed by form field name.
type FormPage struct {
	Base
	Heading    string
	SubmitPath string
	CancelPath string
	Form       models.FriendForm
	Errors     map[string]string
}

// ShowPage feeds the detail view.
type ShowPage struct {
	Base
	Friend models.FriendDetail
}

// ConfirmPage feeds the delete confirmation.
type ConfirmPage struct {
	Base
	Friend models.FriendDetail
}

// NotFoundPage feeds the friendly missing-record page.
type NotFoundPage struct {
	Base
	BackPath string
}

// LoginPage feeds the admin login form.
type LoginPage struct {
	Base
	Email string
	Error string
}

// ErrorPage feeds the generic storage-fault page.
type ErrorPage struct {
	Base
}
