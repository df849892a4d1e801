// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/employeehub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// pageData is the view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Code    string
	Heading string
	Message string
	Link    string
}

// Handler is the errors feature handler.
// No storage needed; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound renders the not-found page for any unmatched route.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	RenderNotFound(w, r)
}

// RenderNotFound renders the not-found page with a 404 status.
func RenderNotFound(w http.ResponseWriter, r *http.Request) {
	base := viewdata.NewBaseVM(r, "notFound.title", "/")
	data := pageData{
		BaseVM:  base,
		Code:    base.Tr("notFound.code"),
		Heading: base.Tr("notFound.title"),
		Message: base.Tr("notFound.message"),
		Link:    base.Tr("notFound.home"),
	}
	data.BackURL = "/"

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "error_not_found", data)
}

// RenderError renders the generic error page with status and a user-facing
// message. An empty message uses the translated default.
func RenderError(w http.ResponseWriter, r *http.Request, status int, msg, backURL string) {
	base := viewdata.NewBaseVM(r, "errors.title", "/")
	if msg == "" {
		msg = base.Tr("errors.message")
	}
	if backURL != "" {
		base.BackURL = backURL
	}
	data := pageData{
		BaseVM:  base,
		Heading: base.Tr("errors.title"),
		Message: msg,
		Link:    base.Tr("errors.back"),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	templates.Render(w, r, "error_page", data)
}
