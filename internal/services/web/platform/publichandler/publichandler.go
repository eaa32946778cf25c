// Package publichandler provides a shared base for web module handlers. It
// centralizes error handling, localization, and page rendering that would
// otherwise be duplicated across modules.
package publichandler

import (
	"net/http"

	"github.com/a-h/templ"
	module "github.com/louisbranch/balitours/internal/services/web/module"
	apperrors "github.com/louisbranch/balitours/internal/services/web/platform/errors"
	webi18n "github.com/louisbranch/balitours/internal/services/web/platform/i18n"
	"github.com/louisbranch/balitours/internal/services/web/platform/pagerender"
	"github.com/louisbranch/balitours/internal/services/web/platform/weberror"
	"golang.org/x/text/message"
)

// Base provides shared error handling and page rendering. Embed it in handler
// structs to get WritePage, WriteNotFound, and WriteError.
type Base struct {
	deps module.Dependencies
}

// NewBase builds a handler base bound to deps.
func NewBase(deps module.Dependencies) Base {
	return Base{deps: deps}
}

// Dependencies returns the bound module dependencies.
func (b Base) Dependencies() module.Dependencies {
	return b.deps
}

// Localizer resolves the request language once per request.
func (Base) Localizer(w http.ResponseWriter, r *http.Request) (*message.Printer, string) {
	return webi18n.ResolveLocalizer(w, r)
}

// WritePage renders body inside the layout, or alone for HTMX navigation.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := pagerender.WritePage(w, r, b.deps, page); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteFragment renders a partial swap target.
func (b Base) WriteFragment(w http.ResponseWriter, r *http.Request, body templ.Component) {
	if err := pagerender.WriteFragment(w, r, http.StatusOK, body); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteNotFound renders a localized 404 page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, b.deps)
}

// WriteError renders a user-safe error response: error pages for not-found
// and server errors, plain-text status messages for everything else.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		err = apperrors.E(apperrors.KindUnknown, "unknown error")
	}
	weberror.WriteModuleError(w, r, err, b.deps)
}
