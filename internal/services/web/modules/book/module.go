// Package book hands booking requests off to the external chat channel.
package book

import (
	"errors"
	"net/http"

	module "github.com/louisbranch/balitours/internal/services/web/module"
	"github.com/louisbranch/balitours/internal/services/web/platform/httpx"
	"github.com/louisbranch/balitours/internal/services/web/platform/publichandler"
	"github.com/louisbranch/balitours/internal/services/web/routepath"
	"github.com/louisbranch/balitours/internal/tours/contact"
)

// Source tags intents recorded from the web surface.
const Source = "web"

// Module provides the booking redirect.
type Module struct{}

// New returns a book module.
func New() Module {
	return Module{}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "book"
}

// Mount wires the booking redirect under /book/.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Dispatcher == nil {
		return module.Mount{}, errors.New("contact dispatcher is required")
	}
	h := handlers{Base: publichandler.NewBase(deps), dispatcher: deps.Dispatcher}
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.Book, h.handleBook)
	mux.HandleFunc(routepath.BookPrefix, h.WriteNotFound)
	return module.Mount{Prefix: routepath.BookPrefix, Handler: mux}, nil
}

type handlers struct {
	publichandler.Base
	dispatcher *contact.Dispatcher
}

// handleBook redirects to the chat URI. Recording the intent never delays or
// fails the redirect.
func (h handlers) handleBook(w http.ResponseWriter, r *http.Request) {
	uri := h.dispatcher.Dispatch(r.Context(), r.URL.Query().Get(routepath.SubjectParam), Source)
	httpx.WriteRedirect(w, r, uri)
}
