// Package about serves the company story page.
package about

import (
	"net/http"

	module "github.com/louisbranch/balitours/internal/services/web/module"
	"github.com/louisbranch/balitours/internal/services/web/platform/pagerender"
	"github.com/louisbranch/balitours/internal/services/web/platform/publichandler"
	"github.com/louisbranch/balitours/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/balitours/internal/services/web/templates"
)

// Module provides the about page.
type Module struct{}

// New returns an about module.
func New() Module {
	return Module{}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "about"
}

// Mount wires the about page under /about/.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	h := handlers{Base: publichandler.NewBase(deps)}
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.About, h.handleAbout)
	mux.HandleFunc(http.MethodGet+" "+routepath.AboutPrefix+"{$}", h.handleAbout)
	mux.HandleFunc(routepath.AboutPrefix, h.WriteNotFound)
	return module.Mount{Prefix: routepath.AboutPrefix, Handler: mux}, nil
}

type handlers struct {
	publichandler.Base
}

func (h handlers) handleAbout(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.Localizer(w, r)
	h.WritePage(w, r, pagerender.Page{
		Title:       webtemplates.T(loc, "web.about.title"),
		Description: webtemplates.T(loc, "web.about.hero"),
		Fragment:    webtemplates.AboutPage(loc),
		Loc:         loc,
		Lang:        lang,
	})
}
