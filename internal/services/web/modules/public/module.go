// Package public serves the root redirect, health check, and not-found
// fallback.
package public

import (
	"net/http"

	module "github.com/louisbranch/balitours/internal/services/web/module"
	"github.com/louisbranch/balitours/internal/services/web/platform/httpx"
	"github.com/louisbranch/balitours/internal/services/web/platform/publichandler"
	"github.com/louisbranch/balitours/internal/services/web/routepath"
)

// Module provides the root routes.
type Module struct{}

// New returns a public module.
func New() Module {
	return Module{}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "public"
}

// Mount wires root routes. It owns every path no other module claims.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	h := handlers{Base: publichandler.NewBase(deps)}
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleRoot)
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, h.handleHealth)
	mux.HandleFunc(routepath.Root, h.WriteNotFound)
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}

type handlers struct {
	publichandler.Base
}

// handleRoot lands visitors on the tours page, keeping any language choice.
func (h handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, routepath.WithQuery(routepath.Tours, r.URL.Query()), http.StatusFound)
}

func (handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteText(w, http.StatusOK, "ok")
}
