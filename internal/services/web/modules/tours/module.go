// Package tours serves the filterable tour catalog page and its HTMX
// fragments.
package tours

import (
	"errors"
	"net/http"

	module "github.com/louisbranch/balitours/internal/services/web/module"
	"github.com/louisbranch/balitours/internal/services/web/routepath"
)

// Module provides the tours page, results fragment, and card reveal routes.
type Module struct{}

// New returns a tours module.
func New() Module {
	return Module{}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "tours"
}

// Mount wires tour routes under /tours/.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Catalog == nil {
		return module.Mount{}, errors.New("tour catalog is required")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(deps))
	return module.Mount{Prefix: routepath.ToursPrefix, Handler: mux}, nil
}

func registerRoutes(mux *http.ServeMux, h handlers) {
	mux.HandleFunc(http.MethodGet+" "+routepath.Tours, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.ToursPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.ToursResults, h.handleResults)
	mux.HandleFunc(http.MethodGet+" "+routepath.TourCardPattern, h.handleCard)
	mux.HandleFunc(routepath.ToursPrefix, h.WriteNotFound)
}
