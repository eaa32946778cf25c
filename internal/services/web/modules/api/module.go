// Package api serves the tour catalog as JSON.
package api

import (
	"errors"
	"net/http"

	module "github.com/louisbranch/balitours/internal/services/web/module"
	"github.com/louisbranch/balitours/internal/services/web/routepath"
	"github.com/louisbranch/balitours/internal/tours/images"
)

// Module provides the read-only catalog API.
type Module struct{}

// New returns an api module.
func New() Module {
	return Module{}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "api"
}

// Mount wires JSON routes under /api/.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Catalog == nil {
		return module.Mount{}, errors.New("tour catalog is required")
	}
	h := handlers{catalog: deps.Catalog, images: deps.Images}
	if h.images == nil {
		h.images = images.Static{}
	}
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.APITours, h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.APITourPattern, h.handleGet)
	mux.HandleFunc(routepath.APIPrefix, h.handleNotFound)
	return module.Mount{Prefix: routepath.APIPrefix, Handler: mux}, nil
}
