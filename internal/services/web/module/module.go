// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"

	"github.com/louisbranch/balitours/internal/platform/icons"
	"github.com/louisbranch/balitours/internal/tours/catalog"
	"github.com/louisbranch/balitours/internal/tours/contact"
	"github.com/louisbranch/balitours/internal/tours/images"
	"github.com/louisbranch/balitours/internal/tours/reveal"
)

// EagerCardsAuto reveals the cards a default desktop viewport shows on load.
const EagerCardsAuto = -1

// Dependencies carries the shared services modules mount against.
type Dependencies struct {
	Catalog       *catalog.Memo
	Dispatcher    *contact.Dispatcher
	Images        images.Resolver
	CategoryIcons icons.CategoryIconResolver
	RegionIcons   icons.RegionIconResolver
	Reveal        reveal.Options
	// EagerCards is how many leading cards render revealed on the first
	// response. EagerCardsAuto derives it from a default viewport.
	EagerCards   int
	SmoothScroll bool
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}
