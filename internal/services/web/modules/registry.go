// Package modules lists the feature modules composed into the web handler.
package modules

import (
	module "github.com/louisbranch/balitours/internal/services/web/module"
	"github.com/louisbranch/balitours/internal/services/web/modules/about"
	"github.com/louisbranch/balitours/internal/services/web/modules/api"
	"github.com/louisbranch/balitours/internal/services/web/modules/book"
	"github.com/louisbranch/balitours/internal/services/web/modules/public"
	"github.com/louisbranch/balitours/internal/services/web/modules/tours"
)

// Default returns every web module in mount order.
func Default() []module.Module {
	return []module.Module{
		public.New(),
		tours.New(),
		about.New(),
		book.New(),
		api.New(),
	}
}
