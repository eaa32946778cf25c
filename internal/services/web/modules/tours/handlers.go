package tours

import (
	"net/http"
	"strconv"

	module "github.com/louisbranch/balitours/internal/services/web/module"
	"github.com/louisbranch/balitours/internal/services/web/platform/httpx"
	"github.com/louisbranch/balitours/internal/services/web/platform/pagerender"
	"github.com/louisbranch/balitours/internal/services/web/platform/publichandler"
	"github.com/louisbranch/balitours/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/balitours/internal/services/web/templates"
	"github.com/louisbranch/balitours/internal/tours/catalog"
)

type handlers struct {
	publichandler.Base
	catalog *catalog.Memo
	cards   cardBuilder
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{
		Base:    publichandler.NewBase(deps),
		catalog: deps.Catalog,
		cards:   newCardBuilder(deps),
	}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.Localizer(w, r)
	state := catalog.FilterStateFromValues(r.URL.Query())
	view := webtemplates.ToursView{
		Query:         state.Query,
		Categories:    categoryOptions(state, h.cards.categoryIcons),
		Regions:       regionOptions(state, h.cards.regionIcons),
		Results:       h.results(r, state),
		CustomBookURL: routepath.BookSubject(""),
	}
	h.WritePage(w, r, pagerender.Page{
		Title:       webtemplates.T(loc, "web.tours.title"),
		Description: webtemplates.T(loc, "web.tours.subtitle"),
		Fragment:    webtemplates.ToursPage(view, loc),
		Loc:         loc,
		Lang:        lang,
	})
}

// handleResults answers filter changes. Plain requests land on the full page
// so the state stays shareable.
func (h handlers) handleResults(w http.ResponseWriter, r *http.Request) {
	state := catalog.FilterStateFromValues(r.URL.Query())
	if !httpx.IsHTMXRequest(r) {
		http.Redirect(w, r, routepath.WithQuery(routepath.Tours, state.Values()), http.StatusFound)
		return
	}
	loc, _ := h.Localizer(w, r)
	w.Header().Set("HX-Push-Url", routepath.WithQuery(routepath.Tours, state.Values()))
	h.WriteFragment(w, r, webtemplates.ToursResults(h.results(r, state), loc))
}

// handleCard reveals one card in place of its placeholder.
func (h handlers) handleCard(w http.ResponseWriter, r *http.Request) {
	pkg, err := h.catalog.Snapshot().Get(r.PathValue("id"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	index, err := strconv.Atoi(r.URL.Query().Get("index"))
	if err != nil || index < 0 {
		index = 0
	}
	loc, _ := h.Localizer(w, r)
	card := h.cards.card(r.Context(), pkg, index, true)
	h.WriteFragment(w, r, webtemplates.RevealedCard(card, loc))
}

func (h handlers) results(r *http.Request, state catalog.FilterState) webtemplates.ResultsView {
	packages := h.catalog.Filter(state)
	return webtemplates.ResultsView{
		Cards:       h.cards.cards(r.Context(), packages),
		ActiveCount: state.ActiveCount(),
		ClearURL:    routepath.WithQuery(routepath.Tours, state.Clear().Values()),
	}
}
