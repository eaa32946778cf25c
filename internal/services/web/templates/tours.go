package templates

import (
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/balitours/internal/services/web/routepath"
)

const maxCardDestinations = 3

// FilterOption is one selectable category or region chip.
type FilterOption struct {
	Value  string
	Label  string
	Icon   string
	Active bool
}

// CardView is the display data for one tour card.
type CardView struct {
	ID              string
	Index           int
	Revealed        bool
	Name            string
	Description     string
	Category        string
	CategoryIcon    string
	Region          string
	RegionIcon      string
	Duration        string
	Difficulty      string
	Destinations    []string
	Featured        bool
	ImageURL        string
	PriceLabel      string
	PerPerson       bool
	BookURL         string
	RevealMargin    string
	RevealThreshold string
}

// ResultsView is the filtered section of the tours page.
type ResultsView struct {
	Cards       []CardView
	ActiveCount int
	ClearURL    string
}

// ToursView is the complete tours page.
type ToursView struct {
	Query         string
	Categories    []FilterOption
	Regions       []FilterOption
	Results       ResultsView
	CustomBookURL string
}

// ToursPage renders the hero, filter bar, results, and custom-tour CTA.
func ToursPage(view ToursView, loc Localizer) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<section class=\"hero hero--tours\"><h1>")
		h.text(T(loc, "web.tours.title"))
		h.raw("</h1><p>")
		h.text(T(loc, "web.tours.subtitle"))
		h.raw("</p></section>")

		h.raw("<form id=\"tour-filters\" class=\"tour-filters\" role=\"search\" method=\"get\"")
		h.attr("action", routepath.Tours)
		h.attr("hx-get", routepath.ToursResults)
		h.raw(" hx-target=\"#tour-results\" hx-swap=\"innerHTML\" hx-trigger=\"input from:#tour-search, change\">")
		h.raw("<label class=\"sr-only\" for=\"tour-search\">")
		h.text(T(loc, "web.tours.search_label"))
		h.raw("</label><input id=\"tour-search\" type=\"search\" name=\"q\" autocomplete=\"off\"")
		h.attr("value", view.Query)
		h.attr("placeholder", T(loc, "web.tours.search_placeholder"))
		h.raw(">")
		writeFilterGroup(h, "category", T(loc, "web.tours.category"), view.Categories)
		writeFilterGroup(h, "region", T(loc, "web.tours.region"), view.Regions)
		h.raw("<noscript><button type=\"submit\">")
		h.text(T(loc, "web.tours.search_submit"))
		h.raw("</button></noscript></form>")

		h.raw("<div id=\"tour-results\" aria-live=\"polite\">")
		h.render(ToursResults(view.Results, loc))
		h.raw("</div>")

		h.render(CustomTourCTA(view.CustomBookURL, loc))
	})
}

func writeFilterGroup(h *htmlWriter, name, legend string, options []FilterOption) {
	h.raw("<fieldset class=\"filter-group\"")
	h.attr("data-filter-group", name)
	h.raw("><legend>")
	h.text(legend)
	h.raw("</legend>")
	for _, option := range options {
		h.raw("<label class=\"chip\"><input type=\"radio\"")
		h.attr("name", name)
		h.attr("value", option.Value)
		h.flag(option.Active, "checked")
		h.raw("><span>")
		if option.Icon != "" {
			h.raw("<span class=\"chip__icon\" aria-hidden=\"true\">")
			h.text(option.Icon)
			h.raw("</span>")
		}
		h.text(option.Label)
		h.raw("</span></label>")
	}
	h.raw("</fieldset>")
}

// ToursResults renders the active-filter summary, result count, and grid or
// empty state.
func ToursResults(view ResultsView, loc Localizer) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<div class=\"results-bar\">")
		if view.ActiveCount > 0 {
			h.raw("<span class=\"filter-badge\">")
			h.text(T(loc, "web.tours.filters_active", view.ActiveCount))
			h.raw("</span><a class=\"filter-clear\" data-clear-filters")
			h.attr("href", view.ClearURL)
			h.raw(">")
			h.text(T(loc, "web.tours.clear_filters"))
			h.raw("</a>")
		}
		h.raw("<p class=\"results-count\" data-count=\"")
		h.intText(len(view.Cards))
		h.raw("\">")
		h.text(T(loc, "web.tours.showing", len(view.Cards)))
		h.raw("</p></div>")

		if len(view.Cards) == 0 {
			h.render(EmptyState(loc))
			return
		}
		h.raw("<div class=\"tour-grid\">")
		for _, card := range view.Cards {
			h.render(TourCard(card, loc))
		}
		h.raw("</div>")
	})
}

// TourCard renders the revealed card or its fixed-size placeholder.
func TourCard(card CardView, loc Localizer) templ.Component {
	if card.Revealed {
		return RevealedCard(card, loc)
	}
	return PlaceholderCard(card, loc)
}

// PlaceholderCard renders a skeleton with no package content. The card
// replaces itself with the revealed markup the first time it nears the
// viewport.
func PlaceholderCard(card CardView, loc Localizer) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<article class=\"tour-card tour-card--placeholder\" aria-busy=\"true\" data-reveal")
		h.attr("id", "tour-card-"+card.ID)
		h.attr("style", "--card-index: "+strconv.Itoa(card.Index))
		h.attr("data-reveal-margin", card.RevealMargin)
		h.attr("data-reveal-threshold", card.RevealThreshold)
		h.attr("hx-get", routepath.TourCard(card.ID)+"?index="+strconv.Itoa(card.Index))
		h.raw(" hx-trigger=\"reveal-card once\" hx-swap=\"outerHTML\" hx-target=\"this\">")
		h.raw("<div class=\"tour-card__media skeleton\"></div><div class=\"tour-card__body\">")
		h.raw("<div class=\"skeleton skeleton--title\"></div><div class=\"skeleton skeleton--line\"></div>")
		h.raw("<div class=\"skeleton skeleton--line\"></div><div class=\"skeleton skeleton--button\"></div></div>")
		h.raw("<span class=\"sr-only\">")
		h.text(T(loc, "web.tours.loading"))
		h.raw("</span></article>")
	})
}

// RevealedCard renders the full card for one package.
func RevealedCard(card CardView, loc Localizer) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<article class=\"tour-card tour-card--revealed\"")
		h.attr("id", "tour-card-"+card.ID)
		h.attr("data-tour-id", card.ID)
		h.attr("style", "--card-index: "+strconv.Itoa(card.Index))
		h.raw("><div class=\"tour-card__media\">")
		if card.ImageURL != "" {
			h.raw("<img loading=\"lazy\" width=\"400\" height=\"260\"")
			h.attr("src", card.ImageURL)
			h.attr("alt", card.Name)
			h.raw(">")
		}
		if card.Featured {
			h.raw("<span class=\"tour-card__featured\">")
			h.text(T(loc, "web.tours.featured"))
			h.raw("</span>")
		}
		h.raw("<span class=\"tour-card__category\"><span aria-hidden=\"true\">")
		h.text(card.CategoryIcon)
		h.raw("</span> ")
		h.text(card.Category)
		h.raw("</span></div><div class=\"tour-card__body\"><h3 class=\"tour-card__title\">")
		h.text(card.Name)
		h.raw("</h3><p class=\"tour-card__meta\"><span class=\"tour-card__region\"><span aria-hidden=\"true\">")
		h.text(card.RegionIcon)
		h.raw("</span> ")
		h.text(card.Region)
		h.raw("</span>")
		if card.Duration != "" {
			h.raw("<span class=\"tour-card__duration\">")
			h.text(card.Duration)
			h.raw("</span>")
		}
		if card.Difficulty != "" {
			h.raw("<span class=\"tour-card__difficulty\">")
			h.text(card.Difficulty)
			h.raw("</span>")
		}
		h.raw("</p>")
		if card.Description != "" {
			h.raw("<p class=\"tour-card__description\">")
			h.text(card.Description)
			h.raw("</p>")
		}
		writeDestinations(h, card.Destinations, loc)
		h.raw("<div class=\"tour-card__footer\"><p class=\"tour-card__price\">")
		h.text(card.PriceLabel)
		h.raw(" <small>")
		if card.PerPerson {
			h.text(T(loc, "web.tours.per_person"))
		} else {
			h.text(T(loc, "web.tours.total"))
		}
		h.raw("</small></p><a class=\"btn btn--primary\" target=\"_blank\" rel=\"noopener\" hx-boost=\"false\"")
		h.attr("href", card.BookURL)
		h.attr("data-book-subject", card.Name)
		h.raw(">")
		h.text(T(loc, "web.tours.book_now"))
		h.raw("</a></div></div></article>")
	})
}

func writeDestinations(h *htmlWriter, destinations []string, loc Localizer) {
	if len(destinations) == 0 {
		return
	}
	h.raw("<ul class=\"tour-card__destinations\"")
	h.attr("aria-label", T(loc, "web.tours.destinations"))
	h.raw(">")
	for idx, destination := range destinations {
		if idx == maxCardDestinations {
			h.raw("<li class=\"tour-card__more\">")
			h.text(T(loc, "web.tours.more_destinations", len(destinations)-maxCardDestinations))
			h.raw("</li>")
			break
		}
		h.raw("<li>")
		h.text(destination)
		h.raw("</li>")
	}
	h.raw("</ul>")
}

// EmptyState renders the no-results message.
func EmptyState(loc Localizer) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<div class=\"empty-state\" id=\"tours-empty\"><span class=\"empty-state__icon\" aria-hidden=\"true\">🔍</span><h3>")
		h.text(T(loc, "web.tours.empty_title"))
		h.raw("</h3><p>")
		h.text(T(loc, "web.tours.empty_hint"))
		h.raw("</p></div>")
	})
}

// CustomTourCTA renders the call to action for a custom itinerary.
func CustomTourCTA(bookURL string, loc Localizer) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<section class=\"cta cta--custom\"><h2>")
		h.text(T(loc, "web.tours.custom_title"))
		h.raw("</h2><p>")
		h.text(T(loc, "web.tours.custom_body"))
		h.raw("</p><a class=\"btn btn--primary\" target=\"_blank\" rel=\"noopener\" hx-boost=\"false\"")
		h.attr("href", bookURL)
		h.raw(">")
		h.text(T(loc, "web.tours.custom_cta"))
		h.raw("</a></section>")
	})
}
