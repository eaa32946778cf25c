// Package templates renders the site's HTML components.
package templates

import (
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/balitours/internal/services/web/routepath"
	"golang.org/x/text/message"
)

const htmxScriptURL = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// Localizer formats message keys in the request language.
type Localizer interface {
	Sprintf(key message.Reference, a ...any) string
}

// T translates key, returning the key itself without a localizer.
func T(loc Localizer, key string, args ...any) string {
	if loc == nil {
		return key
	}
	return loc.Sprintf(key, args...)
}

// LanguageLink is one entry of the language switcher.
type LanguageLink struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// PageContext carries the shared layout inputs for a page.
type PageContext struct {
	Title        string
	Description  string
	Lang         string
	CurrentPath  string
	SmoothScroll bool
	Languages    []LanguageLink
	Loc          Localizer
}

func (p PageContext) fullTitle() string {
	site := T(p.Loc, "web.site.name")
	title := strings.TrimSpace(p.Title)
	if title == "" || title == site {
		return site
	}
	return title + " | " + site
}

func (p PageContext) navActive(path string) bool {
	current := strings.TrimSpace(p.CurrentPath)
	return current == path || strings.HasPrefix(current, path+"/")
}

// Layout renders the document shell around its children.
func Layout(page PageContext) templ.Component {
	return component(func(h *htmlWriter) {
		lang := page.Lang
		if lang == "" {
			lang = "en-US"
		}
		h.raw("<!doctype html><html")
		h.attr("lang", lang)
		h.raw("><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>")
		h.text(page.fullTitle())
		h.raw("</title>")
		description := page.Description
		if description == "" {
			description = T(page.Loc, "web.site.tagline")
		}
		h.raw("<meta name=\"description\"")
		h.attr("content", description)
		h.raw("><link rel=\"stylesheet\" href=\"/static/site.css\">")
		h.raw("<script defer")
		h.attr("src", htmxScriptURL)
		h.raw("></script><script defer src=\"/static/site.js\"></script></head>")

		h.raw("<body")
		if page.SmoothScroll {
			h.attr("data-smooth-scroll", "true")
		} else {
			h.attr("data-smooth-scroll", "false")
		}
		h.raw(" hx-boost=\"true\" hx-target=\"#main\" hx-swap=\"innerHTML show:window:top\">")
		writeHeader(h, page)
		h.raw("<main id=\"main\">")
		h.children()
		h.raw("</main>")
		writeFooter(h, page)
		h.raw("</body></html>")
	})
}

// MainContent renders children for an HTMX navigation swap, carrying the
// page title so the browser tab updates.
func MainContent(page PageContext) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<title>")
		h.text(page.fullTitle())
		h.raw("</title>")
		h.children()
	})
}

func writeHeader(h *htmlWriter, page PageContext) {
	h.raw("<header class=\"site-header\"><a class=\"site-header__brand\"")
	h.attr("href", routepath.Tours)
	h.raw(">")
	h.text(T(page.Loc, "web.site.name"))
	h.raw("</a><nav class=\"site-header__nav\"")
	h.attr("aria-label", T(page.Loc, "web.nav.tours"))
	h.raw(">")
	navLink(h, routepath.Tours, T(page.Loc, "web.nav.tours"), page.navActive(routepath.Tours))
	navLink(h, routepath.About, T(page.Loc, "web.nav.about"), page.navActive(routepath.About))
	h.raw("</nav>")
	if len(page.Languages) > 0 {
		h.raw("<div class=\"site-header__lang\"")
		h.attr("aria-label", T(page.Loc, "web.nav.language"))
		h.raw(">")
		for _, option := range page.Languages {
			h.raw("<a hx-boost=\"false\"")
			h.attr("href", option.URL)
			h.attr("hreflang", option.Tag)
			if option.Active {
				h.attr("aria-current", "true")
			}
			h.raw(">")
			h.text(option.Label)
			h.raw("</a>")
		}
		h.raw("</div>")
	}
	h.raw("</header>")
}

func navLink(h *htmlWriter, href, label string, active bool) {
	h.raw("<a")
	h.attr("href", href)
	h.attrIf(active, "aria-current", "page")
	h.raw(">")
	h.text(label)
	h.raw("</a>")
}

func writeFooter(h *htmlWriter, page PageContext) {
	h.raw("<footer class=\"site-footer\"><p>")
	h.text(T(page.Loc, "web.site.tagline"))
	h.raw("</p></footer>")
}
