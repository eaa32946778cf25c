// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
	module "github.com/louisbranch/balitours/internal/services/web/module"
	"github.com/louisbranch/balitours/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/balitours/internal/services/web/platform/i18n"
	webtemplates "github.com/louisbranch/balitours/internal/services/web/templates"
	"golang.org/x/text/message"
)

// Page describes a page response for both full-page and HTMX flows.
type Page struct {
	Title       string
	Description string
	StatusCode  int
	Fragment    templ.Component
	Loc         *message.Printer
	Lang        string
}

// WritePage writes the fragment alone for HTMX navigation and inside the
// document layout otherwise.
func WritePage(w http.ResponseWriter, r *http.Request, deps module.Dependencies, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = templ.NopComponent
	}
	if page.Loc == nil {
		page.Loc, page.Lang = webi18n.ResolveLocalizer(w, r)
	}

	pageContext := webtemplates.PageContext{
		Title:        page.Title,
		Description:  page.Description,
		Lang:         page.Lang,
		SmoothScroll: deps.SmoothScroll,
		Loc:          page.Loc,
	}
	if r != nil && r.URL != nil {
		pageContext.CurrentPath = r.URL.Path
	}

	ctx := templ.WithChildren(httpx.RequestContext(r), fragment)
	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if err := webtemplates.MainContent(pageContext).Render(ctx, &buf); err != nil {
			return err
		}
	} else {
		pageContext.Languages = languageLinks(r, page.Lang, page.Loc)
		if err := webtemplates.Layout(pageContext).Render(ctx, &buf); err != nil {
			return err
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

// WriteFragment writes a bare component, used for HTMX partial swaps.
func WriteFragment(w http.ResponseWriter, r *http.Request, statusCode int, fragment templ.Component) error {
	if w == nil {
		return nil
	}
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	var buf bytes.Buffer
	if fragment != nil {
		if err := fragment.Render(httpx.RequestContext(r), &buf); err != nil {
			return err
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

func languageLinks(r *http.Request, lang string, loc *message.Printer) []webtemplates.LanguageLink {
	options := webi18n.LanguageOptions(r, lang, loc)
	links := make([]webtemplates.LanguageLink, 0, len(options))
	for _, option := range options {
		links = append(links, webtemplates.LanguageLink{
			Tag:    option.Tag,
			Label:  option.Label,
			URL:    option.URL,
			Active: option.Active,
		})
	}
	return links
}
