package templates

import (
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/balitours/internal/services/web/routepath"
)

// ErrorPageTitle returns the page title for an error status.
func ErrorPageTitle(statusCode int) string {
	return strconv.Itoa(statusCode) + " " + http.StatusText(statusCode)
}

// ErrorState renders the not-found or server-error message.
func ErrorState(statusCode int, loc Localizer) templ.Component {
	key := "web.error.server"
	if statusCode == http.StatusNotFound {
		key = "web.error.not_found"
	}
	return component(func(h *htmlWriter) {
		h.raw("<section class=\"error-state\" id=\"app-error-state\"")
		h.attr("data-status", strconv.Itoa(statusCode))
		h.raw("><h1>")
		h.text(ErrorPageTitle(statusCode))
		h.raw("</h1><p>")
		h.text(T(loc, key))
		h.raw("</p><a class=\"btn\"")
		h.attr("href", routepath.Tours)
		h.raw(">")
		h.text(T(loc, "web.error.back"))
		h.raw("</a></section>")
	})
}
