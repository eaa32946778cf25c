package templates

import (
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/balitours/internal/services/web/routepath"
)

type aboutSection struct {
	title string
	body  string
}

type aboutValue struct {
	icon  string
	title string
	body  string
}

// AboutPage renders the hero, story sections, values, and closing CTA.
func AboutPage(loc Localizer) templ.Component {
	sections := []aboutSection{
		{title: "web.about.story_title", body: "web.about.story_body"},
		{title: "web.about.mission_title", body: "web.about.mission_body"},
	}
	values := []aboutValue{
		{icon: "🧭", title: "web.about.value_local", body: "web.about.value_local_body"},
		{icon: "🚐", title: "web.about.value_small", body: "web.about.value_small_body"},
		{icon: "🤝", title: "web.about.value_fair", body: "web.about.value_fair_body"},
	}
	return component(func(h *htmlWriter) {
		h.raw("<section class=\"hero hero--about\"><h1>")
		h.text(T(loc, "web.about.title"))
		h.raw("</h1><p>")
		h.text(T(loc, "web.about.hero"))
		h.raw("</p></section>")
		for idx, section := range sections {
			h.raw("<section class=\"story\" data-animate")
			h.attr("style", "--section-index: "+strconv.Itoa(idx))
			h.raw("><h2>")
			h.text(T(loc, section.title))
			h.raw("</h2><p>")
			h.text(T(loc, section.body))
			h.raw("</p></section>")
		}
		h.raw("<section class=\"values\"><h2>")
		h.text(T(loc, "web.about.values_title"))
		h.raw("</h2><ul class=\"values__list\">")
		for _, value := range values {
			h.raw("<li class=\"value\" data-animate><span class=\"value__icon\" aria-hidden=\"true\">")
			h.text(value.icon)
			h.raw("</span><h3>")
			h.text(T(loc, value.title))
			h.raw("</h3><p>")
			h.text(T(loc, value.body))
			h.raw("</p></li>")
		}
		h.raw("</ul></section><section class=\"cta\"><h2>")
		h.text(T(loc, "web.about.cta_title"))
		h.raw("</h2><a class=\"btn btn--primary\"")
		h.attr("href", routepath.Tours)
		h.raw(">")
		h.text(T(loc, "web.about.cta_button"))
		h.raw("</a></section>")
	})
}
