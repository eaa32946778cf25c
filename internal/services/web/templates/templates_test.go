package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"golang.org/x/net/html"
	"golang.org/x/text/message"
)

type keyLocalizer struct{}

func (keyLocalizer) Sprintf(key message.Reference, a ...any) string {
	s, _ := key.(string)
	return s
}

func render(t *testing.T, c templ.Component) (string, *html.Node) {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	doc, err := html.Parse(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("html.Parse() error = %v", err)
	}
	return buf.String(), doc
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		value, _ := attr(n, "class")
		for _, field := range strings.Fields(value) {
			if field == class {
				return true
			}
		}
		return false
	}
}

func hasAttr(key, value string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		got, ok := attr(n, key)
		return ok && got == value
	}
}

func isTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Data == tag
	}
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func sampleCard() CardView {
	return CardView{
		ID:              "uluwatu-sunset-tour",
		Index:           1,
		Name:            "Uluwatu Sunset Tour",
		Description:     "Cliff-top temple & Kecak.",
		Category:        "Sunset",
		CategoryIcon:    "🌅",
		Region:          "South Bali",
		RegionIcon:      "🏖️",
		Destinations:    []string{"Padang Padang Beach", "Uluwatu Temple", "Kecak Fire Dance", "Jimbaran Bay"},
		PriceLabel:      "$45",
		PerPerson:       true,
		BookURL:         "/book?subject=Uluwatu+Sunset+Tour",
		RevealMargin:    "50px",
		RevealThreshold: "0.1",
	}
}

func TestPlaceholderCardCarriesNoPackageContent(t *testing.T) {
	t.Parallel()

	body, doc := render(t, PlaceholderCard(sampleCard(), keyLocalizer{}))
	if strings.Contains(body, "Uluwatu Sunset Tour") || strings.Contains(body, "$45") {
		t.Fatalf("placeholder leaked package content: %q", body)
	}
	cards := findAll(doc, hasClass("tour-card--placeholder"))
	if len(cards) != 1 {
		t.Fatalf("placeholder cards = %d", len(cards))
	}
	card := cards[0]
	for key, want := range map[string]string{
		"hx-get":                "/tours/cards/uluwatu-sunset-tour?index=1",
		"hx-trigger":            "reveal-card once",
		"data-reveal-margin":    "50px",
		"data-reveal-threshold": "0.1",
	} {
		if got, _ := attr(card, key); got != want {
			t.Fatalf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestRevealedCardRendersPackage(t *testing.T) {
	t.Parallel()

	card := sampleCard()
	card.Revealed = true
	body, doc := render(t, TourCard(card, keyLocalizer{}))
	if !strings.Contains(body, "Cliff-top temple &amp; Kecak.") {
		t.Fatalf("description not escaped: %q", body)
	}
	links := findAll(doc, hasClass("btn--primary"))
	if len(links) != 1 {
		t.Fatalf("book links = %d", len(links))
	}
	if href, _ := attr(links[0], "href"); href != card.BookURL {
		t.Fatalf("href = %q", href)
	}
	if target, _ := attr(links[0], "target"); target != "_blank" {
		t.Fatalf("target = %q", target)
	}
	items := findAll(doc, isTag("li"))
	if len(items) != 4 {
		t.Fatalf("destination items = %d, want 3 plus more", len(items))
	}
	if got := textOf(findAll(doc, hasClass("tour-card__price"))[0]); !strings.Contains(got, "$45") || !strings.Contains(got, "web.tours.per_person") {
		t.Fatalf("price = %q", got)
	}
}

func TestToursResultsShowsEmptyState(t *testing.T) {
	t.Parallel()

	_, doc := render(t, ToursResults(ResultsView{}, keyLocalizer{}))
	if len(findAll(doc, hasClass("empty-state"))) != 1 {
		t.Fatal("missing empty state")
	}
	if len(findAll(doc, hasClass("tour-grid"))) != 0 {
		t.Fatal("empty results should not render a grid")
	}
	if len(findAll(doc, hasClass("filter-clear"))) != 0 {
		t.Fatal("clear link shown without active filters")
	}
}

func TestToursResultsShowsClearLinkWhenFiltered(t *testing.T) {
	t.Parallel()

	view := ResultsView{Cards: []CardView{sampleCard()}, ActiveCount: 1, ClearURL: "/tours?q=sun"}
	_, doc := render(t, ToursResults(view, keyLocalizer{}))
	clear := findAll(doc, hasClass("filter-clear"))
	if len(clear) != 1 {
		t.Fatalf("clear links = %d", len(clear))
	}
	if href, _ := attr(clear[0], "href"); href != "/tours?q=sun" {
		t.Fatalf("href = %q", href)
	}
	count := findAll(doc, hasClass("results-count"))
	if got, _ := attr(count[0], "data-count"); got != "1" {
		t.Fatalf("data-count = %q", got)
	}
}

func TestToursPageMarksActiveChips(t *testing.T) {
	t.Parallel()

	view := ToursView{
		Query:      "temple",
		Categories: []FilterOption{{Value: "All", Label: "All"}, {Value: "Beach", Label: "Beach", Icon: "🏖️", Active: true}},
		Regions:    []FilterOption{{Value: "All", Label: "All", Active: true}},
	}
	_, doc := render(t, ToursPage(view, keyLocalizer{}))
	checked := findAll(doc, func(n *html.Node) bool {
		_, ok := attr(n, "checked")
		return n.Data == "input" && ok
	})
	if len(checked) != 2 {
		t.Fatalf("checked inputs = %d, want 2", len(checked))
	}
	if value, _ := attr(checked[0], "value"); value != "Beach" {
		t.Fatalf("checked category = %q", value)
	}
	search := findAll(doc, hasAttr("id", "tour-search"))
	if value, _ := attr(search[0], "value"); value != "temple" {
		t.Fatalf("search value = %q", value)
	}
}

func TestLayoutRendersChildrenOnceWithSmoothScrollFlag(t *testing.T) {
	t.Parallel()

	child := templ.Raw("<p id=\"child\">hi</p>")
	ctx := templ.WithChildren(context.Background(), child)
	var buf bytes.Buffer
	page := PageContext{Title: "web.tours.title", Lang: "id-ID", SmoothScroll: true, CurrentPath: "/tours", Loc: keyLocalizer{}}
	if err := Layout(page).Render(ctx, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	body := buf.String()
	if strings.Count(body, "id=\"child\"") != 1 {
		t.Fatalf("children rendered %d times", strings.Count(body, "id=\"child\""))
	}
	doc, _ := html.Parse(strings.NewReader(body))
	bodies := findAll(doc, isTag("body"))
	if got, _ := attr(bodies[0], "data-smooth-scroll"); got != "true" {
		t.Fatalf("data-smooth-scroll = %q", got)
	}
	htmlNodes := findAll(doc, isTag("html"))
	if got, _ := attr(htmlNodes[0], "lang"); got != "id-ID" {
		t.Fatalf("lang = %q", got)
	}
	current := findAll(doc, hasAttr("aria-current", "page"))
	if len(current) != 1 {
		t.Fatalf("aria-current links = %d", len(current))
	}
}

func TestErrorStateUsesStatusMessage(t *testing.T) {
	t.Parallel()

	body, _ := render(t, ErrorState(404, keyLocalizer{}))
	if !strings.Contains(body, "web.error.not_found") || !strings.Contains(body, "404 Not Found") {
		t.Fatalf("body = %q", body)
	}
	body, _ = render(t, ErrorState(503, keyLocalizer{}))
	if !strings.Contains(body, "web.error.server") {
		t.Fatalf("body = %q", body)
	}
}

func TestAboutPageLinksToTours(t *testing.T) {
	t.Parallel()

	_, doc := render(t, AboutPage(keyLocalizer{}))
	links := findAll(doc, hasAttr("href", "/tours"))
	if len(links) != 1 {
		t.Fatalf("tours links = %d", len(links))
	}
	if len(findAll(doc, hasClass("value"))) != 3 {
		t.Fatal("expected three values")
	}
}
