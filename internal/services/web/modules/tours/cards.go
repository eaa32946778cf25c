package tours

import (
	"context"
	"log"

	"github.com/louisbranch/balitours/internal/platform/icons"
	module "github.com/louisbranch/balitours/internal/services/web/module"
	"github.com/louisbranch/balitours/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/balitours/internal/services/web/templates"
	"github.com/louisbranch/balitours/internal/tours/catalog"
	"github.com/louisbranch/balitours/internal/tours/images"
	"github.com/louisbranch/balitours/internal/tours/reveal"
)

// Default desktop layout used to size the automatic eager reveal.
const (
	gridColumns    = 3
	cardWidth      = 360
	cardHeight     = 460
	gridGap        = 24
	gridTop        = 480
	viewportWidth  = 1280
	viewportHeight = 800
)

type cardBuilder struct {
	images        images.Resolver
	categoryIcons icons.CategoryIconResolver
	regionIcons   icons.RegionIconResolver
	reveal        reveal.Options
	eager         int
}

func newCardBuilder(deps module.Dependencies) cardBuilder {
	b := cardBuilder{
		images:        deps.Images,
		categoryIcons: deps.CategoryIcons,
		regionIcons:   deps.RegionIcons,
		reveal:        deps.Reveal,
		eager:         deps.EagerCards,
	}
	if b.images == nil {
		b.images = images.Static{}
	}
	if b.categoryIcons == nil {
		b.categoryIcons = icons.Emoji{}
	}
	if b.regionIcons == nil {
		b.regionIcons = icons.Emoji{}
	}
	if b.reveal == (reveal.Options{}) {
		b.reveal = reveal.DefaultOptions()
	}
	return b
}

// eagerCount is how many leading cards of n render already revealed.
func (b cardBuilder) eagerCount(n int) int {
	count := b.eager
	if count == module.EagerCardsAuto {
		rects := reveal.Grid(n, gridColumns, cardWidth, cardHeight, gridGap, gridTop)
		count = reveal.InitiallyRevealed(rects, viewportWidth, viewportHeight, b.reveal)
	}
	if count < 0 {
		return 0
	}
	return min(count, n)
}

// cards builds the grid. Each card gets its own latch; the leading eager
// cards are latched before the first response.
func (b cardBuilder) cards(ctx context.Context, packages []catalog.TourPackage) []webtemplates.CardView {
	eager := b.eagerCount(len(packages))
	out := make([]webtemplates.CardView, 0, len(packages))
	for idx, pkg := range packages {
		latch := reveal.NewLatch(b.reveal, nil)
		if idx < eager {
			latch.Reveal()
		}
		out = append(out, b.card(ctx, pkg, idx, latch.State() == reveal.Revealed))
	}
	return out
}

func (b cardBuilder) card(ctx context.Context, pkg catalog.TourPackage, index int, revealed bool) webtemplates.CardView {
	view := webtemplates.CardView{
		ID:              pkg.ID,
		Index:           index,
		Revealed:        revealed,
		RevealMargin:    b.reveal.MarginAttr(),
		RevealThreshold: b.reveal.ThresholdAttr(),
	}
	if !revealed {
		return view
	}
	imageURL, err := b.images.Resolve(ctx, pkg.Image)
	if err != nil {
		log.Printf("resolve image package=%s: %v", pkg.ID, err)
		imageURL = ""
	}
	view.Name = pkg.Name
	view.Description = pkg.Description
	view.Category = string(pkg.Category)
	view.CategoryIcon = b.categoryIcons.CategoryIcon(pkg.Category)
	view.Region = string(pkg.Region)
	view.RegionIcon = b.regionIcons.RegionIcon(pkg.Region)
	view.Duration = pkg.Duration
	view.Difficulty = string(pkg.Difficulty)
	view.Destinations = pkg.Destinations
	view.Featured = pkg.Featured
	view.ImageURL = imageURL
	view.PriceLabel = pkg.Price.Label()
	view.PerPerson = pkg.Price.PerPerson
	view.BookURL = routepath.BookSubject(pkg.Name)
	return view
}

func categoryOptions(state catalog.FilterState, resolver icons.CategoryIconResolver) []webtemplates.FilterOption {
	selected := state.Category
	if selected == "" {
		selected = catalog.All
	}
	out := make([]webtemplates.FilterOption, 0, len(catalog.Categories()))
	for _, category := range catalog.Categories() {
		out = append(out, webtemplates.FilterOption{
			Value:  string(category),
			Label:  string(category),
			Icon:   resolver.CategoryIcon(category),
			Active: category == selected,
		})
	}
	return out
}

func regionOptions(state catalog.FilterState, resolver icons.RegionIconResolver) []webtemplates.FilterOption {
	selected := state.Region
	if selected == "" {
		selected = catalog.All
	}
	out := make([]webtemplates.FilterOption, 0, len(catalog.Regions()))
	for _, region := range catalog.Regions() {
		out = append(out, webtemplates.FilterOption{
			Value:  string(region),
			Label:  string(region),
			Icon:   resolver.RegionIcon(region),
			Active: region == selected,
		})
	}
	return out
}
