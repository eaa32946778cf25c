package icons

import (
	"strings"

	"github.com/louisbranch/balitours/internal/tours/catalog"
)

// DefaultIcon is shown for unknown categories and regions.
const DefaultIcon = "📍"

// Definition describes one icon entry.
type Definition struct {
	Key         string
	Icon        string
	Lucide      string
	Description string
}

var categoryCatalog = []Definition{
	{Key: catalog.All, Icon: "✨", Lucide: "sparkles", Description: "Every tour package."},
	{Key: string(catalog.CategoryBeach), Icon: "🏖️", Lucide: "umbrella", Description: "Beaches, coves, and snorkeling."},
	{Key: string(catalog.CategoryWaterfall), Icon: "💧", Lucide: "droplets", Description: "Jungle waterfalls and river treks."},
	{Key: string(catalog.CategorySunset), Icon: "🌅", Lucide: "sunset", Description: "Evening tours ending at golden hour."},
	{Key: string(catalog.CategoryActivity), Icon: "🎯", Lucide: "target", Description: "Hands-on and adventure activities."},
	{Key: string(catalog.CategoryCulture), Icon: "🏛️", Lucide: "landmark", Description: "Temples, villages, and ceremonies."},
	{Key: string(catalog.CategoryNature), Icon: "🌿", Lucide: "leaf", Description: "Rice terraces, forests, and parks."},
	{Key: string(catalog.CategoryViewpoint), Icon: "📸", Lucide: "camera", Description: "Lookouts and photo spots."},
	{Key: string(catalog.CategorySunrise), Icon: "🌄", Lucide: "sunrise", Description: "Pre-dawn starts and summit sunrises."},
	{Key: string(catalog.CategoryWildlife), Icon: "🦜", Lucide: "bird", Description: "Dolphins, birds, and reserves."},
}

var regionCatalog = []Definition{
	{Key: catalog.All, Icon: "🗺️", Lucide: "map", Description: "The whole island."},
	{Key: string(catalog.RegionSouth), Icon: "🏖️", Lucide: "waves", Description: "Bukit peninsula, Uluwatu, and Jimbaran."},
	{Key: string(catalog.RegionNorth), Icon: "⛰️", Lucide: "mountain", Description: "Lovina, Munduk, and the northern falls."},
	{Key: string(catalog.RegionEast), Icon: "🌄", Lucide: "sunrise", Description: "Amed, Karangasem, and the Nusa islands."},
	{Key: string(catalog.RegionCentral), Icon: "🌾", Lucide: "wheat", Description: "Ubud, Kintamani, and the highlands."},
	{Key: string(catalog.RegionWest), Icon: "🌴", Lucide: "trees", Description: "Tanah Lot and West Bali National Park."},
}

// CategoryIconResolver labels a category with an icon.
type CategoryIconResolver interface {
	CategoryIcon(category catalog.Category) string
}

// RegionIconResolver labels a region with an icon.
type RegionIconResolver interface {
	RegionIcon(region catalog.Region) string
}

// Emoji resolves icons from the built-in emoji tables.
type Emoji struct{}

// CategoryIcon implements CategoryIconResolver.
func (Emoji) CategoryIcon(category catalog.Category) string {
	return lookup(categoryCatalog, string(category))
}

// RegionIcon implements RegionIconResolver.
func (Emoji) RegionIcon(region catalog.Region) string {
	return lookup(regionCatalog, string(region))
}

func lookup(defs []Definition, key string) string {
	for _, def := range defs {
		if def.Key == key {
			return def.Icon
		}
	}
	return DefaultIcon
}

// Categories returns a copy of the category icon definitions.
func Categories() []Definition {
	return append([]Definition(nil), categoryCatalog...)
}

// Regions returns a copy of the region icon definitions.
func Regions() []Definition {
	return append([]Definition(nil), regionCatalog...)
}

// CatalogMarkdown renders both icon tables as markdown.
func CatalogMarkdown() string {
	var builder strings.Builder
	builder.WriteString("# Icon Catalog\n\n")
	writeTable(&builder, "Categories", categoryCatalog)
	builder.WriteString("\n")
	writeTable(&builder, "Regions", regionCatalog)
	return builder.String()
}

func writeTable(builder *strings.Builder, title string, defs []Definition) {
	builder.WriteString("## " + title + "\n\n")
	builder.WriteString("| Key | Icon | Lucide | Description |\n")
	builder.WriteString("| --- | --- | --- | --- |\n")
	for _, def := range defs {
		builder.WriteString("| ")
		builder.WriteString(def.Key)
		builder.WriteString(" | ")
		builder.WriteString(def.Icon)
		builder.WriteString(" | ")
		builder.WriteString(def.Lucide)
		builder.WriteString(" | ")
		builder.WriteString(def.Description)
		builder.WriteString(" |\n")
	}
}
