// Package catalog defines tour package records and the filter that narrows
// them for the tours page.
package catalog

import "strings"

// All is the sentinel selection meaning "no constraint" for category and
// region filters.
const All = "All"

// Category classifies a tour package by its main attraction.
type Category string

const (
	CategoryBeach     Category = "Beach"
	CategoryWaterfall Category = "Waterfall"
	CategorySunset    Category = "Sunset"
	CategoryActivity  Category = "Activity"
	CategoryCulture   Category = "Culture"
	CategoryNature    Category = "Nature"
	CategoryViewpoint Category = "Viewpoint"
	CategorySunrise   Category = "Sunrise"
	CategoryWildlife  Category = "Wildlife"
)

// Categories returns the selectable categories in display order, starting
// with the All sentinel.
func Categories() []Category {
	return []Category{
		All,
		CategoryBeach,
		CategoryWaterfall,
		CategorySunset,
		CategoryActivity,
		CategoryCulture,
		CategoryNature,
		CategoryViewpoint,
		CategorySunrise,
		CategoryWildlife,
	}
}

// Region places a tour package on the island.
type Region string

const (
	RegionSouth   Region = "South Bali"
	RegionNorth   Region = "North Bali"
	RegionEast    Region = "East Bali"
	RegionCentral Region = "Central Bali"
	RegionWest    Region = "West Bali"
)

// Regions returns the selectable regions in display order, starting with the
// All sentinel.
func Regions() []Region {
	return []Region{All, RegionSouth, RegionNorth, RegionEast, RegionCentral, RegionWest}
}

// Difficulty describes how demanding a tour is.
type Difficulty string

const (
	DifficultyEasy        Difficulty = "Easy"
	DifficultyModerate    Difficulty = "Moderate"
	DifficultyChallenging Difficulty = "Challenging"
)

// Currency identifies the unit a price amount is expressed in.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyIDR Currency = "IDR"
)

// ParseCurrency normalizes a currency code, defaulting to USD.
func ParseCurrency(value string) Currency {
	switch Currency(strings.ToUpper(strings.TrimSpace(value))) {
	case CurrencyIDR:
		return CurrencyIDR
	default:
		return CurrencyUSD
	}
}

// Price is the advertised cost of a package.
type Price struct {
	Amount    int64
	Currency  Currency
	PerPerson bool
}

// TourPackage is one bookable multi-destination tour offering.
type TourPackage struct {
	ID           string
	Slug         string
	Name         string
	Description  string
	Category     Category
	Region       Region
	Destinations []string
	Duration     string
	Price        Price
	Difficulty   Difficulty
	Featured     bool
	Image        string
}

// Clone returns a deep copy so callers cannot mutate shared catalog state.
func (p TourPackage) Clone() TourPackage {
	if p.Destinations != nil {
		p.Destinations = append([]string(nil), p.Destinations...)
	}
	return p
}
