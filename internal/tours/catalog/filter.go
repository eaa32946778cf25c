package catalog

import (
	"net/url"
	"strings"
)

// Query parameter names used to carry a FilterState across requests.
const (
	ParamCategory = "category"
	ParamRegion   = "region"
	ParamQuery    = "q"
)

// FilterState is the user's current narrowing of the catalog.
type FilterState struct {
	Category Category
	Region   Region
	Query    string
}

// DefaultFilterState returns the unconstrained state.
func DefaultFilterState() FilterState {
	return FilterState{Category: All, Region: All}
}

// FilterStateFromValues reads a FilterState from query values. Missing or
// blank selections fall back to All.
func FilterStateFromValues(values url.Values) FilterState {
	state := DefaultFilterState()
	if values == nil {
		return state
	}
	if category := strings.TrimSpace(values.Get(ParamCategory)); category != "" {
		state.Category = Category(category)
	}
	if region := strings.TrimSpace(values.Get(ParamRegion)); region != "" {
		state.Region = Region(region)
	}
	state.Query = values.Get(ParamQuery)
	return state
}

// Values encodes the state as query values, omitting defaults.
func (s FilterState) Values() url.Values {
	values := url.Values{}
	s = s.normalized()
	if s.Category != All {
		values.Set(ParamCategory, string(s.Category))
	}
	if s.Region != All {
		values.Set(ParamRegion, string(s.Region))
	}
	if s.Query != "" {
		values.Set(ParamQuery, s.Query)
	}
	return values
}

// WithCategory returns a copy of the state with the category replaced.
func (s FilterState) WithCategory(category Category) FilterState {
	s.Category = category
	return s
}

// WithRegion returns a copy of the state with the region replaced.
func (s FilterState) WithRegion(region Region) FilterState {
	s.Region = region
	return s
}

// Clear resets the category and region selections and keeps the search text.
func (s FilterState) Clear() FilterState {
	s.Category = All
	s.Region = All
	return s
}

// ActiveCount reports how many of the category and region selections
// constrain the result.
func (s FilterState) ActiveCount() int {
	s = s.normalized()
	count := 0
	if s.Category != All {
		count++
	}
	if s.Region != All {
		count++
	}
	return count
}

// IsZero reports whether the state leaves the catalog unconstrained.
func (s FilterState) IsZero() bool {
	s = s.normalized()
	return s.Category == All && s.Region == All && s.Query == ""
}

func (s FilterState) normalized() FilterState {
	if s.Category == "" {
		s.Category = All
	}
	if s.Region == "" {
		s.Region = All
	}
	return s
}

// Matches reports whether pkg satisfies every predicate of the state.
func (s FilterState) Matches(pkg TourPackage) bool {
	s = s.normalized()
	return matchesCategory(s.Category, pkg) &&
		matchesRegion(s.Region, pkg) &&
		matchesSearch(strings.ToLower(s.Query), pkg)
}

// Filter returns the packages matching state in their original order. The
// input slice is not modified and the result never aliases it.
func Filter(packages []TourPackage, state FilterState) []TourPackage {
	state = state.normalized()
	query := strings.ToLower(state.Query)
	out := make([]TourPackage, 0, len(packages))
	for _, pkg := range packages {
		if !matchesCategory(state.Category, pkg) || !matchesRegion(state.Region, pkg) {
			continue
		}
		if !matchesSearch(query, pkg) {
			continue
		}
		out = append(out, pkg.Clone())
	}
	return out
}

func matchesCategory(selected Category, pkg TourPackage) bool {
	return selected == All || pkg.Category == selected
}

func matchesRegion(selected Region, pkg TourPackage) bool {
	return selected == All || pkg.Region == selected
}

// matchesSearch expects query already lowercased. Empty fields never match a
// non-empty query.
func matchesSearch(query string, pkg TourPackage) bool {
	if query == "" {
		return true
	}
	if containsFold(pkg.Name, query) || containsFold(pkg.Description, query) {
		return true
	}
	for _, destination := range pkg.Destinations {
		if containsFold(destination, query) {
			return true
		}
	}
	return false
}

func containsFold(field string, lowerQuery string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(strings.ToLower(field), lowerQuery)
}
