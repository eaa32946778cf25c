package catalog

import (
	"net/url"
	"reflect"
	"testing"
)

func testPackages() []TourPackage {
	return []TourPackage{
		{
			ID:           "south-beaches",
			Name:         "Southern Beach Hopping",
			Description:  "White sand coves along the Bukit peninsula.",
			Category:     CategoryBeach,
			Region:       RegionSouth,
			Destinations: []string{"Padang Padang Beach", "Uluwatu Temple", "Melasti Beach"},
		},
		{
			ID:           "north-falls",
			Name:         "Northern Waterfalls",
			Description:  "Jungle treks to hidden cascades.",
			Category:     CategoryWaterfall,
			Region:       RegionNorth,
			Destinations: []string{"Sekumpul Waterfall", "Banyumala Twin Waterfalls"},
		},
		{
			ID:           "east-beaches",
			Name:         "East Coast Snorkel",
			Description:  "Black sand and coral gardens.",
			Category:     CategoryBeach,
			Region:       RegionEast,
			Destinations: []string{"Amed", "Blue Lagoon"},
		},
	}
}

func ids(packages []TourPackage) []string {
	out := make([]string, 0, len(packages))
	for _, pkg := range packages {
		out = append(out, pkg.ID)
	}
	return out
}

func TestFilterDefaultStateReturnsEveryPackageInOrder(t *testing.T) {
	t.Parallel()

	packages := testPackages()
	got := Filter(packages, DefaultFilterState())
	if !reflect.DeepEqual(got, packages) {
		t.Fatalf("Filter() = %v, want %v", ids(got), ids(packages))
	}
}

func TestFilterZeroValueStateBehavesLikeAll(t *testing.T) {
	t.Parallel()

	got := Filter(testPackages(), FilterState{})
	if len(got) != 3 {
		t.Fatalf("len(Filter()) = %d, want 3", len(got))
	}
}

func TestFilterByCategoryKeepsRelativeOrder(t *testing.T) {
	t.Parallel()

	got := Filter(testPackages(), DefaultFilterState().WithCategory(CategoryBeach))
	want := []string{"south-beaches", "east-beaches"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("Filter() ids = %v, want %v", ids(got), want)
	}
}

func TestFilterCategoryIsCaseSensitive(t *testing.T) {
	t.Parallel()

	got := Filter(testPackages(), DefaultFilterState().WithCategory("beach"))
	if len(got) != 0 {
		t.Fatalf("Filter() ids = %v, want none", ids(got))
	}
}

func TestFilterByRegion(t *testing.T) {
	t.Parallel()

	got := Filter(testPackages(), DefaultFilterState().WithRegion(RegionNorth))
	if !reflect.DeepEqual(ids(got), []string{"north-falls"}) {
		t.Fatalf("Filter() ids = %v", ids(got))
	}
}

func TestFilterSearchMatchesDestinationCaseInsensitively(t *testing.T) {
	t.Parallel()

	state := DefaultFilterState()
	state.Query = "ULUWATU"
	got := Filter(testPackages(), state)
	if !reflect.DeepEqual(ids(got), []string{"south-beaches"}) {
		t.Fatalf("Filter() ids = %v", ids(got))
	}
}

func TestFilterSearchMatchesNameAndDescription(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query string
		want  []string
	}{
		{query: "waterfalls", want: []string{"north-falls"}},
		{query: "coral", want: []string{"east-beaches"}},
		{query: "  ", want: []string{}},
		{query: "nowhere", want: []string{}},
	}
	for _, tc := range tests {
		state := DefaultFilterState()
		state.Query = tc.query
		got := ids(Filter(testPackages(), state))
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Filter(%q) ids = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestFilterNameSubstringIncludesPackageRegardlessOfOtherPackages(t *testing.T) {
	t.Parallel()

	for _, pkg := range testPackages() {
		state := DefaultFilterState()
		state.Query = pkg.Name[2:7]
		found := false
		for _, got := range Filter(testPackages(), state) {
			if got.ID == pkg.ID {
				found = true
			}
		}
		if !found {
			t.Fatalf("Filter(%q) missing %q", state.Query, pkg.ID)
		}
	}
}

func TestFilterCombinesPredicatesWithAnd(t *testing.T) {
	t.Parallel()

	state := FilterState{Category: CategoryBeach, Region: RegionEast, Query: "snorkel"}
	if got := ids(Filter(testPackages(), state)); !reflect.DeepEqual(got, []string{"east-beaches"}) {
		t.Fatalf("Filter() ids = %v", got)
	}
	state.Region = RegionNorth
	if got := Filter(testPackages(), state); len(got) != 0 {
		t.Fatalf("Filter() ids = %v, want empty", ids(got))
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	t.Parallel()

	states := []FilterState{
		DefaultFilterState(),
		{Category: CategoryBeach, Region: All},
		{Category: All, Region: RegionNorth, Query: "fall"},
		{Category: CategoryCulture, Region: All},
	}
	for _, state := range states {
		once := Filter(testPackages(), state)
		twice := Filter(once, state)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("Filter not idempotent for %+v: %v then %v", state, ids(once), ids(twice))
		}
	}
}

func TestFilterMissingFieldsDoNotMatchSearch(t *testing.T) {
	t.Parallel()

	packages := []TourPackage{{ID: "bare", Name: "Bare"}}
	state := DefaultFilterState()
	state.Query = "temple"
	if got := Filter(packages, state); len(got) != 0 {
		t.Fatalf("Filter() = %v, want empty", ids(got))
	}
	state.Query = "bar"
	if got := Filter(packages, state); len(got) != 1 {
		t.Fatalf("Filter() = %v, want bare", ids(got))
	}
}

func TestFilterResultDoesNotAliasInput(t *testing.T) {
	t.Parallel()

	packages := testPackages()
	got := Filter(packages, DefaultFilterState())
	got[0].Destinations[0] = "changed"
	if packages[0].Destinations[0] == "changed" {
		t.Fatal("Filter() result aliases input destinations")
	}
}

func TestFilterStateValuesRoundTrip(t *testing.T) {
	t.Parallel()

	state := FilterState{Category: CategorySunset, Region: RegionWest, Query: "temple"}
	got := FilterStateFromValues(state.Values())
	if got != state {
		t.Fatalf("FilterStateFromValues() = %+v, want %+v", got, state)
	}
	if encoded := DefaultFilterState().Values().Encode(); encoded != "" {
		t.Fatalf("default Values() = %q, want empty", encoded)
	}
}

func TestFilterStateFromValuesDefaults(t *testing.T) {
	t.Parallel()

	got := FilterStateFromValues(url.Values{"category": {"  "}, "q": {"Amed"}})
	want := FilterState{Category: All, Region: All, Query: "Amed"}
	if got != want {
		t.Fatalf("FilterStateFromValues() = %+v, want %+v", got, want)
	}
	if got := FilterStateFromValues(nil); got != DefaultFilterState() {
		t.Fatalf("FilterStateFromValues(nil) = %+v", got)
	}
}

func TestFilterStateActiveCountAndClear(t *testing.T) {
	t.Parallel()

	state := FilterState{Category: CategoryBeach, Region: RegionSouth, Query: "sand"}
	if got := state.ActiveCount(); got != 2 {
		t.Fatalf("ActiveCount() = %d, want 2", got)
	}
	cleared := state.Clear()
	if cleared.ActiveCount() != 0 {
		t.Fatalf("Clear().ActiveCount() = %d", cleared.ActiveCount())
	}
	if cleared.Query != "sand" {
		t.Fatalf("Clear() query = %q, want search kept", cleared.Query)
	}
	if cleared.IsZero() {
		t.Fatal("Clear() with query should not be zero")
	}
	if !(FilterState{}).IsZero() {
		t.Fatal("zero FilterState should be zero")
	}
}
