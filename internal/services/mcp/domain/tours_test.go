package domain

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/louisbranch/balitours/internal/tours/catalog"
	"github.com/louisbranch/balitours/internal/tours/contact"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func testMemo(t *testing.T) *catalog.Memo {
	t.Helper()
	snapshot, err := catalog.NewSnapshot([]catalog.TourPackage{
		{
			ID:           "uluwatu-sunset",
			Name:         "Uluwatu Sunset & Kecak",
			Description:  "Cliff temple and fire dance.",
			Category:     catalog.CategorySunset,
			Region:       catalog.RegionSouth,
			Destinations: []string{"Uluwatu Temple", "Jimbaran Bay"},
			Price:        catalog.Price{Amount: 45, Currency: catalog.CurrencyUSD, PerPerson: true},
			Featured:     true,
		},
		{
			ID:           "south-beaches",
			Name:         "Southern Beach Hopping",
			Category:     catalog.CategoryBeach,
			Region:       catalog.RegionSouth,
			Destinations: []string{"Padang Padang", "Melasti Beach"},
			Price:        catalog.Price{Amount: 55, Currency: catalog.CurrencyUSD, PerPerson: true},
		},
		{
			ID:           "north-falls",
			Name:         "Northern Waterfalls",
			Category:     catalog.CategoryWaterfall,
			Region:       catalog.RegionNorth,
			Destinations: []string{"Sekumpul Waterfall"},
			Price:        catalog.Price{Amount: 1250000, Currency: catalog.CurrencyIDR},
		},
	})
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	return catalog.NewMemo(snapshot, 0)
}

func TestSearchToursHandler(t *testing.T) {
	t.Parallel()

	memo := testMemo(t)
	channel := contact.NewChannel("+62 857-2433-6853")

	t.Run("no constraints returns catalog order", func(t *testing.T) {
		_, result, err := SearchToursHandler(memo, channel)(context.Background(), nil, SearchToursInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Count != 3 || len(result.Tours) != 3 {
			t.Fatalf("count = %d, tours = %d, want 3", result.Count, len(result.Tours))
		}
		if result.Tours[0].ID != "uluwatu-sunset" || result.Tours[2].ID != "north-falls" {
			t.Fatalf("order = %q, %q", result.Tours[0].ID, result.Tours[2].ID)
		}
	})

	t.Run("category and query", func(t *testing.T) {
		_, result, err := SearchToursHandler(memo, channel)(context.Background(), nil, SearchToursInput{Category: "Beach", Query: "MELASTI"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Count != 1 || result.Tours[0].ID != "south-beaches" {
			t.Fatalf("result = %+v, want south-beaches", result)
		}
	})

	t.Run("aip filter narrows after facets", func(t *testing.T) {
		_, result, err := SearchToursHandler(memo, channel)(context.Background(), nil, SearchToursInput{
			Region: string(catalog.RegionSouth),
			Filter: "price < 50",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Count != 1 || result.Tours[0].ID != "uluwatu-sunset" {
			t.Fatalf("result = %+v, want uluwatu-sunset", result)
		}
	})

	t.Run("invalid filter", func(t *testing.T) {
		_, _, err := SearchToursHandler(memo, channel)(context.Background(), nil, SearchToursInput{Filter: "nope >"})
		if err == nil || !strings.Contains(err.Error(), "invalid filter") {
			t.Fatalf("error = %v, want invalid filter", err)
		}
	})

	t.Run("entries carry price label and book uri", func(t *testing.T) {
		_, result, err := SearchToursHandler(memo, channel)(context.Background(), nil, SearchToursInput{Query: "northern"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		entry := result.Tours[0]
		if entry.Price.Label != "IDR 1.250.000" {
			t.Fatalf("price label = %q", entry.Price.Label)
		}
		want := channel.URI(contact.BookingMessage("Northern Waterfalls"))
		if entry.BookURI != want {
			t.Fatalf("book uri = %q, want %q", entry.BookURI, want)
		}
	})

	t.Run("no match is empty not nil", func(t *testing.T) {
		_, result, err := SearchToursHandler(memo, channel)(context.Background(), nil, SearchToursInput{Query: "nothing like this"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, _ := json.Marshal(result)
		if !strings.Contains(string(data), `"tours":[]`) {
			t.Fatalf("json = %s, want empty tours array", data)
		}
	})

	t.Run("missing catalog", func(t *testing.T) {
		if _, _, err := SearchToursHandler(nil, channel)(context.Background(), nil, SearchToursInput{}); err == nil {
			t.Fatal("expected error")
		}
	})
}

type recordingSink struct {
	mu      sync.Mutex
	intents []contact.Intent
}

func (s *recordingSink) Record(_ context.Context, intent contact.Intent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intents = append(s.intents, intent)
	return nil
}

func TestBookTourHandler(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	dispatcher := contact.NewDispatcher(contact.NewChannel(""), contact.WithSink(sink))

	_, result, err := BookTourHandler(dispatcher)(context.Background(), nil, BookTourInput{Subject: "Tanah Lot"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result.URI, "Tanah%20Lot") {
		t.Fatalf("uri = %q, want encoded subject", result.URI)
	}
	if result.Message != contact.BookingMessage("Tanah Lot") {
		t.Fatalf("message = %q", result.Message)
	}

	_, custom, err := BookTourHandler(dispatcher)(context.Background(), nil, BookTourInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if custom.Message != contact.CustomTourMessage {
		t.Fatalf("blank subject message = %q", custom.Message)
	}

	dispatcher.Wait()
	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.intents) != 2 || sink.intents[0].Source != BookingSource {
		t.Fatalf("intents = %+v, want two mcp intents", sink.intents)
	}

	if _, _, err := BookTourHandler(nil)(context.Background(), nil, BookTourInput{}); err == nil {
		t.Fatal("expected error for missing dispatcher")
	}
}

func TestListFiltersHandler(t *testing.T) {
	t.Parallel()

	_, result, err := ListFiltersHandler(testMemo(t), nil, nil)(context.Background(), nil, ListFiltersInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Categories) != len(catalog.Categories()) || len(result.Regions) != len(catalog.Regions()) {
		t.Fatalf("options = %d categories, %d regions", len(result.Categories), len(result.Regions))
	}
	if result.Categories[0].Value != catalog.All || result.Categories[0].Count != 3 {
		t.Fatalf("first category = %+v, want All with 3", result.Categories[0])
	}
	counts := map[string]int{}
	for _, option := range result.Regions {
		counts[option.Value] = option.Count
		if option.Icon == "" {
			t.Fatalf("region %q has no icon", option.Value)
		}
	}
	if counts[string(catalog.RegionSouth)] != 2 || counts[string(catalog.RegionWest)] != 0 {
		t.Fatalf("region counts = %v", counts)
	}
	if len(result.Fields) == 0 {
		t.Fatal("expected filter fields")
	}
}

func TestPackageResourceHandler(t *testing.T) {
	t.Parallel()

	memo := testMemo(t)
	handler := PackageResourceHandler(memo, contact.NewChannel(""))

	t.Run("found", func(t *testing.T) {
		result, err := handler(context.Background(), &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "tours://packages/north-falls"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var entry TourEntry
		if err := json.Unmarshal([]byte(result.Contents[0].Text), &entry); err != nil {
			t.Fatalf("decode resource: %v", err)
		}
		if entry.ID != "north-falls" || entry.Region != string(catalog.RegionNorth) {
			t.Fatalf("entry = %+v", entry)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := handler(context.Background(), &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "tours://packages/missing"}})
		if err == nil {
			t.Fatal("expected not found error")
		}
	})

	t.Run("malformed uri", func(t *testing.T) {
		for _, uri := range []string{"tours://packages/", "tours://other/x", "tours://packages/a/b"} {
			if _, err := handler(context.Background(), &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}); err == nil {
				t.Fatalf("expected error for %q", uri)
			}
		}
	})
}

func TestCatalogResourceHandler(t *testing.T) {
	t.Parallel()

	result, err := CatalogResourceHandler(testMemo(t), contact.NewChannel(""))(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Contents[0].URI != "tours://catalog" || result.Contents[0].MIMEType != "application/json" {
		t.Fatalf("contents = %+v", result.Contents[0])
	}
	var payload SearchToursResult
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &payload); err != nil {
		t.Fatalf("decode resource: %v", err)
	}
	if payload.Count != 3 {
		t.Fatalf("count = %d, want 3", payload.Count)
	}
}
