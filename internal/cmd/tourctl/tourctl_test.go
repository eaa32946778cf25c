package tourctl

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/balitours/internal/tours/catalog"
	"github.com/louisbranch/balitours/internal/tours/catalog/seed"
	"github.com/louisbranch/balitours/internal/tours/contact"
	"github.com/mattn/go-runewidth"
)

func writeSeed(t *testing.T) string {
	t.Helper()
	packages := []catalog.TourPackage{
		{ID: "uluwatu-sunset", Name: "Uluwatu Sunset", Category: catalog.CategorySunset, Region: catalog.RegionSouth, Duration: "6 hours", Price: catalog.Price{Amount: 45, Currency: catalog.CurrencyUSD, PerPerson: true}},
		{ID: "amed-snorkel", Name: "Amed Snorkel", Category: catalog.CategoryBeach, Region: catalog.RegionEast, Duration: "Full day", Price: catalog.Price{Amount: 30, Currency: catalog.CurrencyUSD, PerPerson: true}, Featured: true},
		{ID: "south-beaches", Name: "Beach Hopping", Category: catalog.CategoryBeach, Region: catalog.RegionSouth, Duration: "8 hours", Price: catalog.Price{Amount: 55, Currency: catalog.CurrencyUSD, PerPerson: true}},
	}
	path := filepath.Join(t.TempDir(), "tours.yaml")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create seed: %v", err)
	}
	defer file.Close()
	if err := seed.Encode(file, packages); err != nil {
		t.Fatalf("seed.Encode() error = %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cfg Config
	var stdout, stderr bytes.Buffer
	root := NewRootCommand(&cfg, &stdout, &stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestListPrintsCatalogOrder(t *testing.T) {
	t.Parallel()

	out, err := run(t, "--seed-file", writeSeed(t), "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want header + 3\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.HasPrefix(lines[1], "uluwatu-sunset") || !strings.HasPrefix(lines[3], "south-beaches") {
		t.Fatalf("unexpected order:\n%s", out)
	}
}

func TestListFiltersByCategoryAndQuery(t *testing.T) {
	t.Parallel()

	out, err := run(t, "--seed-file", writeSeed(t), "list", "--category", "Beach", "-q", "HOPPING")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "south-beaches") || strings.Contains(out, "amed-snorkel") || strings.Contains(out, "uluwatu-sunset") {
		t.Fatalf("unexpected rows:\n%s", out)
	}
}

func TestListSortsByPrice(t *testing.T) {
	t.Parallel()

	out, err := run(t, "--seed-file", writeSeed(t), "list", "--sort", "price", "-o", "json")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	var entries []listEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	got := []string{entries[0].ID, entries[1].ID, entries[2].ID}
	want := []string{"amed-snorkel", "uluwatu-sunset", "south-beaches"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("order = %v, want %v", got, want)
	}
	if entries[0].Price != "$30" {
		t.Fatalf("price = %q, want $30", entries[0].Price)
	}
}

func TestListAppliesFilterExpression(t *testing.T) {
	t.Parallel()

	out, err := run(t, "--seed-file", writeSeed(t), "list", "--filter", "featured", "-o", "json")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	var entries []listEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "amed-snorkel" {
		t.Fatalf("entries = %+v, want amed-snorkel", entries)
	}

	if _, err := run(t, "--seed-file", writeSeed(t), "list", "--filter", "price <"); err == nil || !strings.Contains(err.Error(), "invalid filter") {
		t.Fatalf("list error = %v, want invalid filter", err)
	}
}

func TestListNoMatches(t *testing.T) {
	t.Parallel()

	out, err := run(t, "--seed-file", writeSeed(t), "list", "--region", "West Bali")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "No tours match") {
		t.Fatalf("output = %q, want no match message", out)
	}
}

func TestListRejectsUnknownSort(t *testing.T) {
	t.Parallel()

	if _, err := run(t, "--seed-file", writeSeed(t), "list", "--sort", "rating"); err == nil {
		t.Fatal("expected error for unknown sort")
	}
}

func TestBookPrintsEncodedURI(t *testing.T) {
	t.Parallel()

	out, err := run(t, "book", "Tanah", "Lot", "--number", "+62 811-000")
	if err != nil {
		t.Fatalf("book error = %v", err)
	}
	want := contact.NewChannel("+62 811-000").URI(contact.BookingMessage("Tanah Lot"))
	if strings.TrimSpace(out) != want {
		t.Fatalf("uri = %q, want %q", strings.TrimSpace(out), want)
	}
	if !strings.Contains(out, "Tanah%20Lot") {
		t.Fatalf("uri = %q, want %%20 spaces", out)
	}
}

func TestBookWithoutSubjectAsksForCustomTour(t *testing.T) {
	t.Parallel()

	out, err := run(t, "book")
	if err != nil {
		t.Fatalf("book error = %v", err)
	}
	if !strings.Contains(out, contact.Encode(contact.CustomTourMessage)) {
		t.Fatalf("uri = %q, want custom tour message", out)
	}
}

func TestFiltersPrintsCounts(t *testing.T) {
	t.Parallel()

	out, err := run(t, "--seed-file", writeSeed(t), "filters")
	if err != nil {
		t.Fatalf("filters error = %v", err)
	}
	for _, want := range []string{"CATEGORY", "REGION", "Beach", "South Bali"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Beach") && !strings.HasSuffix(strings.TrimSpace(line), "2") {
			t.Fatalf("beach line = %q, want count 2", line)
		}
	}
}

func TestIconsWritesMarkdown(t *testing.T) {
	t.Parallel()

	out, err := run(t, "icons")
	if err != nil {
		t.Fatalf("icons error = %v", err)
	}
	if !strings.HasPrefix(out, "# Icon Catalog") {
		t.Fatalf("output = %q", out)
	}

	path := filepath.Join(t.TempDir(), "docs", "icons.md")
	if _, err := run(t, "icons", "--out", path); err != nil {
		t.Fatalf("icons --out error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read icons: %v", err)
	}
	if !strings.Contains(string(data), "| Beach |") {
		t.Fatalf("icon file missing Beach row")
	}
}

func TestIntentsTailRequiresBrokers(t *testing.T) {
	t.Parallel()

	_, err := run(t, "intents", "tail")
	if err == nil || !strings.Contains(err.Error(), "kafka brokers") {
		t.Fatalf("intents tail error = %v, want brokers required", err)
	}
}

func TestFormatIntent(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	got := formatIntent(contact.Intent{Subject: "Amed", Source: "web", OccurredAt: at})
	if got != "2026-03-01T08:30:00Z  web   Amed" {
		t.Fatalf("formatIntent() = %q", got)
	}
	if got := formatIntent(contact.Intent{OccurredAt: at}); !strings.HasSuffix(got, "(custom tour)") {
		t.Fatalf("formatIntent() = %q, want custom tour", got)
	}
}

func TestTableAlignsWideRunes(t *testing.T) {
	t.Parallel()

	tbl := table{header: []string{"NAME", "N"}}
	tbl.append("🏖️ Beach", "1")
	tbl.append("Sunset", "2")
	var buf bytes.Buffer
	if err := tbl.render(&buf); err != nil {
		t.Fatalf("render() error = %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	col := -1
	for _, line := range lines {
		idx := strings.LastIndex(line, "  ")
		width := runewidth.StringWidth(line[:idx])
		if col == -1 {
			col = width
		}
		if width != col {
			t.Fatalf("column misaligned:\n%s", buf.String())
		}
	}
}
