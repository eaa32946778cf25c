package catalog

import (
	"testing"
	"testing/fstest"

	"golang.org/x/text/language"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	t.Parallel()

	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded() error = %v", err)
	}
	locales := bundle.Locales()
	if len(locales) != 2 || locales[0] != "en-US" || locales[1] != "id-ID" {
		t.Fatalf("Locales() = %v", locales)
	}
}

func TestEmbeddedLocalesTranslateEveryKey(t *testing.T) {
	t.Parallel()

	bundle := Default()
	for _, locale := range bundle.Locales() {
		if missing := bundle.MissingKeys(locale); len(missing) > 0 {
			t.Fatalf("locale %s missing keys %v", locale, missing)
		}
	}
}

func TestPrinterFormatsTranslatedKeys(t *testing.T) {
	t.Parallel()

	bundle := Default()
	if got := bundle.Printer(language.AmericanEnglish).Sprintf("web.tours.showing", 3); got != "Showing 3 tour package(s)" {
		t.Fatalf("en Sprintf() = %q", got)
	}
	if got := bundle.Printer(language.MustParse("id-ID")).Sprintf("web.tours.showing", 3); got != "Menampilkan 3 paket tur" {
		t.Fatalf("id Sprintf() = %q", got)
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	t.Parallel()

	bundle := Default()
	got, ok := bundle.Message("fr-FR", "web.tours.book_now")
	if !ok || got != "Book Now" {
		t.Fatalf("Message() = %q, %v", got, ok)
	}
	if _, ok := bundle.Message("en-US", "web.unknown"); ok {
		t.Fatal("Message() found unknown key")
	}
}

func TestLoadFromFSRejectsKeyOutsideNamespace(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"locales/en-US/web.yaml": {Data: []byte("locale: en-US\nnamespace: web\nmessages:\n  core.bad: nope\n")},
	}
	if _, err := LoadFromFS(fsys); err == nil {
		t.Fatal("expected namespace prefix error")
	}
}

func TestLoadFromFSRejectsLocaleMismatch(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"locales/en-US/web.yaml": {Data: []byte("locale: id-ID\nnamespace: web\nmessages:\n  web.a: a\n")},
	}
	if _, err := LoadFromFS(fsys); err == nil {
		t.Fatal("expected locale mismatch error")
	}
}

func TestLoadFromFSRequiresBaseLocale(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"locales/id-ID/web.yaml": {Data: []byte("locale: id-ID\nnamespace: web\nmessages:\n  web.a: a\n")},
	}
	if _, err := LoadFromFS(fsys); err == nil {
		t.Fatal("expected missing base locale error")
	}
}
