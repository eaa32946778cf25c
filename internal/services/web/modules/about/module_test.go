package about

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	module "github.com/louisbranch/balitours/internal/services/web/module"
	"github.com/louisbranch/balitours/internal/services/web/routepath"
)

func TestMountServesAboutPage(t *testing.T) {
	t.Parallel()

	mount, err := New().Mount(module.Dependencies{})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != routepath.AboutPrefix {
		t.Fatalf("Prefix = %q, want %q", mount.Prefix, routepath.AboutPrefix)
	}
	for _, path := range []string{routepath.About, routepath.AboutPrefix} {
		rr := httptest.NewRecorder()
		mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d, want %d", path, rr.Code, http.StatusOK)
		}
		body := rr.Body.String()
		if !strings.Contains(body, `href="/tours"`) {
			t.Fatalf("GET %s missing tours call to action", path)
		}
		if !strings.Contains(body, `aria-current="page"`) {
			t.Fatalf("GET %s missing active nav entry", path)
		}
	}
}

func TestAboutPageIsLocalized(t *testing.T) {
	t.Parallel()

	mount, _ := New().Mount(module.Dependencies{})
	req := httptest.NewRequest(http.MethodGet, "/about?lang=id-ID", nil)
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, req)
	if !strings.Contains(rr.Body.String(), `lang="id-ID"`) {
		t.Fatalf("body missing id-ID document language")
	}
	if cookies := rr.Result().Cookies(); len(cookies) != 1 || cookies[0].Value != "id-ID" {
		t.Fatalf("cookies = %v, want persisted id-ID", cookies)
	}
}

func TestAboutUnknownPathIsNotFound(t *testing.T) {
	t.Parallel()

	mount, _ := New().Mount(module.Dependencies{})
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/about/team", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
