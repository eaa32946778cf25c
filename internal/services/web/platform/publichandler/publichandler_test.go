package publichandler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	module "github.com/louisbranch/balitours/internal/services/web/module"
	"github.com/louisbranch/balitours/internal/tours/catalog"
)

func TestWriteNotFoundRendersErrorState(t *testing.T) {
	t.Parallel()

	base := NewBase(module.Dependencies{})
	rr := httptest.NewRecorder()
	base.WriteNotFound(rr, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if !strings.Contains(rr.Body.String(), `data-status="404"`) {
		t.Fatalf("body missing 404 error state: %q", rr.Body.String())
	}
}

func TestWriteErrorMapsDomainErrors(t *testing.T) {
	t.Parallel()

	base := NewBase(module.Dependencies{SmoothScroll: true})
	tests := []struct {
		err  error
		want int
	}{
		{err: catalog.ErrPackageNotFound, want: http.StatusNotFound},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		rr := httptest.NewRecorder()
		base.WriteError(rr, httptest.NewRequest(http.MethodGet, "/tours", nil), tc.err)
		if rr.Code != tc.want {
			t.Fatalf("WriteError(%v) status = %d, want %d", tc.err, rr.Code, tc.want)
		}
	}
	if !base.Dependencies().SmoothScroll {
		t.Fatalf("Dependencies() lost SmoothScroll")
	}
}
