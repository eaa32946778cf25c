package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/louisbranch/balitours/internal/tours/catalog"
)

func TestHTTPStatusMapsKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{err: nil, want: http.StatusOK},
		{err: E(KindInvalidInput, "bad"), want: http.StatusBadRequest},
		{err: E(KindNotFound, "missing"), want: http.StatusNotFound},
		{err: E(KindUnavailable, "down"), want: http.StatusServiceUnavailable},
		{err: E(KindUnknown, "boom"), want: http.StatusInternalServerError},
		{err: stderrors.New("plain"), want: http.StatusInternalServerError},
		{err: fmt.Errorf("lookup: %w", catalog.ErrPackageNotFound), want: http.StatusNotFound},
		{err: fmt.Errorf("wrapped: %w", E(KindInvalidInput, "bad")), want: http.StatusBadRequest},
	}
	for _, tc := range tests {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestLocalizationKey(t *testing.T) {
	t.Parallel()

	if got := LocalizationKey(EK(KindNotFound, " web.error.not_found ", "missing")); got != "web.error.not_found" {
		t.Fatalf("LocalizationKey() = %q", got)
	}
	if got := LocalizationKey(stderrors.New("plain")); got != "" {
		t.Fatalf("LocalizationKey(plain) = %q", got)
	}
}

func TestWrapUnwraps(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("cause")
	err := Wrap(KindUnavailable, "catalog unavailable", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("Wrap() lost cause")
	}
	if err.Error() != "catalog unavailable" {
		t.Fatalf("Error() = %q", err.Error())
	}
}
