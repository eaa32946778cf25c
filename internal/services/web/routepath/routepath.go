// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root             = "/"
	Health           = "/up"
	About            = "/about"
	AboutPrefix      = "/about/"
	Tours            = "/tours"
	ToursPrefix      = "/tours/"
	ToursResults     = "/tours/results"
	TourCardPattern  = ToursPrefix + "cards/{id}"
	Book             = "/book"
	BookPrefix       = "/book/"
	APIPrefix        = "/api/"
	APITours         = "/api/tours"
	APITourPattern   = APITours + "/{id}"
	StaticPrefix     = "/static/"
	SubjectParam     = "subject"
	APIFilterParam   = "filter"
	tourCardBasePath = ToursPrefix + "cards/"
)

// TourCard returns the fragment path for one revealed card.
func TourCard(id string) string {
	return tourCardBasePath + url.PathEscape(strings.TrimSpace(id))
}

// APITour returns the JSON path for one package.
func APITour(id string) string {
	return APITours + "/" + url.PathEscape(strings.TrimSpace(id))
}

// BookSubject returns the booking redirect path for subject. A blank subject
// books a custom tour.
func BookSubject(subject string) string {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return Book
	}
	return Book + "?" + url.Values{SubjectParam: {subject}}.Encode()
}

// WithQuery appends encoded values to path, omitting an empty query.
func WithQuery(path string, values url.Values) string {
	encoded := values.Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}
