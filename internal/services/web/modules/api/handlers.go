package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/louisbranch/balitours/internal/services/web/platform/httpx"
	"github.com/louisbranch/balitours/internal/services/web/routepath"
	"github.com/louisbranch/balitours/internal/tours/catalog"
	"github.com/louisbranch/balitours/internal/tours/catalog/aipfilter"
	"github.com/louisbranch/balitours/internal/tours/images"
)

type handlers struct {
	catalog *catalog.Memo
	images  images.Resolver
}

type pricePayload struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	PerPerson bool   `json:"per_person"`
	Label     string `json:"label"`
}

type tourPayload struct {
	ID           string       `json:"id"`
	Slug         string       `json:"slug,omitempty"`
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	Category     string       `json:"category"`
	Region       string       `json:"region"`
	Destinations []string     `json:"destinations"`
	Duration     string       `json:"duration,omitempty"`
	Price        pricePayload `json:"price"`
	Difficulty   string       `json:"difficulty,omitempty"`
	Featured     bool         `json:"featured"`
	ImageURL     string       `json:"image_url,omitempty"`
	BookPath     string       `json:"book_path"`
}

type listPayload struct {
	Tours []tourPayload `json:"tours"`
	Count int           `json:"count"`
}

// handleList applies the chip and search parameters first and then the
// optional filter expression.
func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	expression, err := aipfilter.Parse(query.Get(routepath.APIFilterParam))
	if err != nil {
		_ = httpx.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	packages, err := expression.Apply(h.catalog.Filter(catalog.FilterStateFromValues(query)))
	if err != nil {
		_ = httpx.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	payload := listPayload{Tours: make([]tourPayload, 0, len(packages))}
	for _, pkg := range packages {
		payload.Tours = append(payload.Tours, h.tour(r.Context(), pkg))
	}
	payload.Count = len(payload.Tours)
	if err := httpx.WriteJSON(w, http.StatusOK, payload); err != nil {
		log.Printf("write tours json: %v", err)
	}
}

func (h handlers) handleGet(w http.ResponseWriter, r *http.Request) {
	pkg, err := h.catalog.Snapshot().Get(r.PathValue("id"))
	if errors.Is(err, catalog.ErrPackageNotFound) {
		_ = httpx.WriteJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		log.Printf("get tour %q: %v", r.PathValue("id"), err)
		_ = httpx.WriteJSONError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	if err := httpx.WriteJSON(w, http.StatusOK, h.tour(r.Context(), pkg)); err != nil {
		log.Printf("write tour json: %v", err)
	}
}

func (handlers) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSONError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}

func (h handlers) tour(ctx context.Context, pkg catalog.TourPackage) tourPayload {
	imageURL, err := h.images.Resolve(ctx, pkg.Image)
	if err != nil {
		log.Printf("resolve image package=%s: %v", pkg.ID, err)
		imageURL = ""
	}
	destinations := pkg.Destinations
	if destinations == nil {
		destinations = []string{}
	}
	return tourPayload{
		ID:           pkg.ID,
		Slug:         pkg.Slug,
		Name:         pkg.Name,
		Description:  pkg.Description,
		Category:     string(pkg.Category),
		Region:       string(pkg.Region),
		Destinations: destinations,
		Duration:     pkg.Duration,
		Price: pricePayload{
			Amount:    pkg.Price.Amount,
			Currency:  string(pkg.Price.Currency),
			PerPerson: pkg.Price.PerPerson,
			Label:     pkg.Price.Label(),
		},
		Difficulty: string(pkg.Difficulty),
		Featured:   pkg.Featured,
		ImageURL:   imageURL,
		BookPath:   routepath.BookSubject(pkg.Name),
	}
}
