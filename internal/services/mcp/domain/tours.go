package domain

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/louisbranch/balitours/internal/platform/icons"
	"github.com/louisbranch/balitours/internal/tours/catalog"
	"github.com/louisbranch/balitours/internal/tours/catalog/aipfilter"
	"github.com/louisbranch/balitours/internal/tours/contact"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// BookingSource tags intents recorded through MCP.
const BookingSource = "mcp"

// SearchToursInput represents the MCP tool input for catalog search.
type SearchToursInput struct {
	Category string `json:"category,omitempty" jsonschema:"category name, or All"`
	Region   string `json:"region,omitempty" jsonschema:"region name, or All"`
	Query    string `json:"query,omitempty" jsonschema:"case-insensitive text matched against name, description, and destinations"`
	Filter   string `json:"filter,omitempty" jsonschema:"optional AIP-160 filter, e.g. price < 60 AND featured"`
}

// PriceEntry is a package price in tool output.
type PriceEntry struct {
	Amount    int64  `json:"amount" jsonschema:"price amount in whole currency units"`
	Currency  string `json:"currency" jsonschema:"currency code (USD, IDR)"`
	PerPerson bool   `json:"per_person" jsonschema:"true when the amount is charged per person"`
	Label     string `json:"label" jsonschema:"display label, e.g. $45"`
}

// TourEntry is one tour package in tool output.
type TourEntry struct {
	ID           string     `json:"id" jsonschema:"package identifier"`
	Name         string     `json:"name" jsonschema:"package name"`
	Description  string     `json:"description" jsonschema:"short description"`
	Category     string     `json:"category" jsonschema:"package category"`
	Region       string     `json:"region" jsonschema:"package region"`
	Destinations []string   `json:"destinations" jsonschema:"stops on the itinerary in visiting order"`
	Duration     string     `json:"duration" jsonschema:"human-readable duration"`
	Price        PriceEntry `json:"price" jsonschema:"advertised price"`
	Difficulty   string     `json:"difficulty" jsonschema:"Easy, Moderate, or Challenging"`
	Featured     bool       `json:"featured" jsonschema:"true for highlighted packages"`
	BookURI      string     `json:"book_uri" jsonschema:"WhatsApp link that opens a pre-filled booking chat"`
}

// SearchToursResult represents the MCP tool output for catalog search.
type SearchToursResult struct {
	Tours []TourEntry `json:"tours" jsonschema:"matching packages in catalog order"`
	Count int         `json:"count" jsonschema:"number of matching packages"`
}

// BookTourInput represents the MCP tool input for a booking handoff.
type BookTourInput struct {
	Subject string `json:"subject,omitempty" jsonschema:"package or destination name; blank asks for a custom tour"`
}

// BookTourResult represents the MCP tool output for a booking handoff.
type BookTourResult struct {
	URI     string `json:"uri" jsonschema:"WhatsApp link to open"`
	Message string `json:"message" jsonschema:"pre-filled chat message"`
}

// ListFiltersInput represents the MCP tool input for filter discovery.
type ListFiltersInput struct{}

// FilterOption is one selectable category or region.
type FilterOption struct {
	Value string `json:"value" jsonschema:"value to pass back to search_tours"`
	Icon  string `json:"icon" jsonschema:"display icon"`
	Count int    `json:"count" jsonschema:"packages matching this option alone"`
}

// ListFiltersResult represents the MCP tool output for filter discovery.
type ListFiltersResult struct {
	Categories []FilterOption `json:"categories"`
	Regions    []FilterOption `json:"regions"`
	Fields     []string       `json:"filter_fields" jsonschema:"field names accepted by the filter argument"`
}

// SearchToursTool defines the MCP tool schema for catalog search.
func SearchToursTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_tours",
		Description: "Searches Bali tour packages by category, region, free text, and an optional AIP-160 filter",
	}
}

// BookTourTool defines the MCP tool schema for booking handoff.
func BookTourTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "book_tour",
		Description: "Returns the WhatsApp link that starts a booking chat for a tour or destination",
	}
}

// ListFiltersTool defines the MCP tool schema for filter discovery.
func ListFiltersTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_filters",
		Description: "Lists the categories and regions accepted by search_tours",
	}
}

// SearchToursHandler filters the catalog.
func SearchToursHandler(memo *catalog.Memo, channel contact.Channel) mcp.ToolHandlerFor[SearchToursInput, SearchToursResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SearchToursInput) (*mcp.CallToolResult, SearchToursResult, error) {
		if memo == nil {
			return nil, SearchToursResult{}, fmt.Errorf("tour catalog is not configured")
		}
		if err := ctx.Err(); err != nil {
			return nil, SearchToursResult{}, err
		}
		packages := memo.Filter(input.filterState())
		if filter := strings.TrimSpace(input.Filter); filter != "" {
			filtered, err := aipfilter.Apply(packages, filter)
			if err != nil {
				return nil, SearchToursResult{}, fmt.Errorf("invalid filter: %w", err)
			}
			packages = filtered
		}

		result := SearchToursResult{Tours: make([]TourEntry, 0, len(packages)), Count: len(packages)}
		for _, pkg := range packages {
			result.Tours = append(result.Tours, tourEntry(pkg, channel))
		}
		return nil, result, nil
	}
}

// BookTourHandler hands the subject to the booking dispatcher.
func BookTourHandler(dispatcher *contact.Dispatcher) mcp.ToolHandlerFor[BookTourInput, BookTourResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BookTourInput) (*mcp.CallToolResult, BookTourResult, error) {
		if dispatcher == nil {
			return nil, BookTourResult{}, fmt.Errorf("booking dispatcher is not configured")
		}
		uri := dispatcher.Dispatch(ctx, input.Subject, BookingSource)
		return nil, BookTourResult{URI: uri, Message: contact.MessageFor(input.Subject)}, nil
	}
}

// ListFiltersHandler reports the filter vocabulary with per-option counts.
func ListFiltersHandler(memo *catalog.Memo, categoryIcons icons.CategoryIconResolver, regionIcons icons.RegionIconResolver) mcp.ToolHandlerFor[ListFiltersInput, ListFiltersResult] {
	if categoryIcons == nil {
		categoryIcons = icons.Emoji{}
	}
	if regionIcons == nil {
		regionIcons = icons.Emoji{}
	}
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ListFiltersInput) (*mcp.CallToolResult, ListFiltersResult, error) {
		if memo == nil {
			return nil, ListFiltersResult{}, fmt.Errorf("tour catalog is not configured")
		}
		result := ListFiltersResult{Fields: aipfilter.Fields()}
		for _, category := range catalog.Categories() {
			state := catalog.DefaultFilterState().WithCategory(category)
			result.Categories = append(result.Categories, FilterOption{
				Value: string(category),
				Icon:  categoryIcons.CategoryIcon(category),
				Count: len(memo.Filter(state)),
			})
		}
		for _, region := range catalog.Regions() {
			state := catalog.DefaultFilterState().WithRegion(region)
			result.Regions = append(result.Regions, FilterOption{
				Value: string(region),
				Icon:  regionIcons.RegionIcon(region),
				Count: len(memo.Filter(state)),
			})
		}
		return nil, result, nil
	}
}

func (in SearchToursInput) filterState() catalog.FilterState {
	values := url.Values{}
	values.Set(catalog.ParamCategory, in.Category)
	values.Set(catalog.ParamRegion, in.Region)
	values.Set(catalog.ParamQuery, in.Query)
	return catalog.FilterStateFromValues(values)
}

func tourEntry(pkg catalog.TourPackage, channel contact.Channel) TourEntry {
	destinations := pkg.Destinations
	if destinations == nil {
		destinations = []string{}
	}
	return TourEntry{
		ID:           pkg.ID,
		Name:         pkg.Name,
		Description:  pkg.Description,
		Category:     string(pkg.Category),
		Region:       string(pkg.Region),
		Destinations: destinations,
		Duration:     pkg.Duration,
		Price: PriceEntry{
			Amount:    pkg.Price.Amount,
			Currency:  string(pkg.Price.Currency),
			PerPerson: pkg.Price.PerPerson,
			Label:     pkg.Price.Label(),
		},
		Difficulty: string(pkg.Difficulty),
		Featured:   pkg.Featured,
		BookURI:    channel.URI(contact.MessageFor(pkg.Name)),
	}
}
