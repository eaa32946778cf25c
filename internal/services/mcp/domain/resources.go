package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/louisbranch/balitours/internal/tours/catalog"
	"github.com/louisbranch/balitours/internal/tours/contact"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	catalogResourceURI     = "tours://catalog"
	packageResourcePrefix  = "tours://packages/"
	packageResourcePattern = packageResourcePrefix + "{id}"
)

// CatalogResource describes the full catalog listing.
func CatalogResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "tours_catalog",
		Title:       "Tour Catalog",
		Description: "Every tour package in catalog order",
		MIMEType:    "application/json",
		URI:         catalogResourceURI,
	}
}

// PackageResourceTemplate describes a single package by id.
func PackageResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "tour_package",
		Title:       "Tour Package",
		Description: "One tour package. URI format: tours://packages/{id}",
		MIMEType:    "application/json",
		URITemplate: packageResourcePattern,
	}
}

// CatalogResourceHandler reads the catalog listing.
func CatalogResourceHandler(memo *catalog.Memo, channel contact.Channel) mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if memo == nil {
			return nil, fmt.Errorf("tour catalog is not configured")
		}
		uri := catalogResourceURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		packages := memo.Snapshot().Packages()
		payload := SearchToursResult{Tours: make([]TourEntry, 0, len(packages)), Count: len(packages)}
		for _, pkg := range packages {
			payload.Tours = append(payload.Tours, tourEntry(pkg, channel))
		}
		return jsonResource(uri, payload)
	}
}

// PackageResourceHandler reads one package.
func PackageResourceHandler(memo *catalog.Memo, channel contact.Channel) mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if memo == nil {
			return nil, fmt.Errorf("tour catalog is not configured")
		}
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("package id is required; use URI format %s", packageResourcePattern)
		}
		uri := req.Params.URI
		id, err := parsePackageID(uri)
		if err != nil {
			return nil, err
		}
		pkg, err := memo.Snapshot().Get(id)
		if err != nil {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		return jsonResource(uri, tourEntry(pkg, channel))
	}
}

func parsePackageID(uri string) (string, error) {
	id, ok := strings.CutPrefix(uri, packageResourcePrefix)
	id = strings.TrimSpace(id)
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", fmt.Errorf("parse package id from URI %q: expected %s", uri, packageResourcePattern)
	}
	return id, nil
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resource %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}
