package ports

import (
	"context"

	"github.com/immoconnect/listing-api/internal/core/domain"
)

// CityAll is the sentinel value that disables the city filter.
const CityAll = "all"

// BrowseInput carries the catalogue filter parameters.
type BrowseInput struct {
	// Search is matched case-insensitively as a substring of title,
	// description, or city. Empty means no search filter.
	Search string
	// City must equal the property's city exactly (case-sensitive), unless it
	// is the CityAll sentinel or empty.
	City string
}

// BrowseResult is the catalogue page payload.
type BrowseResult struct {
	Properties []*domain.Property
	// Total is the number of published properties before filtering.
	Total int
	// Cities is the distinct set of city values among published properties,
	// sorted lexicographically ascending.
	Cities []string
}

// CatalogueService serves the public listing catalogue.
type CatalogueService interface {
	Browse(ctx context.Context, input BrowseInput) (*BrowseResult, error)
}
