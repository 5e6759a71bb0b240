package service

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/immoconnect/listing-api/internal/core/domain"
	"github.com/immoconnect/listing-api/internal/core/ports"
)

// CatalogueService serves the public listing catalogue.
type CatalogueService struct {
	repo   ports.PropertyRepository
	logger zerolog.Logger
}

func NewCatalogueService(repo ports.PropertyRepository, logger zerolog.Logger) *CatalogueService {
	return &CatalogueService{repo: repo, logger: logger}
}

// Browse fetches the published set (created_at descending) and applies the
// search and city predicates in memory. The city facet is computed over the
// unfiltered published set, so narrowing the search never shrinks the list
// of selectable cities.
func (s *CatalogueService) Browse(ctx context.Context, input ports.BrowseInput) (*ports.BrowseResult, error) {
	published, err := s.repo.ListPublished(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch published properties")
		return nil, err
	}

	return &ports.BrowseResult{
		Properties: filterProperties(published, input.Search, input.City),
		Total:      len(published),
		Cities:     distinctCities(published),
	}, nil
}

// filterProperties keeps a property iff both predicates pass:
//   - search is empty, or matches title, description, or city as a
//     case-insensitive substring (an absent description never matches);
//   - city is empty or the "all" sentinel, or equals the property's city
//     exactly (case-sensitive).
func filterProperties(props []*domain.Property, search, city string) []*domain.Property {
	needle := strings.ToLower(search)

	out := make([]*domain.Property, 0, len(props))
	for _, p := range props {
		if needle != "" {
			titleMatch := strings.Contains(strings.ToLower(p.Title), needle)
			descMatch := p.Description != "" && strings.Contains(strings.ToLower(p.Description), needle)
			cityMatch := strings.Contains(strings.ToLower(p.City), needle)
			if !titleMatch && !descMatch && !cityMatch {
				continue
			}
		}
		if city != "" && city != ports.CityAll && p.City != city {
			continue
		}
		out = append(out, p)
	}
	return out
}

// distinctCities returns the unique city values sorted ascending.
func distinctCities(props []*domain.Property) []string {
	seen := make(map[string]struct{}, len(props))
	cities := make([]string, 0, len(props))
	for _, p := range props {
		if _, ok := seen[p.City]; ok {
			continue
		}
		seen[p.City] = struct{}{}
		cities = append(cities, p.City)
	}
	sort.Strings(cities)
	return cities
}
