package handler

import (
	"github.com/immoconnect/listing-api/internal/core/domain"
	"github.com/immoconnect/listing-api/internal/core/ports"
)

func toPropertyResponse(p *domain.Property) propertyResponse {
	return propertyResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		City:        p.City,
		AgentID:     p.AgentID,
		IsPublished: p.IsPublished,
		CreatedAt:   p.CreatedAt.UTC(),
	}
}

func toPropertyResponses(props []*domain.Property) []propertyResponse {
	out := make([]propertyResponse, len(props))
	for i, p := range props {
		out[i] = toPropertyResponse(p)
	}
	return out
}

func toCatalogueResponse(r *ports.BrowseResult) catalogueResponse {
	return catalogueResponse{
		Data:   toPropertyResponses(r.Properties),
		Total:  r.Total,
		Cities: r.Cities,
	}
}

func toOwnedListingsResponse(l *ports.OwnedListings) ownedListingsResponse {
	return ownedListingsResponse{
		Data:      toPropertyResponses(l.Properties),
		Published: l.Published,
		Drafts:    l.Drafts,
	}
}

func toActivityResponses(events []*domain.PropertyEvent) []activityEventResponse {
	out := make([]activityEventResponse, len(events))
	for i, e := range events {
		out[i] = activityEventResponse{
			PropertyID: e.PropertyID,
			AgentID:    e.AgentID,
			Action:     string(e.Action),
			At:         e.At.UTC(),
		}
	}
	return out
}
