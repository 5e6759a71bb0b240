package ports

import (
	"context"

	"github.com/immoconnect/listing-api/internal/core/domain"
)

// CreatePropertyInput carries all data needed to create a listing.
// AgentID always comes from the authenticated session, never the payload.
type CreatePropertyInput struct {
	Title       string
	Description string
	Price       float64
	City        string
	IsPublished bool
	AgentID     string
	Role        string
}

// OwnedListings is the owner management view: the agent's own properties
// with published/draft counters.
type OwnedListings struct {
	Properties []*domain.Property
	Published  int
	Drafts     int
}

// PropertyService defines use-case operations for owner-managed listings.
// Mutations are serialized per property: a second SetPublished or Delete on
// an id whose previous mutation is still in flight fails with
// domain.ErrMutationInFlight.
type PropertyService interface {
	ListOwned(ctx context.Context, agentID string) (*OwnedListings, error)
	Create(ctx context.Context, input CreatePropertyInput) (*domain.Property, error)
	SetPublished(ctx context.Context, id string, value bool, agentID string) (*domain.Property, error)
	Delete(ctx context.Context, id string, agentID string) error
	// ListActivity returns the property's audit trail, oldest first. Only
	// the owning agent may read it.
	ListActivity(ctx context.Context, id string, agentID string) ([]*domain.PropertyEvent, error)
}
