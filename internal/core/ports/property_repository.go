package ports

import (
	"context"

	"github.com/immoconnect/listing-api/internal/core/domain"
)

// PropertyRepository defines persistence operations for properties.
// All list methods return rows ordered by created_at descending.
type PropertyRepository interface {
	Insert(ctx context.Context, p *domain.Property) error
	FindByID(ctx context.Context, id string) (*domain.Property, error)
	// ListPublished returns only rows with is_published = true.
	ListPublished(ctx context.Context) ([]*domain.Property, error)
	// ListByAgent returns all rows owned by agentID, published or not.
	ListByAgent(ctx context.Context, agentID string) ([]*domain.Property, error)
	// ListAll returns every row regardless of owner or publication state.
	ListAll(ctx context.Context) ([]*domain.Property, error)
	// SetPublished updates only the is_published column of the given row.
	SetPublished(ctx context.Context, id string, value bool) error
	Delete(ctx context.Context, id string) error
}
