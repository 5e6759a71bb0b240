package ports

import (
	"context"

	"github.com/immoconnect/listing-api/internal/core/domain"
)

// PropertyEventRepository persists the property mutation audit trail.
type PropertyEventRepository interface {
	Insert(ctx context.Context, event *domain.PropertyEvent) error
	ListByProperty(ctx context.Context, propertyID string) ([]*domain.PropertyEvent, error)
}
