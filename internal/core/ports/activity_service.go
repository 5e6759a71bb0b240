package ports

import (
	"context"

	"github.com/immoconnect/listing-api/internal/core/domain"
)

// ActivityService persists property mutation events dequeued from the audit
// pipeline.
type ActivityService interface {
	Process(ctx context.Context, event domain.PropertyEvent) error
}
