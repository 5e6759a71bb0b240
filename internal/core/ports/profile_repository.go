package ports

import (
	"context"

	"github.com/immoconnect/listing-api/internal/core/domain"
)

// ProfileRepository handles profile rows. Profiles are written once at
// provisioning and only ever read afterwards, except when a partial
// registration has to be rolled back.
type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	Create(ctx context.Context, profile *domain.Profile) error
	Delete(ctx context.Context, id string) error
}
