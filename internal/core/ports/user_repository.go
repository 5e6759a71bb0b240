package ports

import (
	"context"

	"github.com/immoconnect/listing-api/internal/core/domain"
)

// UserRepository defines the interface for credential persistence.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	MarkVerified(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
