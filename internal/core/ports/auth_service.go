package ports

import (
	"context"
	"time"

	"github.com/immoconnect/listing-api/internal/core/domain"
)

// RegisterInput carries all data needed to provision a new account.
type RegisterInput struct {
	Email     string
	Password  string
	Firstname string
	Lastname  string
	// Role defaults to "utilisateur" when empty.
	Role string
}

// Session is returned after a successful login.
type Session struct {
	Token string
	User  *domain.User
	// Profile may be nil when the profile row is missing; role-gated routes
	// then fail closed because the token carries an empty role claim.
	Profile *domain.Profile
}

// AuthService implements account provisioning and session management.
type AuthService interface {
	// Register creates an unverified account plus its profile row and stores
	// a verification token the account owner must redeem before logging in.
	Register(ctx context.Context, input RegisterInput) (*domain.Profile, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	// Logout revokes the token identified by jti until it would have expired.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	Verify(ctx context.Context, token string) error
	// Profile resolves the profile row of the given principal.
	Profile(ctx context.Context, userID string) (*domain.Profile, error)
}
