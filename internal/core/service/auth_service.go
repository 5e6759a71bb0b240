package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/immoconnect/listing-api/internal/core/domain"
	"github.com/immoconnect/listing-api/internal/core/ports"
)

const verificationTTL = 24 * time.Hour

// TokenStore abstracts the token state kept in Redis: email verification
// tokens and revoked session ids.
type TokenStore interface {
	StoreVerification(ctx context.Context, token, userID string, ttl time.Duration) error
	// ConsumeVerification returns the user id bound to token and deletes it.
	ConsumeVerification(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService implements registration, login, logout, and email verification.
type AuthService struct {
	users     ports.UserRepository
	profiles  ports.ProfileRepository
	tokens    TokenStore
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	profiles ports.ProfileRepository,
	tokens TokenStore,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		profiles:  profiles,
		tokens:    tokens,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register provisions an unverified account and its profile row. The
// verification token is stored with a TTL and delivered out of band; the
// account cannot log in until it is redeemed.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Profile, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUtilisateur
	}
	if !domain.IsValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: string(hash),
		Verified:     false,
		CreatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		ID:        user.ID,
		Role:      role,
		Firstname: input.Firstname,
		Lastname:  input.Lastname,
		CreatedAt: now,
	}
	// The user row is written first, so a failure on either follow-up write
	// has to undo it. Otherwise the email stays taken by an account that can
	// neither log in nor re-register.
	if err := s.profiles.Create(ctx, profile); err != nil {
		s.rollbackUser(ctx, user.ID)
		return nil, err
	}

	verification := uuid.NewString()
	if err := s.tokens.StoreVerification(ctx, verification, user.ID, verificationTTL); err != nil {
		s.rollbackProfile(ctx, user.ID)
		s.rollbackUser(ctx, user.ID)
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("role", role).
		Str("verification_token", verification).
		Msg("account registered, pending email verification")

	return profile, nil
}

func (s *AuthService) rollbackUser(ctx context.Context, userID string) {
	if err := s.users.Delete(ctx, userID); err != nil {
		s.logger.Error().Err(err).
			Str("user_id", userID).
			Msg("failed to roll back user after partial registration")
	}
}

func (s *AuthService) rollbackProfile(ctx context.Context, userID string) {
	if err := s.profiles.Delete(ctx, userID); err != nil {
		s.logger.Error().Err(err).
			Str("user_id", userID).
			Msg("failed to roll back profile after partial registration")
	}
}

// Login verifies credentials and returns a signed session token plus the
// profile row. Unverified accounts are rejected.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Verified {
		return nil, domain.ErrEmailNotVerified
	}

	// A missing profile leaves the role claim empty; role-gated routes then
	// fail closed.
	profile, err := s.profiles.FindByID(ctx, user.ID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	role := ""
	if profile != nil {
		role = profile.Role
	}

	token, err := s.generateToken(user, role)
	if err != nil {
		return nil, err
	}

	return &ports.Session{Token: token, User: user, Profile: profile}, nil
}

// Logout revokes the session until the token's natural expiry.
func (s *AuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.tokens.Revoke(ctx, jti, ttl)
}

// Verify redeems an email verification token.
func (s *AuthService) Verify(ctx context.Context, token string) error {
	userID, err := s.tokens.ConsumeVerification(ctx, token)
	if err != nil {
		return err
	}
	if err := s.users.MarkVerified(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Msg("email verified")
	return nil
}

// Profile resolves the profile row of the given principal.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profiles.FindByID(ctx, userID)
}

func (s *AuthService) generateToken(user *domain.User, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": role,
		"jti":  uuid.NewString(),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
