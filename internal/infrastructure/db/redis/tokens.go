package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrTokenNotFound = errors.New("token not found or expired")

// TokenStore keeps short-lived auth token state: email verification tokens
// and revoked session ids.
//
// Key formats: verify:<token> and revoked:<jti>
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// StoreVerification binds a verification token to a user id for ttl.
func (s *TokenStore) StoreVerification(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, "verify:"+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("store verification token: %w", err)
	}
	return nil
}

// ConsumeVerification returns the user id bound to token and deletes it, so
// a verification link can only be used once.
func (s *TokenStore) ConsumeVerification(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, "verify:"+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("consume verification token: %w", err)
	}
	return userID, nil
}

// Revoke marks a session id as revoked until the token would have expired.
func (s *TokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := s.client.Set(ctx, "revoked:"+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// IsRevoked reports whether the session id has been revoked.
func (s *TokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, "revoked:"+jti).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}
