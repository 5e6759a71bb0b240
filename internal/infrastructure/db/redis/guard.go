package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// guardTTL bounds how long a crashed mutation can keep a property locked.
const guardTTL = 30 * time.Second

// MutationGuard serializes mutations per property id with an in-flight
// token. Key format: mutation:<property_id>
type MutationGuard struct {
	client *redis.Client
}

// NewMutationGuard creates a MutationGuard wrapping the given Redis client.
func NewMutationGuard(client *redis.Client) *MutationGuard {
	return &MutationGuard{client: client}
}

// Acquire takes the in-flight token for propertyID. It returns false when a
// prior mutation on the same id still holds the token.
func (g *MutationGuard) Acquire(ctx context.Context, propertyID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(propertyID), "1", guardTTL).Result()
	if err != nil {
		return false, fmt.Errorf("acquire mutation guard: %w", err)
	}
	return ok, nil
}

// Release frees the token so the next mutation (including a retry after
// failure) can proceed.
func (g *MutationGuard) Release(ctx context.Context, propertyID string) error {
	return g.client.Del(ctx, g.key(propertyID)).Err()
}

func (g *MutationGuard) key(propertyID string) string {
	return "mutation:" + propertyID
}
