package redis

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arklim/hall-of-fame-creators/internal/core/port"
)

// ProfileCache keeps verified Minecraft profiles for a short TTL, keyed by a
// digest of the bearer credential. It shields the upstream profile API from
// re-verifying the same session token on every request. Strictly advisory:
// callers fall through to the verifier on any miss or failure.
type ProfileCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewProfileCache constructs a Redis-backed profile cache.
func NewProfileCache(client *redis.Client, prefix string, ttl time.Duration) *ProfileCache {
	if prefix == "" {
		prefix = "hof:mojang_profile"
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ProfileCache{client: client, prefix: prefix, ttl: ttl}
}

type cachedProfile struct {
	UUID     string `json:"uuid"`
	Username string `json:"username,omitempty"`
}

func (c *ProfileCache) key(bearer string) string {
	digest := sha256.Sum256([]byte(bearer))
	return fmt.Sprintf("%s:%x", c.prefix, digest)
}

// Get returns the cached profile for the credential, reporting whether one
// was present.
func (c *ProfileCache) Get(ctx context.Context, bearer string) (port.VerifiedProfile, bool, error) {
	raw, err := c.client.Get(ctx, c.key(bearer)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return port.VerifiedProfile{}, false, nil
		}
		return port.VerifiedProfile{}, false, fmt.Errorf("get cached profile: %w", err)
	}

	var cached cachedProfile
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return port.VerifiedProfile{}, false, fmt.Errorf("decode cached profile: %w", err)
	}

	return port.VerifiedProfile{UUID: cached.UUID, Username: cached.Username}, true, nil
}

// Set stores the verified profile under the credential digest.
func (c *ProfileCache) Set(ctx context.Context, bearer string, profile port.VerifiedProfile) error {
	raw, err := json.Marshal(cachedProfile{UUID: profile.UUID, Username: profile.Username})
	if err != nil {
		return fmt.Errorf("encode cached profile: %w", err)
	}

	if err := c.client.Set(ctx, c.key(bearer), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached profile: %w", err)
	}

	return nil
}
