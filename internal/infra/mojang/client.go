// Package mojang verifies Minecraft account ownership through the official
// profile API.
package mojang

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/arklim/hall-of-fame-creators/internal/core/port"
	"github.com/arklim/hall-of-fame-creators/internal/identity"
	"github.com/arklim/hall-of-fame-creators/internal/infra/config"
)

const defaultTimeout = 10 * time.Second

// ProfileCache is the optional read-through cache for verified profiles.
type ProfileCache interface {
	Get(ctx context.Context, bearer string) (port.VerifiedProfile, bool, error)
	Set(ctx context.Context, bearer string, profile port.VerifiedProfile) error
}

// Client implements port.ProfileVerifier against the Minecraft services API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      ProfileCache
	logger     *zap.Logger
}

// NewClient constructs the verifier. cache may be nil.
func NewClient(cfg config.MojangSettings, cache ProfileCache, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		cache:      cache,
		logger:     logger,
	}
}

// Verify proves ownership of a Minecraft account from the bearer credential
// and returns the canonical account identity.
func (c *Client) Verify(ctx context.Context, bearer string) (port.VerifiedProfile, error) {
	if c.cache != nil {
		profile, ok, err := c.cache.Get(ctx, bearer)
		if err != nil {
			c.logger.Warn("profile cache read failed", zap.Error(err))
		} else if ok {
			return profile, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/minecraft/profile", nil)
	if err != nil {
		return port.VerifiedProfile{}, fmt.Errorf("%w: %v", port.ErrVerifierRequestFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return port.VerifiedProfile{}, fmt.Errorf("%w: %v", port.ErrVerifierRequestFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return port.VerifiedProfile{}, port.ErrVerifierInvalidCredential
	case resp.StatusCode != http.StatusOK:
		return port.VerifiedProfile{}, fmt.Errorf("%w: unexpected status %d", port.ErrVerifierRequestFailed, resp.StatusCode)
	}

	var payload struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return port.VerifiedProfile{}, fmt.Errorf("%w: %v", port.ErrVerifierMalformedResponse, err)
	}

	canonical, err := identity.NormalizeMinecraftUUID(payload.ID)
	if err != nil {
		return port.VerifiedProfile{}, fmt.Errorf("%w: profile id %q", port.ErrVerifierMalformedResponse, payload.ID)
	}

	profile := port.VerifiedProfile{UUID: canonical, Username: payload.Name}

	if c.cache != nil {
		if err := c.cache.Set(ctx, bearer, profile); err != nil {
			c.logger.Warn("profile cache write failed", zap.Error(err))
		}
	}

	return profile, nil
}

var _ port.ProfileVerifier = (*Client)(nil)
