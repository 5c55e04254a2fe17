// Package translation is the client for the internal display-name
// translation service.
package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/arklim/hall-of-fame-creators/internal/core/domain"
	"github.com/arklim/hall-of-fame-creators/internal/core/port"
	"github.com/arklim/hall-of-fame-creators/internal/infra/config"
)

const defaultTimeout = 10 * time.Second

// Client implements port.NameTranslator. An empty base URL disables it: no
// name is eligible and Translate always fails.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient constructs the translation client.
func NewClient(cfg config.TranslationSettings, logger *zap.Logger) *Client {
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
		logger:     logger,
	}
}

// IsEligible reports whether the name would benefit from translation.
func (c *Client) IsEligible(name string) bool {
	if c.baseURL == "" {
		return false
	}
	return NeedsTransliteration(name)
}

// NeedsTransliteration reports whether the name carries letters outside the
// Latin script.
func NeedsTransliteration(name string) bool {
	for _, r := range name {
		if unicode.IsLetter(r) && !unicode.Is(unicode.Latin, r) {
			return true
		}
	}
	return false
}

// Translate requests the locale, latinized, and translated forms of the name.
func (c *Client) Translate(ctx context.Context, creatorID, name string) (domain.NameTranslation, error) {
	if c.baseURL == "" {
		return domain.NameTranslation{}, fmt.Errorf("translation service not configured")
	}

	body, err := json.Marshal(struct {
		CreatorID string `json:"creator_id"`
		Name      string `json:"name"`
	}{CreatorID: creatorID, Name: name})
	if err != nil {
		return domain.NameTranslation{}, fmt.Errorf("encode translation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/translations", bytes.NewReader(body))
	if err != nil {
		return domain.NameTranslation{}, fmt.Errorf("build translation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NameTranslation{}, fmt.Errorf("call translation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.NameTranslation{}, fmt.Errorf("translation service returned status %d", resp.StatusCode)
	}

	var payload struct {
		Locale         string `json:"locale"`
		LatinizedName  string `json:"latinized_name"`
		TranslatedName string `json:"translated_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.NameTranslation{}, fmt.Errorf("decode translation response: %w", err)
	}

	return domain.NameTranslation{
		Locale:         payload.Locale,
		LatinizedName:  payload.LatinizedName,
		TranslatedName: payload.TranslatedName,
	}, nil
}

var _ port.NameTranslator = (*Client)(nil)
