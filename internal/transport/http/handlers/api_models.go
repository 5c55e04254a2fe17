package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arklim/hall-of-fame-creators/internal/core/domain"
)

// ErrorResponse represents a generic error payload with trace ID for debugging.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Error:   errorMsg,
		TraceID: traceIDStr,
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// SimpleAuthRequest defines the payload for the lightweight key-style
// authentication endpoint.
type SimpleAuthRequest struct {
	ExternalID string `json:"external_id" binding:"required"`
}

// ModAuthRequest defines the identity claim payload sent by the mod client.
type ModAuthRequest struct {
	Provider      string `json:"provider" binding:"required"`
	ExternalID    string `json:"external_id"`
	DisplayName   string `json:"display_name"`
	DeviceID      string `json:"device_id"`
	BearerToken   string `json:"bearer_token"`
	MinecraftUUID string `json:"minecraft_uuid"`
}

// CreatorResponse describes the API view of a creator account.
type CreatorResponse struct {
	ID             string    `json:"id"`
	ExternalID     string    `json:"external_id"`
	Provider       string    `json:"provider"`
	DisplayName    *string   `json:"display_name,omitempty"`
	MinecraftUUID  *string   `json:"minecraft_uuid,omitempty"`
	Locale         *string   `json:"locale,omitempty"`
	LatinizedName  *string   `json:"latinized_name,omitempty"`
	TranslatedName *string   `json:"translated_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ModAuthResponse wraps the resolved creator together with how the claim was
// reconciled.
type ModAuthResponse struct {
	Outcome string          `json:"outcome"`
	Creator CreatorResponse `json:"creator"`
}

// IdentityResetResponse confirms an authorized identity reset.
type IdentityResetResponse struct {
	Message string          `json:"message"`
	Creator CreatorResponse `json:"creator"`
}

// HealthResponse describes the service health payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadyResponse describes readiness probe results with dependency checks.
type ReadyResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// newCreatorResponse converts a domain creator to its API representation.
func newCreatorResponse(creator domain.Creator) CreatorResponse {
	return CreatorResponse{
		ID:             creator.ID,
		ExternalID:     creator.ExternalID,
		Provider:       string(creator.Provider),
		DisplayName:    creator.DisplayName,
		MinecraftUUID:  creator.MinecraftUUID,
		Locale:         creator.Locale,
		LatinizedName:  creator.LatinizedName,
		TranslatedName: creator.TranslatedName,
		CreatedAt:      creator.CreatedAt,
		UpdatedAt:      creator.UpdatedAt,
	}
}
