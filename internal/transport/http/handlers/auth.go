package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arklim/hall-of-fame-creators/internal/core/domain"
	"github.com/arklim/hall-of-fame-creators/internal/usecase"
)

// AuthHandler exposes the creator authentication endpoints.
type AuthHandler struct {
	identity *usecase.IdentityService
	simple   *usecase.SimpleAuthService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(identity *usecase.IdentityService, simple *usecase.SimpleAuthService) *AuthHandler {
	return &AuthHandler{
		identity: identity,
		simple:   simple,
	}
}

// RegisterRoutes binds authentication routes.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth", h.authenticate)
	r.POST("/auth/mod", h.authenticateMod)
}

// Authenticate godoc
// @Summary Authenticate an existing creator by external ID
// @Description Looks up the creator owning the supplied external ID and records the request IP. Never creates accounts.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body SimpleAuthRequest true "Authentication payload"
// @Success 200 {object} CreatorResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/creators/auth [post]
func (h *AuthHandler) authenticate(c *gin.Context) {
	var req SimpleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid authentication payload"))
		return
	}

	creator, err := h.simple.Authenticate(c.Request.Context(), req.ExternalID, c.ClientIP())
	if err != nil {
		respondError(c, err, "authentication failed",
			errStatus{target: usecase.ErrCreatorNotFound, code: http.StatusNotFound, message: "creator not found"},
		)
		return
	}

	c.JSON(http.StatusOK, newCreatorResponse(creator))
}

// AuthenticateMod godoc
// @Summary Resolve a mod client identity claim
// @Description Authenticates the claim against its identity provider and creates, migrates, or updates the matching creator account.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body ModAuthRequest true "Identity claim payload"
// @Success 200 {object} ModAuthResponse
// @Success 201 {object} ModAuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/creators/auth/mod [post]
func (h *AuthHandler) authenticateMod(c *gin.Context) {
	var req ModAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid identity claim payload"))
		return
	}

	claim := usecase.AuthClaim{
		Provider:      domain.Provider(req.Provider),
		ExternalID:    req.ExternalID,
		DisplayName:   req.DisplayName,
		DeviceID:      req.DeviceID,
		IP:            c.ClientIP(),
		BearerToken:   req.BearerToken,
		MinecraftUUID: req.MinecraftUUID,
	}

	creator, outcome, err := h.identity.AuthenticateForMod(c.Request.Context(), claim)
	if err != nil {
		respondError(c, err, "identity resolution failed",
			errStatus{target: usecase.ErrUnsupportedProvider, code: http.StatusBadRequest, message: "unsupported identity provider"},
			errStatus{target: usecase.ErrMissingCredential, code: http.StatusBadRequest, message: "missing provider credential"},
			errStatus{target: usecase.ErrInvalidExternalID, code: http.StatusBadRequest, message: "invalid external id"},
			errStatus{target: usecase.ErrInvalidLinkedUUID, code: http.StatusBadRequest, message: "invalid minecraft uuid"},
			errStatus{target: usecase.ErrInvalidDisplayName, code: http.StatusBadRequest, message: "invalid display name"},
			errStatus{target: usecase.ErrAuthenticationFailed, code: http.StatusUnauthorized, message: "minecraft authentication failed"},
			errStatus{target: usecase.ErrIdentityMismatch, code: http.StatusForbidden, message: "external id does not match the stored identity"},
			errStatus{target: usecase.ErrNameAlreadyClaimed, code: http.StatusConflict, message: "display name already claimed"},
		)
		return
	}

	status := http.StatusOK
	if outcome == usecase.OutcomeCreated {
		status = http.StatusCreated
	}

	c.JSON(status, ModAuthResponse{
		Outcome: string(outcome),
		Creator: newCreatorResponse(creator),
	})
}
