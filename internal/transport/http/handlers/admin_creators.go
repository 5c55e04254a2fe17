package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arklim/hall-of-fame-creators/internal/usecase"
)

// AdminCreatorsHandler exposes administrator maintenance endpoints.
type AdminCreatorsHandler struct {
	admin *usecase.CreatorAdminService
}

// NewAdminCreatorsHandler constructs AdminCreatorsHandler.
func NewAdminCreatorsHandler(admin *usecase.CreatorAdminService) *AdminCreatorsHandler {
	return &AdminCreatorsHandler{admin: admin}
}

// RegisterRoutes binds administrator routes.
func (h *AdminCreatorsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/creators/:id/identity-reset", h.authorizeIdentityReset)
}

// AuthorizeIdentityReset godoc
// @Summary Authorize a one-shot identity reset
// @Description Flags the creator so its next successful authentication may migrate to a new external ID.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Creator ID"
// @Success 200 {object} IdentityResetResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/admin/creators/{id}/identity-reset [post]
func (h *AdminCreatorsHandler) authorizeIdentityReset(c *gin.Context) {
	creatorID := c.Param("id")
	if creatorID == "" {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "creator id is required"))
		return
	}

	creator, err := h.admin.AuthorizeIdentityReset(c.Request.Context(), creatorID)
	if err != nil {
		respondError(c, err, "identity reset failed",
			errStatus{target: usecase.ErrCreatorNotFound, code: http.StatusNotFound, message: "creator not found"},
		)
		return
	}

	c.JSON(http.StatusOK, IdentityResetResponse{
		Message: "identity reset authorized",
		Creator: newCreatorResponse(creator),
	})
}
