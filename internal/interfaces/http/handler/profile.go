package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vendorhub/backend/internal/application/profile"
	"github.com/vendorhub/backend/internal/interfaces/http/middleware"
)

// ProfileHandler serves the caller's own profile
type ProfileHandler struct {
	BaseHandler
	profileService *profile.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *profile.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile godoc
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Success      200 {object} APIResponse[profile.ProfileResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	role, ok := h.Role(c)
	if !ok {
		return
	}
	accountID, _ := middleware.GetAccountID(c)

	resp, err := h.profileService.GetProfile(c.Request.Context(), accountID, role)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Description  Partial update; full_name is split on the first space
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request body profile.UpdateProfileRequest true "Fields to change"
// @Success      200 {object} APIResponse[profile.ProfileResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	role, ok := h.Role(c)
	if !ok {
		return
	}
	accountID, _ := middleware.GetAccountID(c)

	var req profile.UpdateProfileRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.profileService.UpdateProfile(c.Request.Context(), accountID, role, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
