package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vendorhub/backend/internal/application/identity"
	"github.com/vendorhub/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles signup and the token lifecycle
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup godoc
// @Summary      Register an account
// @Description  Create a vendor or supplier account with its profile and log it in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SignupRequest true "Account and profile"
// @Success      201 {object} APIResponse[identity.AuthResult]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.authService.Signup(c.Request.Context(), identity.SignupInput{
		Username:         req.Username,
		Email:            req.Email,
		Password:         req.Password,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Role:             req.Role,
		CompanyName:      req.CompanyName,
		BusinessType:     req.BusinessType,
		Phone:            req.Phone,
		Address:          req.Address,
		GSTNumber:        req.GSTNumber,
		Website:          req.Website,
		OrganizationName: req.OrganizationName,
		ContactPerson:    req.ContactPerson,
		PAN:              req.PAN,
		BusinessCategory: req.BusinessCategory,
		SupplyCapacity:   req.SupplyCapacity,
		Certifications:   req.Certifications,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} APIResponse[identity.AuthResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Refresh godoc
// @Summary      Refresh access token
// @Description  Exchange a refresh token for a new pair; the old refresh token is revoked
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshTokenRequest true "Refresh token"
// @Success      200 {object} APIResponse[identity.AuthResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshTokenRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Logout godoc
// @Summary      Logout
// @Description  Revoke the presented access token
// @Tags         auth
// @Produce      json
// @Success      200 {object} APIResponse[MessageData]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	accountID, ok := middleware.GetAccountID(c)
	if claims == nil || !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	err := h.authService.Logout(c.Request.Context(), identity.LogoutInput{
		AccountID: accountID,
		TokenJTI:  claims.ID,
		TokenTTL:  claims.GetRemainingTTL(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, MessageData{Message: "Logged out successfully"})
}
