package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/logger"
	"github.com/vendorhub/backend/internal/interfaces/http/dto"
	"github.com/vendorhub/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessList sends a list with its length in meta
func (h *BaseHandler) SuccessList(c *gin.Context, data any, total int) {
	c.JSON(http.StatusOK, dto.NewListResponse(data, total))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response, deriving the status from the code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeUnauthorized, message)
}

// ValidationError sends a 400 validation error response with details
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		middleware.GetRequestID(c),
		details,
	))
}

// HandleError converts domain errors to their status; anything else is a
// logged 500 whose message never leaks the cause.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, dto.NormalizeErrorCode(domainErr.Code), domainErr.Message)
		return
	}

	logger.L(c.Request.Context()).Error("Unhandled error",
		zap.String("route", c.FullPath()),
		zap.Error(err))
	_ = c.Error(err)
	h.Error(c, dto.ErrCodeInternal, "An unexpected error occurred")
}

// BindJSON binds the body and answers 400 itself when that fails
func (h *BaseHandler) BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if details, ok := middleware.ValidationDetails(err); ok {
			h.ValidationError(c, details)
		} else {
			h.Error(c, dto.ErrCodeInvalidJSON, "Invalid request body")
		}
		return false
	}
	return true
}

// PathID parses the :id path parameter
func (h *BaseHandler) PathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.ValidationError(c, []dto.ValidationDetail{{Field: "id", Message: "Invalid UUID format"}})
		return uuid.Nil, false
	}
	return id, true
}

// Role returns the authenticated role, answering 401 when there is none
func (h *BaseHandler) Role(c *gin.Context) (identity.AccountRole, bool) {
	role, ok := middleware.GetAccountRole(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
	}
	return role, ok
}

// VendorID returns the caller's vendor profile id; suppliers get 403
func (h *BaseHandler) VendorID(c *gin.Context) (uuid.UUID, bool) {
	role, ok := h.Role(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := role.Vendor()
	if err != nil {
		h.HandleError(c, err)
		return uuid.Nil, false
	}
	return id, true
}

// SupplierID returns the caller's supplier profile id; vendors get 403
func (h *BaseHandler) SupplierID(c *gin.Context) (uuid.UUID, bool) {
	role, ok := h.Role(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := role.Supplier()
	if err != nil {
		h.HandleError(c, err)
		return uuid.Nil, false
	}
	return id, true
}
