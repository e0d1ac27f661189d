package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/infrastructure/auth"
	"github.com/vendorhub/backend/internal/infrastructure/logger"
	"github.com/vendorhub/backend/internal/interfaces/http/dto"
)

// JWT context keys
const (
	JWTClaimsKey    = "jwt_claims"
	JWTAccountIDKey = "jwt_account_id"
	JWTRoleKey      = "jwt_role"
	AuthHeaderKey   = "Authorization"
	BearerPrefix    = "Bearer "
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// TokenBlacklist is optional; logged out tokens are rejected when set
	TokenBlacklist auth.TokenBlacklist
	Logger         *zap.Logger
}

// JWTAuthMiddleware validates the bearer token and resolves the account role
// from its claims, so handlers never look the role up again.
func JWTAuthMiddleware(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			rejectToken(c, log, auth.ErrInvalidToken, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			rejectToken(c, log, auth.ErrInvalidToken, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			rejectToken(c, log, auth.ErrInvalidToken, "Missing token")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			rejectToken(c, log, err, "Token validation failed")
			return
		}

		if cfg.TokenBlacklist != nil && claims.ID != "" {
			blacklisted, err := cfg.TokenBlacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			switch {
			case err != nil:
				// fail open: the blacklist is an optimisation over short-lived tokens
				log.Error("Failed to check token blacklist", zap.String("jti", claims.ID), zap.Error(err))
			case blacklisted:
				rejectToken(c, log, auth.ErrTokenBlacklisted, "Token has been revoked")
				return
			}
		}

		accountID, err := claims.GetAccountUUID()
		if err != nil {
			rejectToken(c, log, auth.ErrInvalidClaims, "Invalid account id")
			return
		}
		role, err := claims.AccountRole()
		if err != nil {
			rejectToken(c, log, auth.ErrInvalidClaims, "Invalid role claims")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTAccountIDKey, accountID)
		c.Set(JWTRoleKey, role)
		c.Request = c.Request.WithContext(logger.WithAccount(c.Request.Context(), accountID.String(), string(role.Kind())))

		c.Next()
	}
}

func rejectToken(c *gin.Context, log *zap.Logger, err error, reason string) {
	log.Warn("JWT authentication failed",
		zap.Error(err),
		zap.String("reason", reason),
		zap.String("path", c.Request.URL.Path))

	code, message := dto.ErrCodeUnauthorized, "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, message = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenBlacklisted):
		code, message = dto.ErrCodeTokenRevoked, "Token has been revoked"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidTokenType),
		errors.Is(err, auth.ErrInvalidClaims), errors.Is(err, auth.ErrTokenNotYetValid):
		code, message = dto.ErrCodeTokenInvalid, "Invalid token"
	}
	abortWithError(c, code, message)
}

// RequireRole allows only accounts of the given kind through
func RequireRole(kind identity.RoleKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetAccountRole(c)
		if !ok {
			abortWithError(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if role.Kind() != kind {
			abortWithError(c, dto.ErrCodeForbidden, "Only "+string(kind)+"s can perform this action")
			return
		}
		c.Next()
	}
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetAccountID returns the authenticated account id
func GetAccountID(c *gin.Context) (uuid.UUID, bool) {
	if v, ok := c.Get(JWTAccountIDKey); ok {
		id, ok := v.(uuid.UUID)
		return id, ok
	}
	return uuid.Nil, false
}

// GetAccountRole returns the role resolved from the token
func GetAccountRole(c *gin.Context) (identity.AccountRole, bool) {
	if v, ok := c.Get(JWTRoleKey); ok {
		role, ok := v.(identity.AccountRole)
		return role, ok && !role.IsZero()
	}
	return identity.AccountRole{}, false
}
