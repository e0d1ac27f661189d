package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vendorhub/backend/internal/interfaces/http/dto"
)

const swaggerPrefix = "/swagger"

// SwaggerProtection answers 404 for the API docs when they are disabled
func SwaggerProtection(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			abortWithError(c, dto.ErrCodeNotFound, "API documentation is not available")
			return
		}
		c.Next()
	}
}

func isSwaggerPath(path string) bool {
	return strings.HasPrefix(path, swaggerPrefix)
}
