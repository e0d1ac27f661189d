package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/grafana/pyroscope-go"
)

// ProfilingConfig holds configuration for the profiling labels middleware
type ProfilingConfig struct {
	Enabled          bool
	SkipPathPrefixes []string
}

// ProfilingLabels tags CPU samples taken while a request is handled with its
// route template and method, so flame graphs can be split per endpoint.
// Unmatched routes are labelled "unmatched" to keep cardinality bounded.
func ProfilingLabels(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		pyroscope.TagWrapper(c.Request.Context(), pyroscope.Labels("route", route, "method", c.Request.Method), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
