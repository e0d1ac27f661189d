package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vendorhub/backend/internal/interfaces/http/dto"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

// Ping calls f
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthData is the health check payload
type HealthData struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Checks   map[string]string `json:"checks"`
	Duration string            `json:"duration"`
}

// HealthHandler answers liveness and dependency checks
type HealthHandler struct {
	BaseHandler
	version string
	checks  map[string]Pinger
	timeout time.Duration
}

// NewHealthHandler creates a health handler over the named dependencies
func NewHealthHandler(version string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{version: version, checks: checks, timeout: 2 * time.Second}
}

// Health godoc
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[HealthData]
// @Failure      503 {object} APIResponse[HealthData]
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	data := HealthData{Status: "healthy", Version: h.version, Checks: make(map[string]string, len(h.checks))}
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			data.Checks[name] = "unhealthy: " + err.Error()
			data.Status = "unhealthy"
			continue
		}
		data.Checks[name] = "ok"
	}
	data.Duration = time.Since(start).String()

	if data.Status != "healthy" {
		c.JSON(http.StatusServiceUnavailable, dto.Response{Success: false, Data: data})
		return
	}
	h.Success(c, data)
}
