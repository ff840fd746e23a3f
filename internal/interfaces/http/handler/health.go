package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// HealthCheck probes one dependency
type HealthCheck func(ctx context.Context) error

// HealthHandler serves the welcome page and the health probe
type HealthHandler struct {
	BaseHandler
	checks    map[string]HealthCheck
	version   string
	startTime time.Time
}

// NewHealthHandler creates a health handler running checks on every probe
func NewHealthHandler(version string, checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks, version: version, startTime: time.Now()}
}

// HealthData reports the state of the service and its dependencies
type HealthData struct {
	Status    string            `json:"status" example:"healthy"`
	Version   string            `json:"version" example:"1.0.0"`
	GoVersion string            `json:"go_version" example:"go1.24.0"`
	Uptime    string            `json:"uptime" example:"1h30m45s"`
	Services  map[string]string `json:"services"`
}

// Welcome godoc
// @Summary      Welcome message
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[any]
// @Router       / [get]
func (h *HealthHandler) Welcome(c *gin.Context) {
	h.Success(c, "Welcome to ecommerce app", nil)
}

// Health godoc
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[HealthData]
// @Failure      503 {object} APIResponse[HealthData]
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	data := HealthData{
		Status:    "healthy",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Services:  make(map[string]string, len(h.checks)),
	}
	status := http.StatusOK
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			data.Services[name] = "unhealthy"
			data.Status = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		data.Services[name] = "healthy"
	}

	resp := dto.NewSuccessResponse("", data)
	resp.Success = status == http.StatusOK
	c.JSON(status, resp)
}
