package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/storefront/backend/internal/infrastructure/telemetry"
)

// Profiling tags CPU samples taken while handling a request with its route
// and method. A nil or disabled profiler leaves requests untouched.
func Profiling(profiler *telemetry.Profiler) gin.HandlerFunc {
	if profiler == nil || !profiler.IsEnabled() {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		labels := map[string]string{
			telemetry.ProfilingLabelRoute:  routePattern(c),
			telemetry.ProfilingLabelMethod: c.Request.Method,
		}
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
