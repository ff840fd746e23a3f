package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Welcome(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/api/v1/")
	NewHealthHandler("1.0.0", nil).Welcome(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "Welcome to ecommerce app", resp.Message)
}

func TestHealthHandler_Health(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("dial tcp: refused") }

	tests := []struct {
		name         string
		checks       map[string]HealthCheck
		wantStatus   int
		wantServices map[string]string
	}{
		{
			name:         "no dependencies",
			wantStatus:   http.StatusOK,
			wantServices: map[string]string{},
		},
		{
			name:         "all healthy",
			checks:       map[string]HealthCheck{"database": ok, "redis": ok},
			wantStatus:   http.StatusOK,
			wantServices: map[string]string{"database": "healthy", "redis": "healthy"},
		},
		{
			name:         "one dependency down",
			checks:       map[string]HealthCheck{"database": ok, "redis": down},
			wantStatus:   http.StatusServiceUnavailable,
			wantServices: map[string]string{"database": "healthy", "redis": "unhealthy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(http.MethodGet, "/api/v1/health")
			NewHealthHandler("1.0.0", tt.checks).Health(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.Equal(t, tt.wantStatus == http.StatusOK, resp.Success)

			data, ok := resp.Data.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "1.0.0", data["version"])
			services, _ := data["services"].(map[string]any)
			assert.Len(t, services, len(tt.wantServices))
			for name, state := range tt.wantServices {
				assert.Equal(t, state, services[name])
			}
		})
	}
}

func TestHealthHandler_HealthCheckHonorsDeadline(t *testing.T) {
	var hadDeadline bool
	check := func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return nil
	}
	c, _ := newTestContext(http.MethodGet, "/api/v1/health")
	NewHealthHandler("dev", map[string]HealthCheck{"database": check}).Health(c)
	assert.True(t, hadDeadline)
}
