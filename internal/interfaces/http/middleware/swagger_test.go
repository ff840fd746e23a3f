package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSwaggerProtection(t *testing.T) {
	denyAll := func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	}

	tests := []struct {
		name     string
		cfg      SwaggerConfig
		signIn   gin.HandlerFunc
		remoteIP string
		status   int
	}{
		{"disabled", SwaggerConfig{Enabled: false}, nil, "10.0.0.1", http.StatusNotFound},
		{"open", SwaggerConfig{Enabled: true}, nil, "10.0.0.1", http.StatusOK},
		{"ip allowed", SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.1"}}, nil, "10.0.0.1", http.StatusOK},
		{"ip denied", SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.1"}}, nil, "10.0.0.2", http.StatusForbidden},
		{"cidr allowed", SwaggerConfig{Enabled: true, AllowedIPs: []string{"192.168.0.0/16"}}, nil, "192.168.4.20", http.StatusOK},
		{"auth required", SwaggerConfig{Enabled: true, RequireAuth: true}, denyAll, "10.0.0.1", http.StatusUnauthorized},
		{"auth passes", SwaggerConfig{Enabled: true, RequireAuth: true}, func(c *gin.Context) {}, "10.0.0.1", http.StatusOK},
		{"ip checked before auth", SwaggerConfig{Enabled: true, RequireAuth: true, AllowedIPs: []string{"10.0.0.1"}}, denyAll, "10.9.9.9", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/swagger/*any", SwaggerProtection(tt.cfg, tt.signIn), okHandler)

			req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
			req.RemoteAddr = tt.remoteIP + ":5555"
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestIsIPAllowed(t *testing.T) {
	ips, nets := parseAllowList([]string{"127.0.0.1", " 10.1.0.0/16 ", "not-an-ip", "::1"})
	assert.Len(t, ips, 2)
	assert.Len(t, nets, 1)

	assert.True(t, isIPAllowed(net.ParseIP("127.0.0.1"), ips, nets))
	assert.True(t, isIPAllowed(net.ParseIP("::1"), ips, nets))
	assert.True(t, isIPAllowed(net.ParseIP("10.1.200.3"), ips, nets))
	assert.False(t, isIPAllowed(net.ParseIP("10.2.0.1"), ips, nets))
	assert.False(t, isIPAllowed(nil, ips, nets))
}
