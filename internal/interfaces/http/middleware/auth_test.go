package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
)

type MockAdminChecker struct {
	mock.Mock
}

func (m *MockAdminChecker) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func newTestJWT() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-that-is-long-enough-123",
		Expiration: time.Hour,
		Issuer:     "storefront-test",
	})
}

func TestRequireSignIn(t *testing.T) {
	jwt := newTestJWT()
	blacklist := auth.NewInMemoryTokenBlacklist()
	userID := uuid.New()

	token, claims, err := jwt.GenerateToken(userID, 0)
	require.NoError(t, err)
	revokedToken, revokedClaims, err := jwt.GenerateToken(userID, 0)
	require.NoError(t, err)
	require.NoError(t, blacklist.Revoke(context.Background(), revokedClaims.ID, time.Hour))

	forged, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, auth.Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "not-a-user-id",
	}).SignedString([]byte("test-secret-key-that-is-long-enough-123"))
	require.NoError(t, err)
	nilSubject, _, err := jwt.GenerateToken(uuid.Nil, 0)
	require.NoError(t, err)

	expired := auth.NewJWTService(config.JWTConfig{Secret: "test-secret-key-that-is-long-enough-123", Expiration: -time.Minute})
	expiredToken, _, err := expired.GenerateToken(userID, 0)
	require.NoError(t, err)

	r := gin.New()
	r.Use(RequestID(), RequireSignIn(jwt, blacklist, zap.NewNop()))
	r.GET("/me", func(c *gin.Context) {
		id, ok := GetUserID(c)
		require.True(t, ok)
		require.NotNil(t, GetClaims(c))
		c.String(http.StatusOK, id.String())
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"raw token", token, http.StatusOK},
		{"bearer token", "Bearer " + token, http.StatusOK},
		{"lowercase bearer", "bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"expired", expiredToken, http.StatusUnauthorized},
		{"revoked", revokedToken, http.StatusUnauthorized},
		{"subject is not a uuid", forged, http.StatusUnauthorized},
		{"nil subject", nilSubject, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, claims.UserID, w.Body.String())
				return
			}
			resp := decodeResponse(t, w)
			assert.Equal(t, "ERR_UNAUTHORIZED", resp.Error.Code)
			assert.Equal(t, "Invalid token", resp.Error.Message)
		})
	}
}

type failingBlacklist struct{}

func (failingBlacklist) Revoke(context.Context, string, time.Duration) error { return nil }
func (failingBlacklist) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func TestRequireSignIn_BlacklistOutage(t *testing.T) {
	jwt := newTestJWT()
	token, _, err := jwt.GenerateToken(uuid.New(), 0)
	require.NoError(t, err)

	r := gin.New()
	r.Use(RequireSignIn(jwt, failingBlacklist{}, zap.NewNop()))
	r.GET("/me", okHandler)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	jwt := newTestJWT()
	adminID, customerID, brokenID := uuid.New(), uuid.New(), uuid.New()

	checker := new(MockAdminChecker)
	checker.On("IsAdmin", mock.Anything, adminID).Return(true, nil)
	checker.On("IsAdmin", mock.Anything, customerID).Return(false, nil)
	checker.On("IsAdmin", mock.Anything, brokenID).Return(false, errors.New("db down"))

	r := gin.New()
	r.Use(RequireSignIn(jwt, nil, zap.NewNop()), RequireAdmin(checker, zap.NewNop()))
	r.GET("/admin", okHandler)

	tests := []struct {
		name   string
		userID uuid.UUID
		status int
	}{
		{"admin", adminID, http.StatusOK},
		{"customer", customerID, http.StatusUnauthorized},
		{"lookup failure", brokenID, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A role claim of 1 in the token must not matter
			token, _, err := jwt.GenerateToken(tt.userID, 1)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tt.status, w.Code)
			if tt.status != http.StatusOK {
				assert.Equal(t, "UnAuthorized Access", decodeResponse(t, w).Error.Message)
			}
		})
	}
	checker.AssertExpectations(t)
}

func TestRequireAdmin_WithoutSignIn(t *testing.T) {
	r := gin.New()
	r.Use(RequireAdmin(new(MockAdminChecker), zap.NewNop()))
	r.GET("/admin", okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
