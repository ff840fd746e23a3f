package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// Gin context keys set by RequireSignIn
const (
	ClaimsKey = "auth_claims"
	UserIDKey = "auth_user_id"
)

const bearerPrefix = "Bearer "

// AdminChecker reports whether a user currently holds the admin role
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

// RequireSignIn authenticates the Authorization header. Both a raw token and
// "Bearer <token>" are accepted. blacklist may be nil.
func RequireSignIn(jwt *auth.JWTService, blacklist auth.TokenBlacklist, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader("Authorization"))
		if len(token) > len(bearerPrefix) && strings.EqualFold(token[:len(bearerPrefix)], bearerPrefix) {
			token = strings.TrimSpace(token[len(bearerPrefix):])
		}
		if token == "" {
			unauthorized(c, "Invalid token")
			return
		}

		claims, err := jwt.ValidateToken(token)
		if err != nil {
			log.Debug("Token rejected", zap.Error(err), zap.String("path", c.Request.URL.Path))
			unauthorized(c, "Invalid token")
			return
		}

		if blacklist != nil && claims.ID != "" {
			revoked, err := blacklist.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// Blacklist outages do not lock every user out
				log.Error("Failed to check token blacklist", zap.String("jti", claims.ID), zap.Error(err))
			} else if revoked {
				unauthorized(c, "Invalid token")
				return
			}
		}

		userID, err := claims.UserUUID()
		if err != nil || userID == uuid.Nil {
			log.Debug("Token subject is not a user id", zap.String("path", c.Request.URL.Path))
			unauthorized(c, "Invalid token")
			return
		}
		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, userID)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAdmin must run after RequireSignIn. The role is looked up on every
// request so a demotion applies to tokens already issued.
func RequireAdmin(users AdminChecker, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			unauthorized(c, "UnAuthorized Access")
			return
		}
		admin, err := users.IsAdmin(c.Request.Context(), userID)
		if err != nil {
			log.Warn("Admin check failed", zap.String("user_id", userID.String()), zap.Error(err))
			unauthorized(c, "UnAuthorized Access")
			return
		}
		if !admin {
			unauthorized(c, "UnAuthorized Access")
			return
		}
		c.Next()
	}
}

// GetClaims returns the claims stored by RequireSignIn
func GetClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetUserID returns the signed-in user's id
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	if v, ok := c.Get(UserIDKey); ok {
		if id, ok := v.(uuid.UUID); ok && id != uuid.Nil {
			return id, true
		}
	}
	return uuid.Nil, false
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeUnauthorized, message, requestID(c)))
}
