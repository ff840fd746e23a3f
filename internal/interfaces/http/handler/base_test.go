package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func TestBaseHandler_HandleDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "validation",
			err:        shared.NewValidationError("Name is Required"),
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrCodeValidation,
			wantMsg:    "Name is Required",
		},
		{
			name:       "not found",
			err:        shared.NewNotFoundError("Category not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrCodeNotFound,
			wantMsg:    "Category not found",
		},
		{
			name:       "status override",
			err:        shared.NewDomainError(shared.CodeAlreadyExists, "Already Register please login").WithStatus(http.StatusOK),
			wantStatus: http.StatusOK,
			wantCode:   dto.ErrCodeAlreadyExists,
			wantMsg:    "Already Register please login",
		},
		{
			name:       "wrapped",
			err:        fmt.Errorf("checkout: %w", shared.ErrPaymentDeclined),
			wantStatus: http.StatusPaymentRequired,
			wantCode:   dto.ErrCodePaymentDeclined,
		},
		{
			name:       "invalid state",
			err:        shared.NewDomainError(shared.CodeInvalidState, "Order is closed"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   dto.ErrCodeInvalidState,
			wantMsg:    "Order is closed",
		},
		{
			name:       "unexpected",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrCodeInternal,
			wantMsg:    "An unexpected error occurred",
		},
	}

	h := &BaseHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(http.MethodGet, "/")
			c.Set(logger.GinRequestIDKey, "req-1")

			h.HandleDomainError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, "req-1", resp.Error.RequestID)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, resp.Message)
			}
		})
	}

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/")
		h.HandleDomainError(c, nil)
		assert.False(t, c.Writer.Written())
		assert.Empty(t, w.Body.String())
	})
}

func TestBaseHandler_RequestIDFallsBackToHeader(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/")
	c.Request.Header.Set(middleware.RequestIDHeader, "from-header")

	(&BaseHandler{}).BadRequest(c, "bad")

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "from-header", resp.Error.RequestID)
}

func TestBaseHandler_CurrentUser(t *testing.T) {
	h := &BaseHandler{}

	c, w := newTestContext(http.MethodGet, "/")
	_, ok := h.currentUser(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", decodeResponse(t, w).Message)

	id := uuid.New()
	c, _ = newTestContext(http.MethodGet, "/")
	c.Set(middleware.UserIDKey, id)
	got, ok := h.currentUser(c)
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
