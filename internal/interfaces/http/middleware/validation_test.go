package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewForm struct {
	Email  string `json:"email" binding:"required,email"`
	Title  string `json:"title" binding:"required,min=3"`
	Rating int    `json:"rating" binding:"gte=1,lte=5"`
	Status string `json:"status" binding:"omitempty,oneof=draft published"`
}

func TestHandleValidationError(t *testing.T) {
	SetupValidator()

	r := gin.New()
	r.Use(RequestID())
	r.POST("/test", func(c *gin.Context) {
		var req reviewForm
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("field errors use json names", func(t *testing.T) {
		w := send(`{"email":"nope","title":"ab","rating":9,"status":"hidden"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeResponse(t, w)
		assert.Equal(t, "ERR_VALIDATION", resp.Error.Code)
		assert.NotEmpty(t, resp.Error.RequestID)
		require.Len(t, resp.Error.Details, 4)

		byField := map[string]string{}
		for _, d := range resp.Error.Details {
			byField[d.Field] = d.Message
		}
		assert.Equal(t, "email must be a valid email", byField["email"])
		assert.Equal(t, "title must be at least 3 characters", byField["title"])
		assert.Equal(t, "rating must be at most 5", byField["rating"])
		assert.Equal(t, "status must be one of: draft, published", byField["status"])
	})

	t.Run("first field error becomes the message", func(t *testing.T) {
		w := send(`{"title":"Great mug","rating":4}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "email is required", decodeResponse(t, w).Error.Message)
	})

	t.Run("malformed json", func(t *testing.T) {
		w := send(`{"email":`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_INVALID_JSON", decodeResponse(t, w).Error.Code)
	})

	t.Run("valid body", func(t *testing.T) {
		w := send(`{"email":"a@b.co","title":"Great mug","rating":5}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
