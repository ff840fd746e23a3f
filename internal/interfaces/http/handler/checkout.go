package handler

import (
	"github.com/gin-gonic/gin"

	tradeapp "github.com/storefront/backend/internal/application/trade"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// IdempotencyKeyHeader deduplicates checkout retries
const IdempotencyKeyHeader = "Idempotency-Key"

// CheckoutHandler serves the payment client token and cart checkout
type CheckoutHandler struct {
	BaseHandler
	checkoutService *tradeapp.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *tradeapp.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// ClientToken godoc
// @Summary      Payment client token
// @Tags         checkout
// @Produce      json
// @Success      200 {object} APIResponse[ClientTokenData]
// @Failure      502 {object} ErrorResponse
// @Router       /product/braintree/token [get]
func (h *CheckoutHandler) ClientToken(c *gin.Context) {
	token, err := h.checkoutService.ClientToken(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "", ClientTokenData{ClientToken: token})
}

// Payment godoc
// @Summary      Pay for a cart
// @Description  Prices come from the catalog. Each cart entry is one unit.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key header string false "Deduplicates retries for 24h"
// @Param        request body tradeapp.CheckoutRequest true "Nonce and cart"
// @Success      200 {object} APIResponse[tradeapp.CheckoutResult]
// @Failure      400 {object} ErrorResponse
// @Failure      402 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /product/braintree/payment [post]
func (h *CheckoutHandler) Payment(c *gin.Context) {
	buyerID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req tradeapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	req.IdempotencyKey = c.GetHeader(IdempotencyKeyHeader)

	result, err := h.checkoutService.Checkout(c.Request.Context(), buyerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "", result)
}
