package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	tradeapp "github.com/storefront/backend/internal/application/trade"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// OrderHandler serves order history and fulfilment
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// BuyerOrders godoc
// @Summary      The signed-in user's orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse[[]tradeapp.OrderResponse]
// @Failure      401 {object} ErrorResponse
// @Router       /auth/orders [get]
func (h *OrderHandler) BuyerOrders(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	orders, err := h.orderService.BuyerOrders(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "", orders)
}

// AllOrders godoc
// @Summary      All orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(50) maximum(200)
// @Success      200 {object} APIResponse[[]tradeapp.OrderResponse]
// @Failure      401 {object} ErrorResponse
// @Router       /auth/all-orders [get]
func (h *OrderHandler) AllOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(tradeapp.DefaultOrdersPageSize)))

	result, err := h.orderService.AllOrders(c.Request.Context(), page, pageSize)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, "", result.Items, result.Total, result.Page, result.PageSize)
}

// UpdateStatus godoc
// @Summary      Change an order's status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        orderId path string true "Order ID" format(uuid)
// @Param        request body tradeapp.UpdateStatusRequest true "New status"
// @Success      200 {object} APIResponse[tradeapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /auth/order-status/{orderId} [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		h.HandleDomainError(c, tradeapp.ErrOrderNotFound)
		return
	}
	var req tradeapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "", order)
}
