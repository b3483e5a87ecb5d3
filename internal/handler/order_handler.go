package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CodeX-266/storefront/internal/domain"
	"github.com/CodeX-266/storefront/internal/service"
	"github.com/CodeX-266/storefront/pkg/middleware"
)

type OrderHandler struct {
	orderService *service.OrderService
	logger       *zap.Logger
}

func NewOrderHandler(orderService *service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req domain.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid place order request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	requestID := c.GetString(middleware.RequestIDKey)
	userID := c.GetString(middleware.UserIDKey)

	orderID, err := h.orderService.PlaceOrder(c.Request.Context(), service.PlaceOrderInput{
		UserID:    userID,
		Name:      req.Name,
		Phone:     req.Phone,
		Address:   req.Address,
		Items:     req.Items,
		Total:     req.Total,
		RequestID: requestID,
	})
	if err != nil {
		h.logger.Error("Failed to place order",
			zap.String("request_id", requestID),
			zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, domain.PlaceOrderResponse{
		OrderID: orderID,
		Status:  domain.OrderStatusPending,
	})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		respondError(c, domain.ErrNotAuthenticated)
		return
	}

	filter := c.DefaultQuery("status", domain.StatusFilterAll)
	if filter != domain.StatusFilterAll {
		if _, err := domain.ParseOrderStatus(filter); err != nil {
			respondError(c, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, filter))
			return
		}
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": domain.FilterOrders(orders, filter),
	})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		respondError(c, domain.ErrNotAuthenticated)
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		respondError(c, domain.ErrNotAuthenticated)
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, domain.CancelOrderResponse{
		OrderID: order.OrderID,
		Status:  order.Status,
	})
}
