package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CodeX-266/storefront/internal/domain"
	"github.com/CodeX-266/storefront/internal/payment"
)

// OrderCreator is the slice of the payment gateway this handler needs.
type OrderCreator interface {
	CreateOrder(ctx context.Context, amount float64, currency string) (payment.ProviderOrder, error)
}

type PaymentHandler struct {
	gateway OrderCreator
	logger  *zap.Logger
}

func NewPaymentHandler(gateway OrderCreator, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		gateway: gateway,
		logger:  logger,
	}
}

type createPaymentOrderRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency"`
}

// CreateOrder is the order-handle endpoint: it takes an amount in major
// currency units and returns the provider order with the amount in the
// provider's minor units.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req createPaymentOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	order, err := h.gateway.CreateOrder(c.Request.Context(), req.Amount, req.Currency)
	if err != nil {
		h.logger.Error("Failed to create payment order",
			zap.Float64("amount", req.Amount),
			zap.Error(err))
		respondError(c, fmt.Errorf("%w: %v", domain.ErrPaymentSession, err))
		return
	}

	c.JSON(http.StatusOK, order)
}
