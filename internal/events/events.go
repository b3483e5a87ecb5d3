package events

import (
	"time"

	"github.com/CodeX-266/storefront/internal/domain"
)

type OrderPlacedEvent struct {
	EventID     string            `json:"event_id"`
	OrderID     string            `json:"order_id"`
	UserID      string            `json:"user_id"`
	TotalAmount float64           `json:"total_amount"`
	Items       []domain.CartItem `json:"items"`
	Status      string            `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
	RequestID   string            `json:"request_id"`
}

type OrderCancelledEvent struct {
	EventID   string    `json:"event_id"`
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}
