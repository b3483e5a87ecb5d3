package domain

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// StatusFilterAll matches every order regardless of status.
const StatusFilterAll = "all"

// forwardTimeline is the administrative progression of an order.
// Cancellation branches off pending and is not part of the timeline.
var forwardTimeline = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// ParseOrderStatus validates a raw status value against the closed set.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch s := OrderStatus(raw); s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return s, nil
	}
	return "", ErrInvalidStatus
}

// TimelineIndex returns the position of s in the forward timeline,
// or -1 when s is cancelled or unknown.
func (s OrderStatus) TimelineIndex() int {
	for i, st := range forwardTimeline {
		if st == s {
			return i
		}
	}
	return -1
}

// Reached reports whether the given timeline stage is at or before s.
// A cancelled order has reached no forward stage.
func (s OrderStatus) Reached(stage OrderStatus) bool {
	cur, target := s.TimelineIndex(), stage.TimelineIndex()
	if cur < 0 || target < 0 {
		return false
	}
	return target <= cur
}

// Cancellable reports whether the owning user may still cancel.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPending
}

// CartItem is a single line the visitor intends to purchase. Once an
// order is placed the item becomes a snapshot, decoupled from any later
// catalog change.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// Subtotal is the line contribution to the order total.
func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

// Complete reports whether every address field is populated.
func (a Address) Complete() bool {
	return a.Street != "" && a.City != "" && a.State != "" &&
		a.Pincode != "" && a.Country != ""
}

type Order struct {
	OrderID     string      `json:"order_id"`
	UserID      string      `json:"user_id"`
	Name        string      `json:"name"`
	Phone       string      `json:"phone"`
	Address     Address     `json:"address"`
	Items       []CartItem  `json:"items"`
	TotalAmount float64     `json:"total_amount"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// FilterOrders returns the orders matching status. StatusFilterAll
// returns the input unfiltered.
func FilterOrders(orders []Order, status string) []Order {
	if status == StatusFilterAll {
		return orders
	}
	filtered := make([]Order, 0, len(orders))
	for _, o := range orders {
		if string(o.Status) == status {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

type PlaceOrderRequest struct {
	Name    string     `json:"name" binding:"required"`
	Phone   string     `json:"phone" binding:"required"`
	Address Address    `json:"address" binding:"required"`
	Items   []CartItem `json:"items" binding:"required,min=1"`
	Total   float64    `json:"total"`
}

type PlaceOrderResponse struct {
	OrderID string      `json:"order_id"`
	Status  OrderStatus `json:"status"`
}

type CancelOrderResponse struct {
	OrderID string      `json:"order_id"`
	Status  OrderStatus `json:"status"`
}
