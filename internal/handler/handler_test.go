package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/CodeX-266/storefront/internal/catalog"
	"github.com/CodeX-266/storefront/internal/clock"
	"github.com/CodeX-266/storefront/internal/domain"
	"github.com/CodeX-266/storefront/internal/events"
	"github.com/CodeX-266/storefront/internal/payment"
	"github.com/CodeX-266/storefront/internal/service"
	"github.com/CodeX-266/storefront/pkg/middleware"
)

type stubRepo struct {
	orders   map[string]*domain.Order
	queryErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{orders: make(map[string]*domain.Order)}
}

func (s *stubRepo) CreateOrder(_ context.Context, order *domain.Order) error {
	cp := *order
	s.orders[order.OrderID] = &cp
	return nil
}

func (s *stubRepo) GetOrder(_ context.Context, orderID string) (*domain.Order, error) {
	order, ok := s.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *order
	return &cp, nil
}

func (s *stubRepo) QueryOrdersByUser(_ context.Context, userID string) ([]domain.Order, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	var out []domain.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *stubRepo) UpdateOrderStatus(_ context.Context, orderID string, from, to domain.OrderStatus) error {
	order, ok := s.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if order.Status != from {
		return domain.ErrNotCancellable
	}
	order.Status = to
	return nil
}

type stubPublisher struct{}

func (stubPublisher) PublishOrderPlaced(events.OrderPlacedEvent) error { return nil }

func (stubPublisher) PublishOrderCancelled(events.OrderCancelledEvent) error { return nil }

type stubGateway struct {
	order payment.ProviderOrder
	err   error
}

func (s *stubGateway) CreateOrder(_ context.Context, amount float64, currency string) (payment.ProviderOrder, error) {
	if s.err != nil {
		return payment.ProviderOrder{}, s.err
	}
	return s.order, nil
}

func newTestRouter(repo *stubRepo, gateway OrderCreator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	orderService := service.NewOrderService(repo, stubPublisher{}, clock.NewFixed(now), logger)
	orderHandler := NewOrderHandler(orderService, logger)
	paymentHandler := NewPaymentHandler(gateway, logger)
	catalogHandler := NewCatalogHandler(catalog.New())

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Identity())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", catalogHandler.ListProducts)
		v1.GET("/products/:id", catalogHandler.GetProduct)
		v1.POST("/payment/orders", paymentHandler.CreateOrder)
		v1.POST("/orders", orderHandler.PlaceOrder)
		v1.GET("/orders", orderHandler.ListOrders)
		v1.GET("/orders/:id", orderHandler.GetOrder)
		v1.POST("/orders/:id/cancel", orderHandler.CancelOrder)
	}
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func placeOrderBody() domain.PlaceOrderRequest {
	return domain.PlaceOrderRequest{
		Name:  "Asha",
		Phone: "9999999999",
		Address: domain.Address{
			Street: "12 MG Road", City: "Bengaluru", State: "Karnataka",
			Pincode: "560001", Country: "India",
		},
		Items: []domain.CartItem{
			{ProductID: "a", Name: "A", Price: 50, Quantity: 2},
			{ProductID: "b", Name: "B", Price: 30, Quantity: 1},
		},
		Total: 130,
	}
}

func TestPlaceOrderEndpoint(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	router := newTestRouter(repo, &stubGateway{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/orders", "u1", placeOrderBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var resp domain.PlaceOrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.OrderID)
	assert.Equal(t, domain.OrderStatusPending, resp.Status)

	stored := repo.orders[resp.OrderID]
	require.NotNil(t, stored)
	assert.Equal(t, 130.0, stored.TotalAmount)
}

func TestPlaceOrderEndpoint_Unauthenticated(t *testing.T) {
	t.Parallel()

	router := newTestRouter(newStubRepo(), &stubGateway{})
	w := doJSON(t, router, http.MethodPost, "/api/v1/orders", "", placeOrderBody())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListOrdersEndpoint_FilterAndErrors(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	repo.orders["o1"] = &domain.Order{OrderID: "o1", UserID: "u1", Status: domain.OrderStatusPending}
	repo.orders["o2"] = &domain.Order{OrderID: "o2", UserID: "u1", Status: domain.OrderStatusShipped}
	router := newTestRouter(repo, &stubGateway{})

	w := doJSON(t, router, http.MethodGet, "/api/v1/orders?status=pending", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Orders []domain.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, "o1", resp.Orders[0].OrderID)

	w = doJSON(t, router, http.MethodGet, "/api/v1/orders?status=bogus", "u1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	repo.queryErr = errors.New("connection refused")
	w = doJSON(t, router, http.MethodGet, "/api/v1/orders", "u1", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCancelOrderEndpoint(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	repo.orders["o1"] = &domain.Order{OrderID: "o1", UserID: "u1", Status: domain.OrderStatusPending}
	repo.orders["o2"] = &domain.Order{OrderID: "o2", UserID: "u1", Status: domain.OrderStatusConfirmed}
	repo.orders["o3"] = &domain.Order{OrderID: "o3", UserID: "u2", Status: domain.OrderStatusPending}
	router := newTestRouter(repo, &stubGateway{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/orders/o1/cancel", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.OrderStatusCancelled, repo.orders["o1"].Status)

	// Past pending the business rule rejects cancellation.
	w = doJSON(t, router, http.MethodPost, "/api/v1/orders/o2/cancel", "u1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Another user's order looks like it does not exist.
	w = doJSON(t, router, http.MethodPost, "/api/v1/orders/o3/cancel", "u1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOrderEndpoint(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	repo.orders["o1"] = &domain.Order{OrderID: "o1", UserID: "u1", Status: domain.OrderStatusShipped}
	router := newTestRouter(repo, &stubGateway{})

	w := doJSON(t, router, http.MethodGet, "/api/v1/orders/o1", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var order domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, domain.OrderStatusShipped, order.Status)

	w = doJSON(t, router, http.MethodGet, "/api/v1/orders/missing", "u1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentOrderEndpoint(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{order: payment.ProviderOrder{ID: "order_abc", Amount: 13000, Currency: "INR"}}
	router := newTestRouter(newStubRepo(), gw)

	w := doJSON(t, router, http.MethodPost, "/api/v1/payment/orders", "", map[string]any{
		"amount": 130, "currency": "INR",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var order payment.ProviderOrder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, int64(13000), order.Amount)

	gw.err = errors.New("provider unavailable")
	w = doJSON(t, router, http.MethodPost, "/api/v1/payment/orders", "", map[string]any{
		"amount": 130,
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/payment/orders", "", map[string]any{
		"amount": 0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	t.Parallel()

	router := newTestRouter(newStubRepo(), &stubGateway{})

	w := doJSON(t, router, http.MethodGet, "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Products []catalog.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Products, 6)

	w = doJSON(t, router, http.MethodGet, "/api/v1/products/1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/products/99", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
