package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/CodeX-266/storefront/internal/domain"
)

// OrderHandle is the payment-provider order reference returned by the
// backend order-handle endpoint. Amount is in minor units.
type OrderHandle struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Client is the client-side adapter that asks the backend for a
// provider order handle before opening the hosted payment UI.
type Client struct {
	endpoint string
	client   *http.Client
}

func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type orderHandleRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// CreateOrderHandle requests a provider order handle for the given
// amount in major currency units. A non-2xx backend response fails with
// domain.ErrPaymentSession and the flow must not open the provider UI.
func (c *Client) CreateOrderHandle(ctx context.Context, amount float64, currency string) (OrderHandle, error) {
	body, err := json.Marshal(orderHandleRequest{Amount: amount, Currency: currency})
	if err != nil {
		return OrderHandle{}, fmt.Errorf("marshal order handle request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return OrderHandle{}, fmt.Errorf("build order handle request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return OrderHandle{}, fmt.Errorf("%w: %v", domain.ErrPaymentSession, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return OrderHandle{}, fmt.Errorf("%w: backend returned status %d", domain.ErrPaymentSession, resp.StatusCode)
	}

	var handle OrderHandle
	if err := json.NewDecoder(resp.Body).Decode(&handle); err != nil {
		return OrderHandle{}, fmt.Errorf("%w: %v", domain.ErrPaymentSession, err)
	}
	return handle, nil
}
