package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultCurrency = "INR"

// ProviderOrder is the handle issued by the hosted payment provider.
// Amount is in minor currency units, per the provider's convention.
type ProviderOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Gateway creates provider orders against the hosted payment gateway's
// REST API. Fund capture itself happens in the provider-hosted UI; the
// gateway only hands out order handles.
type Gateway struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
	logger    *zap.Logger
}

func NewGateway(baseURL, keyID, keySecret string, logger *zap.Logger) *Gateway {
	return &Gateway{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		client:    &http.Client{Timeout: 15 * time.Second},
		logger:    logger,
	}
}

type providerOrderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	PaymentCapture int    `json:"payment_capture"`
}

// CreateOrder registers an order with the provider. The amount arrives
// in major currency units and is converted to minor units here, e.g.
// rupees to paise.
func (g *Gateway) CreateOrder(ctx context.Context, amount float64, currency string) (ProviderOrder, error) {
	if currency == "" {
		currency = defaultCurrency
	}

	body, err := json.Marshal(providerOrderRequest{
		Amount:         int64(math.Round(amount * 100)),
		Currency:       currency,
		PaymentCapture: 1,
	})
	if err != nil {
		return ProviderOrder{}, fmt.Errorf("marshal provider order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return ProviderOrder{}, fmt.Errorf("build provider order request: %w", err)
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return ProviderOrder{}, fmt.Errorf("call payment provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.logger.Error("Payment provider rejected order",
			zap.Int("status", resp.StatusCode),
			zap.Float64("amount", amount),
			zap.String("currency", currency))
		return ProviderOrder{}, fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var order ProviderOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return ProviderOrder{}, fmt.Errorf("decode provider order: %w", err)
	}
	return order, nil
}
