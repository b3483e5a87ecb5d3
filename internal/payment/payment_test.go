package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/CodeX-266/storefront/internal/domain"
)

func TestClient_CreateOrderHandle(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var req struct {
			Amount   float64 `json:"amount"`
			Currency string  `json:"currency"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 130.0, req.Amount)
		assert.Equal(t, "INR", req.Currency)

		json.NewEncoder(w).Encode(OrderHandle{ID: "order_abc", Amount: 13000, Currency: "INR"})
	}))
	defer srv.Close()

	handle, err := NewClient(srv.URL).CreateOrderHandle(context.Background(), 130, "INR")
	require.NoError(t, err)
	assert.Equal(t, "order_abc", handle.ID)
	assert.Equal(t, int64(13000), handle.Amount)
}

func TestClient_CreateOrderHandleBackendFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).CreateOrderHandle(context.Background(), 130, "INR")
	require.ErrorIs(t, err, domain.ErrPaymentSession)
}

func TestGateway_CreateOrderConvertsToMinorUnits(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_id", user)

		var req struct {
			Amount         int64  `json:"amount"`
			Currency       string `json:"currency"`
			PaymentCapture int    `json:"payment_capture"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(13000), req.Amount)
		assert.Equal(t, "INR", req.Currency)
		assert.Equal(t, 1, req.PaymentCapture)

		json.NewEncoder(w).Encode(ProviderOrder{ID: "order_abc", Amount: req.Amount, Currency: req.Currency})
	}))
	defer srv.Close()

	gw := NewGateway(srv.URL, "key_id", "key_secret", zap.NewNop())
	order, err := gw.CreateOrder(context.Background(), 130, "")
	require.NoError(t, err)
	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, "INR", order.Currency, "currency should default to INR")
}

func TestGateway_CreateOrderProviderFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	gw := NewGateway(srv.URL, "key_id", "key_secret", zap.NewNop())
	_, err := gw.CreateOrder(context.Background(), 130, "INR")
	require.Error(t, err)
}

func TestSession_ResolvesOnce(t *testing.T) {
	t.Parallel()

	s := NewSession(SessionConfig{Handle: OrderHandle{ID: "order_abc"}})
	s.Complete(CompletionInfo{PaymentID: "pay_1", OrderID: "order_abc", Signature: "sig"})
	s.Dismiss()
	s.Complete(CompletionInfo{PaymentID: "pay_2"})

	res := <-s.Result()
	assert.Equal(t, OutcomeCompleted, res.Outcome)
	assert.Equal(t, "pay_1", res.Payment.PaymentID)

	select {
	case <-s.Result():
		t.Fatal("session resolved more than once")
	default:
	}
}

func TestSession_DismissWins(t *testing.T) {
	t.Parallel()

	s := NewSession(SessionConfig{})
	s.Dismiss()

	res := <-s.Result()
	assert.Equal(t, OutcomeDismissed, res.Outcome)
}

func TestSession_PrefillNameFallback(t *testing.T) {
	t.Parallel()

	s := NewSession(SessionConfig{Prefill: Prefill{Email: "a@b.c"}})
	assert.Equal(t, "Guest", s.Config().Prefill.Name)

	named := NewSession(SessionConfig{Prefill: Prefill{Name: "Asha"}})
	assert.Equal(t, "Asha", named.Config().Prefill.Name)
}

func TestLoader_EnsureLoadsOnce(t *testing.T) {
	t.Parallel()

	var l Loader
	calls := 0
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Ensure(func() error {
				calls++
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, calls)
}
