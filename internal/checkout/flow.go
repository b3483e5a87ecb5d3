package checkout

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/CodeX-266/storefront/internal/auth"
	"github.com/CodeX-266/storefront/internal/cart"
	"github.com/CodeX-266/storefront/internal/domain"
	"github.com/CodeX-266/storefront/internal/payment"
	"github.com/CodeX-266/storefront/internal/service"
)

// HandleCreator requests a payment-provider order handle from the backend.
type HandleCreator interface {
	CreateOrderHandle(ctx context.Context, amount float64, currency string) (payment.OrderHandle, error)
}

// OrderPlacer persists a finalized order and returns its identifier.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, in service.PlaceOrderInput) (string, error)
}

// SessionOpener opens the provider-hosted payment UI for the prepared
// session. The embedding UI supplies it; the session resolves out of
// band via Complete or Dismiss.
type SessionOpener func(ctx context.Context, cfg payment.SessionConfig) (*payment.Session, error)

// Result is the outcome of a completed checkout.
type Result struct {
	OrderID string
	Payment payment.CompletionInfo
}

// Flow drives the terminal action of the checkout panel: an optional
// payment session followed by order placement. On success the cart is
// cleared and the step machine resets; on any failure both are left
// untouched so the user can retry from Confirm.
type Flow struct {
	machine  *Machine
	cart     *cart.Store
	identity auth.Provider
	payments HandleCreator
	open     SessionOpener
	placer   OrderPlacer
	currency string
	logger   *zap.Logger
}

// NewFlow wires the checkout flow. payments may be nil, in which case
// placement proceeds without a payment session.
func NewFlow(machine *Machine, cartStore *cart.Store, identity auth.Provider,
	payments HandleCreator, open SessionOpener, placer OrderPlacer,
	currency string, logger *zap.Logger) *Flow {
	return &Flow{
		machine:  machine,
		cart:     cartStore,
		identity: identity,
		payments: payments,
		open:     open,
		placer:   placer,
		currency: currency,
		logger:   logger,
	}
}

// Complete runs the terminal action from the Confirm step.
func (f *Flow) Complete(ctx context.Context) (Result, error) {
	if f.machine.Step() != StepConfirm {
		return Result{}, fmt.Errorf("%w: checkout is not at the confirm step", domain.ErrValidation)
	}

	release, err := f.machine.Begin()
	if err != nil {
		return Result{}, err
	}
	defer release()

	user := f.identity.CurrentUser()
	if user == nil {
		return Result{}, domain.ErrNotAuthenticated
	}

	shipping := f.machine.Shipping()
	if !shipping.Complete() {
		return Result{}, domain.ErrValidation
	}

	items := f.cart.Items()
	if len(items) == 0 {
		return Result{}, domain.ErrEmptyCart
	}
	total := f.cart.Total()

	var info payment.CompletionInfo
	if f.payments != nil {
		info, err = f.collectPayment(ctx, user, shipping, total)
		if err != nil {
			return Result{}, err
		}
	}

	orderID, err := f.placer.PlaceOrder(ctx, service.PlaceOrderInput{
		UserID:  user.UID,
		Name:    shipping.Name,
		Phone:   shipping.Phone,
		Address: shipping.Address,
		Items:   items,
		Total:   total,
	})
	if err != nil {
		if info.PaymentID != "" {
			// Money may have been captured without an order record. The
			// caller must surface this distinctly, not silently retry.
			f.logger.Error("Payment captured but order save failed",
				zap.String("payment_id", info.PaymentID),
				zap.String("user_id", user.UID),
				zap.Error(err))
			return Result{}, fmt.Errorf("payment %s captured but order not saved: %w", info.PaymentID, err)
		}
		return Result{}, err
	}

	f.cart.Clear()
	f.machine.Reset()

	f.logger.Info("Checkout completed",
		zap.String("order_id", orderID),
		zap.String("user_id", user.UID),
		zap.Float64("total", total))

	return Result{OrderID: orderID, Payment: info}, nil
}

func (f *Flow) collectPayment(ctx context.Context, user *auth.User, shipping Shipping, total float64) (payment.CompletionInfo, error) {
	handle, err := f.payments.CreateOrderHandle(ctx, total, f.currency)
	if err != nil {
		f.logger.Warn("Payment handle request failed", zap.Error(err))
		return payment.CompletionInfo{}, err
	}

	name := shipping.Name
	if name == "" {
		name = user.Name
	}
	session, err := f.open(ctx, payment.SessionConfig{
		Handle:      handle,
		Description: "Storefront order",
		Prefill: payment.Prefill{
			Name:  name,
			Email: user.Email,
			Phone: shipping.Phone,
		},
	})
	if err != nil {
		return payment.CompletionInfo{}, fmt.Errorf("%w: %v", domain.ErrPaymentSession, err)
	}

	select {
	case res := <-session.Result():
		if res.Outcome == payment.OutcomeDismissed {
			return payment.CompletionInfo{}, domain.ErrPaymentCancelled
		}
		return res.Payment, nil
	case <-ctx.Done():
		return payment.CompletionInfo{}, ctx.Err()
	}
}
