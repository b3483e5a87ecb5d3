package domain

import "errors"

var (
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrValidation        = errors.New("missing required fields")
	ErrPaymentSession    = errors.New("payment session could not be created")
	ErrPaymentCancelled  = errors.New("payment cancelled")
	ErrOrderPersist      = errors.New("order could not be saved")
	ErrFetch             = errors.New("orders could not be fetched")
	ErrOrderNotFound     = errors.New("order not found")
	ErrNotCancellable    = errors.New("order is not cancellable")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOperationInFlight = errors.New("operation already in flight")
)
