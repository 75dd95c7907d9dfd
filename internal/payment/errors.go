package payment

import "errors"

// Sentinel kinds for payment simulator errors.
var (
	ErrUnknownMethod   = errors.New("unknown payment method")
	ErrNilCallback     = errors.New("success callback must not be nil")
	ErrSessionNotFound = errors.New("payment session not found")
)
