// Package payments wraps the hosted checkout provider behind a small
// interface so the booking controller can be exercised with a fake in tests.
package payments

import (
	"context"
	"errors"
)

const (
	SessionPaid   = "paid"
	SessionUnpaid = "unpaid"
)

// ErrSessionNotFound is returned by RetrieveCheckoutSession when the provider
// has no session under the given id.
var ErrSessionNotFound = errors.New("checkout session not found")

// CheckoutSession is the slice of the provider's session object this system
// cares about. Sessions are never persisted beyond the id stored on a booking.
type CheckoutSession struct {
	ID              string
	URL             string
	PaymentStatus   string
	PaymentIntentID string
	Metadata        map[string]string
}

// CreateSessionParams describes one checkout to collect payment for a booking.
// Amount is in minor units (paise).
type CreateSessionParams struct {
	Amount        int64
	Currency      string
	ProductName   string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

type Gateway interface {
	CreateCheckoutSession(ctx context.Context, params CreateSessionParams) (*CheckoutSession, error)
	RetrieveCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

// GatewayError carries the provider's own message so the handler can surface
// it with a 502.
type GatewayError struct {
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *GatewayError) Unwrap() error { return e.Err }
