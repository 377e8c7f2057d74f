package services

import (
	"errors"
	"fmt"
)

// ErrCrossCafe rejects adding an item from a second cafe while the cart
// still holds lines from the first one.
var ErrCrossCafe = errors.New("cart already holds items from a different cafe")

// ErrLineNotFound is returned for quantity changes against a line that is
// not in the cart.
var ErrLineNotFound = errors.New("cart line not found")

// ErrGatewayUnavailable wraps transport failures talking to the payment
// gateway. The attempt is abandoned; the customer may retry with a fresh
// tx_ref.
var ErrGatewayUnavailable = errors.New("payment gateway unreachable")

// ErrInvalidGatewayResponse is returned when the gateway answers without a
// usable redirect URL.
var ErrInvalidGatewayResponse = errors.New("payment gateway response missing payment_url")

// ErrStaleAttempt marks a checkout result that arrived after the attempt was
// superseded or abandoned. The result is dropped without touching the cart.
var ErrStaleAttempt = errors.New("checkout attempt superseded")

// ValidationError blocks checkout progression before any network call. Only
// the first violated rule is reported.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// OrderSubmissionError means the payment was initiated but the pending order
// record could not be written. Surfaced to the caller; the cart stays intact.
type OrderSubmissionError struct {
	TxRef string
	Err   error
}

func (e *OrderSubmissionError) Error() string {
	return fmt.Sprintf("order submission failed for %s: %v", e.TxRef, e.Err)
}

func (e *OrderSubmissionError) Unwrap() error {
	return e.Err
}
