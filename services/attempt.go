package services

import (
	"time"

	"github.com/savoraddis/cafe-backend/models"

	"github.com/google/uuid"
)

// Command is a side effect requested by a state transition. Transitions are
// pure: they take an immutable snapshot, return the next attempt state and
// the commands to perform. The checkout service executes them.
type Command interface{ isCommand() }

type InitiatePaymentCommand struct {
	Intent *models.PaymentIntent
	Draft  *models.NormalizedOrderRequest
}

type SubmitOrderCommand struct {
	Draft *models.NormalizedOrderRequest
	TxRef string
}

type ClearCartCommand struct {
	SessionID string
}

type OpenRedirectCommand struct {
	URL string
}

func (InitiatePaymentCommand) isCommand() {}
func (SubmitOrderCommand) isCommand()     {}
func (ClearCartCommand) isCommand()       {}
func (OpenRedirectCommand) isCommand()    {}

// Attempt is one checkout attempt. Its ID is the tx_ref once one is
// generated; a retry after failure is always a fresh attempt with a fresh
// tx_ref. Terminal states are never re-entered.
type Attempt struct {
	ID         string
	SessionID  string
	State      models.CheckoutState
	Payer      models.PayerDetails
	Draft      *models.NormalizedOrderRequest
	Intent     *models.PaymentIntent
	PaymentURL string
	OrderID    uuid.UUID
	Err        error
}

func NewAttempt(sessionID string, payer models.PayerDetails) Attempt {
	return Attempt{
		SessionID: sessionID,
		State:     models.CheckoutStateCart,
		Payer:     payer,
	}
}

// Validate runs the order draft builder against the cart. On success the
// cart is snapshotted into the payment intent; every later step reads from
// the snapshot, never from the live cart.
func (a Attempt) Validate(cart *models.Cart, cafe *models.CafeSettings, txRef, currency string, now time.Time) (Attempt, []Command) {
	if a.State != models.CheckoutStateCart {
		return a, nil
	}
	a.State = models.CheckoutStateValidating

	draft, verr := BuildDraft(a.Payer, cart, cafe, now)
	if verr != nil {
		a.State = models.CheckoutStateFailed
		a.Err = verr
		return a, nil
	}

	a.ID = txRef
	a.Draft = draft
	a.Intent = &models.PaymentIntent{
		TxRef:        txRef,
		Amount:       draft.Amount,
		Currency:     currency,
		Payer:        a.Payer,
		CartSnapshot: draft.Items,
		CreatedAt:    now,
	}
	a.State = models.CheckoutStateInitiating
	return a, []Command{InitiatePaymentCommand{Intent: a.Intent, Draft: draft}}
}

// OnGatewayResult consumes the payment initiation outcome. A failed
// initiation fails the attempt before any order record exists, so no orphaned
// pending orders are left behind for payments that never started.
func (a Attempt) OnGatewayResult(resp *PaymentInitResponse, err error) (Attempt, []Command) {
	if a.State != models.CheckoutStateInitiating {
		return a, nil
	}
	if err != nil {
		a.State = models.CheckoutStateFailed
		a.Err = err
		return a, nil
	}

	a.PaymentURL = resp.PaymentURL
	// The pending order record is written before the redirect is released, so
	// the later callback always has something to reconcile against.
	a.State = models.CheckoutStateSubmittingOrder
	return a, []Command{SubmitOrderCommand{Draft: a.Draft, TxRef: a.ID}}
}

// OnOrderSubmitted consumes the order submission outcome. Only once the
// pending order exists is the cart cleared and the redirect released.
func (a Attempt) OnOrderSubmitted(orderID uuid.UUID, err error) (Attempt, []Command) {
	if a.State != models.CheckoutStateSubmittingOrder {
		return a, nil
	}
	if err != nil {
		a.State = models.CheckoutStateFailed
		a.Err = &OrderSubmissionError{TxRef: a.ID, Err: err}
		return a, nil
	}

	a.OrderID = orderID
	a.State = models.CheckoutStateAwaitingRedirect
	return a, []Command{
		ClearCartCommand{SessionID: a.SessionID},
		OpenRedirectCommand{URL: a.PaymentURL},
	}
}

// OnPaymentResolved settles the attempt once reconciliation has flipped the
// order's payment status. This happens out of band, after the customer comes
// back from the gateway.
func (a Attempt) OnPaymentResolved(paymentStatus string) Attempt {
	if a.State != models.CheckoutStateAwaitingRedirect {
		return a
	}
	if paymentStatus == models.PaymentStatusPaid {
		a.State = models.CheckoutStateCompleted
	} else {
		a.State = models.CheckoutStateFailed
	}
	return a
}
