package models

import "time"

type CheckoutState string

const (
	CheckoutStateCart             CheckoutState = "CART"
	CheckoutStateValidating       CheckoutState = "VALIDATING"
	CheckoutStateInitiating       CheckoutState = "INITIATING"
	CheckoutStateSubmittingOrder  CheckoutState = "SUBMITTING_ORDER"
	CheckoutStateAwaitingRedirect CheckoutState = "AWAITING_GATEWAY_REDIRECT"
	CheckoutStateCompleted        CheckoutState = "COMPLETED"
	CheckoutStateFailed           CheckoutState = "FAILED"
)

func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutStateCompleted || s == CheckoutStateFailed
}

// String representation (for logging)
func (s CheckoutState) String() string {
	return string(s)
}

// NormalizedOrderRequest is the validated, immutable output of the order
// draft builder. All later checkout steps read from it, never from the
// live cart.
type NormalizedOrderRequest struct {
	CustomerName string       `json:"customer_name"`
	ParentName   *string      `json:"parent_name,omitempty"`
	Phone        string       `json:"phone"`
	CafeName     string       `json:"cafe_name"`
	Items        []CartLine   `json:"items"`
	Amount       float64      `json:"amount"`
	Grade        string       `json:"grade,omitempty"`
	ScheduledAt  *time.Time   `json:"scheduled_at,omitempty"`
	Delivery     DeliveryType `json:"delivery_type"`
}

// OrderedItems projects the snapshot into the gateway's item list shape.
func (r *NormalizedOrderRequest) OrderedItems() []OrderedItem {
	items := make([]OrderedItem, 0, len(r.Items))
	for _, l := range r.Items {
		items = append(items, OrderedItem{Name: l.Name, Quantity: l.Quantity})
	}
	return items
}
