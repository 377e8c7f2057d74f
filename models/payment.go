package models

import "time"

type PayerRole string

const (
	PayerRoleStudent PayerRole = "student"
	PayerRoleParent  PayerRole = "parent"
)

type DeliveryType string

const (
	DeliveryNow       DeliveryType = "now"
	DeliveryScheduled DeliveryType = "scheduled"
)

// PayerDetails lives only for the duration of one checkout session.
type PayerDetails struct {
	PayerRole   PayerRole    `json:"payer_role" binding:"required"`
	StudentName string       `json:"student_name"`
	ParentName  string       `json:"parent_name"`
	Phone       string       `json:"phone"`
	Delivery    DeliveryType `json:"delivery_type"`
	ScheduledAt *time.Time   `json:"scheduled_at,omitempty"`
	Grade       string       `json:"grade,omitempty"`
}

// Name returns the name the order is placed under, by payer role.
func (p PayerDetails) Name() string {
	if p.PayerRole == PayerRoleParent {
		return p.ParentName
	}
	return p.StudentName
}

// PaymentIntent is built immediately before the gateway call. The txRef is
// the correlation key shared by the gateway request, the order record and
// the later callback.
type PaymentIntent struct {
	TxRef        string       `json:"tx_ref"`
	Amount       float64      `json:"amount"`
	Currency     string       `json:"currency"`
	Payer        PayerDetails `json:"payer"`
	CartSnapshot []CartLine   `json:"cart_snapshot"`
	CreatedAt    time.Time    `json:"created_at"`
}

type OrderedItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
