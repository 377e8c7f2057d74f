package services

import (
	"time"

	"github.com/savoraddis/cafe-backend/models"
)

// BuildDraft validates payer details against the cart and produces the
// normalized order request all later checkout steps work from. Validation
// fails fast: the first violated rule is returned, nothing is aggregated.
func BuildDraft(payer models.PayerDetails, cart *models.Cart, cafe *models.CafeSettings, now time.Time) (*models.NormalizedOrderRequest, *ValidationError) {
	if cart == nil || len(cart.Lines) == 0 {
		return nil, &ValidationError{Field: "cart", Reason: "cart is empty"}
	}
	if payer.Phone == "" {
		return nil, &ValidationError{Field: "phone", Reason: "phone number is required"}
	}
	if payer.StudentName == "" {
		return nil, &ValidationError{Field: "studentName", Reason: "student name is required"}
	}
	if payer.PayerRole == models.PayerRoleParent && payer.ParentName == "" {
		return nil, &ValidationError{Field: "parentName", Reason: "parent name is required when a parent pays"}
	}
	if payer.Delivery == models.DeliveryScheduled {
		if payer.ScheduledAt == nil {
			return nil, &ValidationError{Field: "scheduledAt", Reason: "scheduled delivery needs a date and time"}
		}
		if !payer.ScheduledAt.After(now) {
			return nil, &ValidationError{Field: "scheduledAt", Reason: "scheduled delivery must be in the future"}
		}
	}
	if cafe != nil && cafe.RequiresGrade && payer.Grade == "" {
		return nil, &ValidationError{Field: "grade", Reason: "grade is required for this cafe"}
	}

	var parentName *string
	if payer.PayerRole == models.PayerRoleParent {
		parentName = &payer.ParentName
	}

	req := &models.NormalizedOrderRequest{
		CustomerName: payer.Name(),
		ParentName:   parentName,
		Phone:        payer.Phone,
		CafeName:     cart.CafeID(),
		Items:        cart.Snapshot(),
		Amount:       cart.Total(),
		Grade:        payer.Grade,
		Delivery:     payer.Delivery,
		ScheduledAt:  payer.ScheduledAt,
	}
	return req, nil
}
