package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/savoraddis/cafe-backend/models"
	"github.com/savoraddis/cafe-backend/repository"

	"go.uber.org/zap"
)

// OrderEventPublisher fans out payment transitions, best-effort.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event models.OrderEvent) error
}

// ErrUnrecognizedStatus is returned when the gateway reports a status the
// reconciler does not understand. The order stays pending.
var ErrUnrecognizedStatus = errors.New("unrecognized gateway status")

// VerifyService is the sole writer of payment status transitions. Orders
// flip from pending to paid or failed here and nowhere else; the client UI
// never gets to be optimistic about payment.
type VerifyService struct {
	orders    repository.OrderRepository
	gateway   GatewayClient
	publisher OrderEventPublisher
	logger    *zap.Logger
}

func NewVerifyService(orders repository.OrderRepository, gateway GatewayClient, publisher OrderEventPublisher, logger *zap.Logger) *VerifyService {
	return &VerifyService{
		orders:    orders,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
	}
}

// Reconcile resolves a payment callback. The status carried on the redirect
// is treated as a hint only; the gateway is asked for the authoritative
// answer before anything is written. Replayed callbacks are no-ops.
func (s *VerifyService) Reconcile(ctx context.Context, txRef string) (*models.Order, error) {
	status, err := s.gateway.VerifyTransaction(ctx, txRef)
	if err != nil {
		// Order stays pending; an external reconciliation sweep or a callback
		// retry resolves it later.
		return nil, fmt.Errorf("verify %s: %w", txRef, err)
	}

	var target string
	switch status {
	case "success", "succeeded", "paid":
		target = models.PaymentStatusPaid
	case "failed", "cancelled", "expired":
		target = models.PaymentStatusFailed
	default:
		s.logger.Warn("unrecognized gateway status, leaving order pending",
			zap.String("tx_ref", txRef),
			zap.String("status", status),
		)
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedStatus, status)
	}

	order, err := s.orders.UpdatePaymentStatus(ctx, txRef, target)
	if errors.Is(err, repository.ErrAlreadyFinal) {
		s.logger.Info("skipping duplicate payment callback",
			zap.String("tx_ref", txRef),
			zap.String("payment_status", order.PaymentStatus),
		)
		return order, nil
	}
	if err != nil {
		return nil, err
	}

	event := models.OrderEvent{
		Event:     "order." + target,
		OrderID:   order.ID.String(),
		TxRef:     order.TxRef,
		CafeName:  order.CafeName,
		Amount:    order.Amount,
		Timestamp: time.Now().UTC(),
	}
	if s.publisher != nil {
		if pubErr := s.publisher.Publish(ctx, event); pubErr != nil {
			// best-effort; reconciliation already succeeded
			s.logger.Warn("failed to publish order event",
				zap.String("tx_ref", txRef),
				zap.Error(pubErr),
			)
		}
	}

	s.logger.Info("payment reconciled",
		zap.String("tx_ref", txRef),
		zap.String("payment_status", target),
	)
	return order, nil
}
