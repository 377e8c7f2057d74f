package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/savoraddis/cafe-backend/models"
	"github.com/savoraddis/cafe-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutResult is what a successful checkout hands back to the client: the
// redirect URL plus the identifiers needed for later reconciliation.
type CheckoutResult struct {
	State      models.CheckoutState `json:"state"`
	TxRef      string               `json:"tx_ref"`
	OrderID    uuid.UUID            `json:"order_id"`
	PaymentURL string               `json:"payment_url"`
}

// CheckoutService sequences cart snapshot, validation, payment initiation
// and order submission, and owns the terminal success/failure state of each
// attempt.
type CheckoutService struct {
	carts    *CartService
	menus    repository.MenuRepository
	gateway  GatewayClient
	orders   repository.OrderRepository
	logger   *zap.Logger
	currency string

	callbackBaseURL string
	returnURL       string

	mu     sync.Mutex
	active map[string]string // session id -> live attempt id (tx_ref)
}

func NewCheckoutService(
	carts *CartService,
	menus repository.MenuRepository,
	gateway GatewayClient,
	orders repository.OrderRepository,
	logger *zap.Logger,
	currency, callbackBaseURL, returnURL string,
) *CheckoutService {
	return &CheckoutService{
		carts:           carts,
		menus:           menus,
		gateway:         gateway,
		orders:          orders,
		logger:          logger,
		currency:        currency,
		callbackBaseURL: callbackBaseURL,
		returnURL:       returnURL,
		active:          make(map[string]string),
	}
}

// Checkout drives one attempt to its terminal state. On success the pending
// order is already recorded under the returned tx_ref and the cart has been
// cleared; the caller only has to follow the payment URL.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, payer models.PayerDetails) (*CheckoutResult, error) {
	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var cafe *models.CafeSettings
	if len(cart.Lines) > 0 {
		cafe, err = s.menus.GetCafeSettings(ctx, cart.CafeID())
		if err != nil {
			// Settings lookup failing must not block every checkout for the
			// cafe; the grade rule is skipped for this attempt.
			s.logger.Warn("cafe settings lookup failed",
				zap.String("cafe", cart.CafeID()),
				zap.Error(err),
			)
			cafe = nil
		}
	}

	attempt := NewAttempt(sessionID, payer)
	attempt, cmds := attempt.Validate(cart, cafe, NewTxRef(), s.currency, time.Now())
	if attempt.State == models.CheckoutStateFailed {
		return nil, attempt.Err
	}

	s.setActive(sessionID, attempt.ID)

	for len(cmds) > 0 {
		cmd := cmds[0]
		cmds = cmds[1:]

		var next []Command
		switch c := cmd.(type) {
		case InitiatePaymentCommand:
			resp, gwErr := s.gateway.InitiatePayment(ctx, s.wireRequest(c.Intent, c.Draft))
			// A response for an abandoned or superseded attempt is dropped
			// without touching cart or orders.
			if !s.isActive(sessionID, attempt.ID) {
				s.logger.Info("dropping stale gateway result",
					zap.String("tx_ref", attempt.ID),
				)
				return nil, ErrStaleAttempt
			}
			attempt, next = attempt.OnGatewayResult(resp, gwErr)

		case SubmitOrderCommand:
			order := buildOrder(c.Draft, c.TxRef, s.currency)
			subErr := s.orders.Create(ctx, order)
			attempt, next = attempt.OnOrderSubmitted(order.ID, subErr)

		case ClearCartCommand:
			// The pending order exists at this point; a failed clear only
			// leaves a stale cart behind, never a lost order.
			if clearErr := s.carts.Clear(ctx, c.SessionID); clearErr != nil {
				s.logger.Warn("failed to clear cart after order submission",
					zap.String("session_id", c.SessionID),
					zap.Error(clearErr),
				)
			}

		case OpenRedirectCommand:
			// Nothing to do server-side; the URL travels back to the client.
		}

		cmds = append(cmds, next...)
	}

	if attempt.State == models.CheckoutStateFailed {
		s.logger.Warn("checkout failed",
			zap.String("session_id", sessionID),
			zap.String("tx_ref", attempt.ID),
			zap.Error(attempt.Err),
		)
		return nil, attempt.Err
	}

	s.logger.Info("checkout awaiting gateway redirect",
		zap.String("session_id", sessionID),
		zap.String("tx_ref", attempt.ID),
		zap.String("order_id", attempt.OrderID.String()),
		zap.Float64("amount", attempt.Intent.Amount),
	)

	return &CheckoutResult{
		State:      attempt.State,
		TxRef:      attempt.ID,
		OrderID:    attempt.OrderID,
		PaymentURL: attempt.PaymentURL,
	}, nil
}

// Abandon marks the session's in-flight attempt as superseded. A late
// gateway result for it will be ignored and the cart left alone.
func (s *CheckoutService) Abandon(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, sessionID)
}

func (s *CheckoutService) setActive(sessionID, attemptID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[sessionID] = attemptID
}

func (s *CheckoutService) isActive(sessionID, attemptID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[sessionID] == attemptID
}

// wireRequest shapes the gateway payload from the snapshot.
func (s *CheckoutService) wireRequest(intent *models.PaymentIntent, draft *models.NormalizedOrderRequest) *PaymentRequest {
	title := fmt.Sprintf("Order %d", len(draft.Items))
	if len(title) > 16 {
		title = title[:16]
	}

	return &PaymentRequest{
		Amount:      intent.Amount,
		Currency:    intent.Currency,
		FirstName:   draft.CustomerName,
		ParentName:  draft.ParentName,
		TxRef:       intent.TxRef,
		CallbackURL: fmt.Sprintf("%s/api/payment/verify?tx_ref=%s", s.callbackBaseURL, intent.TxRef),
		ReturnURL:   s.returnURL,
		Customization: PaymentCustomization{
			Title:       title,
			Description: fmt.Sprintf("Payment for %d items", len(draft.Items)),
		},
		PhoneNumber: draft.Phone,
		CafeName:    draft.CafeName,
		ItemOrdered: draft.OrderedItems(),
		OrderDate:   draft.ScheduledAt,
		Grade:       draft.Grade,
	}
}

func buildOrder(draft *models.NormalizedOrderRequest, txRef, currency string) *models.Order {
	items := make([]models.OrderItem, 0, len(draft.Items))
	for _, l := range draft.Items {
		items = append(items, models.OrderItem{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}

	return &models.Order{
		ID:            uuid.New(),
		CustomerName:  draft.CustomerName,
		ParentName:    draft.ParentName,
		Phone:         draft.Phone,
		CafeName:      draft.CafeName,
		TxRef:         txRef,
		Amount:        draft.Amount,
		Currency:      currency,
		PaymentStatus: models.PaymentStatusPending,
		OrderStatus:   "Pending",
		Delivered:     false,
		Grade:         draft.Grade,
		ScheduledAt:   draft.ScheduledAt,
		Items:         items,
	}
}
