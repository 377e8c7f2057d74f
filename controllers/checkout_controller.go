package controllers

import (
	"errors"
	"net/http"

	"github.com/savoraddis/cafe-backend/logger"
	"github.com/savoraddis/cafe-backend/middleware"
	"github.com/savoraddis/cafe-backend/models"
	"github.com/savoraddis/cafe-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CheckoutController struct {
	Checkout *services.CheckoutService
}

func NewCheckoutController(checkout *services.CheckoutService) *CheckoutController {
	return &CheckoutController{Checkout: checkout}
}

// StartCheckout validates the cart, initiates the payment and records the
// pending order, then hands the redirect URL back to the client.
func (cc *CheckoutController) StartCheckout(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var payer models.PayerDetails
	if err := c.ShouldBindJSON(&payer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	result, err := cc.Checkout.Checkout(c.Request.Context(), sessionID, payer)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Reason, "field": verr.Field})
			return
		}
		if errors.Is(err, services.ErrGatewayUnavailable) || errors.Is(err, services.ErrInvalidGatewayResponse) {
			logger.Error(c, "payment initiation failed", err, zap.String("session_id", sessionID))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to initiate payment"})
			return
		}
		var subErr *services.OrderSubmissionError
		if errors.As(err, &subErr) {
			logger.Error(c, "order submission failed", err,
				zap.String("session_id", sessionID),
				zap.String("tx_ref", subErr.TxRef),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order, you have not been charged"})
			return
		}
		if errors.Is(err, services.ErrStaleAttempt) {
			c.JSON(http.StatusConflict, gin.H{"error": "checkout attempt superseded"})
			return
		}
		logger.Error(c, "checkout failed", err, zap.String("session_id", sessionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// AbandonCheckout drops the session's in-flight attempt so late gateway
// results are ignored.
func (cc *CheckoutController) AbandonCheckout(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	cc.Checkout.Abandon(sessionID)
	c.JSON(http.StatusOK, gin.H{"message": "checkout abandoned"})
}
