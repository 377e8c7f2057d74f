package controllers

import (
	"errors"
	"net/http"

	"github.com/savoraddis/cafe-backend/logger"
	"github.com/savoraddis/cafe-backend/repository"
	"github.com/savoraddis/cafe-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentController struct {
	Verify *services.VerifyService
}

func NewPaymentController(verify *services.VerifyService) *PaymentController {
	return &PaymentController{Verify: verify}
}

type callbackRequest struct {
	TxRef  string `json:"tx_ref" binding:"required"`
	Status string `json:"status"`
}

// Callback handles the POSTed redirect-back payload. The reported status is
// only a hint; reconciliation re-verifies with the gateway.
func (pc *PaymentController) Callback(c *gin.Context) {
	var req callbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid callback parameters"})
		return
	}

	pc.reconcile(c, req.TxRef)
}

// VerifyRedirect handles the gateway's GET callback carrying tx_ref in the
// query string.
func (pc *PaymentController) VerifyRedirect(c *gin.Context) {
	txRef := c.Query("tx_ref")
	if txRef == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid callback parameters"})
		return
	}

	pc.reconcile(c, txRef)
}

func (pc *PaymentController) reconcile(c *gin.Context, txRef string) {
	order, err := pc.Verify.Reconcile(c.Request.Context(), txRef)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no order for tx_ref"})
			return
		}
		if errors.Is(err, services.ErrUnrecognizedStatus) {
			// keep pending until the gateway reports something usable
			c.JSON(http.StatusAccepted, gin.H{"message": "payment still pending"})
			return
		}
		logger.Error(c, "payment reconciliation failed", err, zap.String("tx_ref", txRef))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to process payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "payment processed",
		"tx_ref":         order.TxRef,
		"payment_status": order.PaymentStatus,
	})
}
