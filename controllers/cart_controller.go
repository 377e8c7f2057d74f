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

type CartController struct {
	Carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{Carts: carts}
}

// GetCart returns the current cart for a session
func (cc *CartController) GetCart(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	cart, err := cc.Carts.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		logger.Error(c, "failed to get cart", err, zap.String("session_id", sessionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get cart"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

type addItemRequest struct {
	ItemID    string  `json:"item_id" binding:"required"`
	CafeID    string  `json:"cafe_id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	UnitPrice float64 `json:"unit_price" binding:"required,gt=0"`
	ImageRef  string  `json:"image_ref"`
}

// AddItem adds an item to the cart or bumps its quantity
func (cc *CartController) AddItem(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	cart, err := cc.Carts.AddItem(c.Request.Context(), sessionID, models.CartLine{
		ItemID:    req.ItemID,
		CafeID:    req.CafeID,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		ImageRef:  req.ImageRef,
	})
	if err != nil {
		if errors.Is(err, services.ErrCrossCafe) {
			c.JSON(http.StatusConflict, gin.H{"error": "can't choose items from different cafes"})
			return
		}
		logger.Error(c, "failed to add cart item", err, zap.String("session_id", sessionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cart"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

type changeQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// ChangeQuantity applies a quantity delta; reaching zero removes the line
func (cc *CartController) ChangeQuantity(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	itemID := c.Param("item_id")

	var req changeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	cart, err := cc.Carts.ChangeQuantity(c.Request.Context(), sessionID, itemID, req.Delta)
	if err != nil {
		if errors.Is(err, services.ErrLineNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart line not found"})
			return
		}
		logger.Error(c, "failed to update cart quantity", err, zap.String("session_id", sessionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

// RemoveLine removes a specific item from the cart
func (cc *CartController) RemoveLine(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	itemID := c.Param("item_id")

	cart, err := cc.Carts.RemoveLine(c.Request.Context(), sessionID, itemID)
	if err != nil {
		logger.Error(c, "failed to remove cart line", err, zap.String("session_id", sessionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

// ClearCart removes all items from the cart
func (cc *CartController) ClearCart(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	if err := cc.Carts.Clear(c.Request.Context(), sessionID); err != nil {
		logger.Error(c, "failed to clear cart", err, zap.String("session_id", sessionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
