package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/savoraddis/cafe-backend/logger"
	"github.com/savoraddis/cafe-backend/models"
	"github.com/savoraddis/cafe-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderController struct {
	Orders repository.OrderRepository
}

func NewOrderController(orders repository.OrderRepository) *OrderController {
	return &OrderController{Orders: orders}
}

type orderListResponse struct {
	Orders []models.Order `json:"orders"`
	Meta   metaData       `json:"meta"`
}

type metaData struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalOrders int64 `json:"total_orders"`
	TotalPages  int64 `json:"total_pages"`
	HasMore     bool  `json:"has_more"`
}

// GetOrders returns paginated orders, optionally filtered by payment status
// and delivery flag (admin only)
func (oc *OrderController) GetOrders(c *gin.Context) {
	page, limit := parsePaginationParams(c)

	filter := repository.OrderFilter{
		PaymentStatus: c.Query("payment_status"),
	}
	if d := c.Query("delivered"); d != "" {
		delivered := d == "true"
		filter.Delivered = &delivered
	}

	orders, total, err := oc.Orders.FindAll(c.Request.Context(), filter, page, limit)
	if err != nil {
		logger.Error(c, "failed to fetch orders", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, orderListResponse{
		Orders: orders,
		Meta: metaData{
			Page:        page,
			Limit:       limit,
			TotalOrders: total,
			TotalPages:  calculateTotalPages(total, limit),
			HasMore:     total > int64(page*limit),
		},
	})
}

// GetOrderByID returns a single order (admin only)
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID format"})
		return
	}

	order, err := oc.Orders.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		logger.Error(c, "failed to fetch order", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus changes the kitchen status, e.g. "Being Made" (admin only)
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID format"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := oc.Orders.UpdateOrderStatus(c.Request.Context(), id, req.Status); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		logger.Error(c, "failed to update order status", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order status updated"})
}

// MarkDelivered flags an order as delivered (admin only)
func (oc *OrderController) MarkDelivered(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID format"})
		return
	}

	if err := oc.Orders.MarkDelivered(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		logger.Error(c, "failed to mark order delivered", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order marked as delivered"})
}

// DeleteOrder removes an order (admin only)
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID format"})
		return
	}

	if err := oc.Orders.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		logger.Error(c, "failed to delete order", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
}

// parsePaginationParams extracts and validates pagination parameters
func parsePaginationParams(c *gin.Context) (int, int) {
	const MaxLimit = 100
	const DefaultPage = 1
	const DefaultLimit = 10

	pageInt := DefaultPage
	limitInt := DefaultLimit

	if p, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && p > 0 {
		pageInt = p
	}
	if l, err := strconv.Atoi(c.DefaultQuery("limit", "10")); err == nil && l > 0 {
		limitInt = l
		if limitInt > MaxLimit {
			limitInt = MaxLimit
		}
	}

	return pageInt, limitInt
}

func calculateTotalPages(total int64, limit int) int64 {
	if limit == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
