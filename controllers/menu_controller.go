package controllers

import (
	"errors"
	"net/http"

	"github.com/savoraddis/cafe-backend/logger"
	"github.com/savoraddis/cafe-backend/models"
	"github.com/savoraddis/cafe-backend/repository"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuController struct {
	Menus repository.MenuRepository
}

func NewMenuController(menus repository.MenuRepository) *MenuController {
	return &MenuController{Menus: menus}
}

// ListMenus returns all cafes with their items. A catalog fetch problem
// degrades to an empty listing with a notice; it never fails the storefront.
func (mc *MenuController) ListMenus(c *gin.Context) {
	menus, err := mc.Menus.ListMenus(c.Request.Context())
	if err != nil {
		logger.Error(c, "failed to list menus", err)
		c.JSON(http.StatusOK, gin.H{
			"menus":  []models.CafeMenu{},
			"notice": "no menu is available at the moment, please check back later",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"menus": menus})
}

type menuItemRequest struct {
	Cafe        string  `json:"cafe" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category" binding:"required,oneof=breakfast 'main dish' dessert drinks"`
	Photo       string  `json:"photo"`
}

// AddItem creates a menu item (admin only)
func (mc *MenuController) AddItem(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please fill in all fields", "details": err.Error()})
		return
	}

	item := models.MenuItem{
		Cafe:        req.Cafe,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		Photo:       req.Photo,
	}
	if err := mc.Menus.InsertItem(c.Request.Context(), &item); err != nil {
		logger.Error(c, "failed to add menu item", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add menu item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateItem updates an existing menu item (admin only)
func (mc *MenuController) UpdateItem(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
		return
	}

	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please fill in all fields", "details": err.Error()})
		return
	}

	item := models.MenuItem{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		Photo:       req.Photo,
	}
	if err := mc.Menus.UpdateItem(c.Request.Context(), id, &item); err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		logger.Error(c, "failed to update menu item", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update menu item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "menu item updated"})
}

// DeleteItem removes a menu item (admin only)
func (mc *MenuController) DeleteItem(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
		return
	}

	if err := mc.Menus.DeleteItem(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		logger.Error(c, "failed to delete menu item", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete menu item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "menu item deleted"})
}

type cafeSettingsRequest struct {
	RequiresGrade bool `json:"requires_grade"`
}

// UpdateCafeSettings flips cafe-specific ordering rules (admin only)
func (mc *MenuController) UpdateCafeSettings(c *gin.Context) {
	cafe := c.Param("name")

	var req cafeSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	settings := models.CafeSettings{Name: cafe, RequiresGrade: req.RequiresGrade}
	if err := mc.Menus.UpsertCafeSettings(c.Request.Context(), &settings); err != nil {
		logger.Error(c, "failed to update cafe settings", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cafe settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}
