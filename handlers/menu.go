package handlers

import (
	"net/http"

	"github.com/MangoYoun/aidlc-workshop-tableorder/config"
	"github.com/MangoYoun/aidlc-workshop-tableorder/middleware"
	"github.com/MangoYoun/aidlc-workshop-tableorder/models"

	"github.com/gin-gonic/gin"
)

// GetMenus returns available menus and categories for a store (public).
// store_id is always required — both apps pass it explicitly.
func GetMenus(c *gin.Context) {
	storeID := c.Query("store_id")
	if storeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store_id query parameter is required"})
		return
	}

	var menus []models.Menu
	config.DB.Where("store_id = ? AND is_available = ?", storeID, true).
		Order("category_id, display_order").
		Find(&menus)

	var categories []models.Category
	config.DB.Where("store_id = ?", storeID).
		Order("display_order").
		Find(&categories)

	c.JSON(http.StatusOK, gin.H{
		"menus":      menus,
		"categories": categories,
	})
}

// ── Admin Menu Management ───────────────────────────────────────────────────

type CreateMenuRequest struct {
	CategoryID  uint   `json:"category_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Price       int    `json:"price" binding:"required,gt=0"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// CreateMenu adds a menu to the admin's store
func CreateMenu(c *gin.Context) {
	storeID := middleware.GetAdminStoreID(c)

	var req CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category models.Category
	if err := config.DB.Where("id = ? AND store_id = ?", req.CategoryID, storeID).
		First(&category).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
		return
	}

	menu := models.Menu{
		StoreID:     storeID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsAvailable: true,
	}
	if err := config.DB.Create(&menu).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu created", "menu": menu})
}

// UpdateMenu updates fields of a menu owned by the admin's store
func UpdateMenu(c *gin.Context) {
	storeID := middleware.GetAdminStoreID(c)

	var menu models.Menu
	if err := config.DB.Where("id = ? AND store_id = ?", c.Param("id"), storeID).
		First(&menu).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Only allow safe fields
	allowed := map[string]bool{"name": true, "price": true, "description": true, "image_url": true, "is_available": true, "display_order": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if price, ok := update["price"].(float64); ok && price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
		return
	}

	config.DB.Model(&menu).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Menu updated", "menu": menu})
}

// DeleteMenu removes a menu owned by the admin's store
func DeleteMenu(c *gin.Context) {
	storeID := middleware.GetAdminStoreID(c)

	var menu models.Menu
	if err := config.DB.Where("id = ? AND store_id = ?", c.Param("id"), storeID).
		First(&menu).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
		return
	}

	config.DB.Delete(&menu)
	c.JSON(http.StatusOK, gin.H{"message": "Menu deleted"})
}
