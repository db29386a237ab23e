package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MangoYoun/aidlc-workshop-tableorder/config"
	"github.com/MangoYoun/aidlc-workshop-tableorder/middleware"
	"github.com/MangoYoun/aidlc-workshop-tableorder/models"
	"github.com/MangoYoun/aidlc-workshop-tableorder/statemachine"

	"github.com/gin-gonic/gin"
)

type CreateOrderRequest struct {
	Items []struct {
		MenuID   uint `json:"menu_id" binding:"required"`
		Quantity int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1"`
	TotalAmount int `json:"total_amount"`
}

// CreateOrder places a new order for the authenticated table session.
// Prices are snapshotted and the total recomputed server-side; the client's
// total_amount is advisory only.
func CreateOrder(c *gin.Context) {
	session := middleware.GetSession(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var orderItems []models.OrderItem
	var total int
	for _, reqItem := range req.Items {
		var menu models.Menu
		if err := config.DB.First(&menu, reqItem.MenuID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Menu %d not found", reqItem.MenuID)})
			return
		}
		if !menu.IsAvailable {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu '" + menu.Name + "' is not available"})
			return
		}
		subtotal := menu.Price * reqItem.Quantity
		total += subtotal
		orderItems = append(orderItems, models.OrderItem{
			MenuID:    menu.ID,
			MenuName:  menu.Name,
			MenuPrice: menu.Price,
			Quantity:  reqItem.Quantity,
			Subtotal:  subtotal,
		})
	}

	// Per-store daily sequence for the human-readable order number
	var seq int64
	config.DB.Model(&models.Order{}).
		Where("store_id = ? AND created_at >= ?", session.TableAuth.StoreID, time.Now().UTC().Truncate(24*time.Hour)).
		Count(&seq)

	order := models.Order{
		StoreID:        session.TableAuth.StoreID,
		TableSessionID: session.ID,
		OrderNumber:    fmt.Sprintf("ORD-%s-%04d", time.Now().UTC().Format("20060102"), seq+1),
		TotalAmount:    total,
		Status:         models.StatusPending,
		Items:          orderItems,
	}
	if err := config.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	// Ordering activity extends the session's idle window
	now := time.Now()
	config.DB.Model(session).Update("last_order_at", now)

	config.DB.Preload("Items").First(&order, order.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// GetSessionOrders returns the authenticated session's order history
func GetSessionOrders(c *gin.Context) {
	session := middleware.GetSession(c)

	var orders []models.Order
	config.DB.Preload("Items").
		Where("table_session_id = ?", session.ID).
		Order("created_at desc").
		Find(&orders)

	c.JSON(http.StatusOK, orders)
}

// ── Admin Order Management ──────────────────────────────────────────────────

// AdminGetOrders returns all orders for the admin's store with a status summary
func AdminGetOrders(c *gin.Context) {
	storeID := middleware.GetAdminStoreID(c)

	var orders []models.Order
	query := config.DB.Preload("Items").Preload("TableSession.TableAuth").
		Where("store_id = ?", storeID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("created_at desc").Find(&orders)

	// Dashboard summary: counts per status plus completed revenue
	summary := map[string]int{}
	var totalRevenue int
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status == models.StatusCompleted {
			totalRevenue += o.TotalAmount
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": totalRevenue,
		"count":         len(orders),
		"orders":        orders,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order through the kitchen lifecycle
func UpdateOrderStatus(c *gin.Context) {
	storeID := middleware.GetAdminStoreID(c)

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !statemachine.IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + string(req.Status)})
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND store_id = ?", c.Param("id"), storeID).
		First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := statemachine.CanTransition(order.Status, req.Status); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Cannot update order status",
			"reason":        err.Error(),
			"current_state": order.Status,
		})
		return
	}

	config.DB.Model(&order).Update("status", req.Status)
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": order})
}
