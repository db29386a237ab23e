package handlers

import (
	"net/http"
	"time"

	"github.com/MangoYoun/aidlc-workshop-tableorder/config"
	"github.com/MangoYoun/aidlc-workshop-tableorder/middleware"
	"github.com/MangoYoun/aidlc-workshop-tableorder/models"

	"github.com/gin-gonic/gin"
)

// AdminGetSessions lists table sessions for the admin's store
func AdminGetSessions(c *gin.Context) {
	storeID := middleware.GetAdminStoreID(c)

	var sessions []models.TableSession
	query := config.DB.Preload("TableAuth").
		Joins("JOIN table_auths ON table_auths.id = table_sessions.table_auth_id").
		Where("table_auths.store_id = ?", storeID)

	if active := c.Query("active"); active == "true" {
		query = query.Where("table_sessions.is_active = ?", true)
	}
	query.Order("table_sessions.created_at desc").Find(&sessions)

	c.JSON(http.StatusOK, gin.H{"count": len(sessions), "sessions": sessions})
}

// AdminCloseSession closes a table session (end of seating)
func AdminCloseSession(c *gin.Context) {
	storeID := middleware.GetAdminStoreID(c)

	var session models.TableSession
	if err := config.DB.Preload("TableAuth").
		Joins("JOIN table_auths ON table_auths.id = table_sessions.table_auth_id").
		Where("table_sessions.id = ? AND table_auths.store_id = ?", c.Param("id"), storeID).
		First(&session).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	now := time.Now()
	config.DB.Model(&session).Updates(map[string]interface{}{
		"is_active": false,
		"closed_at": now,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Session closed"})
}
