package handlers

import (
	"net/http"
	"time"

	"github.com/MangoYoun/aidlc-workshop-tableorder/config"
	"github.com/MangoYoun/aidlc-workshop-tableorder/middleware"
	"github.com/MangoYoun/aidlc-workshop-tableorder/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AdminLoginRequest struct {
	StoreID  uint   `json:"store_id" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TableLoginRequest struct {
	StoreID     uint   `json:"store_id" binding:"required"`
	TableNumber string `json:"table_number" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

// lockedMinutes returns remaining lockout minutes, 0 when not locked
func lockedMinutes(lockedUntil *time.Time) int {
	if lockedUntil == nil || !lockedUntil.After(time.Now()) {
		return 0
	}
	return int(time.Until(*lockedUntil).Minutes()) + 1
}

// AdminLogin authenticates a store admin and returns a JWT
func AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var admin models.AdminUser
	if err := config.DB.Where("store_id = ? AND username = ?", req.StoreID, req.Username).
		First(&admin).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if mins := lockedMinutes(admin.LockedUntil); mins > 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account locked. Try again later", "retry_after_minutes": mins})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		registerFailedAttempt(&admin.FailedLoginAttempts, &admin.LockedUntil)
		config.DB.Model(&admin).Updates(map[string]interface{}{
			"failed_login_attempts": admin.FailedLoginAttempts,
			"locked_until":          admin.LockedUntil,
		})
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// Reset failed attempts on success
	config.DB.Model(&admin).Updates(map[string]interface{}{
		"failed_login_attempts": 0,
		"locked_until":          nil,
	})

	token, expiresAt, err := middleware.GenerateAdminToken(&admin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
			"store_id": admin.StoreID,
		},
		"expires_at": expiresAt,
	})
}

// TableLogin authenticates a table and opens a new session
func TableLogin(c *gin.Context) {
	var req TableLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var tableAuth models.TableAuth
	if err := config.DB.Where("store_id = ? AND table_number = ?", req.StoreID, req.TableNumber).
		First(&tableAuth).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if mins := lockedMinutes(tableAuth.LockedUntil); mins > 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account locked. Try again later", "retry_after_minutes": mins})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(tableAuth.PasswordHash), []byte(req.Password)); err != nil {
		registerFailedAttempt(&tableAuth.FailedLoginAttempts, &tableAuth.LockedUntil)
		config.DB.Model(&tableAuth).Updates(map[string]interface{}{
			"failed_login_attempts": tableAuth.FailedLoginAttempts,
			"locked_until":          tableAuth.LockedUntil,
		})
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	config.DB.Model(&tableAuth).Updates(map[string]interface{}{
		"failed_login_attempts": 0,
		"locked_until":          nil,
	})

	session := models.TableSession{
		TableAuthID:  tableAuth.ID,
		SessionToken: uuid.NewString(),
		IsActive:     true,
	}
	if err := config.DB.Create(&session).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_token": session.SessionToken,
		"table_number":  tableAuth.TableNumber,
		"store_id":      tableAuth.StoreID,
		"expires_at":    session.ExpiresAt(config.SessionExpire, config.LastOrderTimeout),
	})
}

// registerFailedAttempt bumps the counter and locks the account at the limit
func registerFailedAttempt(attempts *int, lockedUntil **time.Time) {
	*attempts++
	if *attempts >= config.MaxFailedLogins {
		until := time.Now().Add(config.LockoutDuration)
		*lockedUntil = &until
	}
}
