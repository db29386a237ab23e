package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/MangoYoun/aidlc-workshop-tableorder/config"
	"github.com/MangoYoun/aidlc-workshop-tableorder/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenHeader carries the customer table-session token
const SessionTokenHeader = "X-Session-Token"

type AdminClaims struct {
	UserID   uint   `json:"user_id"`
	UserType string `json:"user_type"`
	StoreID  uint   `json:"store_id"`
	jwt.RegisteredClaims
}

// GenerateAdminToken creates a signed JWT for an admin user
func GenerateAdminToken(admin *models.AdminUser) (string, time.Time, error) {
	expiresAt := time.Now().Add(config.JWTExpire)
	claims := AdminClaims{
		UserID:   admin.ID,
		UserType: "admin",
		StoreID:  admin.StoreID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(config.JWTSecret)
	return signed, expiresAt, err
}

// AdminRequired validates the Bearer JWT and injects admin claims into context
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims := &AdminClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return config.JWTSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		if claims.UserType != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Set("adminID", claims.UserID)
		c.Set("storeID", claims.StoreID)
		c.Next()
	}
}

// SessionRequired resolves the X-Session-Token header to an active table
// session. Expired sessions are deactivated on detection.
func SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader(SessionTokenHeader)
		if tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session token required"})
			c.Abort()
			return
		}

		var session models.TableSession
		if err := config.DB.Preload("TableAuth").
			Where("session_token = ?", tokenStr).First(&session).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session token"})
			c.Abort()
			return
		}
		if !session.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session is closed"})
			c.Abort()
			return
		}
		if session.IsExpired(config.SessionExpire, config.LastOrderTimeout, time.Now()) {
			now := time.Now()
			config.DB.Model(&session).Updates(map[string]interface{}{
				"is_active":  false,
				"expired_at": now,
			})
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			c.Abort()
			return
		}

		c.Set("session", &session)
		c.Next()
	}
}

// GetSession extracts the verified table session from context
func GetSession(c *gin.Context) *models.TableSession {
	val, _ := c.Get("session")
	return val.(*models.TableSession)
}

// GetAdminStoreID extracts the admin's store ID from context
func GetAdminStoreID(c *gin.Context) uint {
	val, _ := c.Get("storeID")
	return val.(uint)
}

// GetAdminID extracts the admin user ID from context
func GetAdminID(c *gin.Context) uint {
	val, _ := c.Get("adminID")
	return val.(uint)
}
