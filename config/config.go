package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/MangoYoun/aidlc-workshop-tableorder/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret signs admin tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "tableorder_super_secret_2024"))

// Session lifetime policy: a table session lives at most SessionExpire from
// creation, and goes idle-dead LastOrderTimeout after the most recent order.
var (
	SessionExpire    = time.Duration(getEnvInt("SESSION_EXPIRE_HOURS", 16)) * time.Hour
	LastOrderTimeout = time.Duration(getEnvInt("SESSION_LAST_ORDER_TIMEOUT_HOURS", 2)) * time.Hour
	JWTExpire        = time.Duration(getEnvInt("JWT_EXPIRE_HOURS", 16)) * time.Hour
)

// Login lockout policy
const (
	MaxFailedLogins = 5
	LockoutDuration = 15 * time.Minute
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(getEnv("DATABASE_PATH", "tableorder.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.Store{},
		&models.AdminUser{},
		&models.TableAuth{},
		&models.TableSession{},
		&models.Category{},
		&models.Menu{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("✅ Database connected and migrated successfully")
}
