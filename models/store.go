package models

import "time"

type Store struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AdminUser struct {
	ID                  uint       `json:"id" gorm:"primaryKey"`
	StoreID             uint       `json:"store_id" gorm:"not null;index"`
	Store               Store      `json:"store,omitempty" gorm:"foreignKey:StoreID"`
	Username            string     `json:"username" gorm:"not null"`
	PasswordHash        string     `json:"-" gorm:"not null"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	LockedUntil         *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// TableAuth is the per-table login credential (table number + password)
type TableAuth struct {
	ID                  uint       `json:"id" gorm:"primaryKey"`
	StoreID             uint       `json:"store_id" gorm:"not null;index"`
	Store               Store      `json:"store,omitempty" gorm:"foreignKey:StoreID"`
	TableNumber         string     `json:"table_number" gorm:"not null"`
	PasswordHash        string     `json:"-" gorm:"not null"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	LockedUntil         *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// TableSession is one seating: created on table login, closed by staff or expiry
type TableSession struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	TableAuthID  uint       `json:"table_auth_id" gorm:"not null;index"`
	TableAuth    TableAuth  `json:"table_auth,omitempty" gorm:"foreignKey:TableAuthID"`
	SessionToken string     `json:"session_token" gorm:"uniqueIndex;not null"`
	CreatedAt    time.Time  `json:"created_at"`
	LastOrderAt  *time.Time `json:"last_order_at"`
	ExpiredAt    *time.Time `json:"expired_at"`
	ClosedAt     *time.Time `json:"closed_at"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
}

// ExpiresAt computes when the session dies: the earlier of creation+maxLife
// or last order+idleTimeout.
func (s *TableSession) ExpiresAt(maxLife, idleTimeout time.Duration) time.Time {
	expiry := s.CreatedAt.Add(maxLife)
	if s.LastOrderAt != nil {
		if idle := s.LastOrderAt.Add(idleTimeout); idle.Before(expiry) {
			return idle
		}
	}
	return expiry
}

// IsExpired reports whether the session has passed its computed expiry
func (s *TableSession) IsExpired(maxLife, idleTimeout time.Duration, now time.Time) bool {
	return now.After(s.ExpiresAt(maxLife, idleTimeout))
}

