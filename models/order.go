package models

import "time"

// OrderStatus represents all possible states of a table order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusCompleted OrderStatus = "completed"
)

type Order struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	StoreID        uint         `json:"store_id" gorm:"not null;index"`
	TableSessionID uint         `json:"table_session_id" gorm:"not null;index"`
	TableSession   TableSession `json:"table_session,omitempty" gorm:"foreignKey:TableSessionID"`
	OrderNumber    string       `json:"order_number" gorm:"uniqueIndex;not null"`
	TotalAmount    int          `json:"total_amount" gorm:"not null"`
	Status         OrderStatus  `json:"status" gorm:"not null;default:'pending'"`
	Items          []OrderItem  `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

type OrderItem struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	OrderID   uint   `json:"order_id" gorm:"not null;index"`
	MenuID    uint   `json:"menu_id" gorm:"not null"`
	MenuName  string `json:"menu_name"`                  // snapshot name at time of order
	MenuPrice int    `json:"menu_price" gorm:"not null"` // snapshot price
	Quantity  int    `json:"quantity" gorm:"not null"`
	Subtotal  int    `json:"subtotal" gorm:"not null"`
}
