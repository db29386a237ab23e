package models

import "time"

type Category struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	StoreID      uint      `json:"store_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	DisplayOrder int       `json:"display_order" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Menu struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	StoreID      uint      `json:"store_id" gorm:"not null;index"`
	CategoryID   uint      `json:"category_id" gorm:"not null;index"`
	Category     Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	Price        int       `json:"price" gorm:"not null"` // KRW, no fractional unit
	ImageURL     string    `json:"image_url"`
	DisplayOrder int       `json:"display_order" gorm:"default:0"`
	IsAvailable  bool      `json:"is_available" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
