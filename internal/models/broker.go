package models

import "time"

// Broker - Satışlarda aracılık yapan komisyoncu
type Broker struct {
	ID             uint    `gorm:"primaryKey"`
	Name           string  `gorm:"size:100;not null"`
	Phone          string  `gorm:"size:20"`
	Email          string  `gorm:"size:100"`
	Address        string  `gorm:"size:500"`
	CommissionRate float64 `gorm:"default:0"` // yüzde
	IsActive       bool    `gorm:"default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
