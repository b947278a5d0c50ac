package models

import "time"

// Warehouse - Depo
type Warehouse struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null"`
	Address      string `gorm:"size:500"`
	CapacityBags int    // çuval cinsinden kapasite
	IsActive     bool   `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
