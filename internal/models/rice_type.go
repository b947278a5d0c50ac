package models

import "time"

// RiceType - Satılan pirinç çeşidi
type RiceType struct {
	ID            uint    `gorm:"primaryKey"`
	Name          string  `gorm:"size:50;not null;unique"`
	Description   string  `gorm:"size:500"`
	StandardPrice float64 `gorm:"default:0"` // çuval başı referans fiyat
	IsActive      bool    `gorm:"default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
