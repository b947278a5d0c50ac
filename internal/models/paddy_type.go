package models

import "time"

// PaddyType - Alınan çeltik çeşidi
type PaddyType struct {
	ID              uint    `gorm:"primaryKey"`
	Name            string  `gorm:"size:50;not null;unique"`
	Description     string  `gorm:"size:500"`
	StandardPrice   float64 `gorm:"default:0"` // çuval başı referans fiyat
	YieldPercentage float64 `gorm:"default:0"` // çeltikten pirinç verimi, 0-100 arası
	IsActive        bool    `gorm:"default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
