package models

import "time"

// Supplier - Çeltik tedarikçisi
type Supplier struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"size:100;not null"`
	Phone         string `gorm:"size:20"`
	Email         string `gorm:"size:100"`
	Address       string `gorm:"size:500"`
	ContactPerson string `gorm:"size:100"`
	IsActive      bool   `gorm:"default:true"` // pasif tedarikçi yeni alımda seçilemez, geçmiş silinmez
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
