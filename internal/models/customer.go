package models

import "time"

// Customer - Pirinç müşterisi
type Customer struct {
	ID             uint    `gorm:"primaryKey"`
	Name           string  `gorm:"size:100;not null"`
	Phone          string  `gorm:"size:20"`
	Email          string  `gorm:"size:100"`
	Address        string  `gorm:"size:500"`
	BrokerID       *uint   `gorm:"index"` // müşteriyi getiren komisyoncu (opsiyonel)
	Broker         *Broker `gorm:"foreignKey:BrokerID"`
	CreditLimit    float64 `gorm:"default:0"` // 0 = limitsiz
	CurrentBalance float64 `gorm:"default:0"` // açık bakiye (satışta artar, tahsilatta azalır)
	IsActive       bool    `gorm:"default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
