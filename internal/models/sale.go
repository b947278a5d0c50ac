package models

import "time"

// Sale - Müşteriye pirinç satış kaydı
type Sale struct {
	ID               uint     `gorm:"primaryKey"`
	CustomerID       uint     `gorm:"index;not null"`
	Customer         Customer `gorm:"foreignKey:CustomerID"`
	BrokerID         *uint    `gorm:"index"` // aracılı satışlarda komisyoncu
	Broker           *Broker  `gorm:"foreignKey:BrokerID"`
	RiceTypeID       uint     `gorm:"index;not null"`
	RiceType         RiceType `gorm:"foreignKey:RiceTypeID"`
	WarehouseID      uint     `gorm:"index;not null"` // stok düşülecek depo
	Warehouse        Warehouse `gorm:"foreignKey:WarehouseID"`
	NoOfBags         int       `gorm:"not null"`
	PricePerBag      float64   `gorm:"not null"`
	TotalAmount      float64   `gorm:"not null"` // sunucuda hesaplanır: no_of_bags * price_per_bag
	CDAmount         float64   `gorm:"default:0"` // kasa iskontosu
	BrokerCommission float64   `gorm:"default:0"` // komisyoncuya ödenecek tutar
	SoldDate         time.Time `gorm:"index;not null"`
	DeliveryDate     *time.Time
	PaymentStatus    PaymentStatus `gorm:"size:20;not null;default:'pending'"`
	PaidAmount       float64       `gorm:"default:0"`
	DeliveryAddress  string        `gorm:"size:500"`
	Remarks          string        `gorm:"size:500"`
	IdempotencyKey   *string       `gorm:"size:64;uniqueIndex"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
