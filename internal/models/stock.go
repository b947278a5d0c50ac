package models

import "time"

// RiceStock - (pirinç çeşidi, depo) bazında stok satırı.
// Satır yalnızca satış/üretim postinginin transaction'ı içinde değişir.
type RiceStock struct {
	ID            uint      `gorm:"primaryKey"`
	RiceTypeID    uint      `gorm:"not null;uniqueIndex:uniq_rice_stock"`
	RiceType      RiceType  `gorm:"foreignKey:RiceTypeID"`
	WarehouseID   uint      `gorm:"not null;uniqueIndex:uniq_rice_stock"`
	Warehouse     Warehouse `gorm:"foreignKey:WarehouseID"`
	TotalBags     int       `gorm:"not null;default:0"`
	ReservedBags  int       `gorm:"not null;default:0"`
	AvailableBags int       `gorm:"not null;default:0"` // invariant: total - reserved
	UpdatedAt     time.Time
}

// PaddyStock - (çeltik çeşidi, depo) bazında stok satırı
type PaddyStock struct {
	ID          uint      `gorm:"primaryKey"`
	PaddyTypeID uint      `gorm:"not null;uniqueIndex:uniq_paddy_stock"`
	PaddyType   PaddyType `gorm:"foreignKey:PaddyTypeID"`
	WarehouseID uint      `gorm:"not null;uniqueIndex:uniq_paddy_stock"`
	Warehouse   Warehouse `gorm:"foreignKey:WarehouseID"`
	TotalBags   int       `gorm:"not null;default:0"`
	UpdatedAt   time.Time
}
