package models

import "time"

// MillingRun - Çeltiğin pirince işlendiği parti kaydı.
// Çeltik stoğundan düşer, pirinç stoğuna ekler.
type MillingRun struct {
	ID           uint      `gorm:"primaryKey"`
	PaddyTypeID  uint      `gorm:"index;not null"`
	PaddyType    PaddyType `gorm:"foreignKey:PaddyTypeID"`
	RiceTypeID   uint      `gorm:"index;not null"`
	RiceType     RiceType  `gorm:"foreignKey:RiceTypeID"`
	WarehouseID  uint      `gorm:"index;not null"`
	Warehouse    Warehouse `gorm:"foreignKey:WarehouseID"`
	PaddyBagsIn  int       `gorm:"not null"` // işlenen çeltik çuvalı
	RiceBagsOut  int       `gorm:"not null"` // elde edilen pirinç çuvalı
	RunDate      time.Time `gorm:"index;not null"`
	Remarks      string    `gorm:"size:500"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
