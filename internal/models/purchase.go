package models

import "time"

// QualityGrade - Çeltik kalite sınıfı
type QualityGrade string

const (
	GradeA QualityGrade = "A"
	GradeB QualityGrade = "B"
	GradeC QualityGrade = "C"
)

// Purchase - Tedarikçiden çeltik alım kaydı
type Purchase struct {
	ID              uint      `gorm:"primaryKey"`
	SupplierID      uint      `gorm:"index;not null"`
	Supplier        Supplier  `gorm:"foreignKey:SupplierID"`
	PaddyTypeID     uint      `gorm:"index;not null"`
	PaddyType       PaddyType `gorm:"foreignKey:PaddyTypeID"`
	WarehouseID     uint      `gorm:"index;not null"`
	Warehouse       Warehouse `gorm:"foreignKey:WarehouseID"`
	NoOfBags        int       `gorm:"not null"`
	PricePerBag     float64   `gorm:"not null"`
	TotalAmount     float64   `gorm:"not null"` // sunucuda hesaplanır: no_of_bags * price_per_bag
	PurchaseDate    time.Time `gorm:"index;not null"`
	DeliveryDate    *time.Time
	PaymentStatus   PaymentStatus `gorm:"size:20;not null;default:'pending'"`
	PaidAmount      float64       `gorm:"default:0"`
	QualityGrade    QualityGrade  `gorm:"size:2;default:'B'"`
	MoistureContent *float64      // nem oranı (%)
	Remarks         string        `gorm:"size:500"`
	IdempotencyKey  *string       `gorm:"size:64;uniqueIndex"` // aynı mantıksal alımın tekrar gönderilmesini engeller
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
