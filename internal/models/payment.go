package models

import "time"

// PaymentType - Ödemenin bağlı olduğu işlem tipi
type PaymentType string

const (
	PaymentTypePurchase         PaymentType = "purchase"
	PaymentTypeSale             PaymentType = "sale"
	PaymentTypeMisc             PaymentType = "misc"
	PaymentTypeBrokerCommission PaymentType = "broker_commission"
)

// PaymentMode - Ödeme şekli
type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "cash"
	PaymentModeCheque       PaymentMode = "cheque"
	PaymentModeBankTransfer PaymentMode = "bank_transfer"
	PaymentModeUPI          PaymentMode = "upi"
)

// Payment - Alım/satış/komisyon/diğer ödemeleri
type Payment struct {
	ID           uint        `gorm:"primaryKey"`
	PaymentType  PaymentType `gorm:"size:20;not null;index:idx_payments_type_related"`
	RelatedID    uint        `gorm:"index:idx_payments_type_related"` // purchase/sale ID, misc için 0 olabilir
	Amount       float64     `gorm:"not null"`
	PaymentDate  time.Time   `gorm:"index;not null"`
	PaidTo       string      `gorm:"size:100"`
	PaidBy       string      `gorm:"size:100"`
	PaymentMode  PaymentMode `gorm:"size:20;not null;default:'cash'"`
	ChequeNumber string      `gorm:"size:50"`
	BankName     string      `gorm:"size:100"`
	Remarks      string      `gorm:"size:500"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
