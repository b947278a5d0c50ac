package models

import "time"

// ExpenseCategory - Gider kalemi
type ExpenseCategory string

const (
	ExpenseMilling     ExpenseCategory = "milling"
	ExpenseTransport   ExpenseCategory = "transport"
	ExpenseElectricity ExpenseCategory = "electricity"
	ExpenseMaintenance ExpenseCategory = "maintenance"
	ExpenseSalary      ExpenseCategory = "salary"
	ExpenseOther       ExpenseCategory = "other"
)

// ExpenseCategories - Geçerli kalemler (validasyon için)
var ExpenseCategories = []ExpenseCategory{
	ExpenseMilling,
	ExpenseTransport,
	ExpenseElectricity,
	ExpenseMaintenance,
	ExpenseSalary,
	ExpenseOther,
}

// Expense - İşletme gideri
type Expense struct {
	ID          uint            `gorm:"primaryKey"`
	Category    ExpenseCategory `gorm:"size:20;not null;index"`
	Amount      float64         `gorm:"not null"`
	ExpenseDate time.Time       `gorm:"index;not null"`
	Description string          `gorm:"size:500"`
	PaidTo      string          `gorm:"size:100"`
	PaymentMode PaymentMode     `gorm:"size:20;not null;default:'cash'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
