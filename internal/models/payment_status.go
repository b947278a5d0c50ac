package models

// PaymentStatus - Alım/satış ödeme durumu
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// PaymentStatusFor - paid_amount ve total_amount'tan durumu türetir.
// Durum yalnızca buradan atanır, elle set edilmez.
func PaymentStatusFor(paidAmount, totalAmount float64) PaymentStatus {
	switch {
	case paidAmount <= 0:
		return PaymentStatusPending
	case paidAmount >= totalAmount:
		return PaymentStatusPaid
	default:
		return PaymentStatusPartial
	}
}
