package ledger

import (
	"time"

	"ricemill-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecordPaymentInput struct {
	PaymentType  models.PaymentType
	RelatedID    uint
	Amount       float64
	PaymentDate  time.Time
	PaidTo       string
	PaidBy       string
	PaymentMode  models.PaymentMode
	ChequeNumber string
	BankName     string
	Remarks      string
}

// RecordPayment - Ödemeyi ekler ve bağlı işlemin paid_amount +
// payment_status alanlarını aynı transaction içinde yeniden hesaplar.
// Kümülatif ödeme işlem tutarını aşarsa ValidationError döner.
func RecordPayment(db *gorm.DB, in RecordPaymentInput) (*models.Payment, error) {
	if in.Amount <= 0 {
		return nil, validationErrorf("amount 0'dan büyük olmalı")
	}

	mode := in.PaymentMode
	if mode == "" {
		mode = models.PaymentModeCash
	}
	switch mode {
	case models.PaymentModeCash, models.PaymentModeCheque, models.PaymentModeBankTransfer, models.PaymentModeUPI:
	default:
		return nil, validationErrorf("payment_mode 'cash', 'cheque', 'bank_transfer' veya 'upi' olmalı")
	}

	switch in.PaymentType {
	case models.PaymentTypePurchase, models.PaymentTypeSale, models.PaymentTypeBrokerCommission:
		if in.RelatedID == 0 {
			return nil, validationErrorf("related_id zorunlu")
		}
	case models.PaymentTypeMisc:
		// bağımsız ödeme, related_id opsiyonel
	default:
		return nil, validationErrorf("payment_type 'purchase', 'sale', 'misc' veya 'broker_commission' olmalı")
	}

	payment := models.Payment{
		PaymentType:  in.PaymentType,
		RelatedID:    in.RelatedID,
		Amount:       in.Amount,
		PaymentDate:  in.PaymentDate,
		PaidTo:       in.PaidTo,
		PaidBy:       in.PaidBy,
		PaymentMode:  mode,
		ChequeNumber: in.ChequeNumber,
		BankName:     in.BankName,
		Remarks:      in.Remarks,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		switch in.PaymentType {
		case models.PaymentTypePurchase:
			return recordPurchasePayment(tx, &payment)
		case models.PaymentTypeSale:
			return recordSalePayment(tx, &payment)
		case models.PaymentTypeBrokerCommission:
			return recordBrokerCommissionPayment(tx, &payment)
		default: // misc
			return tx.Create(&payment).Error
		}
	})
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func recordPurchasePayment(tx *gorm.DB, payment *models.Payment) error {
	var purchase models.Purchase
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&purchase, payment.RelatedID).Error; err != nil {
		return &NotFoundError{Entity: "Alım", ID: payment.RelatedID}
	}

	if err := tx.Create(payment).Error; err != nil {
		return err
	}

	paid, err := sumPayments(tx, models.PaymentTypePurchase, purchase.ID)
	if err != nil {
		return err
	}
	if paid > purchase.TotalAmount {
		return validationErrorf("ödeme toplamı alım tutarını aşıyor: tutar %.2f, ödenen %.2f", purchase.TotalAmount, paid)
	}

	return tx.Model(&models.Purchase{}).
		Where("id = ?", purchase.ID).
		Updates(map[string]any{
			"paid_amount":    paid,
			"payment_status": models.PaymentStatusFor(paid, purchase.TotalAmount),
		}).Error
}

func recordSalePayment(tx *gorm.DB, payment *models.Payment) error {
	var sale models.Sale
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sale, payment.RelatedID).Error; err != nil {
		return &NotFoundError{Entity: "Satış", ID: payment.RelatedID}
	}

	if err := tx.Create(payment).Error; err != nil {
		return err
	}

	paid, err := sumPayments(tx, models.PaymentTypeSale, sale.ID)
	if err != nil {
		return err
	}
	if paid > sale.TotalAmount {
		return validationErrorf("ödeme toplamı satış tutarını aşıyor: tutar %.2f, ödenen %.2f", sale.TotalAmount, paid)
	}

	if err := tx.Model(&models.Sale{}).
		Where("id = ?", sale.ID).
		Updates(map[string]any{
			"paid_amount":    paid,
			"payment_status": models.PaymentStatusFor(paid, sale.TotalAmount),
		}).Error; err != nil {
		return err
	}

	// Tahsilat müşteri bakiyesini düşürür
	return tx.Model(&models.Customer{}).
		Where("id = ?", sale.CustomerID).
		Update("current_balance", gorm.Expr("current_balance - ?", payment.Amount)).Error
}

func recordBrokerCommissionPayment(tx *gorm.DB, payment *models.Payment) error {
	var sale models.Sale
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sale, payment.RelatedID).Error; err != nil {
		return &NotFoundError{Entity: "Satış", ID: payment.RelatedID}
	}

	if sale.BrokerCommission <= 0 {
		return validationErrorf("bu satışta komisyon tanımlı değil")
	}

	if err := tx.Create(payment).Error; err != nil {
		return err
	}

	paid, err := sumPayments(tx, models.PaymentTypeBrokerCommission, sale.ID)
	if err != nil {
		return err
	}
	if paid > sale.BrokerCommission {
		return validationErrorf("komisyon ödemeleri satışın komisyon tutarını aşıyor: tutar %.2f, ödenen %.2f", sale.BrokerCommission, paid)
	}

	return nil
}

// sumPayments - (type, related_id) için kümülatif ödeme
func sumPayments(tx *gorm.DB, paymentType models.PaymentType, relatedID uint) (float64, error) {
	var total float64
	err := tx.Model(&models.Payment{}).
		Where("payment_type = ? AND related_id = ?", paymentType, relatedID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
