package ledger

import (
	"errors"
	"testing"

	"ricemill-backend/internal/models"

	"gorm.io/gorm"
)

func seedPurchase(t *testing.T, db *gorm.DB, f testFixtures, bags int, price float64) *models.Purchase {
	t.Helper()
	purchase, err := PostPurchase(db, PostPurchaseInput{
		SupplierID:   f.Supplier.ID,
		PaddyTypeID:  f.PaddyType.ID,
		WarehouseID:  f.Warehouse.ID,
		NoOfBags:     bags,
		PricePerBag:  price,
		PurchaseDate: date("2026-01-10"),
	})
	if err != nil {
		t.Fatalf("alım seed hatası: %v", err)
	}
	return purchase
}

func TestRecordPurchasePaymentStatusProgression(t *testing.T) {
	db := setupTestDB(t)
	f := seedBase(t, db)
	purchase := seedPurchase(t, db, f, 100, 20) // 2000

	// Kısmi ödeme
	if _, err := RecordPayment(db, RecordPaymentInput{
		PaymentType: models.PaymentTypePurchase,
		RelatedID:   purchase.ID,
		Amount:      500,
		PaymentDate: date("2026-01-15"),
	}); err != nil {
		t.Fatalf("ilk ödeme hata verdi: %v", err)
	}

	var got models.Purchase
	db.First(&got, purchase.ID)
	if got.PaidAmount != 500 || got.PaymentStatus != models.PaymentStatusPartial {
		t.Errorf("500/partial bekleniyordu, %v/%s geldi", got.PaidAmount, got.PaymentStatus)
	}

	// Kalanın tamamı
	if _, err := RecordPayment(db, RecordPaymentInput{
		PaymentType: models.PaymentTypePurchase,
		RelatedID:   purchase.ID,
		Amount:      1500,
		PaymentDate: date("2026-01-20"),
	}); err != nil {
		t.Fatalf("ikinci ödeme hata verdi: %v", err)
	}

	db.First(&got, purchase.ID)
	if got.PaidAmount != 2000 || got.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("2000/paid bekleniyordu, %v/%s geldi", got.PaidAmount, got.PaymentStatus)
	}

	// Tutarın üstüne çıkılamaz, ödeme kaydı da kalmamalı
	_, err := RecordPayment(db, RecordPaymentInput{
		PaymentType: models.PaymentTypePurchase,
		RelatedID:   purchase.ID,
		Amount:      1,
		PaymentDate: date("2026-01-21"),
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("fazla ödeme için ValidationError bekleniyordu, %v geldi", err)
	}

	var paymentCount int64
	db.Model(&models.Payment{}).Where("payment_type = ? AND related_id = ?", models.PaymentTypePurchase, purchase.ID).Count(&paymentCount)
	if paymentCount != 2 {
		t.Errorf("reddedilen ödeme kaydedilmemeli: 2 bekleniyordu, %d var", paymentCount)
	}

	db.First(&got, purchase.ID)
	if got.PaidAmount != 2000 {
		t.Errorf("paid_amount değişmemeliydi: 2000 bekleniyordu, %v geldi", got.PaidAmount)
	}
}

func TestRecordSalePaymentReducesCustomerBalance(t *testing.T) {
	db := setupTestDB(t)
	f := seedBase(t, db)
	seedRiceStock(t, db, f.RiceType.ID, f.Warehouse.ID, 50)

	sale, err := PostSale(db, PostSaleInput{
		CustomerID:  f.Customer.ID,
		RiceTypeID:  f.RiceType.ID,
		WarehouseID: f.Warehouse.ID,
		NoOfBags:    20,
		PricePerBag: 50, // 1000
		SoldDate:    date("2026-02-01"),
	})
	if err != nil {
		t.Fatalf("satış seed hatası: %v", err)
	}

	if _, err := RecordPayment(db, RecordPaymentInput{
		PaymentType: models.PaymentTypeSale,
		RelatedID:   sale.ID,
		Amount:      600,
		PaymentDate: date("2026-02-05"),
		PaymentMode: models.PaymentModeBankTransfer,
	}); err != nil {
		t.Fatalf("tahsilat hata verdi: %v", err)
	}

	var gotSale models.Sale
	db.First(&gotSale, sale.ID)
	if gotSale.PaidAmount != 600 || gotSale.PaymentStatus != models.PaymentStatusPartial {
		t.Errorf("600/partial bekleniyordu, %v/%s geldi", gotSale.PaidAmount, gotSale.PaymentStatus)
	}

	var customer models.Customer
	db.First(&customer, f.Customer.ID)
	if customer.CurrentBalance != 400 {
		t.Errorf("bakiye 400 bekleniyordu, %v geldi", customer.CurrentBalance)
	}
}

func TestRecordBrokerCommissionCap(t *testing.T) {
	db := setupTestDB(t)
	f := seedBase(t, db)
	seedRiceStock(t, db, f.RiceType.ID, f.Warehouse.ID, 50)

	brokerID := f.Broker.ID
	sale, err := PostSale(db, PostSaleInput{
		CustomerID:       f.Customer.ID,
		BrokerID:         &brokerID,
		RiceTypeID:       f.RiceType.ID,
		WarehouseID:      f.Warehouse.ID,
		NoOfBags:         20,
		PricePerBag:      50,
		BrokerCommission: 100,
		SoldDate:         date("2026-02-01"),
	})
	if err != nil {
		t.Fatalf("satış seed hatası: %v", err)
	}

	if _, err := RecordPayment(db, RecordPaymentInput{
		PaymentType: models.PaymentTypeBrokerCommission,
		RelatedID:   sale.ID,
		Amount:      60,
		PaymentDate: date("2026-02-10"),
	}); err != nil {
		t.Fatalf("komisyon ödemesi hata verdi: %v", err)
	}

	// Komisyon tutarının üstü reddedilir
	_, err = RecordPayment(db, RecordPaymentInput{
		PaymentType: models.PaymentTypeBrokerCommission,
		RelatedID:   sale.ID,
		Amount:      50, // 60 + 50 > 100
		PaymentDate: date("2026-02-11"),
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("komisyon aşımı için ValidationError bekleniyordu, %v geldi", err)
	}

	var paymentCount int64
	db.Model(&models.Payment{}).
		Where("payment_type = ? AND related_id = ?", models.PaymentTypeBrokerCommission, sale.ID).
		Count(&paymentCount)
	if paymentCount != 1 {
		t.Errorf("tek komisyon ödemesi bekleniyordu, %d var", paymentCount)
	}
}

func TestRecordPaymentValidation(t *testing.T) {
	db := setupTestDB(t)

	cases := []struct {
		name string
		in   RecordPaymentInput
	}{
		{"sıfır tutar", RecordPaymentInput{PaymentType: models.PaymentTypeMisc, Amount: 0, PaymentDate: date("2026-01-01")}},
		{"negatif tutar", RecordPaymentInput{PaymentType: models.PaymentTypeMisc, Amount: -5, PaymentDate: date("2026-01-01")}},
		{"geçersiz tip", RecordPaymentInput{PaymentType: "loan", Amount: 100, PaymentDate: date("2026-01-01")}},
		{"geçersiz mod", RecordPaymentInput{PaymentType: models.PaymentTypeMisc, Amount: 100, PaymentMode: "gold", PaymentDate: date("2026-01-01")}},
		{"related_id eksik", RecordPaymentInput{PaymentType: models.PaymentTypeSale, Amount: 100, PaymentDate: date("2026-01-01")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := RecordPayment(db, tc.in)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("ValidationError bekleniyordu, %v geldi", err)
			}
		})
	}
}

func TestRecordMiscPayment(t *testing.T) {
	db := setupTestDB(t)

	payment, err := RecordPayment(db, RecordPaymentInput{
		PaymentType: models.PaymentTypeMisc,
		Amount:      250,
		PaymentDate: date("2026-03-01"),
		PaidTo:      "Nakliyeci",
	})
	if err != nil {
		t.Fatalf("misc ödeme hata verdi: %v", err)
	}
	if payment.PaymentMode != models.PaymentModeCash {
		t.Errorf("boş mod cash'e düşmeliydi, %s geldi", payment.PaymentMode)
	}
}
