package ledger

import (
	"errors"
	"time"

	"ricemill-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Alım, satış ve işleme postingleri: kayıt ekleme ve stok güncellemesi
// her zaman aynı transaction içinde yapılır. Stok satırını başka hiçbir
// kod yolu değiştirmez.

type PostPurchaseInput struct {
	SupplierID      uint
	PaddyTypeID     uint
	WarehouseID     uint
	NoOfBags        int
	PricePerBag     float64
	PurchaseDate    time.Time
	DeliveryDate    *time.Time
	QualityGrade    models.QualityGrade
	MoistureContent *float64
	Remarks         string
	IdempotencyKey  string // boşsa handler üretir
}

type PostSaleInput struct {
	CustomerID       uint
	BrokerID         *uint
	RiceTypeID       uint
	WarehouseID      uint
	NoOfBags         int
	PricePerBag      float64
	CDAmount         float64
	BrokerCommission float64
	SoldDate         time.Time
	DeliveryDate     *time.Time
	DeliveryAddress  string
	Remarks          string
	IdempotencyKey   string
}

type PostMillingInput struct {
	PaddyTypeID uint
	RiceTypeID  uint
	WarehouseID uint
	PaddyBagsIn int
	RiceBagsOut int
	RunDate     time.Time
	Remarks     string
}

// PostPurchase - Çeltik alımını kaydeder ve ilgili PaddyStock satırını
// aynı transaction içinde oluşturur/artırır.
func PostPurchase(db *gorm.DB, in PostPurchaseInput) (*models.Purchase, error) {
	if in.NoOfBags <= 0 {
		return nil, validationErrorf("no_of_bags 0'dan büyük olmalı")
	}
	if in.PricePerBag < 0 {
		return nil, validationErrorf("price_per_bag negatif olamaz")
	}
	grade := in.QualityGrade
	if grade == "" {
		grade = models.GradeB
	}
	if grade != models.GradeA && grade != models.GradeB && grade != models.GradeC {
		return nil, validationErrorf("quality_grade 'A', 'B' veya 'C' olmalı")
	}

	// Aynı idempotency key ile daha önce post edilmişse mevcut kaydı döndür,
	// stoğa ikinci kez dokunma.
	if in.IdempotencyKey != "" {
		var existing models.Purchase
		if err := db.Where("idempotency_key = ?", in.IdempotencyKey).First(&existing).Error; err == nil {
			return &existing, nil
		}
	}

	purchase := models.Purchase{
		SupplierID:      in.SupplierID,
		PaddyTypeID:     in.PaddyTypeID,
		WarehouseID:     in.WarehouseID,
		NoOfBags:        in.NoOfBags,
		PricePerBag:     in.PricePerBag,
		TotalAmount:     float64(in.NoOfBags) * in.PricePerBag,
		PurchaseDate:    in.PurchaseDate,
		DeliveryDate:    in.DeliveryDate,
		PaymentStatus:   models.PaymentStatusPending,
		PaidAmount:      0,
		QualityGrade:    grade,
		MoistureContent: in.MoistureContent,
		Remarks:         in.Remarks,
	}
	if in.IdempotencyKey != "" {
		key := in.IdempotencyKey
		purchase.IdempotencyKey = &key
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var supplier models.Supplier
		if err := tx.First(&supplier, in.SupplierID).Error; err != nil {
			return &NotFoundError{Entity: "Tedarikçi", ID: in.SupplierID}
		}
		if !supplier.IsActive {
			return validationErrorf("tedarikçi pasif durumda, yeni alım yapılamaz")
		}

		var paddyType models.PaddyType
		if err := tx.First(&paddyType, in.PaddyTypeID).Error; err != nil {
			return &NotFoundError{Entity: "Çeltik çeşidi", ID: in.PaddyTypeID}
		}

		var warehouse models.Warehouse
		if err := tx.First(&warehouse, in.WarehouseID).Error; err != nil {
			return &NotFoundError{Entity: "Depo", ID: in.WarehouseID}
		}

		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		return addPaddyStock(tx, in.PaddyTypeID, in.WarehouseID, in.NoOfBags)
	})
	if err != nil {
		// Eşzamanlı replay: unique index'e takıldıysa ilk kaydı döndür
		if in.IdempotencyKey != "" {
			var existing models.Purchase
			if lookupErr := db.Where("idempotency_key = ?", in.IdempotencyKey).First(&existing).Error; lookupErr == nil {
				return &existing, nil
			}
		}
		return nil, err
	}

	return &purchase, nil
}

// PostSale - Pirinç satışını kaydeder; RiceStock satırını kilitleyip
// yeterlilik kontrolünden sonra düşer, müşteri bakiyesini artırır.
// Stok çakışmasında bir kez taze okuma ile yeniden dener.
func PostSale(db *gorm.DB, in PostSaleInput) (*models.Sale, error) {
	if in.NoOfBags <= 0 {
		return nil, validationErrorf("no_of_bags 0'dan büyük olmalı")
	}
	if in.PricePerBag < 0 {
		return nil, validationErrorf("price_per_bag negatif olamaz")
	}
	if in.CDAmount < 0 {
		return nil, validationErrorf("cd_amount negatif olamaz")
	}
	if in.BrokerCommission < 0 {
		return nil, validationErrorf("broker_commission negatif olamaz")
	}

	if in.IdempotencyKey != "" {
		var existing models.Sale
		if err := db.Where("idempotency_key = ?", in.IdempotencyKey).First(&existing).Error; err == nil {
			return &existing, nil
		}
	}

	sale, err := postSaleOnce(db, in)
	if err != nil {
		var cc *ConcurrencyConflict
		if errors.As(err, &cc) {
			// Stok satırı elimizdeyken değişti: bir kez taze okumayla tekrar dene
			sale, err = postSaleOnce(db, in)
		}
	}
	if err != nil {
		if in.IdempotencyKey != "" {
			var existing models.Sale
			if lookupErr := db.Where("idempotency_key = ?", in.IdempotencyKey).First(&existing).Error; lookupErr == nil {
				return &existing, nil
			}
		}
		return nil, err
	}

	return sale, nil
}

func postSaleOnce(db *gorm.DB, in PostSaleInput) (*models.Sale, error) {
	sale := models.Sale{
		CustomerID:       in.CustomerID,
		BrokerID:         in.BrokerID,
		RiceTypeID:       in.RiceTypeID,
		WarehouseID:      in.WarehouseID,
		NoOfBags:         in.NoOfBags,
		PricePerBag:      in.PricePerBag,
		TotalAmount:      float64(in.NoOfBags) * in.PricePerBag,
		CDAmount:         in.CDAmount,
		BrokerCommission: in.BrokerCommission,
		SoldDate:         in.SoldDate,
		DeliveryDate:     in.DeliveryDate,
		PaymentStatus:    models.PaymentStatusPending,
		PaidAmount:       0,
		DeliveryAddress:  in.DeliveryAddress,
		Remarks:          in.Remarks,
	}
	if in.IdempotencyKey != "" {
		key := in.IdempotencyKey
		sale.IdempotencyKey = &key
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&customer, in.CustomerID).Error; err != nil {
			return &NotFoundError{Entity: "Müşteri", ID: in.CustomerID}
		}
		if !customer.IsActive {
			return validationErrorf("müşteri pasif durumda, yeni satış yapılamaz")
		}

		if in.BrokerID != nil {
			var broker models.Broker
			if err := tx.First(&broker, *in.BrokerID).Error; err != nil {
				return &NotFoundError{Entity: "Komisyoncu", ID: *in.BrokerID}
			}
			if !broker.IsActive {
				return validationErrorf("komisyoncu pasif durumda")
			}
		}

		var riceType models.RiceType
		if err := tx.First(&riceType, in.RiceTypeID).Error; err != nil {
			return &NotFoundError{Entity: "Pirinç çeşidi", ID: in.RiceTypeID}
		}

		var warehouse models.Warehouse
		if err := tx.First(&warehouse, in.WarehouseID).Error; err != nil {
			return &NotFoundError{Entity: "Depo", ID: in.WarehouseID}
		}

		// Stok satırını kilitle ve yeterliliği kontrol et
		var stock models.RiceStock
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("rice_type_id = ? AND warehouse_id = ?", in.RiceTypeID, in.WarehouseID).
			Limit(1).
			Find(&stock).Error; err != nil {
			return err
		}
		if stock.ID == 0 || stock.AvailableBags < in.NoOfBags {
			return validationErrorf("yetersiz stok: mevcut %d çuval, istenen %d çuval", stock.AvailableBags, in.NoOfBags)
		}

		// Koşullu düşüm: kilidin etkisiz kaldığı durumda bile available negatife inemez
		res := tx.Model(&models.RiceStock{}).
			Where("id = ? AND available_bags >= ?", stock.ID, in.NoOfBags).
			UpdateColumns(map[string]any{
				"total_bags":     gorm.Expr("total_bags - ?", in.NoOfBags),
				"available_bags": gorm.Expr("available_bags - ?", in.NoOfBags),
				"updated_at":     time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &ConcurrencyConflict{Message: "stok satırı bu sırada değişti"}
		}

		// Müşteri bakiyesi: satış tutarı kadar borç artar
		newBalance := customer.CurrentBalance + sale.TotalAmount
		if customer.CreditLimit > 0 && newBalance > customer.CreditLimit {
			return validationErrorf("kredi limiti aşılıyor: limit %.2f, yeni bakiye %.2f", customer.CreditLimit, newBalance)
		}
		if err := tx.Model(&models.Customer{}).
			Where("id = ?", customer.ID).
			Update("current_balance", newBalance).Error; err != nil {
			return err
		}

		return tx.Create(&sale).Error
	})
	if err != nil {
		return nil, err
	}

	return &sale, nil
}

// PostMilling - İşleme partisini kaydeder: çeltik stoğundan düşer,
// pirinç stoğuna ekler. Hepsi tek transaction. Stok çakışmasında bir
// kez yeniden dener.
func PostMilling(db *gorm.DB, in PostMillingInput) (*models.MillingRun, error) {
	if in.PaddyBagsIn <= 0 {
		return nil, validationErrorf("paddy_bags_in 0'dan büyük olmalı")
	}
	if in.RiceBagsOut <= 0 {
		return nil, validationErrorf("rice_bags_out 0'dan büyük olmalı")
	}

	run, err := postMillingOnce(db, in)
	if err != nil {
		var cc *ConcurrencyConflict
		if errors.As(err, &cc) {
			run, err = postMillingOnce(db, in)
		}
	}
	if err != nil {
		return nil, err
	}

	return run, nil
}

func postMillingOnce(db *gorm.DB, in PostMillingInput) (*models.MillingRun, error) {
	run := models.MillingRun{
		PaddyTypeID: in.PaddyTypeID,
		RiceTypeID:  in.RiceTypeID,
		WarehouseID: in.WarehouseID,
		PaddyBagsIn: in.PaddyBagsIn,
		RiceBagsOut: in.RiceBagsOut,
		RunDate:     in.RunDate,
		Remarks:     in.Remarks,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var paddyType models.PaddyType
		if err := tx.First(&paddyType, in.PaddyTypeID).Error; err != nil {
			return &NotFoundError{Entity: "Çeltik çeşidi", ID: in.PaddyTypeID}
		}

		var riceType models.RiceType
		if err := tx.First(&riceType, in.RiceTypeID).Error; err != nil {
			return &NotFoundError{Entity: "Pirinç çeşidi", ID: in.RiceTypeID}
		}

		var warehouse models.Warehouse
		if err := tx.First(&warehouse, in.WarehouseID).Error; err != nil {
			return &NotFoundError{Entity: "Depo", ID: in.WarehouseID}
		}

		// Çeltik stoğunu kilitle ve düş
		var paddyStock models.PaddyStock
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("paddy_type_id = ? AND warehouse_id = ?", in.PaddyTypeID, in.WarehouseID).
			Limit(1).
			Find(&paddyStock).Error; err != nil {
			return err
		}
		if paddyStock.ID == 0 || paddyStock.TotalBags < in.PaddyBagsIn {
			return validationErrorf("yetersiz çeltik stoğu: mevcut %d çuval, istenen %d çuval", paddyStock.TotalBags, in.PaddyBagsIn)
		}

		res := tx.Model(&models.PaddyStock{}).
			Where("id = ? AND total_bags >= ?", paddyStock.ID, in.PaddyBagsIn).
			UpdateColumns(map[string]any{
				"total_bags": gorm.Expr("total_bags - ?", in.PaddyBagsIn),
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &ConcurrencyConflict{Message: "çeltik stok satırı bu sırada değişti"}
		}

		if err := addRiceStock(tx, in.RiceTypeID, in.WarehouseID, in.RiceBagsOut); err != nil {
			return err
		}

		return tx.Create(&run).Error
	})
	if err != nil {
		return nil, err
	}

	return &run, nil
}

// addPaddyStock - (çeltik çeşidi, depo) satırını kilitleyip artırır, yoksa oluşturur.
func addPaddyStock(tx *gorm.DB, paddyTypeID, warehouseID uint, bags int) error {
	var stock models.PaddyStock
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("paddy_type_id = ? AND warehouse_id = ?", paddyTypeID, warehouseID).
		Limit(1).
		Find(&stock).Error; err != nil {
		return err
	}

	if stock.ID == 0 {
		stock = models.PaddyStock{
			PaddyTypeID: paddyTypeID,
			WarehouseID: warehouseID,
			TotalBags:   bags,
		}
		return tx.Create(&stock).Error
	}

	return tx.Model(&models.PaddyStock{}).
		Where("id = ?", stock.ID).
		UpdateColumns(map[string]any{
			"total_bags": gorm.Expr("total_bags + ?", bags),
			"updated_at": time.Now(),
		}).Error
}

// addRiceStock - (pirinç çeşidi, depo) satırını kilitleyip artırır, yoksa oluşturur.
func addRiceStock(tx *gorm.DB, riceTypeID, warehouseID uint, bags int) error {
	var stock models.RiceStock
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("rice_type_id = ? AND warehouse_id = ?", riceTypeID, warehouseID).
		Limit(1).
		Find(&stock).Error; err != nil {
		return err
	}

	if stock.ID == 0 {
		stock = models.RiceStock{
			RiceTypeID:    riceTypeID,
			WarehouseID:   warehouseID,
			TotalBags:     bags,
			ReservedBags:  0,
			AvailableBags: bags,
		}
		return tx.Create(&stock).Error
	}

	return tx.Model(&models.RiceStock{}).
		Where("id = ?", stock.ID).
		UpdateColumns(map[string]any{
			"total_bags":     gorm.Expr("total_bags + ?", bags),
			"available_bags": gorm.Expr("available_bags + ?", bags),
			"updated_at":     time.Now(),
		}).Error
}
