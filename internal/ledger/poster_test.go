package ledger

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"ricemill-backend/internal/database"
	"ricemill-backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("test veritabanı açılamadı: %v", err)
	}

	// sqlite tek yazar kaldırır; bağlantıyı teke indirip serileştiriyoruz
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB alınamadı: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate hatası: %v", err)
	}

	return db
}

type testFixtures struct {
	Supplier  models.Supplier
	Customer  models.Customer
	Broker    models.Broker
	PaddyType models.PaddyType
	RiceType  models.RiceType
	Warehouse models.Warehouse
}

func seedBase(t *testing.T, db *gorm.DB) testFixtures {
	t.Helper()

	f := testFixtures{
		Supplier:  models.Supplier{Name: "Çiftçi Ali", IsActive: true},
		Customer:  models.Customer{Name: "Toptancı Veli", IsActive: true},
		Broker:    models.Broker{Name: "Komisyoncu Ayşe", CommissionRate: 2, IsActive: true},
		PaddyType: models.PaddyType{Name: "Baldo Çeltik", YieldPercentage: 60, IsActive: true},
		RiceType:  models.RiceType{Name: "Baldo", IsActive: true},
		Warehouse: models.Warehouse{Name: "Merkez Depo", CapacityBags: 10000, IsActive: true},
	}

	for _, m := range []any{&f.Supplier, &f.Customer, &f.Broker, &f.PaddyType, &f.RiceType, &f.Warehouse} {
		if err := db.Create(m).Error; err != nil {
			t.Fatalf("seed hatası: %v", err)
		}
	}

	return f
}

func seedRiceStock(t *testing.T, db *gorm.DB, riceTypeID, warehouseID uint, bags int) {
	t.Helper()
	stock := models.RiceStock{
		RiceTypeID:    riceTypeID,
		WarehouseID:   warehouseID,
		TotalBags:     bags,
		AvailableBags: bags,
	}
	if err := db.Create(&stock).Error; err != nil {
		t.Fatalf("stok seed hatası: %v", err)
	}
}

func paddyStockFor(t *testing.T, db *gorm.DB, paddyTypeID, warehouseID uint) models.PaddyStock {
	t.Helper()
	var stock models.PaddyStock
	if err := db.Where("paddy_type_id = ? AND warehouse_id = ?", paddyTypeID, warehouseID).
		Limit(1).Find(&stock).Error; err != nil {
		t.Fatalf("çeltik stoğu okunamadı: %v", err)
	}
	return stock
}

func riceStockFor(t *testing.T, db *gorm.DB, riceTypeID, warehouseID uint) models.RiceStock {
	t.Helper()
	var stock models.RiceStock
	if err := db.Where("rice_type_id = ? AND warehouse_id = ?", riceTypeID, warehouseID).
		Limit(1).Find(&stock).Error; err != nil {
		t.Fatalf("pirinç stoğu okunamadı: %v", err)
	}
	return stock
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestPostPurchaseAddsPaddyStock(t *testing.T) {
	db := setupTestDB(t)
	f := seedBase(t, db)

	purchase, err := PostPurchase(db, PostPurchaseInput{
		SupplierID:   f.Supplier.ID,
		PaddyTypeID:  f.PaddyType.ID,
		WarehouseID:  f.Warehouse.ID,
		NoOfBags:     100,
		PricePerBag:  20,
		PurchaseDate: date("2026-01-10"),
	})
	if err != nil {
		t.Fatalf("PostPurchase hata verdi: %v", err)
	}

	if purchase.TotalAmount != 2000 {
		t.Errorf("total_amount 2000 bekleniyordu, %v geldi", purchase.TotalAmount)
	}
	if purchase.PaymentStatus != models.PaymentStatusPending {
		t.Errorf("payment_status pending bekleniyordu, %s geldi", purchase.PaymentStatus)
	}
	if purchase.QualityGrade != models.GradeB {
		t.Errorf("boş grade B'ye düşmeliydi, %s geldi", purchase.QualityGrade)
	}

	stock := paddyStockFor(t, db, f.PaddyType.ID, f.Warehouse.ID)
	if stock.TotalBags != 100 {
		t.Errorf("çeltik stoğu 100 bekleniyordu, %d geldi", stock.TotalBags)
	}

	// İkinci alım aynı satırı artırmalı, yeni satır açmamalı
	if _, err := PostPurchase(db, PostPurchaseInput{
		SupplierID:   f.Supplier.ID,
		PaddyTypeID:  f.PaddyType.ID,
		WarehouseID:  f.Warehouse.ID,
		NoOfBags:     50,
		PricePerBag:  22,
		PurchaseDate: date("2026-01-11"),
	}); err != nil {
		t.Fatalf("ikinci PostPurchase hata verdi: %v", err)
	}

	var rowCount int64
	db.Model(&models.PaddyStock{}).Count(&rowCount)
	if rowCount != 1 {
		t.Errorf("tek stok satırı bekleniyordu, %d satır var", rowCount)
	}
	stock = paddyStockFor(t, db, f.PaddyType.ID, f.Warehouse.ID)
	if stock.TotalBags != 150 {
		t.Errorf("çeltik stoğu 150 bekleniyordu, %d geldi", stock.TotalBags)
	}
}

func TestPostPurchaseValidation(t *testing.T) {
	db := setupTestDB(t)
	f := seedBase(t, db)

	_, err := PostPurchase(db, PostPurchaseInput{
		SupplierID:   f.Supplier.ID,
		PaddyTypeID:  f.PaddyType.ID,
		WarehouseID:  f.Warehouse.ID,
		NoOfBags:     0,
		PricePerBag:  20,
		PurchaseDate: date("2026-01-10"),
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("no_of_bags=0 için ValidationError bekleniyordu, %v geldi", err)
	}

	_, err = PostPurchase(db, PostPurchaseInput{
		SupplierID:   9999,
		PaddyTypeID:  f.PaddyType.ID,
		WarehouseID:  f.Warehouse.ID,
		NoOfBags:     10,
		PricePerBag:  20,
		PurchaseDate: date("2026-01-10"),
	})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("olmayan tedarikçi için NotFoundError bekleniyordu, %v geldi", err)
	}

	// Pasif tedarikçiden alım yapılamaz
	db.Model(&models.Supplier{}).Where("id = ?", f.Supplier.ID).Update("is_active", false)
	_, err = PostPurchase(db, PostPurchaseInput{
		SupplierID:   f.Supplier.ID,
		PaddyTypeID:  f.PaddyType.ID,
		WarehouseID:  f.Warehouse.ID,
		NoOfBags:     10,
		PricePerBag:  20,
		PurchaseDate: date("2026-01-10"),
	})
	if !errors.As(err, &ve) {
		t.Errorf("pasif tedarikçi için ValidationError bekleniyordu, %v geldi", err)
	}

	var stockCount int64
	db.Model(&models.PaddyStock{}).Count(&stockCount)
	if stockCount != 0 {
		t.Errorf("başarısız alımlar stok satırı yaratmamalı, %d satır var", stockCount)
	}
}

func TestPostPurchaseIdempotentReplay(t *testing.T) {
	db := setupTestDB(t)
	f := seedBase(t, db)

	in := PostPurchaseInput{
		SupplierID:     f.Supplier.ID,
		PaddyTypeID:    f.PaddyType.ID,
		WarehouseID:    f.Warehouse.ID,
		NoOfBags:       100,
		PricePerBag:    20,
		PurchaseDate:   date("2026-01-10"),
		IdempotencyKey: "replay-test-1",
	}

	first, err := PostPurchase(db, in)
	if err != nil {
		t.Fatalf("ilk PostPurchase hata verdi: %v", err)
	}
	second, err := PostPurchase(db, in)
	if err != nil {
		t.Fatalf("replay hata verdi: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("replay aynı kaydı döndürmeliydi: %d != %d", first.ID, second.ID)
	}

	var purchaseCount int64
	db.Model(&models.Purchase{}).Count(&purchaseCount)
	if purchaseCount != 1 {
		t.Errorf("tek alım kaydı bekleniyordu, %d var", purchaseCount)
	}

	stock := paddyStockFor(t, db, f.PaddyType.ID, f.Warehouse.ID)
	if stock.TotalBags != 100 {
		t.Errorf("replay stoğu ikinci kez artırmamalı: 100 bekleniyordu, %d geldi", stock.TotalBags)
	}
}

func TestPostSaleDecrementsStockAndBalance(t *testing.T) {
	db := setupTestDB(t)
	f := seedBase(t, db)
	seedRiceStock(t, db, f.RiceType.ID, f.Warehouse.ID, 50)

	sale, err := PostSale(db, PostSaleInput{
		CustomerID:  f.Customer.ID,
		RiceTypeID:  f.RiceType.ID,
		WarehouseID: f.Warehouse.ID,
		NoOfBags:    20,
		PricePerBag: 45,
		SoldDate:    date("2026-02-01"),
	})
	if err != nil {
		t.Fatalf("PostSale hata verdi: %v", err)
	}

	if sale.TotalAmount != 900 {
		t.Errorf("total_amount 900 bekleniyordu, %v geldi", sale.TotalAmount)
	}

	stock := riceStockFor(t, db, f.RiceType.ID, f.Warehouse.ID)
	if stock.AvailableBags != 30 || stock.TotalBags != 30 {
		t.Errorf("stok 30/30 bekleniyordu, total=%d available=%d", stock.TotalBags, stock.AvailableBags)
	}

	var customer models.Customer
	db.First(&customer, f.Customer.ID)
	if customer.CurrentBalance != 900 {
		t.Errorf("müşteri bakiyesi 900 bekleniyordu, %v geldi", customer.CurrentBalance)
	}
}

func TestPostSaleInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	f := seedBase(t, db)
	seedRiceStock(t, db, f.RiceType.ID, f.Warehouse.ID, 30)

	// Stoğun tamamı satılabilir
	if _, err := PostSale(db, PostSaleInput{
		CustomerID:  f.Customer.ID,
		RiceTypeID:  f.RiceType.ID,
		WarehouseID: f.Warehouse.ID,
		NoOfBags:    30,
		PricePerBag: 40,
		SoldDate:    date("2026-02-01"),
	}); err != nil {
		t.Fatalf("stoğun tamamı satılabilmeliydi: %v", err)
	}

	// Stok sıfırken tek çuval bile satılamaz
	_, err := PostSale(db, PostSaleInput{
		CustomerID:  f.Customer.ID,
		RiceTypeID:  f.RiceType.ID,
		WarehouseID: f.Warehouse.ID,
		NoOfBags:    1,
		PricePerBag: 40,
		SoldDate:    date("2026-02-01"),
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("yetersiz stok için ValidationError bekleniyordu, %v geldi", err)
	}

	stock := riceStockFor(t, db, f.RiceType.ID, f.Warehouse.ID)
	if stock.AvailableBags != 0 {
		t.Errorf("available 0 bekleniyordu, %d geldi", stock.AvailableBags)
	}

	var saleCount int64
	db.Model(&models.Sale{}).Count(&saleCount)
	if saleCount != 1 {
		t.Errorf("tek satış kaydı bekleniyordu, %d var", saleCount)
	}
}

func TestPostSaleIdempotentReplay(t *testing.T) {
	db := setupTestDB(t)
	f := seedBase(t, db)
	seedRiceStock(t, db, f.RiceType.ID, f.Warehouse.ID, 50)

	in := PostSaleInput{
		CustomerID:     f.Customer.ID,
		RiceTypeID:     f.RiceType.ID,
		WarehouseID:    f.Warehouse.ID,
		NoOfBags:       10,
		PricePerBag:    40,
		SoldDate:       date("2026-02-01"),
		IdempotencyKey: "sale-replay-1",
	}

	first, err := PostSale(db, in)
	if err != nil {
		t.Fatalf("ilk PostSale hata verdi: %v", err)
	}
	second, err := PostSale(db, in)
	if err != nil {
		t.Fatalf("replay hata verdi: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("replay aynı kaydı döndürmeliydi: %d != %d", first.ID, second.ID)
	}

	stock := riceStockFor(t, db, f.RiceType.ID, f.Warehouse.ID)
	if stock.AvailableBags != 40 {
		t.Errorf("replay stoğu ikinci kez düşmemeli: 40 bekleniyordu, %d geldi", stock.AvailableBags)
	}
}

func TestPostSaleCreditLimit(t *testing.T) {
	db := setupTestDB(t)
	f := seedBase(t, db)
	seedRiceStock(t, db, f.RiceType.ID, f.Warehouse.ID, 100)

	db.Model(&models.Customer{}).Where("id = ?", f.Customer.ID).Update("credit_limit", 1000)

	_, err := PostSale(db, PostSaleInput{
		CustomerID:  f.Customer.ID,
		RiceTypeID:  f.RiceType.ID,
		WarehouseID: f.Warehouse.ID,
		NoOfBags:    30,
		PricePerBag: 50, // 1500 > limit
		SoldDate:    date("2026-02-01"),
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("kredi limiti aşımı için ValidationError bekleniyordu, %v geldi", err)
	}

	// Transaction geri alınmalı: stok ve bakiye değişmemiş olmalı
	stock := riceStockFor(t, db, f.RiceType.ID, f.Warehouse.ID)
	if stock.AvailableBags != 100 {
		t.Errorf("stok değişmemeliydi: 100 bekleniyordu, %d geldi", stock.AvailableBags)
	}
	var customer models.Customer
	db.First(&customer, f.Customer.ID)
	if customer.CurrentBalance != 0 {
		t.Errorf("bakiye değişmemeliydi: 0 bekleniyordu, %v geldi", customer.CurrentBalance)
	}
}

func TestPostMillingMovesStock(t *testing.T) {
	db := setupTestDB(t)
	f := seedBase(t, db)

	if _, err := PostPurchase(db, PostPurchaseInput{
		SupplierID:   f.Supplier.ID,
		PaddyTypeID:  f.PaddyType.ID,
		WarehouseID:  f.Warehouse.ID,
		NoOfBags:     100,
		PricePerBag:  20,
		PurchaseDate: date("2026-01-10"),
	}); err != nil {
		t.Fatalf("PostPurchase hata verdi: %v", err)
	}

	run, err := PostMilling(db, PostMillingInput{
		PaddyTypeID: f.PaddyType.ID,
		RiceTypeID:  f.RiceType.ID,
		WarehouseID: f.Warehouse.ID,
		PaddyBagsIn: 60,
		RiceBagsOut: 40,
		RunDate:     date("2026-01-15"),
	})
	if err != nil {
		t.Fatalf("PostMilling hata verdi: %v", err)
	}
	if run.ID == 0 {
		t.Error("işleme kaydı oluşmalıydı")
	}

	paddy := paddyStockFor(t, db, f.PaddyType.ID, f.Warehouse.ID)
	if paddy.TotalBags != 40 {
		t.Errorf("çeltik stoğu 40 bekleniyordu, %d geldi", paddy.TotalBags)
	}
	rice := riceStockFor(t, db, f.RiceType.ID, f.Warehouse.ID)
	if rice.TotalBags != 40 || rice.AvailableBags != 40 {
		t.Errorf("pirinç stoğu 40/40 bekleniyordu, total=%d available=%d", rice.TotalBags, rice.AvailableBags)
	}

	// Eldekinden fazla çeltik işlenemez
	_, err = PostMilling(db, PostMillingInput{
		PaddyTypeID: f.PaddyType.ID,
		RiceTypeID:  f.RiceType.ID,
		WarehouseID: f.Warehouse.ID,
		PaddyBagsIn: 41,
		RiceBagsOut: 25,
		RunDate:     date("2026-01-16"),
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("yetersiz çeltik için ValidationError bekleniyordu, %v geldi", err)
	}
}

func TestConcurrentSalesNeverOversell(t *testing.T) {
	db := setupTestDB(t)
	f := seedBase(t, db)
	seedRiceStock(t, db, f.RiceType.ID, f.Warehouse.ID, 50)

	const workers = 8
	const bagsPerSale = 10 // 50 çuvaldan en fazla 5 satış çıkar

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = PostSale(db, PostSaleInput{
				CustomerID:  f.Customer.ID,
				RiceTypeID:  f.RiceType.ID,
				WarehouseID: f.Warehouse.ID,
				NoOfBags:    bagsPerSale,
				PricePerBag: 40,
				SoldDate:    date("2026-02-01"),
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	if succeeded != 5 {
		t.Errorf("50 çuvaldan tam 5 satış çıkmalıydı, %d çıktı", succeeded)
	}

	stock := riceStockFor(t, db, f.RiceType.ID, f.Warehouse.ID)
	if stock.AvailableBags != 0 {
		t.Errorf("available 0 bekleniyordu, %d geldi", stock.AvailableBags)
	}

	var totalSold int64
	db.Model(&models.Sale{}).Count(&totalSold)
	if totalSold != 5 {
		t.Errorf("5 satış kaydı bekleniyordu, %d var", totalSold)
	}
}
