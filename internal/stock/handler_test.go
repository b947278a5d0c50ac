package stock

import (
	"fmt"
	"testing"

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
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate hatası: %v", err)
	}
	return db
}

func TestRiceStockSummaryEmpty(t *testing.T) {
	db := setupTestDB(t)

	rows, err := RiceStockSummary(db)
	if err != nil {
		t.Fatalf("RiceStockSummary hata verdi: %v", err)
	}
	if rows == nil {
		t.Fatal("boş veritabanında nil değil, boş slice dönmeli")
	}
	if len(rows) != 0 {
		t.Errorf("boş veritabanında 0 satır bekleniyordu, %d geldi", len(rows))
	}
}

func TestRiceStockSummaryGroupsAcrossWarehouses(t *testing.T) {
	db := setupTestDB(t)

	baldo := models.RiceType{Name: "Baldo", IsActive: true}
	osmancik := models.RiceType{Name: "Osmancık", IsActive: true}
	depo1 := models.Warehouse{Name: "Depo 1", IsActive: true}
	depo2 := models.Warehouse{Name: "Depo 2", IsActive: true}
	for _, m := range []any{&baldo, &osmancik, &depo1, &depo2} {
		if err := db.Create(m).Error; err != nil {
			t.Fatalf("seed hatası: %v", err)
		}
	}

	stocks := []models.RiceStock{
		{RiceTypeID: baldo.ID, WarehouseID: depo1.ID, TotalBags: 100, AvailableBags: 80, ReservedBags: 20},
		{RiceTypeID: baldo.ID, WarehouseID: depo2.ID, TotalBags: 50, AvailableBags: 50},
		{RiceTypeID: osmancik.ID, WarehouseID: depo1.ID, TotalBags: 30, AvailableBags: 30},
	}
	for i := range stocks {
		if err := db.Create(&stocks[i]).Error; err != nil {
			t.Fatalf("stok seed hatası: %v", err)
		}
	}

	rows, err := RiceStockSummary(db)
	if err != nil {
		t.Fatalf("RiceStockSummary hata verdi: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("2 satır bekleniyordu, %d geldi", len(rows))
	}

	// İsme göre sıralı: Baldo önce gelir
	if rows[0].RiceTypeName != "Baldo" || rows[0].TotalBags != 150 || rows[0].AvailableBags != 130 {
		t.Errorf("Baldo 150/130 bekleniyordu, %+v geldi", rows[0])
	}
	if rows[1].RiceTypeName != "Osmancık" || rows[1].TotalBags != 30 {
		t.Errorf("Osmancık 30 bekleniyordu, %+v geldi", rows[1])
	}
}
