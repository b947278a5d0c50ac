package expense

import (
	"fmt"
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
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate hatası: %v", err)
	}
	return db
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestMonthlySummary(t *testing.T) {
	db := setupTestDB(t)

	expenses := []models.Expense{
		{Category: models.ExpenseElectricity, Amount: 300, ExpenseDate: date("2026-01-05"), PaymentMode: models.PaymentModeCash},
		{Category: models.ExpenseSalary, Amount: 1200, ExpenseDate: date("2026-01-28"), PaymentMode: models.PaymentModeBankTransfer},
		{Category: models.ExpenseElectricity, Amount: 350, ExpenseDate: date("2026-02-05"), PaymentMode: models.PaymentModeCash},
		// Başka yıl, özete girmemeli
		{Category: models.ExpenseTransport, Amount: 500, ExpenseDate: date("2025-12-20"), PaymentMode: models.PaymentModeCash},
	}
	for i := range expenses {
		if err := db.Create(&expenses[i]).Error; err != nil {
			t.Fatalf("gider seed hatası: %v", err)
		}
	}

	rows, err := MonthlySummary(db, 2026)
	if err != nil {
		t.Fatalf("MonthlySummary hata verdi: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("2 ay bekleniyordu, %d geldi", len(rows))
	}

	jan := rows[0]
	if jan.Month != "2026-01" || jan.Total != 1500 {
		t.Errorf("2026-01 toplam 1500 bekleniyordu, %+v geldi", jan)
	}
	if jan.ByCategory["electricity"] != 300 || jan.ByCategory["salary"] != 1200 {
		t.Errorf("kalem dağılımı yanlış: %+v", jan.ByCategory)
	}

	feb := rows[1]
	if feb.Month != "2026-02" || feb.Total != 350 {
		t.Errorf("2026-02 toplam 350 bekleniyordu, %+v geldi", feb)
	}
}

func TestMonthlySummaryEmptyYear(t *testing.T) {
	db := setupTestDB(t)

	rows, err := MonthlySummary(db, 2026)
	if err != nil {
		t.Fatalf("MonthlySummary hata verdi: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Errorf("boş yılda boş slice bekleniyordu, %v geldi", rows)
	}
}
