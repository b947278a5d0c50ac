package database

import (
	"log"

	"ricemill-backend/internal/config"
	"ricemill-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Migrate - Tüm tabloları oluşturur/günceller. Testlerde sqlite ile de çağrılır.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Supplier{},
		&models.Broker{},
		&models.Customer{},
		&models.PaddyType{},
		&models.RiceType{},
		&models.Warehouse{},
		&models.Purchase{},
		&models.Sale{},
		&models.PaddyStock{},
		&models.RiceStock{},
		&models.MillingRun{},
		&models.Payment{},
		&models.Expense{},
	)
}
