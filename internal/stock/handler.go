package stock

import (
	"ricemill-backend/internal/database"
	"ricemill-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// -------------------------
// Response Types
// -------------------------

type RiceStockResponse struct {
	ID            uint   `json:"id"`
	RiceTypeID    uint   `json:"rice_type_id"`
	RiceTypeName  string `json:"rice_type_name"`
	WarehouseID   uint   `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	TotalBags     int    `json:"total_bags"`
	ReservedBags  int    `json:"reserved_bags"`
	AvailableBags int    `json:"available_bags"`
	UpdatedAt     string `json:"updated_at"`
}

type PaddyStockResponse struct {
	ID            uint   `json:"id"`
	PaddyTypeID   uint   `json:"paddy_type_id"`
	PaddyTypeName string `json:"paddy_type_name"`
	WarehouseID   uint   `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	TotalBags     int    `json:"total_bags"`
	UpdatedAt     string `json:"updated_at"`
}

type StockSummaryRow struct {
	RiceTypeID    uint   `json:"rice_type_id"`
	RiceTypeName  string `json:"rice_type_name"`
	TotalBags     int    `json:"total_bags"`
	AvailableBags int    `json:"available_bags"`
}

// RiceStockSummary - Depolar genelinde pirinç çeşidine göre toplam stok.
func RiceStockSummary(db *gorm.DB) ([]StockSummaryRow, error) {
	rows := make([]StockSummaryRow, 0)
	err := db.Model(&models.RiceStock{}).
		Select("rice_stocks.rice_type_id, rice_types.name as rice_type_name, " +
			"SUM(rice_stocks.total_bags) as total_bags, SUM(rice_stocks.available_bags) as available_bags").
		Joins("JOIN rice_types ON rice_types.id = rice_stocks.rice_type_id").
		Group("rice_stocks.rice_type_id, rice_types.name").
		Order("rice_types.name asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// -------------------------
// Stock Handlers
// -------------------------

// GET /api/stock/rice
func ListRiceStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var stocks []models.RiceStock
		if err := database.DB.
			Preload("RiceType").
			Preload("Warehouse").
			Order("id asc").
			Find(&stocks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok okunamadı")
		}

		resp := make([]RiceStockResponse, 0, len(stocks))
		for _, s := range stocks {
			resp = append(resp, RiceStockResponse{
				ID:            s.ID,
				RiceTypeID:    s.RiceTypeID,
				RiceTypeName:  s.RiceType.Name,
				WarehouseID:   s.WarehouseID,
				WarehouseName: s.Warehouse.Name,
				TotalBags:     s.TotalBags,
				ReservedBags:  s.ReservedBags,
				AvailableBags: s.AvailableBags,
				UpdatedAt:     s.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
			})
		}

		return c.JSON(resp)
	}
}

// GET /api/stock/paddy
func ListPaddyStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var stocks []models.PaddyStock
		if err := database.DB.
			Preload("PaddyType").
			Preload("Warehouse").
			Order("id asc").
			Find(&stocks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok okunamadı")
		}

		resp := make([]PaddyStockResponse, 0, len(stocks))
		for _, s := range stocks {
			resp = append(resp, PaddyStockResponse{
				ID:            s.ID,
				PaddyTypeID:   s.PaddyTypeID,
				PaddyTypeName: s.PaddyType.Name,
				WarehouseID:   s.WarehouseID,
				WarehouseName: s.Warehouse.Name,
				TotalBags:     s.TotalBags,
				UpdatedAt:     s.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
			})
		}

		return c.JSON(resp)
	}
}

// GET /api/stock/summary
func StockSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := RiceStockSummary(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok özeti oluşturulamadı")
		}
		return c.JSON(rows)
	}
}
