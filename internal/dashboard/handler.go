package dashboard

import (
	"ricemill-backend/internal/database"
	"ricemill-backend/internal/models"
	"ricemill-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Dashboard
// -------------------------

type recentSale struct {
	ID           uint    `json:"id"`
	CustomerName string  `json:"customer_name"`
	RiceTypeName string  `json:"rice_type_name"`
	NoOfBags     int     `json:"no_of_bags"`
	TotalAmount  float64 `json:"total_amount"`
	SoldDate     string  `json:"sold_date"`
}

type recentPurchase struct {
	ID            uint    `json:"id"`
	SupplierName  string  `json:"supplier_name"`
	PaddyTypeName string  `json:"paddy_type_name"`
	NoOfBags      int     `json:"no_of_bags"`
	TotalAmount   float64 `json:"total_amount"`
	PurchaseDate  string  `json:"purchase_date"`
}

type DashboardResponse struct {
	SupplierCount    int64                   `json:"supplier_count"`
	CustomerCount    int64                   `json:"customer_count"`
	BrokerCount      int64                   `json:"broker_count"`
	TotalReceivable  float64                 `json:"total_receivable"`
	TotalPayable     float64                 `json:"total_payable"`
	RecentSales      []recentSale            `json:"recent_sales"`
	RecentPurchases  []recentPurchase        `json:"recent_purchases"`
	RiceStockSummary []stock.StockSummaryRow `json:"rice_stock_summary"`
}

// GET /api/dashboard
func DashboardHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		db := database.DB
		var resp DashboardResponse

		if err := db.Model(&models.Supplier{}).Where("is_active = ?", true).Count(&resp.SupplierCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Özet oluşturulamadı")
		}
		if err := db.Model(&models.Customer{}).Where("is_active = ?", true).Count(&resp.CustomerCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Özet oluşturulamadı")
		}
		if err := db.Model(&models.Broker{}).Where("is_active = ?", true).Count(&resp.BrokerCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Özet oluşturulamadı")
		}

		// Alacak: müşteri bakiyeleri. Borç: alımların ödenmemiş kısmı.
		if err := db.Model(&models.Customer{}).
			Select("COALESCE(SUM(current_balance), 0)").
			Scan(&resp.TotalReceivable).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Özet oluşturulamadı")
		}
		if err := db.Model(&models.Purchase{}).
			Select("COALESCE(SUM(total_amount - paid_amount), 0)").
			Scan(&resp.TotalPayable).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Özet oluşturulamadı")
		}

		var sales []models.Sale
		if err := db.Preload("Customer").Preload("RiceType").
			Order("sold_date desc, id desc").Limit(5).Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Özet oluşturulamadı")
		}
		resp.RecentSales = make([]recentSale, 0, len(sales))
		for _, s := range sales {
			resp.RecentSales = append(resp.RecentSales, recentSale{
				ID:           s.ID,
				CustomerName: s.Customer.Name,
				RiceTypeName: s.RiceType.Name,
				NoOfBags:     s.NoOfBags,
				TotalAmount:  s.TotalAmount,
				SoldDate:     s.SoldDate.Format("2006-01-02"),
			})
		}

		var purchases []models.Purchase
		if err := db.Preload("Supplier").Preload("PaddyType").
			Order("purchase_date desc, id desc").Limit(5).Find(&purchases).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Özet oluşturulamadı")
		}
		resp.RecentPurchases = make([]recentPurchase, 0, len(purchases))
		for _, p := range purchases {
			resp.RecentPurchases = append(resp.RecentPurchases, recentPurchase{
				ID:            p.ID,
				SupplierName:  p.Supplier.Name,
				PaddyTypeName: p.PaddyType.Name,
				NoOfBags:      p.NoOfBags,
				TotalAmount:   p.TotalAmount,
				PurchaseDate:  p.PurchaseDate.Format("2006-01-02"),
			})
		}

		summary, err := stock.RiceStockSummary(db)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Özet oluşturulamadı")
		}
		resp.RiceStockSummary = summary

		return c.JSON(resp)
	}
}
