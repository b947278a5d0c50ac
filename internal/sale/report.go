package sale

import (
	"fmt"
	"time"

	"ricemill-backend/internal/database"
	"ricemill-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// -------------------------
// Sales Report
// -------------------------

type SalesReportRow struct {
	RiceTypeID      uint    `json:"rice_type_id"`
	RiceTypeName    string  `json:"rice_type_name"`
	TotalBags       int     `json:"total_bags"`
	TotalAmount     float64 `json:"total_amount"`
	TotalCommission float64 `json:"total_commission"`
}

type SalesReportResponse struct {
	From        string           `json:"from,omitempty"`
	To          string           `json:"to,omitempty"`
	Rows        []SalesReportRow `json:"rows"`
	TotalBags   int              `json:"total_bags"`
	TotalAmount float64          `json:"total_amount"`
}

// SalesReport - Tarih aralığındaki satışları pirinç çeşidine göre gruplar.
func SalesReport(db *gorm.DB, from, to *time.Time) ([]SalesReportRow, error) {
	dbq := db.Model(&models.Sale{}).
		Select("sales.rice_type_id, rice_types.name as rice_type_name, " +
			"SUM(sales.no_of_bags) as total_bags, SUM(sales.total_amount) as total_amount, " +
			"SUM(sales.broker_commission) as total_commission").
		Joins("JOIN rice_types ON rice_types.id = sales.rice_type_id").
		Group("sales.rice_type_id, rice_types.name").
		Order("rice_types.name asc")

	if from != nil {
		dbq = dbq.Where("sales.sold_date >= ?", *from)
	}
	if to != nil {
		dbq = dbq.Where("sales.sold_date <= ?", *to)
	}

	rows := make([]SalesReportRow, 0)
	if err := dbq.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func parseReportRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromStr := c.Query("from"); fromStr != "" {
		f, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "from geçersiz")
		}
		from = &f
	}
	if toStr := c.Query("to"); toStr != "" {
		t, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "to geçersiz")
		}
		to = &t
	}
	return from, to, nil
}

// GET /api/reports/sales?from=...&to=...
func SalesReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := parseReportRange(c)
		if err != nil {
			return err
		}

		rows, err := SalesReport(database.DB, from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor oluşturulamadı")
		}

		resp := SalesReportResponse{Rows: rows}
		if from != nil {
			resp.From = from.Format("2006-01-02")
		}
		if to != nil {
			resp.To = to.Format("2006-01-02")
		}
		for _, r := range rows {
			resp.TotalBags += r.TotalBags
			resp.TotalAmount += r.TotalAmount
		}

		return c.JSON(resp)
	}
}

// GET /api/reports/sales/export?from=...&to=...
// Satış satırlarını xlsx olarak indirir.
func ExportSalesReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := parseReportRange(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.Sale{}).
			Preload("Customer").
			Preload("RiceType").
			Preload("Warehouse")
		if from != nil {
			dbq = dbq.Where("sold_date >= ?", *from)
		}
		if to != nil {
			dbq = dbq.Where("sold_date <= ?", *to)
		}

		var sales []models.Sale
		if err := dbq.Order("sold_date asc, id asc").Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satışlar okunamadı")
		}

		f := excelize.NewFile()
		defer f.Close()

		const sheet = "Satislar"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"Tarih", "Müşteri", "Pirinç Çeşidi", "Depo", "Çuval", "Birim Fiyat", "Toplam Tutar", "Komisyon", "Ödeme Durumu"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for i, s := range sales {
			row := i + 2
			values := []any{
				s.SoldDate.Format("2006-01-02"),
				s.Customer.Name,
				s.RiceType.Name,
				s.Warehouse.Name,
				s.NoOfBags,
				s.PricePerBag,
				s.TotalAmount,
				s.BrokerCommission,
				string(s.PaymentStatus),
			}
			for j, v := range values {
				cell, _ := excelize.CoordinatesToCellName(j+1, row)
				f.SetCellValue(sheet, cell, v)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya oluşturulamadı")
		}

		filename := fmt.Sprintf("satis-raporu-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Send(buf.Bytes())
	}
}
