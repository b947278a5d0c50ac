package expense

import (
	"strconv"
	"time"

	"ricemill-backend/internal/database"
	"ricemill-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreateExpenseRequest struct {
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	ExpenseDate string  `json:"expense_date"`
	Description string  `json:"description"`
	PaidTo      string  `json:"paid_to"`
	PaymentMode string  `json:"payment_mode"`
}

type ExpenseResponse struct {
	ID          uint    `json:"id"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	ExpenseDate string  `json:"expense_date"`
	Description string  `json:"description"`
	PaidTo      string  `json:"paid_to"`
	PaymentMode string  `json:"payment_mode"`
}

func toExpenseResponse(e models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Category:    string(e.Category),
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate.Format("2006-01-02"),
		Description: e.Description,
		PaidTo:      e.PaidTo,
		PaymentMode: string(e.PaymentMode),
	}
}

func validCategory(c models.ExpenseCategory) bool {
	for _, cat := range models.ExpenseCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// -------------------------
// Expense Handlers
// -------------------------

// POST /api/expenses
func CreateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		category := models.ExpenseCategory(body.Category)
		if !validCategory(category) {
			return fiber.NewError(fiber.StatusBadRequest, "category geçersiz")
		}
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "amount 0'dan büyük olmalı")
		}

		expenseDate, err := time.Parse("2006-01-02", body.ExpenseDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		mode := models.PaymentMode(body.PaymentMode)
		if mode == "" {
			mode = models.PaymentModeCash
		}
		switch mode {
		case models.PaymentModeCash, models.PaymentModeCheque, models.PaymentModeBankTransfer, models.PaymentModeUPI:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "payment_mode geçersiz")
		}

		expense := models.Expense{
			Category:    category,
			Amount:      body.Amount,
			ExpenseDate: expenseDate,
			Description: body.Description,
			PaidTo:      body.PaidTo,
			PaymentMode: mode,
		}

		if err := database.DB.Create(&expense).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gider kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(toExpenseResponse(expense))
	}
}

// GET /api/expenses?category=...&from=...&to=...
func ListExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Expense{})

		if categoryStr := c.Query("category"); categoryStr != "" {
			if !validCategory(models.ExpenseCategory(categoryStr)) {
				return fiber.NewError(fiber.StatusBadRequest, "category geçersiz")
			}
			dbq = dbq.Where("category = ?", categoryStr)
		}

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from geçersiz")
			}
			dbq = dbq.Where("expense_date >= ?", from)
		}

		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to geçersiz")
			}
			dbq = dbq.Where("expense_date <= ?", to)
		}

		var expenses []models.Expense
		if err := dbq.Order("expense_date desc, id desc").Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Giderler listelenemedi")
		}

		resp := make([]ExpenseResponse, 0, len(expenses))
		for _, e := range expenses {
			resp = append(resp, toExpenseResponse(e))
		}

		return c.JSON(resp)
	}
}

// -------------------------
// Monthly Summary
// -------------------------

type MonthlySummaryRow struct {
	Month      string             `json:"month"` // "2026-08"
	Total      float64            `json:"total"`
	ByCategory map[string]float64 `json:"by_category"`
}

// MonthlySummary - Yıl içindeki giderleri ay ve kaleme göre toplar.
// Gruplama Go tarafında yapılır, tarih fonksiyonları sürücüye göre
// değiştiği için SQL'e gömülmez.
func MonthlySummary(db *gorm.DB, year int) ([]MonthlySummaryRow, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var expenses []models.Expense
	if err := db.
		Where("expense_date >= ? AND expense_date < ?", start, end).
		Order("expense_date asc").
		Find(&expenses).Error; err != nil {
		return nil, err
	}

	byMonth := make(map[string]*MonthlySummaryRow)
	order := make([]string, 0, 12)
	for _, e := range expenses {
		key := e.ExpenseDate.Format("2006-01")
		row, ok := byMonth[key]
		if !ok {
			row = &MonthlySummaryRow{Month: key, ByCategory: make(map[string]float64)}
			byMonth[key] = row
			order = append(order, key)
		}
		row.Total += e.Amount
		row.ByCategory[string(e.Category)] += e.Amount
	}

	rows := make([]MonthlySummaryRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, *byMonth[key])
	}
	return rows, nil
}

// GET /api/expenses/summary/monthly?year=2026
func MonthlySummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year := time.Now().Year()
		if yearStr := c.Query("year"); yearStr != "" {
			y, err := strconv.Atoi(yearStr)
			if err != nil || y < 2000 || y > 2100 {
				return fiber.NewError(fiber.StatusBadRequest, "year geçersiz")
			}
			year = y
		}

		rows, err := MonthlySummary(database.DB, year)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gider özeti oluşturulamadı")
		}

		return c.JSON(rows)
	}
}
