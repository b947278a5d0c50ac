package payment

import (
	"fmt"
	"time"

	"ricemill-backend/internal/database"
	"ricemill-backend/internal/ledger"
	"ricemill-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreatePaymentRequest struct {
	PaymentType  string  `json:"payment_type"` // purchase | sale | misc | broker_commission
	RelatedID    uint    `json:"related_id"`
	Amount       float64 `json:"amount"`
	PaymentDate  string  `json:"payment_date"`
	PaidTo       string  `json:"paid_to"`
	PaidBy       string  `json:"paid_by"`
	PaymentMode  string  `json:"payment_mode"` // cash | cheque | bank_transfer | upi
	ChequeNumber string  `json:"cheque_number"`
	BankName     string  `json:"bank_name"`
	Remarks      string  `json:"remarks"`
}

type PaymentResponse struct {
	ID           uint    `json:"id"`
	PaymentType  string  `json:"payment_type"`
	RelatedID    uint    `json:"related_id,omitempty"`
	Amount       float64 `json:"amount"`
	PaymentDate  string  `json:"payment_date"`
	PaidTo       string  `json:"paid_to"`
	PaidBy       string  `json:"paid_by"`
	PaymentMode  string  `json:"payment_mode"`
	ChequeNumber string  `json:"cheque_number,omitempty"`
	BankName     string  `json:"bank_name,omitempty"`
	Remarks      string  `json:"remarks"`
}

func toPaymentResponse(p models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID,
		PaymentType:  string(p.PaymentType),
		RelatedID:    p.RelatedID,
		Amount:       p.Amount,
		PaymentDate:  p.PaymentDate.Format("2006-01-02"),
		PaidTo:       p.PaidTo,
		PaidBy:       p.PaidBy,
		PaymentMode:  string(p.PaymentMode),
		ChequeNumber: p.ChequeNumber,
		BankName:     p.BankName,
		Remarks:      p.Remarks,
	}
}

// -------------------------
// Payment Handlers
// -------------------------

// POST /api/payments
func CreatePaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		paymentDate, err := time.Parse("2006-01-02", body.PaymentDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		payment, err := ledger.RecordPayment(database.DB, ledger.RecordPaymentInput{
			PaymentType:  models.PaymentType(body.PaymentType),
			RelatedID:    body.RelatedID,
			Amount:       body.Amount,
			PaymentDate:  paymentDate,
			PaidTo:       body.PaidTo,
			PaidBy:       body.PaidBy,
			PaymentMode:  models.PaymentMode(body.PaymentMode),
			ChequeNumber: body.ChequeNumber,
			BankName:     body.BankName,
			Remarks:      body.Remarks,
		})
		if err != nil {
			if status, ok := ledger.HTTPStatus(err); ok {
				return fiber.NewError(status, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Ödeme kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(toPaymentResponse(*payment))
	}
}

// GET /api/payments?type=...&related_id=...&from=...&to=...
func ListPaymentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Payment{})

		if typeStr := c.Query("type"); typeStr != "" {
			switch models.PaymentType(typeStr) {
			case models.PaymentTypePurchase, models.PaymentTypeSale, models.PaymentTypeMisc, models.PaymentTypeBrokerCommission:
				dbq = dbq.Where("payment_type = ?", typeStr)
			default:
				return fiber.NewError(fiber.StatusBadRequest, "type geçersiz")
			}
		}

		if relatedIDStr := c.Query("related_id"); relatedIDStr != "" {
			var rid uint
			if _, err := fmt.Sscan(relatedIDStr, &rid); err != nil || rid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "related_id geçersiz")
			}
			dbq = dbq.Where("related_id = ?", rid)
		}

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from geçersiz")
			}
			dbq = dbq.Where("payment_date >= ?", from)
		}

		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to geçersiz")
			}
			dbq = dbq.Where("payment_date <= ?", to)
		}

		var payments []models.Payment
		if err := dbq.Order("payment_date desc, id desc").Find(&payments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ödemeler listelenemedi")
		}

		resp := make([]PaymentResponse, 0, len(payments))
		for _, p := range payments {
			resp = append(resp, toPaymentResponse(p))
		}

		return c.JSON(resp)
	}
}
