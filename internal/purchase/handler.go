package purchase

import (
	"fmt"
	"time"

	"ricemill-backend/internal/database"
	"ricemill-backend/internal/ledger"
	"ricemill-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreatePurchaseRequest struct {
	SupplierID      uint     `json:"supplier_id"`
	PaddyTypeID     uint     `json:"paddy_type_id"`
	WarehouseID     uint     `json:"warehouse_id"`
	NoOfBags        int      `json:"no_of_bags"`
	PricePerBag     float64  `json:"price_per_bag"`
	PurchaseDate    string   `json:"purchase_date"` // "2025-12-09"
	DeliveryDate    string   `json:"delivery_date"` // opsiyonel
	QualityGrade    string   `json:"quality_grade"` // A | B | C, boşsa B
	MoistureContent *float64 `json:"moisture_content"`
	Remarks         string   `json:"remarks"`
	IdempotencyKey  string   `json:"idempotency_key"` // boşsa sunucu üretir
}

type PurchaseResponse struct {
	ID              uint     `json:"id"`
	SupplierID      uint     `json:"supplier_id"`
	SupplierName    string   `json:"supplier_name,omitempty"`
	PaddyTypeID     uint     `json:"paddy_type_id"`
	PaddyTypeName   string   `json:"paddy_type_name,omitempty"`
	WarehouseID     uint     `json:"warehouse_id"`
	WarehouseName   string   `json:"warehouse_name,omitempty"`
	NoOfBags        int      `json:"no_of_bags"`
	PricePerBag     float64  `json:"price_per_bag"`
	TotalAmount     float64  `json:"total_amount"`
	PurchaseDate    string   `json:"purchase_date"`
	DeliveryDate    string   `json:"delivery_date,omitempty"`
	PaymentStatus   string   `json:"payment_status"`
	PaidAmount      float64  `json:"paid_amount"`
	QualityGrade    string   `json:"quality_grade"`
	MoistureContent *float64 `json:"moisture_content,omitempty"`
	Remarks         string   `json:"remarks"`
	IdempotencyKey  string   `json:"idempotency_key,omitempty"`
}

func toPurchaseResponse(p models.Purchase) PurchaseResponse {
	resp := PurchaseResponse{
		ID:              p.ID,
		SupplierID:      p.SupplierID,
		SupplierName:    p.Supplier.Name,
		PaddyTypeID:     p.PaddyTypeID,
		PaddyTypeName:   p.PaddyType.Name,
		WarehouseID:     p.WarehouseID,
		WarehouseName:   p.Warehouse.Name,
		NoOfBags:        p.NoOfBags,
		PricePerBag:     p.PricePerBag,
		TotalAmount:     p.TotalAmount,
		PurchaseDate:    p.PurchaseDate.Format("2006-01-02"),
		PaymentStatus:   string(p.PaymentStatus),
		PaidAmount:      p.PaidAmount,
		QualityGrade:    string(p.QualityGrade),
		MoistureContent: p.MoistureContent,
		Remarks:         p.Remarks,
	}
	if p.DeliveryDate != nil {
		resp.DeliveryDate = p.DeliveryDate.Format("2006-01-02")
	}
	if p.IdempotencyKey != nil {
		resp.IdempotencyKey = *p.IdempotencyKey
	}
	return resp
}

// -------------------------
// Purchase Handlers
// -------------------------

// POST /api/purchases
func CreatePurchaseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePurchaseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.SupplierID == 0 || body.PaddyTypeID == 0 || body.WarehouseID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "supplier_id, paddy_type_id ve warehouse_id zorunlu")
		}

		purchaseDate, err := time.Parse("2006-01-02", body.PurchaseDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		var deliveryDate *time.Time
		if body.DeliveryDate != "" {
			d, err := time.Parse("2006-01-02", body.DeliveryDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "delivery_date formatı 'YYYY-MM-DD' olmalı")
			}
			deliveryDate = &d
		}

		// Retry idempotence: istemci key vermediyse sunucu üretir,
		// response'ta geri döner ki tekrar denemede aynı key kullanılsın.
		key := body.IdempotencyKey
		if key == "" {
			key = uuid.NewString()
		}

		purchase, err := ledger.PostPurchase(database.DB, ledger.PostPurchaseInput{
			SupplierID:      body.SupplierID,
			PaddyTypeID:     body.PaddyTypeID,
			WarehouseID:     body.WarehouseID,
			NoOfBags:        body.NoOfBags,
			PricePerBag:     body.PricePerBag,
			PurchaseDate:    purchaseDate,
			DeliveryDate:    deliveryDate,
			QualityGrade:    models.QualityGrade(body.QualityGrade),
			MoistureContent: body.MoistureContent,
			Remarks:         body.Remarks,
			IdempotencyKey:  key,
		})
		if err != nil {
			if status, ok := ledger.HTTPStatus(err); ok {
				return fiber.NewError(status, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Alım kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(toPurchaseResponse(*purchase))
	}
}

// GET /api/purchases?from=...&to=...&supplier_id=...
func ListPurchasesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fromStr := c.Query("from")
		toStr := c.Query("to")
		supplierIDStr := c.Query("supplier_id")

		dbq := database.DB.Model(&models.Purchase{}).
			Preload("Supplier").
			Preload("PaddyType").
			Preload("Warehouse")

		if fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from geçersiz")
			}
			dbq = dbq.Where("purchase_date >= ?", from)
		}

		if toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to geçersiz")
			}
			dbq = dbq.Where("purchase_date <= ?", to)
		}

		if supplierIDStr != "" {
			var sid uint
			if _, err := fmt.Sscan(supplierIDStr, &sid); err != nil || sid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "supplier_id geçersiz")
			}
			dbq = dbq.Where("supplier_id = ?", sid)
		}

		var rows []models.Purchase
		if err := dbq.Order("purchase_date desc, id desc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Alımlar listelenemedi")
		}

		resp := make([]PurchaseResponse, 0, len(rows))
		for _, r := range rows {
			resp = append(resp, toPurchaseResponse(r))
		}

		return c.JSON(resp)
	}
}
