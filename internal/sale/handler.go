package sale

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

type CreateSaleRequest struct {
	CustomerID       uint     `json:"customer_id"`
	BrokerID         *uint    `json:"broker_id"`
	RiceTypeID       uint     `json:"rice_type_id"`
	WarehouseID      uint     `json:"warehouse_id"`
	NoOfBags         int      `json:"no_of_bags"`
	PricePerBag      float64  `json:"price_per_bag"`
	CDAmount         float64  `json:"cd_amount"`
	BrokerCommission *float64 `json:"broker_commission"` // boşsa komisyoncu oranından hesaplanır
	SoldDate         string   `json:"sold_date"`
	DeliveryDate     string   `json:"delivery_date"`
	DeliveryAddress  string   `json:"delivery_address"`
	Remarks          string   `json:"remarks"`
	IdempotencyKey   string   `json:"idempotency_key"`
}

type SaleResponse struct {
	ID               uint    `json:"id"`
	CustomerID       uint    `json:"customer_id"`
	CustomerName     string  `json:"customer_name,omitempty"`
	BrokerID         *uint   `json:"broker_id"`
	BrokerName       string  `json:"broker_name,omitempty"`
	RiceTypeID       uint    `json:"rice_type_id"`
	RiceTypeName     string  `json:"rice_type_name,omitempty"`
	WarehouseID      uint    `json:"warehouse_id"`
	WarehouseName    string  `json:"warehouse_name,omitempty"`
	NoOfBags         int     `json:"no_of_bags"`
	PricePerBag      float64 `json:"price_per_bag"`
	TotalAmount      float64 `json:"total_amount"`
	CDAmount         float64 `json:"cd_amount"`
	BrokerCommission float64 `json:"broker_commission"`
	SoldDate         string  `json:"sold_date"`
	DeliveryDate     string  `json:"delivery_date,omitempty"`
	PaymentStatus    string  `json:"payment_status"`
	PaidAmount       float64 `json:"paid_amount"`
	DeliveryAddress  string  `json:"delivery_address"`
	Remarks          string  `json:"remarks"`
	IdempotencyKey   string  `json:"idempotency_key,omitempty"`
}

func toSaleResponse(s models.Sale) SaleResponse {
	resp := SaleResponse{
		ID:               s.ID,
		CustomerID:       s.CustomerID,
		CustomerName:     s.Customer.Name,
		BrokerID:         s.BrokerID,
		RiceTypeID:       s.RiceTypeID,
		RiceTypeName:     s.RiceType.Name,
		WarehouseID:      s.WarehouseID,
		WarehouseName:    s.Warehouse.Name,
		NoOfBags:         s.NoOfBags,
		PricePerBag:      s.PricePerBag,
		TotalAmount:      s.TotalAmount,
		CDAmount:         s.CDAmount,
		BrokerCommission: s.BrokerCommission,
		SoldDate:         s.SoldDate.Format("2006-01-02"),
		PaymentStatus:    string(s.PaymentStatus),
		PaidAmount:       s.PaidAmount,
		DeliveryAddress:  s.DeliveryAddress,
		Remarks:          s.Remarks,
	}
	if s.Broker != nil {
		resp.BrokerName = s.Broker.Name
	}
	if s.DeliveryDate != nil {
		resp.DeliveryDate = s.DeliveryDate.Format("2006-01-02")
	}
	if s.IdempotencyKey != nil {
		resp.IdempotencyKey = *s.IdempotencyKey
	}
	return resp
}

// -------------------------
// Sale Handlers
// -------------------------

// POST /api/sales
func CreateSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.CustomerID == 0 || body.RiceTypeID == 0 || body.WarehouseID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "customer_id, rice_type_id ve warehouse_id zorunlu")
		}

		soldDate, err := time.Parse("2006-01-02", body.SoldDate)
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

		// Komisyon verilmediyse komisyoncunun oranından hesapla
		commission := 0.0
		if body.BrokerCommission != nil {
			commission = *body.BrokerCommission
		} else if body.BrokerID != nil {
			var broker models.Broker
			if err := database.DB.First(&broker, *body.BrokerID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Komisyoncu bulunamadı")
			}
			commission = float64(body.NoOfBags) * body.PricePerBag * broker.CommissionRate / 100
		}

		key := body.IdempotencyKey
		if key == "" {
			key = uuid.NewString()
		}

		sale, err := ledger.PostSale(database.DB, ledger.PostSaleInput{
			CustomerID:       body.CustomerID,
			BrokerID:         body.BrokerID,
			RiceTypeID:       body.RiceTypeID,
			WarehouseID:      body.WarehouseID,
			NoOfBags:         body.NoOfBags,
			PricePerBag:      body.PricePerBag,
			CDAmount:         body.CDAmount,
			BrokerCommission: commission,
			SoldDate:         soldDate,
			DeliveryDate:     deliveryDate,
			DeliveryAddress:  body.DeliveryAddress,
			Remarks:          body.Remarks,
			IdempotencyKey:   key,
		})
		if err != nil {
			if status, ok := ledger.HTTPStatus(err); ok {
				return fiber.NewError(status, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Satış kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(toSaleResponse(*sale))
	}
}

// GET /api/sales?from=...&to=...&customer_id=...
func ListSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Sale{}).
			Preload("Customer").
			Preload("Broker").
			Preload("RiceType").
			Preload("Warehouse")

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from geçersiz")
			}
			dbq = dbq.Where("sold_date >= ?", from)
		}

		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to geçersiz")
			}
			dbq = dbq.Where("sold_date <= ?", to)
		}

		if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
			var cid uint
			if _, err := fmt.Sscan(customerIDStr, &cid); err != nil || cid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "customer_id geçersiz")
			}
			dbq = dbq.Where("customer_id = ?", cid)
		}

		var rows []models.Sale
		if err := dbq.Order("sold_date desc, id desc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satışlar listelenemedi")
		}

		resp := make([]SaleResponse, 0, len(rows))
		for _, r := range rows {
			resp = append(resp, toSaleResponse(r))
		}

		return c.JSON(resp)
	}
}
