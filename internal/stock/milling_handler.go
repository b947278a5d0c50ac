package stock

import (
	"time"

	"ricemill-backend/internal/database"
	"ricemill-backend/internal/ledger"
	"ricemill-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateMillingRunRequest struct {
	PaddyTypeID uint   `json:"paddy_type_id"`
	RiceTypeID  uint   `json:"rice_type_id"`
	WarehouseID uint   `json:"warehouse_id"`
	PaddyBagsIn int    `json:"paddy_bags_in"`
	RiceBagsOut int    `json:"rice_bags_out"`
	RunDate     string `json:"run_date"`
	Remarks     string `json:"remarks"`
}

type MillingRunResponse struct {
	ID            uint   `json:"id"`
	PaddyTypeID   uint   `json:"paddy_type_id"`
	PaddyTypeName string `json:"paddy_type_name,omitempty"`
	RiceTypeID    uint   `json:"rice_type_id"`
	RiceTypeName  string `json:"rice_type_name,omitempty"`
	WarehouseID   uint   `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name,omitempty"`
	PaddyBagsIn   int    `json:"paddy_bags_in"`
	RiceBagsOut   int    `json:"rice_bags_out"`
	ExpectedBags  int    `json:"expected_rice_bags,omitempty"` // çeşidin randımanına göre beklenen çıktı
	RunDate       string `json:"run_date"`
	Remarks       string `json:"remarks"`
}

func toMillingRunResponse(r models.MillingRun) MillingRunResponse {
	return MillingRunResponse{
		ID:            r.ID,
		PaddyTypeID:   r.PaddyTypeID,
		PaddyTypeName: r.PaddyType.Name,
		RiceTypeID:    r.RiceTypeID,
		RiceTypeName:  r.RiceType.Name,
		WarehouseID:   r.WarehouseID,
		WarehouseName: r.Warehouse.Name,
		PaddyBagsIn:   r.PaddyBagsIn,
		RiceBagsOut:   r.RiceBagsOut,
		RunDate:       r.RunDate.Format("2006-01-02"),
		Remarks:       r.Remarks,
	}
}

// POST /api/milling-runs
func CreateMillingRunHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMillingRunRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.PaddyTypeID == 0 || body.RiceTypeID == 0 || body.WarehouseID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "paddy_type_id, rice_type_id ve warehouse_id zorunlu")
		}

		runDate, err := time.Parse("2006-01-02", body.RunDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		run, err := ledger.PostMilling(database.DB, ledger.PostMillingInput{
			PaddyTypeID: body.PaddyTypeID,
			RiceTypeID:  body.RiceTypeID,
			WarehouseID: body.WarehouseID,
			PaddyBagsIn: body.PaddyBagsIn,
			RiceBagsOut: body.RiceBagsOut,
			RunDate:     runDate,
			Remarks:     body.Remarks,
		})
		if err != nil {
			if status, ok := ledger.HTTPStatus(err); ok {
				return fiber.NewError(status, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "İşleme kaydı oluşturulamadı")
		}

		resp := toMillingRunResponse(*run)
		var paddyType models.PaddyType
		if err := database.DB.First(&paddyType, run.PaddyTypeID).Error; err == nil {
			resp.PaddyTypeName = paddyType.Name
			resp.ExpectedBags = int(float64(run.PaddyBagsIn) * paddyType.YieldPercentage / 100)
		}

		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// GET /api/milling-runs?from=...&to=...
func ListMillingRunsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.MillingRun{}).
			Preload("PaddyType").
			Preload("RiceType").
			Preload("Warehouse")

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from geçersiz")
			}
			dbq = dbq.Where("run_date >= ?", from)
		}

		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to geçersiz")
			}
			dbq = dbq.Where("run_date <= ?", to)
		}

		var runs []models.MillingRun
		if err := dbq.Order("run_date desc, id desc").Find(&runs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İşleme kayıtları listelenemedi")
		}

		resp := make([]MillingRunResponse, 0, len(runs))
		for _, r := range runs {
			resp = append(resp, toMillingRunResponse(r))
		}

		return c.JSON(resp)
	}
}
