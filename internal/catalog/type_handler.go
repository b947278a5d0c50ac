package catalog

import (
	"strings"

	"ricemill-backend/internal/database"
	"ricemill-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreatePaddyTypeRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	StandardPrice   float64 `json:"standard_price"`
	YieldPercentage float64 `json:"yield_percentage"`
}

type UpdatePaddyTypeRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	StandardPrice   *float64 `json:"standard_price"`
	YieldPercentage *float64 `json:"yield_percentage"`
	IsActive        *bool    `json:"is_active"`
}

type PaddyTypeResponse struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	StandardPrice   float64 `json:"standard_price"`
	YieldPercentage float64 `json:"yield_percentage"`
	IsActive        bool    `json:"is_active"`
}

type CreateRiceTypeRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	StandardPrice float64 `json:"standard_price"`
}

type UpdateRiceTypeRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	StandardPrice *float64 `json:"standard_price"`
	IsActive      *bool    `json:"is_active"`
}

type RiceTypeResponse struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	StandardPrice float64 `json:"standard_price"`
	IsActive      bool    `json:"is_active"`
}

// -------------------------
// Paddy Type CRUD
// -------------------------

// POST /api/paddy-types
func CreatePaddyTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePaddyTypeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "isim boş olamaz")
		}
		if body.StandardPrice < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "standard_price negatif olamaz")
		}
		if body.YieldPercentage < 0 || body.YieldPercentage > 100 {
			return fiber.NewError(fiber.StatusBadRequest, "yield_percentage 0-100 arası olmalı")
		}

		paddyType := models.PaddyType{
			Name:            strings.TrimSpace(body.Name),
			Description:     strings.TrimSpace(body.Description),
			StandardPrice:   body.StandardPrice,
			YieldPercentage: body.YieldPercentage,
			IsActive:        true,
		}

		if err := database.DB.Create(&paddyType).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Çeltik çeşidi kaydedilemedi (isim kullanımda olabilir)")
		}

		return c.Status(fiber.StatusCreated).JSON(PaddyTypeResponse{
			ID:              paddyType.ID,
			Name:            paddyType.Name,
			Description:     paddyType.Description,
			StandardPrice:   paddyType.StandardPrice,
			YieldPercentage: paddyType.YieldPercentage,
			IsActive:        paddyType.IsActive,
		})
	}
}

// GET /api/paddy-types?active=true
func ListPaddyTypesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.PaddyType{})

		if c.Query("active") == "true" {
			dbq = dbq.Where("is_active = ?", true)
		}

		var types []models.PaddyType
		if err := dbq.Order("name asc").Find(&types).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çeltik çeşitleri listelenemedi")
		}

		resp := make([]PaddyTypeResponse, 0, len(types))
		for _, t := range types {
			resp = append(resp, PaddyTypeResponse{
				ID:              t.ID,
				Name:            t.Name,
				Description:     t.Description,
				StandardPrice:   t.StandardPrice,
				YieldPercentage: t.YieldPercentage,
				IsActive:        t.IsActive,
			})
		}

		return c.JSON(resp)
	}
}

// PUT /api/paddy-types/:id
func UpdatePaddyTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var paddyType models.PaddyType
		if err := database.DB.First(&paddyType, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Çeltik çeşidi bulunamadı")
		}

		var body UpdatePaddyTypeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "isim boş olamaz")
			}
			paddyType.Name = name
		}
		if body.Description != nil {
			paddyType.Description = strings.TrimSpace(*body.Description)
		}
		if body.StandardPrice != nil {
			if *body.StandardPrice < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "standard_price negatif olamaz")
			}
			paddyType.StandardPrice = *body.StandardPrice
		}
		if body.YieldPercentage != nil {
			if *body.YieldPercentage < 0 || *body.YieldPercentage > 100 {
				return fiber.NewError(fiber.StatusBadRequest, "yield_percentage 0-100 arası olmalı")
			}
			paddyType.YieldPercentage = *body.YieldPercentage
		}
		if body.IsActive != nil {
			paddyType.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&paddyType).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çeltik çeşidi güncellenemedi")
		}

		return c.JSON(PaddyTypeResponse{
			ID:              paddyType.ID,
			Name:            paddyType.Name,
			Description:     paddyType.Description,
			StandardPrice:   paddyType.StandardPrice,
			YieldPercentage: paddyType.YieldPercentage,
			IsActive:        paddyType.IsActive,
		})
	}
}

// -------------------------
// Rice Type CRUD
// -------------------------

// POST /api/rice-types
func CreateRiceTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRiceTypeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "isim boş olamaz")
		}
		if body.StandardPrice < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "standard_price negatif olamaz")
		}

		riceType := models.RiceType{
			Name:          strings.TrimSpace(body.Name),
			Description:   strings.TrimSpace(body.Description),
			StandardPrice: body.StandardPrice,
			IsActive:      true,
		}

		if err := database.DB.Create(&riceType).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Pirinç çeşidi kaydedilemedi (isim kullanımda olabilir)")
		}

		return c.Status(fiber.StatusCreated).JSON(RiceTypeResponse{
			ID:            riceType.ID,
			Name:          riceType.Name,
			Description:   riceType.Description,
			StandardPrice: riceType.StandardPrice,
			IsActive:      riceType.IsActive,
		})
	}
}

// GET /api/rice-types?active=true
func ListRiceTypesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.RiceType{})

		if c.Query("active") == "true" {
			dbq = dbq.Where("is_active = ?", true)
		}

		var types []models.RiceType
		if err := dbq.Order("name asc").Find(&types).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Pirinç çeşitleri listelenemedi")
		}

		resp := make([]RiceTypeResponse, 0, len(types))
		for _, t := range types {
			resp = append(resp, RiceTypeResponse{
				ID:            t.ID,
				Name:          t.Name,
				Description:   t.Description,
				StandardPrice: t.StandardPrice,
				IsActive:      t.IsActive,
			})
		}

		return c.JSON(resp)
	}
}

// PUT /api/rice-types/:id
func UpdateRiceTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var riceType models.RiceType
		if err := database.DB.First(&riceType, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pirinç çeşidi bulunamadı")
		}

		var body UpdateRiceTypeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "isim boş olamaz")
			}
			riceType.Name = name
		}
		if body.Description != nil {
			riceType.Description = strings.TrimSpace(*body.Description)
		}
		if body.StandardPrice != nil {
			if *body.StandardPrice < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "standard_price negatif olamaz")
			}
			riceType.StandardPrice = *body.StandardPrice
		}
		if body.IsActive != nil {
			riceType.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&riceType).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Pirinç çeşidi güncellenemedi")
		}

		return c.JSON(RiceTypeResponse{
			ID:            riceType.ID,
			Name:          riceType.Name,
			Description:   riceType.Description,
			StandardPrice: riceType.StandardPrice,
			IsActive:      riceType.IsActive,
		})
	}
}
