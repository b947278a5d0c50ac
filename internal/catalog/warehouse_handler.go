package catalog

import (
	"strings"

	"ricemill-backend/internal/database"
	"ricemill-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateWarehouseRequest struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	CapacityBags int    `json:"capacity_bags"`
}

type UpdateWarehouseRequest struct {
	Name         *string `json:"name"`
	Address      *string `json:"address"`
	CapacityBags *int    `json:"capacity_bags"`
	IsActive     *bool   `json:"is_active"`
}

type WarehouseResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	CapacityBags int    `json:"capacity_bags"`
	IsActive     bool   `json:"is_active"`
}

// POST /api/warehouses
func CreateWarehouseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateWarehouseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "isim boş olamaz")
		}
		if body.CapacityBags < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "capacity_bags negatif olamaz")
		}

		warehouse := models.Warehouse{
			Name:         strings.TrimSpace(body.Name),
			Address:      strings.TrimSpace(body.Address),
			CapacityBags: body.CapacityBags,
			IsActive:     true,
		}

		if err := database.DB.Create(&warehouse).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depo kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(WarehouseResponse{
			ID:           warehouse.ID,
			Name:         warehouse.Name,
			Address:      warehouse.Address,
			CapacityBags: warehouse.CapacityBags,
			IsActive:     warehouse.IsActive,
		})
	}
}

// GET /api/warehouses?active=true
func ListWarehousesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Warehouse{})

		if c.Query("active") == "true" {
			dbq = dbq.Where("is_active = ?", true)
		}

		var warehouses []models.Warehouse
		if err := dbq.Order("name asc").Find(&warehouses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depolar listelenemedi")
		}

		resp := make([]WarehouseResponse, 0, len(warehouses))
		for _, w := range warehouses {
			resp = append(resp, WarehouseResponse{
				ID:           w.ID,
				Name:         w.Name,
				Address:      w.Address,
				CapacityBags: w.CapacityBags,
				IsActive:     w.IsActive,
			})
		}

		return c.JSON(resp)
	}
}

// PUT /api/warehouses/:id
func UpdateWarehouseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var warehouse models.Warehouse
		if err := database.DB.First(&warehouse, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Depo bulunamadı")
		}

		var body UpdateWarehouseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "isim boş olamaz")
			}
			warehouse.Name = name
		}
		if body.Address != nil {
			warehouse.Address = strings.TrimSpace(*body.Address)
		}
		if body.CapacityBags != nil {
			if *body.CapacityBags < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "capacity_bags negatif olamaz")
			}
			warehouse.CapacityBags = *body.CapacityBags
		}
		if body.IsActive != nil {
			warehouse.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&warehouse).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depo güncellenemedi")
		}

		return c.JSON(WarehouseResponse{
			ID:           warehouse.ID,
			Name:         warehouse.Name,
			Address:      warehouse.Address,
			CapacityBags: warehouse.CapacityBags,
			IsActive:     warehouse.IsActive,
		})
	}
}
