package party

import (
	"strings"

	"ricemill-backend/internal/database"
	"ricemill-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateBrokerRequest struct {
	Name           string  `json:"name"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	Address        string  `json:"address"`
	CommissionRate float64 `json:"commission_rate"` // yüzde
}

type UpdateBrokerRequest struct {
	Name           *string  `json:"name"`
	Phone          *string  `json:"phone"`
	Email          *string  `json:"email"`
	Address        *string  `json:"address"`
	CommissionRate *float64 `json:"commission_rate"`
	IsActive       *bool    `json:"is_active"`
}

type BrokerResponse struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	Address        string  `json:"address"`
	CommissionRate float64 `json:"commission_rate"`
	IsActive       bool    `json:"is_active"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func toBrokerResponse(b models.Broker) BrokerResponse {
	return BrokerResponse{
		ID:             b.ID,
		Name:           b.Name,
		Phone:          b.Phone,
		Email:          b.Email,
		Address:        b.Address,
		CommissionRate: b.CommissionRate,
		IsActive:       b.IsActive,
		CreatedAt:      b.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:      b.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// POST /api/brokers
func CreateBrokerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBrokerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "isim boş olamaz")
		}
		if body.CommissionRate < 0 || body.CommissionRate > 100 {
			return fiber.NewError(fiber.StatusBadRequest, "commission_rate 0-100 arası olmalı")
		}

		broker := models.Broker{
			Name:           strings.TrimSpace(body.Name),
			Phone:          strings.TrimSpace(body.Phone),
			Email:          strings.TrimSpace(body.Email),
			Address:        strings.TrimSpace(body.Address),
			CommissionRate: body.CommissionRate,
			IsActive:       true,
		}

		if err := database.DB.Create(&broker).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Komisyoncu kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(toBrokerResponse(broker))
	}
}

// GET /api/brokers?active=true
func ListBrokersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Broker{})

		if c.Query("active") == "true" {
			dbq = dbq.Where("is_active = ?", true)
		}

		var brokers []models.Broker
		if err := dbq.Order("name asc").Find(&brokers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Komisyoncular listelenemedi")
		}

		resp := make([]BrokerResponse, 0, len(brokers))
		for _, b := range brokers {
			resp = append(resp, toBrokerResponse(b))
		}

		return c.JSON(resp)
	}
}

// PUT /api/brokers/:id
func UpdateBrokerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var broker models.Broker
		if err := database.DB.First(&broker, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Komisyoncu bulunamadı")
		}

		var body UpdateBrokerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "isim boş olamaz")
			}
			broker.Name = name
		}
		if body.Phone != nil {
			broker.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.Email != nil {
			broker.Email = strings.TrimSpace(*body.Email)
		}
		if body.Address != nil {
			broker.Address = strings.TrimSpace(*body.Address)
		}
		if body.CommissionRate != nil {
			if *body.CommissionRate < 0 || *body.CommissionRate > 100 {
				return fiber.NewError(fiber.StatusBadRequest, "commission_rate 0-100 arası olmalı")
			}
			broker.CommissionRate = *body.CommissionRate
		}
		if body.IsActive != nil {
			broker.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&broker).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Komisyoncu güncellenemedi")
		}

		return c.JSON(toBrokerResponse(broker))
	}
}

// DELETE /api/brokers/:id
func DeactivateBrokerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var broker models.Broker
		if err := database.DB.First(&broker, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Komisyoncu bulunamadı")
		}

		if err := database.DB.Model(&broker).Update("is_active", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Komisyoncu pasife çekilemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
