package party

import (
	"strings"

	"ricemill-backend/internal/database"
	"ricemill-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateCustomerRequest struct {
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	Address     string  `json:"address"`
	BrokerID    *uint   `json:"broker_id"`
	CreditLimit float64 `json:"credit_limit"` // 0 = limitsiz
}

type UpdateCustomerRequest struct {
	Name        *string  `json:"name"`
	Phone       *string  `json:"phone"`
	Email       *string  `json:"email"`
	Address     *string  `json:"address"`
	BrokerID    *uint    `json:"broker_id"`
	CreditLimit *float64 `json:"credit_limit"`
	IsActive    *bool    `json:"is_active"`
}

type CustomerResponse struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	Address        string  `json:"address"`
	BrokerID       *uint   `json:"broker_id"`
	BrokerName     string  `json:"broker_name,omitempty"`
	CreditLimit    float64 `json:"credit_limit"`
	CurrentBalance float64 `json:"current_balance"`
	IsActive       bool    `json:"is_active"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func toCustomerResponse(cu models.Customer) CustomerResponse {
	resp := CustomerResponse{
		ID:             cu.ID,
		Name:           cu.Name,
		Phone:          cu.Phone,
		Email:          cu.Email,
		Address:        cu.Address,
		BrokerID:       cu.BrokerID,
		CreditLimit:    cu.CreditLimit,
		CurrentBalance: cu.CurrentBalance,
		IsActive:       cu.IsActive,
		CreatedAt:      cu.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:      cu.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if cu.Broker != nil {
		resp.BrokerName = cu.Broker.Name
	}
	return resp
}

// POST /api/customers
func CreateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "isim boş olamaz")
		}
		if body.CreditLimit < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "credit_limit negatif olamaz")
		}

		// Komisyoncu verildiyse var ve aktif mi?
		if body.BrokerID != nil {
			var broker models.Broker
			if err := database.DB.First(&broker, *body.BrokerID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Komisyoncu bulunamadı")
			}
			if !broker.IsActive {
				return fiber.NewError(fiber.StatusBadRequest, "Komisyoncu pasif durumda")
			}
		}

		customer := models.Customer{
			Name:        strings.TrimSpace(body.Name),
			Phone:       strings.TrimSpace(body.Phone),
			Email:       strings.TrimSpace(body.Email),
			Address:     strings.TrimSpace(body.Address),
			BrokerID:    body.BrokerID,
			CreditLimit: body.CreditLimit,
			IsActive:    true,
		}

		if err := database.DB.Create(&customer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(toCustomerResponse(customer))
	}
}

// GET /api/customers?active=true
func ListCustomersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Customer{}).Preload("Broker")

		if c.Query("active") == "true" {
			dbq = dbq.Where("is_active = ?", true)
		}

		var customers []models.Customer
		if err := dbq.Order("name asc").Find(&customers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteriler listelenemedi")
		}

		resp := make([]CustomerResponse, 0, len(customers))
		for _, cu := range customers {
			resp = append(resp, toCustomerResponse(cu))
		}

		return c.JSON(resp)
	}
}

// PUT /api/customers/:id
func UpdateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var customer models.Customer
		if err := database.DB.First(&customer, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}

		var body UpdateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "isim boş olamaz")
			}
			customer.Name = name
		}
		if body.Phone != nil {
			customer.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.Email != nil {
			customer.Email = strings.TrimSpace(*body.Email)
		}
		if body.Address != nil {
			customer.Address = strings.TrimSpace(*body.Address)
		}
		if body.BrokerID != nil {
			var broker models.Broker
			if err := database.DB.First(&broker, *body.BrokerID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Komisyoncu bulunamadı")
			}
			customer.BrokerID = body.BrokerID
		}
		if body.CreditLimit != nil {
			if *body.CreditLimit < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "credit_limit negatif olamaz")
			}
			customer.CreditLimit = *body.CreditLimit
		}
		if body.IsActive != nil {
			customer.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&customer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri güncellenemedi")
		}

		return c.JSON(toCustomerResponse(customer))
	}
}

// DELETE /api/customers/:id
func DeactivateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var customer models.Customer
		if err := database.DB.First(&customer, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}

		if err := database.DB.Model(&customer).Update("is_active", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri pasife çekilemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
