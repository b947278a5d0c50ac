package party

import (
	"strings"

	"ricemill-backend/internal/database"
	"ricemill-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreateSupplierRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	ContactPerson string `json:"contact_person"`
}

type UpdateSupplierRequest struct {
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
	ContactPerson *string `json:"contact_person"`
	IsActive      *bool   `json:"is_active"`
}

type SupplierResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	ContactPerson string `json:"contact_person"`
	IsActive      bool   `json:"is_active"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func toSupplierResponse(s models.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		Phone:         s.Phone,
		Email:         s.Email,
		Address:       s.Address,
		ContactPerson: s.ContactPerson,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     s.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// -------------------------
// Supplier CRUD
// -------------------------

// POST /api/suppliers
func CreateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "isim boş olamaz")
		}

		supplier := models.Supplier{
			Name:          strings.TrimSpace(body.Name),
			Phone:         strings.TrimSpace(body.Phone),
			Email:         strings.TrimSpace(body.Email),
			Address:       strings.TrimSpace(body.Address),
			ContactPerson: strings.TrimSpace(body.ContactPerson),
			IsActive:      true,
		}

		if err := database.DB.Create(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(toSupplierResponse(supplier))
	}
}

// GET /api/suppliers?active=true
func ListSuppliersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Supplier{})

		// active=true: yeni alım formu için sadece aktifler
		if c.Query("active") == "true" {
			dbq = dbq.Where("is_active = ?", true)
		}

		var suppliers []models.Supplier
		if err := dbq.Order("name asc").Find(&suppliers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçiler listelenemedi")
		}

		resp := make([]SupplierResponse, 0, len(suppliers))
		for _, s := range suppliers {
			resp = append(resp, toSupplierResponse(s))
		}

		return c.JSON(resp)
	}
}

// PUT /api/suppliers/:id
func UpdateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var supplier models.Supplier
		if err := database.DB.First(&supplier, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarikçi bulunamadı")
		}

		var body UpdateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "isim boş olamaz")
			}
			supplier.Name = name
		}
		if body.Phone != nil {
			supplier.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.Email != nil {
			supplier.Email = strings.TrimSpace(*body.Email)
		}
		if body.Address != nil {
			supplier.Address = strings.TrimSpace(*body.Address)
		}
		if body.ContactPerson != nil {
			supplier.ContactPerson = strings.TrimSpace(*body.ContactPerson)
		}
		if body.IsActive != nil {
			supplier.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi güncellenemedi")
		}

		return c.JSON(toSupplierResponse(supplier))
	}
}

// DELETE /api/suppliers/:id
// Fiziksel silme yok: kayıt pasife çekilir, alım geçmişi korunur.
func DeactivateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var supplier models.Supplier
		if err := database.DB.First(&supplier, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarikçi bulunamadı")
		}

		if err := database.DB.Model(&supplier).Update("is_active", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi pasife çekilemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
