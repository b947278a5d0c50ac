package main

import (
	"log"
	"strings"

	"ricemill-backend/internal/auth"
	"ricemill-backend/internal/catalog"
	"ricemill-backend/internal/config"
	"ricemill-backend/internal/dashboard"
	"ricemill-backend/internal/database"
	"ricemill-backend/internal/expense"
	"ricemill-backend/internal/models"
	"ricemill-backend/internal/party"
	"ricemill-backend/internal/payment"
	"ricemill-backend/internal/purchase"
	"ricemill-backend/internal/sale"
	"ricemill-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den temizleyerek geçir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Kullanıcı yönetimi (sadece admin)
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))
	adminRoutes.Post("/users", auth.CreateUserHandler())

	// Tedarikçiler
	protected.Post("/suppliers", party.CreateSupplierHandler())
	protected.Get("/suppliers", party.ListSuppliersHandler())
	protected.Put("/suppliers/:id", party.UpdateSupplierHandler())
	protected.Delete("/suppliers/:id", party.DeactivateSupplierHandler())

	// Komisyoncular
	protected.Post("/brokers", party.CreateBrokerHandler())
	protected.Get("/brokers", party.ListBrokersHandler())
	protected.Put("/brokers/:id", party.UpdateBrokerHandler())
	protected.Delete("/brokers/:id", party.DeactivateBrokerHandler())

	// Müşteriler
	protected.Post("/customers", party.CreateCustomerHandler())
	protected.Get("/customers", party.ListCustomersHandler())
	protected.Put("/customers/:id", party.UpdateCustomerHandler())
	protected.Delete("/customers/:id", party.DeactivateCustomerHandler())

	// Çeşit ve depo tanımları
	protected.Post("/paddy-types", catalog.CreatePaddyTypeHandler())
	protected.Get("/paddy-types", catalog.ListPaddyTypesHandler())
	protected.Put("/paddy-types/:id", catalog.UpdatePaddyTypeHandler())
	protected.Post("/rice-types", catalog.CreateRiceTypeHandler())
	protected.Get("/rice-types", catalog.ListRiceTypesHandler())
	protected.Put("/rice-types/:id", catalog.UpdateRiceTypeHandler())
	protected.Post("/warehouses", catalog.CreateWarehouseHandler())
	protected.Get("/warehouses", catalog.ListWarehousesHandler())
	protected.Put("/warehouses/:id", catalog.UpdateWarehouseHandler())

	// Alımlar
	protected.Post("/purchases", purchase.CreatePurchaseHandler())
	protected.Get("/purchases", purchase.ListPurchasesHandler())

	// Satışlar
	protected.Post("/sales", sale.CreateSaleHandler())
	protected.Get("/sales", sale.ListSalesHandler())

	// İşleme partileri
	protected.Post("/milling-runs", stock.CreateMillingRunHandler())
	protected.Get("/milling-runs", stock.ListMillingRunsHandler())

	// Stok
	protected.Get("/stock/rice", stock.ListRiceStockHandler())
	protected.Get("/stock/paddy", stock.ListPaddyStockHandler())
	protected.Get("/stock/summary", stock.StockSummaryHandler())

	// Ödemeler
	protected.Post("/payments", payment.CreatePaymentHandler())
	protected.Get("/payments", payment.ListPaymentsHandler())

	// Giderler
	protected.Post("/expenses", expense.CreateExpenseHandler())
	protected.Get("/expenses", expense.ListExpensesHandler())
	protected.Get("/expenses/summary/monthly", expense.MonthlySummaryHandler())

	// Raporlar
	protected.Get("/reports/sales", sale.SalesReportHandler())
	protected.Get("/reports/sales/export", sale.ExportSalesReportHandler())

	// Dashboard
	protected.Get("/dashboard", dashboard.DashboardHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
