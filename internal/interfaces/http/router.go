package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/factorg/factorg-api/internal/application/auth"
	appcosting "github.com/factorg/factorg-api/internal/application/costing"
	"github.com/factorg/factorg-api/internal/application/ingest"
	"github.com/factorg/factorg-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	IngestUC    *ingest.UseCase
	CostingUC   *appcosting.UseCase
	ProductUC   *usecase.ProductUseCase
	InvoiceUC   *usecase.InvoiceUseCase
	SupplierUC  *usecase.SupplierUseCase
	AdminCodeUC *usecase.AdminCodeUseCase
	BusinessUC  *usecase.BusinessUseCase
	CategoryUC  *usecase.CategoryUseCase
	DashboardUC *usecase.DashboardUseCase
	AuthUC      *auth.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Facturas: subida de XML y gestión
	invoices := protected.Group("/facturas")
	ingestHandler := NewIngestHandler(deps.IngestUC)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Post("/subir-xml", ingestHandler.UploadXML)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id/negocio", invoiceHandler.AssignBusiness)
	invoices.Delete("/:id", RequireAdmin(), invoiceHandler.Delete)

	// Productos: listado, edición y recálculo
	products := protected.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC, deps.CostingUC, deps.CategoryUC)
	products.Get("/", productHandler.List)
	products.Get("/exportar", productHandler.Export)
	products.Put("/:id", productHandler.Patch)
	products.Put("/:id/porcentaje-adicional", productHandler.UpdatePercentage)
	products.Put("/:id/asignar-cod-admin", productHandler.AssignAdminCode)
	products.Put("/:id/otros", productHandler.UpdateMisc)
	products.Put("/:id/categoria", productHandler.AssignCategory)
	products.Get("/:id/historial-precios", productHandler.PriceHistory)

	// Códigos de lectura: clasificación a nivel de huella
	readingCodes := protected.Group("/codigos-lectura")
	readingCodeHandler := NewReadingCodeHandler(deps.CostingUC)
	readingCodes.Put("/:valor/asignar-cod-admin", readingCodeHandler.AssignAdminCode)

	// Maestro de códigos admin (solo administradores)
	adminCodes := protected.Group("/codigos-admin", RequireAdmin())
	adminCodeHandler := NewAdminCodeHandler(deps.AdminCodeUC)
	adminCodes.Get("/", adminCodeHandler.List)
	adminCodes.Post("/", adminCodeHandler.Create)
	adminCodes.Put("/:id", adminCodeHandler.Update)

	// Proveedores
	suppliers := protected.Group("/proveedores")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:rut", supplierHandler.GetByRUT)

	// Negocios
	businesses := protected.Group("/negocios")
	businessHandler := NewBusinessHandler(deps.BusinessUC)
	businesses.Get("/", businessHandler.List)
	businesses.Post("/", RequireAdmin(), businessHandler.Create)

	// Categorías
	categories := protected.Group("/categorias")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)

	// Usuarios (solo administradores)
	users := protected.Group("/usuarios", RequireAdmin())
	users.Get("/", authHandler.ListUsers)
	users.Put("/:id", authHandler.PatchUser)
}
