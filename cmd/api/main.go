package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/factorg/factorg-api/internal/application/auth"
	appcosting "github.com/factorg/factorg-api/internal/application/costing"
	"github.com/factorg/factorg-api/internal/application/ingest"
	"github.com/factorg/factorg-api/internal/application/usecase"
	"github.com/factorg/factorg-api/internal/infrastructure/postgres"
	httpRouter "github.com/factorg/factorg-api/internal/interfaces/http"
	"github.com/factorg/factorg-api/pkg/config"
	"github.com/factorg/factorg-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	supplierRepo := postgres.NewSupplierRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	adminCodeRepo := postgres.NewAdminCodeRepository(pool)
	businessRepo := postgres.NewBusinessRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)

	ingestUC := ingest.NewUseCase(postgres.NewIngestTxRunner(pool))
	costingUC := appcosting.NewUseCase(postgres.NewCostingTxRunner(pool))
	productUC := usecase.NewProductUseCase(productRepo, reportRepo, costingUC)
	invoiceUC := usecase.NewInvoiceUseCase(invoiceRepo, businessRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	adminCodeUC := usecase.NewAdminCodeUseCase(adminCodeRepo, costingUC)
	businessUC := usecase.NewBusinessUseCase(businessRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, productRepo)
	dashboardUC := usecase.NewDashboardUseCase(reportRepo)
	authUC := auth.NewUseCase(userRepo, auth.Config{
		JWTSecret:       cfg.JWT.Secret,
		JWTExpMinutes:   cfg.JWT.Expiration,
		JWTIssuer:       cfg.JWT.Issuer,
		SuperadminEmail: cfg.Auth.SuperadminEmail,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    20 * 1024 * 1024, // XML con lotes grandes de DTE
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Auth.CORSOrigins,
		AllowHeaders: "Authorization, Content-Type",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		IngestUC:    ingestUC,
		CostingUC:   costingUC,
		ProductUC:   productUC,
		InvoiceUC:   invoiceUC,
		SupplierUC:  supplierUC,
		AdminCodeUC: adminCodeUC,
		BusinessUC:  businessUC,
		CategoryUC:  categoryUC,
		DashboardUC: dashboardUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}
