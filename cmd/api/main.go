package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/ventaspro/internal/application/auth"
	"github.com/tu-usuario/ventaspro/internal/application/inventory"
	"github.com/tu-usuario/ventaspro/internal/application/reports"
	"github.com/tu-usuario/ventaspro/internal/application/sales"
	"github.com/tu-usuario/ventaspro/internal/application/usecase"
	"github.com/tu-usuario/ventaspro/internal/domain/authz"
	infrapdf "github.com/tu-usuario/ventaspro/internal/infrastructure/pdf"
	"github.com/tu-usuario/ventaspro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/ventaspro/internal/interfaces/http"
	"github.com/tu-usuario/ventaspro/pkg/config"
	"github.com/tu-usuario/ventaspro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
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

	// Repositorios sobre el pool (lecturas y CRUD fuera de transacción)
	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.DB.LockTimeoutMS)

	policy := authz.DefaultPolicy()

	// Casos de uso
	authUC := auth.NewUseCase(userRepo, cfg.JWT)
	itemUC := usecase.NewItemUseCase(itemRepo, policy)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, policy)
	customerUC := usecase.NewCustomerUseCase(customerRepo, policy)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, policy)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, policy)

	createSaleUC := sales.NewCreateSaleUseCase(txRunner, customerRepo, itemRepo, policy)
	createPurchaseUC := sales.NewCreatePurchaseUseCase(txRunner, supplierRepo, itemRepo, policy)
	cancelOrderUC := sales.NewCancelOrderUseCase(txRunner, policy)
	orderQueriesUC := sales.NewOrderQueryUseCase(saleRepo, purchaseRepo, itemRepo)

	pdfGenerator := infrapdf.NewMarotoInvoiceGenerator()
	invoicePDFUC := sales.NewInvoicePDFUseCase(
		saleRepo, purchaseRepo, customerRepo, supplierRepo, itemRepo, pdfGenerator,
	)

	adjustStockUC := inventory.NewAdjustStockUseCase(txRunner, policy)
	projector := inventory.NewStockProjector(itemRepo, movementRepo, txRunner, policy)
	reorderUC := inventory.NewReorderUseCase(itemRepo)
	reportsUC := reports.NewUseCase(reportRepo, expenseRepo, itemRepo, categoryRepo, movementRepo, policy)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "VentasPro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ItemUC:         itemUC,
		CategoryUC:     categoryUC,
		CustomerUC:     customerUC,
		SupplierUC:     supplierUC,
		ExpenseUC:      expenseUC,
		CreateSale:     createSaleUC,
		CreatePurchase: createPurchaseUC,
		CancelOrder:    cancelOrderUC,
		OrderQueries:   orderQueriesUC,
		InvoicePDF:     invoicePDFUC,
		AdjustStock:    adjustStockUC,
		Projector:      projector,
		Reorder:        reorderUC,
		ReportsUC:      reportsUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
