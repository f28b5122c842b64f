package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ventaspro/internal/application/auth"
	"github.com/tu-usuario/ventaspro/internal/application/inventory"
	"github.com/tu-usuario/ventaspro/internal/application/reports"
	"github.com/tu-usuario/ventaspro/internal/application/sales"
	"github.com/tu-usuario/ventaspro/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	ItemUC         *usecase.ItemUseCase
	CategoryUC     *usecase.CategoryUseCase
	CustomerUC     *usecase.CustomerUseCase
	SupplierUC     *usecase.SupplierUseCase
	ExpenseUC      *usecase.ExpenseUseCase
	CreateSale     *sales.CreateSaleUseCase
	CreatePurchase *sales.CreatePurchaseUseCase
	CancelOrder    *sales.CancelOrderUseCase
	OrderQueries   *sales.OrderQueryUseCase
	InvoicePDF     *sales.InvoicePDFUseCase
	AdjustStock    *inventory.AdjustStockUseCase
	Projector      *inventory.StockProjector
	Reorder        *inventory.ReorderUseCase
	ReportsUC      *reports.UseCase
	JWTSecret      string
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

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Deactivate)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)

	// Expenses (protegido)
	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/:id", expenseHandler.GetByID)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.CancelOrder, deps.OrderQueries, deps.InvoicePDF)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/cancel", saleHandler.Cancel)
	salesGroup.Get("/:id/pdf", saleHandler.PDF)

	// Purchases (protegido)
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.CreatePurchase, deps.CancelOrder, deps.OrderQueries, deps.InvoicePDF)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/cancel", purchaseHandler.Cancel)
	purchases.Get("/:id/pdf", purchaseHandler.PDF)

	// Inventory: ledger, ajustes, proyección (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.AdjustStock, deps.Projector, deps.Reorder)
	invGroup.Post("/adjustments", inventoryHandler.AdjustStock)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Post("/items/:id/rebuild", inventoryHandler.Rebuild)
	invGroup.Get("/reorder-suggestions", inventoryHandler.Reorder)

	// Reports (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportsGroup.Get("/sales", reportHandler.Sales)
	reportsGroup.Get("/purchases", reportHandler.Purchases)
	reportsGroup.Get("/profit-loss", reportHandler.ProfitLoss)
	reportsGroup.Get("/top-items", reportHandler.TopItems)
	reportsGroup.Get("/stock", reportHandler.Stock)
	reportsGroup.Get("/low-stock", reportHandler.LowStock)
	reportsGroup.Get("/valuation", reportHandler.Valuation)
	reportsGroup.Get("/movements", reportHandler.Movements)
}
