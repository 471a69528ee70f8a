package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Activos-api/internal/application/assets"
	"github.com/jhoicas/Activos-api/internal/application/auth"
	"github.com/jhoicas/Activos-api/internal/application/authz"
	"github.com/jhoicas/Activos-api/internal/application/catalog"
	"github.com/jhoicas/Activos-api/internal/application/ledger"
	"github.com/jhoicas/Activos-api/internal/application/receiving"
)

// Nombres de módulo para el control de permisos por nivel.
const (
	ModuleStock        = "stock"
	ModuleCategories   = "categories"
	ModuleReceipts     = "receipts"
	ModuleTransactions = "transactions"
	ModuleSuppliers    = "suppliers"
	ModuleProducts     = "products"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	Permissions   *authz.PermissionService
	ApplyMovement *ledger.ApplyMovementUseCase
	BulkAdjust    *ledger.BulkAdjustmentUseCase
	MovementQuery *ledger.MovementQueryUseCase
	CategoryUC    *catalog.CategoryUseCase
	SupplierUC    *catalog.SupplierUseCase
	ProductUC     *catalog.ProductUseCase
	ReceivingUC   *receiving.ReceivingUseCase
	TransactionUC *assets.TransactionUseCase
	JWTSecret     string
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
	perm := func(module, action string) fiber.Handler {
		return RequirePermission(module, action, deps.Permissions)
	}

	// Stock ledger (protegido)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.ApplyMovement, deps.BulkAdjust, deps.MovementQuery, deps.CategoryUC)
	stock.Post("/movements", perm(ModuleStock, "add"), stockHandler.CreateMovement)
	stock.Post("/bulk-adjust", perm(ModuleStock, "edit"), stockHandler.BulkAdjust)
	stock.Get("/movements/recent", perm(ModuleStock, "view"), stockHandler.RecentMovements)
	stock.Get("/movements/:id", perm(ModuleStock, "view"), stockHandler.GetMovement)
	stock.Get("/categories/:categoryID/movements", perm(ModuleStock, "view"), stockHandler.ListMovements)
	stock.Get("/summary", perm(ModuleStock, "view"), stockHandler.Summary)
	stock.Get("/alerts", perm(ModuleStock, "view"), stockHandler.Alerts)

	// Categorías (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", perm(ModuleCategories, "add"), categoryHandler.Create)
	categories.Get("/", perm(ModuleCategories, "view"), categoryHandler.List)
	categories.Get("/:id", perm(ModuleCategories, "view"), categoryHandler.GetByID)
	categories.Put("/:id", perm(ModuleCategories, "edit"), categoryHandler.Update)
	categories.Delete("/:id", perm(ModuleCategories, "delete"), categoryHandler.Delete)

	// Recibos de compra (protegido)
	receipts := protected.Group("/receipts")
	receiptHandler := NewReceiptHandler(deps.ReceivingUC)
	receipts.Post("/", perm(ModuleReceipts, "add"), receiptHandler.Create)
	receipts.Get("/", perm(ModuleReceipts, "view"), receiptHandler.List)
	receipts.Get("/:id", perm(ModuleReceipts, "view"), receiptHandler.GetByID)
	receipts.Put("/:id", perm(ModuleReceipts, "edit"), receiptHandler.Update)
	receipts.Delete("/:id", perm(ModuleReceipts, "delete"), receiptHandler.Delete)
	receipts.Post("/:id/items", perm(ModuleReceipts, "edit"), receiptHandler.AddItem)
	receipts.Delete("/:id/items/:itemID", perm(ModuleReceipts, "edit"), receiptHandler.RemoveItem)

	// Transacciones de activos (protegido)
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.TransactionUC)
	transactions.Post("/", perm(ModuleTransactions, "add"), transactionHandler.Create)
	transactions.Get("/", perm(ModuleTransactions, "view"), transactionHandler.List)
	transactions.Get("/:id", perm(ModuleTransactions, "view"), transactionHandler.GetByID)
	transactions.Delete("/:id", perm(ModuleTransactions, "delete"), transactionHandler.Delete)
	transactions.Post("/:id/close", perm(ModuleTransactions, "edit"), transactionHandler.Close)
	transactions.Post("/:id/reopen", perm(ModuleTransactions, "edit"), transactionHandler.Reopen)
	transactions.Post("/:id/items", perm(ModuleTransactions, "edit"), transactionHandler.AddItem)
	transactions.Delete("/:id/items/:itemID", perm(ModuleTransactions, "edit"), transactionHandler.RemoveItem)

	// Activos serializados (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", perm(ModuleProducts, "add"), productHandler.Create)
	products.Get("/:productID", perm(ModuleProducts, "view"), productHandler.GetByID)
	products.Put("/:productID", perm(ModuleProducts, "edit"), productHandler.Update)
	products.Delete("/:productID", perm(ModuleProducts, "delete"), productHandler.Delete)
	categories.Get("/:categoryID/products", perm(ModuleProducts, "view"), productHandler.ListByCategory)

	// Proveedores (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", perm(ModuleSuppliers, "add"), supplierHandler.Create)
	suppliers.Get("/", perm(ModuleSuppliers, "view"), supplierHandler.List)
	suppliers.Get("/:id", perm(ModuleSuppliers, "view"), supplierHandler.GetByID)
	suppliers.Put("/:id", perm(ModuleSuppliers, "edit"), supplierHandler.Update)
	suppliers.Delete("/:id", perm(ModuleSuppliers, "delete"), supplierHandler.Delete)

	// Permisos por nivel. Default deny: sin fila para el módulo "permissions"
	// solo admin puede entrar.
	permissions := protected.Group("/permissions")
	permissionHandler := NewPermissionHandler(deps.Permissions)
	permissions.Put("/", perm("permissions", "edit"), permissionHandler.Upsert)
	permissions.Get("/:level", perm("permissions", "view"), permissionHandler.ListByLevel)
}
