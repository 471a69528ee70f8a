package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Activos-api/internal/application/assets"
	"github.com/jhoicas/Activos-api/internal/application/auth"
	"github.com/jhoicas/Activos-api/internal/application/authz"
	"github.com/jhoicas/Activos-api/internal/application/catalog"
	"github.com/jhoicas/Activos-api/internal/application/ledger"
	"github.com/jhoicas/Activos-api/internal/application/receiving"
	"github.com/jhoicas/Activos-api/internal/infrastructure/cache"
	"github.com/jhoicas/Activos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Activos-api/internal/interfaces/http"
	"github.com/jhoicas/Activos-api/pkg/config"
	"github.com/jhoicas/Activos-api/pkg/logger"
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

	// Repositorios atados al pool (lecturas fuera de transacción)
	catRepo := postgres.NewCategoryRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	receiptRepo := postgres.NewPurchaseReceiptRepository(pool)
	receiptItemRepo := postgres.NewPurchaseReceiptItemRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	productSeqRepo := postgres.NewProductSequenceRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	transactionItemRepo := postgres.NewTransactionItemRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	permRepo := postgres.NewUserPermissionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso
	applyMovementUC := ledger.NewApplyMovementUseCase(txRunner)
	bulkAdjustUC := ledger.NewBulkAdjustmentUseCase(txRunner)
	movementQueryUC := ledger.NewMovementQueryUseCase(movRepo, catRepo)
	categoryUC := catalog.NewCategoryUseCase(catRepo, productRepo)
	supplierUC := catalog.NewSupplierUseCase(supplierRepo)
	productUC := catalog.NewProductUseCase(productRepo, catRepo, productSeqRepo)
	receivingUC := receiving.NewReceivingUseCase(txRunner, applyMovementUC, supplierRepo, receiptRepo, receiptItemRepo)
	transactionUC := assets.NewTransactionUseCase(txRunner, transactionRepo, transactionItemRepo)

	permTTL := time.Duration(cfg.Cache.PermissionTTLMinutes) * time.Minute
	permissionSvc := authz.NewPermissionService(permRepo, cache.NewTTLCache(permTTL))

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		Permissions:   permissionSvc,
		ApplyMovement: applyMovementUC,
		BulkAdjust:    bulkAdjustUC,
		MovementQuery: movementQueryUC,
		CategoryUC:    categoryUC,
		SupplierUC:    supplierUC,
		ProductUC:     productUC,
		ReceivingUC:   receivingUC,
		TransactionUC: transactionUC,
		JWTSecret:     cfg.JWT.Secret,
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
