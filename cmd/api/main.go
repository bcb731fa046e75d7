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
	appbil "github.com/tu-usuario/backoffice-pro/internal/application/billing"
	appinv "github.com/tu-usuario/backoffice-pro/internal/application/inventory"
	"github.com/tu-usuario/backoffice-pro/internal/application/numbering"
	apporders "github.com/tu-usuario/backoffice-pro/internal/application/orders"
	"github.com/tu-usuario/backoffice-pro/internal/domain/entity"
	"github.com/tu-usuario/backoffice-pro/internal/infrastructure/cache"
	"github.com/tu-usuario/backoffice-pro/internal/infrastructure/notify"
	"github.com/tu-usuario/backoffice-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/backoffice-pro/internal/interfaces/http"
	"github.com/tu-usuario/backoffice-pro/pkg/config"
	"github.com/tu-usuario/backoffice-pro/pkg/logger"
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

	// Repos fuera de transacción (lecturas sobre el pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	sequenceRepo := postgres.NewSequenceRepository(pool)

	allocator := numbering.NewAllocator(sequenceRepo)
	notifier := notify.NewLogNotifier(log.Zerolog())

	// Cachés TTL para catálogos de consulta frecuente
	productCache := cache.New[*entity.Product](5 * time.Minute)
	warehouseCache := cache.New[*entity.Warehouse](5 * time.Minute)

	inventoryTx := postgres.NewInventoryTxRunner(pool)
	billingTx := postgres.NewBillingTxRunner(pool)
	orderTx := postgres.NewOrderTxRunner(pool)

	ledgerUC := appinv.NewLedgerUseCase(inventoryTx, movementRepo, productRepo, warehouseRepo, productCache, warehouseCache)
	balanceUC := appinv.NewBalanceUseCase(inventoryTx)
	createOrderUC := apporders.NewCreateOrderUseCase(orderTx, allocator, customerRepo, warehouseRepo, productRepo, companyRepo, orderRepo)
	createInvoiceUC := appbil.NewCreateInvoiceUseCase(billingTx, allocator, customerRepo, companyRepo, productRepo, orderRepo, invoiceRepo, notifier)
	reconcileUC := appbil.NewReconcilePaymentUseCase(billingTx, invoiceRepo, paymentRepo, notifier)

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
		Title:    "Backoffice Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:           ledgerUC,
		Balance:          balanceUC,
		CreateOrder:      createOrderUC,
		CreateInvoice:    createInvoiceUC,
		ReconcilePayment: reconcileUC,
		JWTSecret:        cfg.JWT.Secret,
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
