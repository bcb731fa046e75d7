package http

import (
	"github.com/gofiber/fiber/v2"
	appbil "github.com/tu-usuario/backoffice-pro/internal/application/billing"
	appinv "github.com/tu-usuario/backoffice-pro/internal/application/inventory"
	apporders "github.com/tu-usuario/backoffice-pro/internal/application/orders"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger           *appinv.LedgerUseCase
	Balance          *appinv.BalanceUseCase
	CreateOrder      *apporders.CreateOrderUseCase
	CreateInvoice    *appbil.CreateInvoiceUseCase
	ReconcilePayment *appbil.ReconcilePaymentUseCase
	JWTSecret        string
}

// Router registra las rutas de la API. Todas las rutas del núcleo exigen
// Bearer Token: el CompanyID sale del token, nunca de la petición.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Libro de inventario y balances derivados
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Balance)
	invGroup := api.Group("/inventory")
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/balances", inventoryHandler.GetBalances)
	invGroup.Post("/balances/recalculate", inventoryHandler.Recalculate)

	// Órdenes de venta
	orderHandler := NewOrderHandler(deps.CreateOrder)
	orders := api.Group("/orders")
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)

	// Facturas y su ciclo de vida
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice)
	paymentHandler := NewPaymentHandler(deps.ReconcilePayment)
	invoices := api.Group("/invoices")
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Post("/:id/issue", invoiceHandler.Issue)
	invoices.Post("/:id/cancel", invoiceHandler.Cancel)
	invoices.Post("/:id/overdue", invoiceHandler.MarkOverdue)

	// Conciliación de pagos
	invoices.Post("/:id/payments", paymentHandler.Apply)
	invoices.Get("/:id/payments", paymentHandler.List)
	api.Delete("/payments/:id", paymentHandler.Reverse)
}
