package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/backoffice-pro/internal/application/billing"
	"github.com/tu-usuario/backoffice-pro/internal/application/inventory"
	"github.com/tu-usuario/backoffice-pro/internal/application/orders"
	"github.com/tu-usuario/backoffice-pro/internal/domain"
	"github.com/tu-usuario/backoffice-pro/internal/domain/repository"
)

var _ inventory.TxRunner = (*InventoryTxRunner)(nil)
var _ billing.TxRunner = (*BillingTxRunner)(nil)
var _ orders.TxRunner = (*OrderTxRunner)(nil)

// withTx abre una transacción, ejecuta fn y hace Commit o Rollback. Las
// fallas benignas de concurrencia salen como domain.ErrConcurrency para que
// el llamador decida si reintenta.
func withTx(ctx context.Context, pool *pgxpool.Pool, opts pgx.TxOptions, fn func(tx pgx.Tx) error) error {
	tx, err := pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		if isConcurrencyFailure(err) {
			return domain.ErrConcurrency
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isConcurrencyFailure(err) {
			return domain.ErrConcurrency
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// InventoryTxRunner ejecuta las unidades de trabajo del libro de inventario.
type InventoryTxRunner struct {
	pool *pgxpool.Pool
}

// NewInventoryTxRunner construye el runner con el pool.
func NewInventoryTxRunner(pool *pgxpool.Pool) *InventoryTxRunner {
	return &InventoryTxRunner{pool: pool}
}

// Run inicia una transacción y ejecuta fn con repos atados a la tx.
func (r *InventoryTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	auditRepo repository.AuditRepository,
) error) error {
	return withTx(ctx, r.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return fn(NewStockMovementRepository(tx), NewAuditRepository(tx))
	})
}

// RunSnapshot abre una transacción de solo lectura con REPEATABLE READ: el
// plegado de balances ve un corte consistente del libro aunque haya appends
// concurrentes.
func (r *InventoryTxRunner) RunSnapshot(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
	return withTx(ctx, r.pool, opts, func(tx pgx.Tx) error {
		return fn(NewStockMovementRepository(tx))
	})
}

// BillingTxRunner ejecuta las unidades de trabajo del agregado de facturación.
type BillingTxRunner struct {
	pool *pgxpool.Pool
}

// NewBillingTxRunner construye el runner con el pool.
func NewBillingTxRunner(pool *pgxpool.Pool) *BillingTxRunner {
	return &BillingTxRunner{pool: pool}
}

// Run inicia una transacción con los repos del agregado factura: el pago, el
// acumulado y la auditoría se confirman o revierten juntos.
func (r *BillingTxRunner) Run(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	auditRepo repository.AuditRepository,
) error) error {
	return withTx(ctx, r.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return fn(NewInvoiceRepository(tx), NewPaymentRepository(tx), NewAuditRepository(tx))
	})
}

// OrderTxRunner ejecuta las unidades de trabajo de órdenes de venta.
type OrderTxRunner struct {
	pool *pgxpool.Pool
}

// NewOrderTxRunner construye el runner con el pool.
func NewOrderTxRunner(pool *pgxpool.Pool) *OrderTxRunner {
	return &OrderTxRunner{pool: pool}
}

// Run inicia una transacción con los repos de órdenes.
func (r *OrderTxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	auditRepo repository.AuditRepository,
) error) error {
	return withTx(ctx, r.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return fn(NewOrderRepository(tx), NewAuditRepository(tx))
	})
}
