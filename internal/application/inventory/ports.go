package inventory

import (
	"context"

	"github.com/tu-usuario/backoffice-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de
// inventario; RunSnapshot abre una transacción de solo lectura con
// aislamiento REPEATABLE READ para que el plegado de balances vea un
// snapshot consistente aunque haya appends concurrentes.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		auditRepo repository.AuditRepository,
	) error) error
	RunSnapshot(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
	) error) error
}
