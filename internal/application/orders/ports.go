package orders

import (
	"context"

	"github.com/tu-usuario/backoffice-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos que
// escribe la creación de órdenes: la orden, sus líneas y la auditoría entran
// o se revierten juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		auditRepo repository.AuditRepository,
	) error) error
}
