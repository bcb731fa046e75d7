package billing

import (
	"context"

	"github.com/tu-usuario/backoffice-pro/internal/domain/entity"
	"github.com/tu-usuario/backoffice-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repos del agregado de facturación. La factura y sus pagos solo se escriben
// juntos, dentro del mismo Run.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
		auditRepo repository.AuditRepository,
	) error) error
}

// Notifier puerto de notificaciones salientes (correo, webhook, etc.).
// Fire-and-forget: se invoca después del commit y sus fallas jamás revierten
// la transacción de conciliación; el adaptador registra sus propios errores.
type Notifier interface {
	NotifyInvoiceIssued(invoice *entity.Invoice)
	NotifyPaymentReceived(invoice *entity.Invoice, payment *entity.Payment)
}
