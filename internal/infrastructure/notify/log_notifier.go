package notify

import (
	"github.com/rs/zerolog"
	"github.com/tu-usuario/backoffice-pro/internal/application/billing"
	"github.com/tu-usuario/backoffice-pro/internal/domain/entity"
)

var _ billing.Notifier = (*LogNotifier)(nil)

// LogNotifier es la implementación por defecto del puerto de notificaciones:
// registra el evento en el log estructurado. Un adaptador de correo o webhook
// puede reemplazarlo sin tocar los casos de uso.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier construye el adaptador sobre el logger dado.
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notifier").Logger()}
}

// NotifyInvoiceIssued registra la emisión de una factura.
func (n *LogNotifier) NotifyInvoiceIssued(invoice *entity.Invoice) {
	n.log.Info().
		Str("invoice_id", invoice.ID).
		Str("invoice_number", invoice.InvoiceNumber).
		Str("company_id", invoice.CompanyID).
		Str("total", invoice.TotalAmount.StringFixed(2)).
		Str("currency", invoice.Currency).
		Msg("factura emitida")
}

// NotifyPaymentReceived registra un pago aplicado.
func (n *LogNotifier) NotifyPaymentReceived(invoice *entity.Invoice, payment *entity.Payment) {
	n.log.Info().
		Str("invoice_id", invoice.ID).
		Str("payment_id", payment.ID).
		Str("amount", payment.Amount.StringFixed(2)).
		Str("paid_amount", invoice.PaidAmount.StringFixed(2)).
		Str("status", invoice.Status).
		Msg("pago aplicado")
}
