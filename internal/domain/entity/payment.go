package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago soportados.
const (
	PaymentMethodCash     = "CASH"
	PaymentMethodTransfer = "TRANSFER"
	PaymentMethodCard     = "CARD"
	PaymentMethodOther    = "OTHER"
)

// Payment es un hecho dependiente del agregado Invoice: se crea y se elimina
// siempre dentro de la misma transacción que actualiza PaidAmount/Status de
// la factura dueña.
type Payment struct {
	ID            string
	CompanyID     string
	InvoiceID     string
	Amount        decimal.Decimal // estrictamente positivo
	PaymentMethod string
	PaymentDate   time.Time
	Reference     string // consignación, comprobante, etc.
	CreatedAt     time.Time
	CreatedBy     string
}
