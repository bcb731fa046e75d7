package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura. DRAFT/ISSUED/PARTIALLY_PAID/PAID se derivan de
// PaidAmount vs TotalAmount; OVERDUE y CANCELLED son estados manuales que la
// conciliación de pagos nunca sobreescribe en silencio.
const (
	InvoiceStatusDraft         = "DRAFT"
	InvoiceStatusIssued        = "ISSUED"
	InvoiceStatusPartiallyPaid = "PARTIALLY_PAID"
	InvoiceStatusPaid          = "PAID"
	InvoiceStatusOverdue       = "OVERDUE"
	InvoiceStatusCancelled     = "CANCELLED"
)

// IsManualInvoiceStatus retorna true para los estados fijados externamente.
func IsManualInvoiceStatus(s string) bool {
	return s == InvoiceStatusOverdue || s == InvoiceStatusCancelled
}

// Invoice es la raíz del agregado de conciliación: PaidAmount y Status deben
// coincidir siempre con la suma de sus pagos vigentes. Invariante:
// 0 <= PaidAmount <= TotalAmount.
type Invoice struct {
	ID            string
	CompanyID     string
	OrderID       *string // nil si la factura no nace de una orden
	InvoiceNumber string  // único por empresa, ej. INV-2026-000042
	Status        string
	TotalAmount   decimal.Decimal // inmutable una vez emitida
	PaidAmount    decimal.Decimal
	Currency      string
	DueDate       *time.Time
	IssuedDate    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CreatedBy     string
}

// Outstanding retorna el saldo pendiente (TotalAmount − PaidAmount).
func (i *Invoice) Outstanding() decimal.Decimal {
	return i.TotalAmount.Sub(i.PaidAmount)
}
