package billing

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/backoffice-pro/internal/domain/entity"
)

// DeriveStatus calcula el estado de una factura como función pura de
// PaidAmount vs TotalAmount (servicio de dominio):
//
//	paid == 0          -> ISSUED
//	0 < paid < total   -> PARTIALLY_PAID
//	paid == total      -> PAID
//
// Los estados manuales OVERDUE y CANCELLED se fijan externamente y se
// preservan tal cual: aplicar o reversar pagos no los recalcula.
func DeriveStatus(current string, paid, total decimal.Decimal) string {
	if entity.IsManualInvoiceStatus(current) {
		return current
	}
	switch {
	case paid.IsZero():
		return entity.InvoiceStatusIssued
	case paid.Equal(total):
		return entity.InvoiceStatusPaid
	default:
		return entity.InvoiceStatusPartiallyPaid
	}
}
