package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/backoffice-pro/internal/domain/billing"
	"github.com/tu-usuario/backoffice-pro/internal/domain/entity"
)

func TestDeriveStatus_TablaDeTransiciones(t *testing.T) {
	total := decimal.NewFromInt(1000)
	casos := []struct {
		nombre   string
		actual   string
		pagado   string
		esperado string
	}{
		{"sin pagos vuelve a ISSUED", entity.InvoiceStatusPartiallyPaid, "0", entity.InvoiceStatusIssued},
		{"pago parcial", entity.InvoiceStatusIssued, "400", entity.InvoiceStatusPartiallyPaid},
		{"pago completo", entity.InvoiceStatusPartiallyPaid, "1000", entity.InvoiceStatusPaid},
		{"casi completo sigue parcial", entity.InvoiceStatusIssued, "999.99", entity.InvoiceStatusPartiallyPaid},
		{"OVERDUE se preserva", entity.InvoiceStatusOverdue, "400", entity.InvoiceStatusOverdue},
		{"CANCELLED se preserva", entity.InvoiceStatusCancelled, "0", entity.InvoiceStatusCancelled},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			pagado, err := decimal.NewFromString(c.pagado)
			assert.NoError(t, err)
			assert.Equal(t, c.esperado, billing.DeriveStatus(c.actual, pagado, total))
		})
	}
}
