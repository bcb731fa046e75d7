package billing_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appbil "github.com/tu-usuario/backoffice-pro/internal/application/billing"
	"github.com/tu-usuario/backoffice-pro/internal/application/dto"
	"github.com/tu-usuario/backoffice-pro/internal/domain"
	"github.com/tu-usuario/backoffice-pro/internal/domain/entity"
)

func nuevoConciliador(e *entorno) *appbil.ReconcilePaymentUseCase {
	return appbil.NewReconcilePaymentUseCase(e.txRunner, e.invoiceRepo, e.paymentRepo, e.notifier)
}

func pagar(monto string) dto.ApplyPaymentRequest {
	return dto.ApplyPaymentRequest{
		Amount:        decimal.RequireFromString(monto),
		PaymentMethod: entity.PaymentMethodTransfer,
	}
}

func TestApplyPayment_ParcialYTotal(t *testing.T) {
	e := nuevoEntorno()
	uc := nuevoConciliador(e)
	ctx := context.Background()
	e.facturaEmitida("F1", "1000.00", "COP")

	// Pago parcial: 400 de 1000.
	resp, err := uc.ApplyPayment(ctx, "empresa-1", "user-1", "F1", pagar("400.00"))
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPartiallyPaid, resp.InvoiceStatus)
	assert.True(t, resp.InvoicePaidAmount.Equal(decimal.RequireFromString("400.00")))

	// El resto exacto: 600 completa los 1000.
	resp, err = uc.ApplyPayment(ctx, "empresa-1", "user-1", "F1", pagar("600.00"))
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, resp.InvoiceStatus)
	assert.True(t, resp.InvoicePaidAmount.Equal(decimal.RequireFromString("1000.00")))

	// Un centavo de más se rechaza y no toca la factura.
	_, err = uc.ApplyPayment(ctx, "empresa-1", "user-1", "F1", pagar("0.01"))
	require.ErrorIs(t, err, domain.ErrPaymentExceedsBalance)

	inv, _ := e.invoiceRepo.GetByID("F1")
	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
	assert.True(t, inv.PaidAmount.Equal(inv.TotalAmount))

	pagos, _ := e.paymentRepo.ListByInvoice("F1")
	assert.Len(t, pagos, 2)
	assert.Equal(t, 2, e.notifier.payments)
	// Cada pago aplicado deja dos huellas: el pago creado y la factura actualizada.
	assert.Equal(t, 4, e.auditRepo.count())
}

func TestApplyPayment_Rechazos(t *testing.T) {
	e := nuevoEntorno()
	uc := nuevoConciliador(e)
	ctx := context.Background()

	borrador := e.facturaEmitida("F-borrador", "100.00", "COP")
	borrador.Status = entity.InvoiceStatusDraft
	require.NoError(t, e.invoiceRepo.Update(borrador))

	cancelada := e.facturaEmitida("F-cancelada", "100.00", "COP")
	cancelada.Status = entity.InvoiceStatusCancelled
	require.NoError(t, e.invoiceRepo.Update(cancelada))

	e.facturaEmitida("F1", "100.00", "COP")

	casos := []struct {
		nombre  string
		empresa string
		factura string
		req     dto.ApplyPaymentRequest
		esperar error
	}{
		{"monto cero", "empresa-1", "F1", pagar("0"), domain.ErrInvalidInput},
		{"monto negativo", "empresa-1", "F1", pagar("-10.00"), domain.ErrInvalidInput},
		{"factura inexistente", "empresa-1", "F-fantasma", pagar("10.00"), domain.ErrNotFound},
		{"factura de otra empresa", "empresa-2", "F1", pagar("10.00"), domain.ErrForbidden},
		{"factura en borrador", "empresa-1", "F-borrador", pagar("10.00"), domain.ErrInvalidState},
		{"factura cancelada", "empresa-1", "F-cancelada", pagar("10.00"), domain.ErrInvalidState},
		{"sobrepago directo", "empresa-1", "F1", pagar("100.01"), domain.ErrPaymentExceedsBalance},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			resp, err := uc.ApplyPayment(ctx, c.empresa, "user-1", c.factura, c.req)
			require.ErrorIs(t, err, c.esperar)
			assert.Nil(t, resp)
		})
	}

	// Ningún rechazo creó pagos, auditoría ni notificaciones.
	assert.Empty(t, e.paymentRepo.payments)
	assert.Zero(t, e.auditRepo.count())
	assert.Zero(t, e.notifier.payments)
}

func TestApplyPayment_PreservaOverdue(t *testing.T) {
	e := nuevoEntorno()
	uc := nuevoConciliador(e)
	ctx := context.Background()

	inv := e.facturaEmitida("F1", "1000.00", "COP")
	inv.Status = entity.InvoiceStatusOverdue
	require.NoError(t, e.invoiceRepo.Update(inv))

	// Un pago parcial no borra la marca manual de vencida.
	resp, err := uc.ApplyPayment(ctx, "empresa-1", "user-1", "F1", pagar("300.00"))
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusOverdue, resp.InvoiceStatus)
	assert.True(t, resp.InvoicePaidAmount.Equal(decimal.RequireFromString("300.00")))
}

func TestReversePayment_IdaYVuelta(t *testing.T) {
	e := nuevoEntorno()
	uc := nuevoConciliador(e)
	ctx := context.Background()
	e.facturaEmitida("F1", "1000.00", "COP")

	aplicado, err := uc.ApplyPayment(ctx, "empresa-1", "user-1", "F1", pagar("1000.00"))
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, aplicado.InvoiceStatus)

	reversado, err := uc.ReversePayment(ctx, "empresa-1", "user-1", aplicado.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusIssued, reversado.InvoiceStatus)
	assert.True(t, reversado.InvoicePaidAmount.IsZero())

	// El pago ya no existe; otra reversa del mismo ID falla.
	pagos, _ := e.paymentRepo.ListByInvoice("F1")
	assert.Empty(t, pagos)
	_, err = uc.ReversePayment(ctx, "empresa-1", "user-1", aplicado.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	// aplicar + reversar + factura×2 = cuatro entradas de auditoría.
	assert.Equal(t, 4, e.auditRepo.count())
}

func TestReversePayment_OtraEmpresa(t *testing.T) {
	e := nuevoEntorno()
	uc := nuevoConciliador(e)
	ctx := context.Background()
	e.facturaEmitida("F1", "500.00", "COP")

	aplicado, err := uc.ApplyPayment(ctx, "empresa-1", "user-1", "F1", pagar("200.00"))
	require.NoError(t, err)

	_, err = uc.ReversePayment(ctx, "empresa-2", "user-1", aplicado.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	inv, _ := e.invoiceRepo.GetByID("F1")
	assert.True(t, inv.PaidAmount.Equal(decimal.RequireFromString("200.00")))
}

func TestApplyPayment_ConcurrenciaSinPerdidas(t *testing.T) {
	e := nuevoEntorno()
	uc := nuevoConciliador(e)
	ctx := context.Background()
	e.facturaEmitida("F1", "1000.00", "COP")

	// 20 pagos concurrentes de 50.00 deben sumar exactamente 1000.00:
	// el candado de fila serializa cada lectura-modificación-escritura.
	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.ApplyPayment(ctx, "empresa-1", "user-1", "F1", pagar("50.00"))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "pago %d", i)
	}

	inv, _ := e.invoiceRepo.GetByID("F1")
	assert.True(t, inv.PaidAmount.Equal(decimal.RequireFromString("1000.00")),
		"acumulado = %s", inv.PaidAmount)
	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)

	pagos, _ := e.paymentRepo.ListByInvoice("F1")
	assert.Len(t, pagos, n)
	assert.Equal(t, n, e.notifier.payments)
}

func TestListPayments(t *testing.T) {
	e := nuevoEntorno()
	uc := nuevoConciliador(e)
	ctx := context.Background()
	e.facturaEmitida("F1", "300.00", "COP")

	_, err := uc.ApplyPayment(ctx, "empresa-1", "user-1", "F1", pagar("100.00"))
	require.NoError(t, err)
	_, err = uc.ApplyPayment(ctx, "empresa-1", "user-1", "F1", pagar("200.00"))
	require.NoError(t, err)

	pagos, err := uc.ListPayments(ctx, "empresa-1", "F1")
	require.NoError(t, err)
	assert.Len(t, pagos, 2)

	_, err = uc.ListPayments(ctx, "empresa-2", "F1")
	require.ErrorIs(t, err, domain.ErrForbidden)
}
