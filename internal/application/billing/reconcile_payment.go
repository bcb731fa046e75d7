package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/backoffice-pro/internal/application/audit"
	"github.com/tu-usuario/backoffice-pro/internal/application/dto"
	"github.com/tu-usuario/backoffice-pro/internal/domain"
	"github.com/tu-usuario/backoffice-pro/internal/domain/billing"
	"github.com/tu-usuario/backoffice-pro/internal/domain/entity"
	"github.com/tu-usuario/backoffice-pro/internal/domain/repository"
)

// ReconcilePaymentUseCase aplica y reversa pagos sobre facturas emitidas.
// Cada operación bloquea la fila de la factura (GetForUpdate) y escribe pago,
// PaidAmount, Status y auditoría en una sola transacción: dos pagos
// concurrentes sobre la misma factura se serializan ahí, nunca se pierden.
type ReconcilePaymentUseCase struct {
	txRunner    TxRunner
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	notifier    Notifier
}

// NewReconcilePaymentUseCase construye el caso de uso.
func NewReconcilePaymentUseCase(txRunner TxRunner, invoiceRepo repository.InvoiceRepository, paymentRepo repository.PaymentRepository, notifier Notifier) *ReconcilePaymentUseCase {
	return &ReconcilePaymentUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		notifier:    notifier,
	}
}

// ApplyPayment registra un pago contra una factura. Rechaza montos no
// positivos, facturas DRAFT o CANCELLED, y sobrepagos (el nuevo acumulado
// jamás supera TotalAmount). El estado derivado se recalcula con el
// acumulado; OVERDUE se preserva aunque el pago deje saldo parcial.
func (uc *ReconcilePaymentUseCase) ApplyPayment(ctx context.Context, companyID, userID, invoiceID string, in dto.ApplyPaymentRequest) (*dto.PaymentResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	method := in.PaymentMethod
	if method == "" {
		method = entity.PaymentMethodOther
	}

	var invoice *entity.Invoice
	var payment *entity.Payment
	err := uc.txRunner.Run(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
		auditRepo repository.AuditRepository,
	) error {
		inv, err := invoiceRepo.GetForUpdate(invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if inv.Status == entity.InvoiceStatusDraft || inv.Status == entity.InvoiceStatusCancelled {
			return domain.ErrInvalidState
		}

		newPaid := inv.PaidAmount.Add(in.Amount)
		if newPaid.GreaterThan(inv.TotalAmount) {
			return domain.ErrPaymentExceedsBalance
		}

		now := time.Now()
		paymentDate := now
		if in.PaymentDate != nil {
			paymentDate = *in.PaymentDate
		}
		pay := &entity.Payment{
			ID:            uuid.New().String(),
			CompanyID:     companyID,
			InvoiceID:     inv.ID,
			Amount:        in.Amount,
			PaymentMethod: method,
			PaymentDate:   paymentDate,
			Reference:     in.Reference,
			CreatedAt:     now,
			CreatedBy:     userID,
		}
		if err := paymentRepo.Create(pay); err != nil {
			return err
		}

		before := *inv
		inv.PaidAmount = newPaid
		inv.Status = billing.DeriveStatus(inv.Status, inv.PaidAmount, inv.TotalAmount)
		inv.UpdatedAt = now
		if err := invoiceRepo.Update(inv); err != nil {
			return err
		}

		if err := auditRepo.Create(audit.Entry(
			companyID, userID, entity.AuditActionCreate, "payment", pay.ID, nil, pay,
		)); err != nil {
			return err
		}
		if err := auditRepo.Create(audit.Entry(
			companyID, userID, entity.AuditActionUpdate, "invoice", inv.ID, &before, inv,
		)); err != nil {
			return err
		}

		invoice = inv
		payment = pay
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.NotifyPaymentReceived(invoice, payment)
	return toPaymentResponse(payment, invoice), nil
}

// ReversePayment elimina un pago aplicado y descuenta su monto del
// acumulado de la factura, recalculando el estado. El pago se relee dentro
// de la transacción, con la factura ya bloqueada: dos reversas concurrentes
// del mismo pago dejan exactamente una efectiva.
func (uc *ReconcilePaymentUseCase) ReversePayment(ctx context.Context, companyID, userID, paymentID string) (*dto.PaymentResponse, error) {
	// Lectura preliminar solo para conocer la factura dueña y poder
	// bloquearla; la verdad se relee bajo el candado.
	pay, err := uc.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if pay == nil {
		return nil, domain.ErrNotFound
	}
	if pay.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	invoiceID := pay.InvoiceID

	var invoice *entity.Invoice
	var reversed *entity.Payment
	err = uc.txRunner.Run(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
		auditRepo repository.AuditRepository,
	) error {
		inv, err := invoiceRepo.GetForUpdate(invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.CompanyID != companyID {
			return domain.ErrForbidden
		}

		current, err := paymentRepo.GetByID(paymentID)
		if err != nil {
			return err
		}
		if current == nil {
			// Otra reversa concurrente ganó el candado primero.
			return domain.ErrNotFound
		}

		newPaid := inv.PaidAmount.Sub(current.Amount)
		if newPaid.IsNegative() {
			return domain.ErrInvalidState
		}

		if err := paymentRepo.Delete(current.ID); err != nil {
			return err
		}

		before := *inv
		inv.PaidAmount = newPaid
		inv.Status = billing.DeriveStatus(inv.Status, inv.PaidAmount, inv.TotalAmount)
		inv.UpdatedAt = time.Now()
		if err := invoiceRepo.Update(inv); err != nil {
			return err
		}

		if err := auditRepo.Create(audit.Entry(
			companyID, userID, entity.AuditActionDelete, "payment", current.ID, current, nil,
		)); err != nil {
			return err
		}
		if err := auditRepo.Create(audit.Entry(
			companyID, userID, entity.AuditActionUpdate, "invoice", inv.ID, &before, inv,
		)); err != nil {
			return err
		}

		invoice = inv
		reversed = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(reversed, invoice), nil
}

// ListPayments lista los pagos vigentes de una factura.
func (uc *ReconcilePaymentUseCase) ListPayments(ctx context.Context, companyID, invoiceID string) ([]*dto.PaymentResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	payments, err := uc.paymentRepo.ListByInvoice(invoiceID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p, inv))
	}
	return out, nil
}

func toPaymentResponse(p *entity.Payment, inv *entity.Invoice) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:                p.ID,
		InvoiceID:         p.InvoiceID,
		Amount:            p.Amount,
		PaymentMethod:     p.PaymentMethod,
		PaymentDate:       p.PaymentDate,
		Reference:         p.Reference,
		InvoiceStatus:     inv.Status,
		InvoicePaidAmount: inv.PaidAmount,
	}
}
