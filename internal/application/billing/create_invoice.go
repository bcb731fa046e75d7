package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/backoffice-pro/internal/application/audit"
	"github.com/tu-usuario/backoffice-pro/internal/application/dto"
	"github.com/tu-usuario/backoffice-pro/internal/application/numbering"
	"github.com/tu-usuario/backoffice-pro/internal/domain"
	"github.com/tu-usuario/backoffice-pro/internal/domain/entity"
	"github.com/tu-usuario/backoffice-pro/internal/domain/money"
	"github.com/tu-usuario/backoffice-pro/internal/domain/repository"
)

// CreateInvoiceUseCase crea facturas en DRAFT y las emite. El total puede
// copiarse de una orden o calcularse desde líneas manuales con aritmética
// decimal (subtotales sin redondear, total half-up a 2 decimales).
type CreateInvoiceUseCase struct {
	txRunner     TxRunner
	allocator    *numbering.Allocator
	customerRepo repository.CustomerRepository
	companyRepo  repository.CompanyRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	invoiceRepo  repository.InvoiceRepository
	notifier     Notifier
}

// NewCreateInvoiceUseCase construye el caso de uso.
func NewCreateInvoiceUseCase(
	txRunner TxRunner,
	allocator *numbering.Allocator,
	customerRepo repository.CustomerRepository,
	companyRepo repository.CompanyRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	invoiceRepo repository.InvoiceRepository,
	notifier Notifier,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:     txRunner,
		allocator:    allocator,
		customerRepo: customerRepo,
		companyRepo:  companyRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		invoiceRepo:  invoiceRepo,
		notifier:     notifier,
	}
}

// Create crea una factura en DRAFT. Con OrderID el total se copia de la
// orden; sin orden, se calcula desde las líneas. El consecutivo INV se
// reserva antes de la transacción: un rollback posterior deja un hueco
// documentado en lugar de un número repetido.
func (uc *CreateInvoiceUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if companyID == "" || in.CustomerID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.OrderID == "" && len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	currency := in.Currency

	var total decimal.Decimal
	var orderID *string
	if in.OrderID != "" {
		order, err := uc.orderRepo.GetByID(in.OrderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, domain.ErrNotFound
		}
		if order.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		if order.Status == entity.OrderStatusCancelled {
			return nil, domain.ErrInvalidState
		}
		total = order.GrandTotal
		if currency == "" {
			currency = order.Currency
		}
		orderID = &in.OrderID
	} else {
		grand, err := uc.totalFromItems(companyID, in.Items)
		if err != nil {
			return nil, err
		}
		total = grand
	}
	if total.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	// Moneda: petición > orden > moneda por defecto de la empresa.
	if currency == "" {
		company, err := uc.companyRepo.GetByID(companyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, domain.ErrNotFound
		}
		currency = company.Currency
	}

	now := time.Now()
	number, _, err := uc.allocator.Next(ctx, companyID, entity.DocumentKindInvoice, now.Year())
	if err != nil {
		return nil, err
	}

	inv := &entity.Invoice{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		OrderID:       orderID,
		InvoiceNumber: number,
		Status:        entity.InvoiceStatusDraft,
		TotalAmount:   total,
		PaidAmount:    decimal.Zero,
		Currency:      currency,
		DueDate:       in.DueDate,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedBy:     userID,
	}

	err = uc.txRunner.Run(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.PaymentRepository,
		auditRepo repository.AuditRepository,
	) error {
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		return auditRepo.Create(audit.Entry(
			companyID, userID, entity.AuditActionCreate, "invoice", inv.ID, nil, inv,
		))
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// totalFromItems calcula el gran total desde líneas manuales: subtotal línea
// = cantidad * precio (sin redondear), impuesto = subtotal * tasa del
// producto, y solo el total final se redondea half-up.
func (uc *CreateInvoiceUseCase) totalFromItems(companyID string, items []dto.InvoiceItemInput) (decimal.Decimal, error) {
	grand := money.Zero()
	for _, item := range items {
		if item.ProductID == "" || !item.Quantity.IsPositive() || item.UnitPrice.IsNegative() {
			return decimal.Zero, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return decimal.Zero, err
		}
		if product == nil {
			return decimal.Zero, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return decimal.Zero, domain.ErrForbidden
		}
		unitPrice := item.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.Price
		}
		subtotal := money.New(unitPrice).MulScalar(item.Quantity)
		tax := subtotal.MulScalar(product.TaxRate)
		grand = grand.Add(subtotal).Add(tax)
	}
	return grand.RoundCurrency().Amount(), nil
}

// Issue emite una factura DRAFT: transición única DRAFT -> ISSUED que
// estampa la fecha de emisión. Cualquier otro estado falla con
// ErrInvalidState. La notificación sale después del commit.
func (uc *CreateInvoiceUseCase) Issue(ctx context.Context, companyID, userID, invoiceID string) (*dto.InvoiceResponse, error) {
	var issued *entity.Invoice
	err := uc.txRunner.Run(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.PaymentRepository,
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
		if inv.Status != entity.InvoiceStatusDraft {
			return domain.ErrInvalidState
		}
		before := *inv
		now := time.Now()
		inv.Status = entity.InvoiceStatusIssued
		inv.IssuedDate = &now
		inv.UpdatedAt = now
		if err := invoiceRepo.Update(inv); err != nil {
			return err
		}
		if err := auditRepo.Create(audit.Entry(
			companyID, userID, entity.AuditActionUpdate, "invoice", inv.ID, &before, inv,
		)); err != nil {
			return err
		}
		issued = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.NotifyInvoiceIssued(issued)
	return toInvoiceResponse(issued), nil
}

// Cancel fija el estado manual CANCELLED. Solo procede mientras la factura
// no tenga pagos aplicados; después de eso hay que reversar los pagos primero.
func (uc *CreateInvoiceUseCase) Cancel(ctx context.Context, companyID, userID, invoiceID string) (*dto.InvoiceResponse, error) {
	return uc.setManualStatus(ctx, companyID, userID, invoiceID, entity.InvoiceStatusCancelled)
}

// MarkOverdue fija el estado manual OVERDUE sobre una factura emitida con
// saldo pendiente. La conciliación de pagos lo preserva tal cual.
func (uc *CreateInvoiceUseCase) MarkOverdue(ctx context.Context, companyID, userID, invoiceID string) (*dto.InvoiceResponse, error) {
	return uc.setManualStatus(ctx, companyID, userID, invoiceID, entity.InvoiceStatusOverdue)
}

func (uc *CreateInvoiceUseCase) setManualStatus(ctx context.Context, companyID, userID, invoiceID, status string) (*dto.InvoiceResponse, error) {
	var updated *entity.Invoice
	err := uc.txRunner.Run(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.PaymentRepository,
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
		switch status {
		case entity.InvoiceStatusCancelled:
			if inv.Status == entity.InvoiceStatusCancelled || inv.PaidAmount.IsPositive() {
				return domain.ErrInvalidState
			}
		case entity.InvoiceStatusOverdue:
			if inv.Status != entity.InvoiceStatusIssued && inv.Status != entity.InvoiceStatusPartiallyPaid {
				return domain.ErrInvalidState
			}
		}
		before := *inv
		inv.Status = status
		inv.UpdatedAt = time.Now()
		if err := invoiceRepo.Update(inv); err != nil {
			return err
		}
		if err := auditRepo.Create(audit.Entry(
			companyID, userID, entity.AuditActionUpdate, "invoice", inv.ID, &before, inv,
		)); err != nil {
			return err
		}
		updated = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(updated), nil
}

// GetInvoice obtiene una factura por ID.
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toInvoiceResponse(inv), nil
}

// ListInvoices lista facturas de la empresa, opcionalmente por estado.
func (uc *CreateInvoiceUseCase) ListInvoices(ctx context.Context, companyID, status string, limit, offset int) ([]*dto.InvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.ListByCompany(companyID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv))
	}
	return out, nil
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:            inv.ID,
		CompanyID:     inv.CompanyID,
		InvoiceNumber: inv.InvoiceNumber,
		Status:        inv.Status,
		TotalAmount:   inv.TotalAmount,
		PaidAmount:    inv.PaidAmount,
		Outstanding:   inv.Outstanding(),
		Currency:      inv.Currency,
		DueDate:       inv.DueDate,
		IssuedDate:    inv.IssuedDate,
		CreatedAt:     inv.CreatedAt,
	}
	if inv.OrderID != nil {
		resp.OrderID = *inv.OrderID
	}
	return resp
}
