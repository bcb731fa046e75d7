package billing_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/backoffice-pro/internal/application/numbering"
	"github.com/tu-usuario/backoffice-pro/internal/domain/entity"
	"github.com/tu-usuario/backoffice-pro/internal/domain/repository"
)

// Fakes en memoria para los casos de uso de facturación. El fakeTxRunner
// serializa cada Run con un mutex global: es el equivalente en memoria del
// candado de fila que GetForUpdate toma en Postgres.

type fakeInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[string]*entity.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[string]*entity.Invoice)}
}

func (f *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copia := *inv
	f.invoices[inv.ID] = &copia
	return nil
}

func (f *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invoices[id]
	if !ok {
		return nil, nil
	}
	copia := *inv
	return &copia, nil
}

// GetForUpdate en el fake es igual a GetByID: la exclusión la garantiza el
// mutex del fakeTxRunner durante todo el Run.
func (f *fakeInvoiceRepo) GetForUpdate(id string) (*entity.Invoice, error) {
	return f.GetByID(id)
}

func (f *fakeInvoiceRepo) Update(inv *entity.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copia := *inv
	f.invoices[inv.ID] = &copia
	return nil
}

func (f *fakeInvoiceRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Invoice
	for _, inv := range f.invoices {
		if inv.CompanyID != companyID {
			continue
		}
		if status != "" && inv.Status != status {
			continue
		}
		copia := *inv
		out = append(out, &copia)
	}
	return out, nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[string]*entity.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*entity.Payment)}
}

func (f *fakePaymentRepo) Create(p *entity.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copia := *p
	f.payments[p.ID] = &copia
	return nil
}

func (f *fakePaymentRepo) GetByID(id string) (*entity.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[id]
	if !ok {
		return nil, nil
	}
	copia := *p
	return &copia, nil
}

func (f *fakePaymentRepo) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.payments, id)
	return nil
}

func (f *fakePaymentRepo) ListByInvoice(invoiceID string) ([]*entity.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Payment
	for _, p := range f.payments {
		if p.InvoiceID == invoiceID {
			copia := *p
			out = append(out, &copia)
		}
	}
	return out, nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*entity.AuditLog
}

func (f *fakeAuditRepo) Create(log *entity.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, log)
	return nil
}

func (f *fakeAuditRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// fakeTxRunner serializa los Run concurrentes: dentro del callback nadie más
// lee ni escribe la factura, igual que bajo SELECT FOR UPDATE.
type fakeTxRunner struct {
	mu          sync.Mutex
	invoiceRepo *fakeInvoiceRepo
	paymentRepo *fakePaymentRepo
	auditRepo   *fakeAuditRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	auditRepo repository.AuditRepository,
) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(f.invoiceRepo, f.paymentRepo, f.auditRepo)
}

// fakeNotifier cuenta las notificaciones emitidas tras el commit.
type fakeNotifier struct {
	mu       sync.Mutex
	issued   int
	payments int
}

func (f *fakeNotifier) NotifyInvoiceIssued(_ *entity.Invoice) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issued++
}

func (f *fakeNotifier) NotifyPaymentReceived(_ *entity.Invoice, _ *entity.Payment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments++
}

type fakeSequenceRepo struct {
	mu   sync.Mutex
	last map[string]int64
}

func (f *fakeSequenceRepo) NextNumber(companyID, kind string, year int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.last == nil {
		f.last = make(map[string]int64)
	}
	key := companyID + "|" + kind
	f.last[key]++
	return f.last[key], nil
}

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
	failWith  error // simula una caída del almacenamiento
}

func (f *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.customers[id], nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func (f *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return f.companies[id], nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.products[id], nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.Order
}

func (f *fakeOrderRepo) Create(o *entity.Order) error {
	if f.orders == nil {
		f.orders = make(map[string]*entity.Order)
	}
	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrderRepo) CreateItem(_ *entity.OrderItem) error { return nil }

func (f *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	return f.orders[id], nil
}

func (f *fakeOrderRepo) GetItemsByOrderID(orderID string) ([]*entity.OrderItem, error) {
	return nil, nil
}

func (f *fakeOrderRepo) Update(o *entity.Order) error {
	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrderRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.orders {
		if o.CompanyID == companyID {
			out = append(out, o)
		}
	}
	return out, nil
}

// entorno agrupa los fakes y casos de uso listos para un test de facturación.
type entorno struct {
	invoiceRepo *fakeInvoiceRepo
	paymentRepo *fakePaymentRepo
	auditRepo   *fakeAuditRepo
	notifier    *fakeNotifier
	allocator   *numbering.Allocator
	customers   *fakeCustomerRepo
	companies   *fakeCompanyRepo
	products    *fakeProductRepo
	orders      *fakeOrderRepo
	txRunner    *fakeTxRunner
}

func nuevoEntorno() *entorno {
	invoiceRepo := newFakeInvoiceRepo()
	paymentRepo := newFakePaymentRepo()
	auditRepo := &fakeAuditRepo{}
	return &entorno{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		auditRepo:   auditRepo,
		notifier:    &fakeNotifier{},
		allocator:   numbering.NewAllocator(&fakeSequenceRepo{}),
		customers: &fakeCustomerRepo{customers: map[string]*entity.Customer{
			"C1": {ID: "C1", CompanyID: "empresa-1", Name: "Cliente Uno"},
			"C-ajeno": {ID: "C-ajeno", CompanyID: "empresa-2", Name: "Cliente Ajeno"},
		}},
		companies: &fakeCompanyRepo{companies: map[string]*entity.Company{
			"empresa-1": {ID: "empresa-1", Name: "Empresa Uno", Currency: "COP"},
		}},
		products: &fakeProductRepo{products: map[string]*entity.Product{
			"P1": {
				ID: "P1", CompanyID: "empresa-1", SKU: "SKU-1", Name: "Producto Uno",
				Price: decimal.RequireFromString("100.00"), TaxRate: decimal.RequireFromString("0.19"),
			},
			"P-exento": {
				ID: "P-exento", CompanyID: "empresa-1", SKU: "SKU-2", Name: "Producto Exento",
				Price: decimal.RequireFromString("50.00"), TaxRate: decimal.Zero,
			},
		}},
		orders: &fakeOrderRepo{orders: map[string]*entity.Order{}},
		txRunner: &fakeTxRunner{
			invoiceRepo: invoiceRepo,
			paymentRepo: paymentRepo,
			auditRepo:   auditRepo,
		},
	}
}

// facturaEmitida siembra una factura ISSUED lista para recibir pagos.
func (e *entorno) facturaEmitida(id, total, currency string) *entity.Invoice {
	now := time.Now()
	issued := now.Add(-24 * time.Hour)
	inv := &entity.Invoice{
		ID:            id,
		CompanyID:     "empresa-1",
		InvoiceNumber: "INV-2026-000001",
		Status:        entity.InvoiceStatusIssued,
		TotalAmount:   decimal.RequireFromString(total),
		PaidAmount:    decimal.Zero,
		Currency:      currency,
		IssuedDate:    &issued,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedBy:     "usuario-1",
	}
	_ = e.invoiceRepo.Create(inv)
	return inv
}
