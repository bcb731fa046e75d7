package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest entrada HTTP para crear una factura en DRAFT.
// Si OrderID viene informado, el total se copia de la orden y Items se ignora.
type CreateInvoiceRequest struct {
	CustomerID string              `json:"customer_id"`
	OrderID    string              `json:"order_id,omitempty"`
	Currency   string              `json:"currency,omitempty"`
	DueDate    *time.Time          `json:"due_date,omitempty"`
	Items      []InvoiceItemInput  `json:"items,omitempty"`
}

// InvoiceItemInput línea de factura manual (sin orden de origen).
type InvoiceItemInput struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// InvoiceResponse representación HTTP de una factura.
type InvoiceResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	OrderID       string          `json:"order_id,omitempty"`
	InvoiceNumber string          `json:"invoice_number"`
	Status        string          `json:"status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	Currency      string          `json:"currency"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	IssuedDate    *time.Time      `json:"issued_date,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ApplyPaymentRequest entrada HTTP para aplicar un pago a una factura.
type ApplyPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	PaymentDate   *time.Time      `json:"payment_date,omitempty"`
	Reference     string          `json:"reference,omitempty"`
}

// PaymentResponse representación HTTP de un pago aplicado.
type PaymentResponse struct {
	ID            string          `json:"id"`
	InvoiceID     string          `json:"invoice_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	PaymentDate   time.Time       `json:"payment_date"`
	Reference     string          `json:"reference,omitempty"`
	// Estado de la factura después de aplicar/reversar el pago.
	InvoiceStatus     string          `json:"invoice_status"`
	InvoicePaidAmount decimal.Decimal `json:"invoice_paid_amount"`
}
