package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de venta.
const (
	OrderStatusOpen      = "OPEN"
	OrderStatusInvoiced  = "INVOICED"
	OrderStatusCancelled = "CANCELLED"
)

// Order representa una orden de venta. El total es la suma de sus líneas,
// calculada con aritmética decimal (subtotales sin redondear, total half-up).
type Order struct {
	ID          string
	CompanyID   string
	CustomerID  string
	WarehouseID string
	OrderNumber string // único por empresa, ej. ORD-2026-000017
	Status      string
	NetTotal    decimal.Decimal
	TaxTotal    decimal.Decimal
	GrandTotal  decimal.Decimal
	Currency    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CreatedBy   string
}

// OrderItem es una línea de una orden de venta.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal // fracción: 0.19 = 19%
	Subtotal  decimal.Decimal // Quantity * UnitPrice, sin redondear
}
