package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest entrada HTTP para crear una orden de venta.
type CreateOrderRequest struct {
	CustomerID  string           `json:"customer_id"`
	WarehouseID string           `json:"warehouse_id"`
	Currency    string           `json:"currency,omitempty"`
	Items       []OrderItemInput `json:"items"`
}

// OrderItemInput línea de la orden. UnitPrice en cero toma el precio del producto.
type OrderItemInput struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderItemResponse línea de la orden en respuestas.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse representación HTTP de una orden de venta.
type OrderResponse struct {
	ID          string              `json:"id"`
	CompanyID   string              `json:"company_id"`
	CustomerID  string              `json:"customer_id"`
	WarehouseID string              `json:"warehouse_id"`
	OrderNumber string              `json:"order_number"`
	Status      string              `json:"status"`
	NetTotal    decimal.Decimal     `json:"net_total"`
	TaxTotal    decimal.Decimal     `json:"tax_total"`
	GrandTotal  decimal.Decimal     `json:"grand_total"`
	Currency    string              `json:"currency"`
	CreatedAt   time.Time           `json:"created_at"`
	Items       []OrderItemResponse `json:"items"`
}
