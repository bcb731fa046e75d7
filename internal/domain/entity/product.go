package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU de la empresa (multi-bodega).
// IsService marca ítems de servicio sin seguimiento de inventario: el libro
// de movimientos rechaza cualquier movimiento sobre ellos.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	TaxRate     decimal.Decimal // fracción: 0, 0.05, 0.19
	UnitMeasure string
	IsService   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
