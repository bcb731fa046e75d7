package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest entrada HTTP para anotar un movimiento en el libro.
type RegisterMovementRequest struct {
	WarehouseID   string          `json:"warehouse_id"`
	ProductID     string          `json:"product_id"`
	Type          string          `json:"type"` // IN, OUT, ADJUSTMENT, RESERVED, UNRESERVED
	Quantity      decimal.Decimal `json:"quantity"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	ReferenceType string          `json:"reference_type,omitempty"`
}

// MovementResponse representación HTTP de un movimiento del libro.
type MovementResponse struct {
	ID            string          `json:"id"`
	WarehouseID   string          `json:"warehouse_id"`
	ProductID     string          `json:"product_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	ReferenceType string          `json:"reference_type,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	CreatedBy     string          `json:"created_by,omitempty"`
}

// StockBalanceResponse balance derivado de una pareja (bodega, producto).
type StockBalanceResponse struct {
	WarehouseID    string          `json:"warehouse_id"`
	ProductID      string          `json:"product_id"`
	OnHand         decimal.Decimal `json:"on_hand"`
	Reserved       decimal.Decimal `json:"reserved"`
	Available      decimal.Decimal `json:"available"`
	LastMovementAt time.Time       `json:"last_movement_at"`
}

// ListMovementsRequest filtros para listar movimientos.
type ListMovementsRequest struct {
	WarehouseID string     `query:"warehouse_id"`
	ProductID   string     `query:"product_id"`
	From        *time.Time `query:"from"`
	To          *time.Time `query:"to"`
	PageRequest
}
