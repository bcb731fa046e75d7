package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBalance es el balance derivado de una pareja (bodega, producto).
// No es estado autoritativo: se calcula plegando los StockMovement en orden
// de creación. Solo se reporta cuando OnHand > 0 o Reserved > 0.
type StockBalance struct {
	CompanyID      string
	WarehouseID    string
	ProductID      string
	OnHand         decimal.Decimal // Σ(IN) + Σ(ADJUSTMENT) − Σ(OUT)
	Reserved       decimal.Decimal // Σ(RESERVED) − Σ(UNRESERVED)
	Available      decimal.Decimal // OnHand − Reserved
	LastMovementAt time.Time
}
