package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario. El signo del efecto sobre el balance lo
// determina únicamente el tipo; Quantity siempre es estrictamente positiva.
const (
	MovementTypeIN         = "IN"         // entrada (compra, recepción)
	MovementTypeOUT        = "OUT"        // salida (venta, despacho)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste (conteo físico, corrección)
	MovementTypeRESERVED   = "RESERVED"   // reserva (orden pendiente)
	MovementTypeUNRESERVED = "UNRESERVED" // liberación de reserva
)

// IsValidMovementType retorna true si el tipo es uno de los soportados.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTMENT,
		MovementTypeRESERVED, MovementTypeUNRESERVED:
		return true
	}
	return false
}

// StockMovement es un evento inmutable del libro de inventario. Nunca se
// actualiza ni se elimina: las correcciones son nuevos movimientos ADJUSTMENT.
type StockMovement struct {
	ID            string
	CompanyID     string
	WarehouseID   string
	ProductID     string
	Type          string
	Quantity      decimal.Decimal // estrictamente positiva
	ReferenceID   string          // documento que originó el movimiento (factura, orden)
	ReferenceType string          // invoice, order, adjustment_note, ...
	CreatedAt     time.Time
	CreatedBy     string // UserID
}
