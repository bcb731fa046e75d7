package inventory

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/backoffice-pro/internal/domain/entity"
)

// Fold pliega movimientos por pareja (bodega, producto) y deriva los balances
// según las fórmulas del libro de inventario (servicio de dominio, puro):
//
//	OnHand   = Σ(IN) + Σ(ADJUSTMENT) − Σ(OUT)
//	Reserved = Σ(RESERVED) − Σ(UNRESERVED)
//	Available = OnHand − Reserved
//
// Los movimientos deben venir en orden de creación dentro de cada pareja; el
// orden entre parejas distintas no afecta el resultado. Solo se retornan
// balances con OnHand > 0 o Reserved > 0, ordenados por (bodega, producto)
// para salida estable.
func Fold(movements []*entity.StockMovement) []*entity.StockBalance {
	type key struct {
		warehouseID string
		productID   string
	}
	acc := make(map[key]*entity.StockBalance)

	for _, m := range movements {
		k := key{warehouseID: m.WarehouseID, productID: m.ProductID}
		b, ok := acc[k]
		if !ok {
			b = &entity.StockBalance{
				CompanyID:   m.CompanyID,
				WarehouseID: m.WarehouseID,
				ProductID:   m.ProductID,
				OnHand:      decimal.Zero,
				Reserved:    decimal.Zero,
			}
			acc[k] = b
		}
		switch m.Type {
		case entity.MovementTypeIN, entity.MovementTypeADJUSTMENT:
			b.OnHand = b.OnHand.Add(m.Quantity)
		case entity.MovementTypeOUT:
			b.OnHand = b.OnHand.Sub(m.Quantity)
		case entity.MovementTypeRESERVED:
			b.Reserved = b.Reserved.Add(m.Quantity)
		case entity.MovementTypeUNRESERVED:
			b.Reserved = b.Reserved.Sub(m.Quantity)
		}
		if m.CreatedAt.After(b.LastMovementAt) {
			b.LastMovementAt = m.CreatedAt
		}
	}

	balances := make([]*entity.StockBalance, 0, len(acc))
	for _, b := range acc {
		if !b.OnHand.IsPositive() && !b.Reserved.IsPositive() {
			continue
		}
		b.Available = b.OnHand.Sub(b.Reserved)
		balances = append(balances, b)
	}
	sort.Slice(balances, func(i, j int) bool {
		if balances[i].WarehouseID != balances[j].WarehouseID {
			return balances[i].WarehouseID < balances[j].WarehouseID
		}
		return balances[i].ProductID < balances[j].ProductID
	})
	return balances
}

// AvailableFor retorna el disponible actual de una pareja (bodega, producto)
// dentro de un conjunto de movimientos ya filtrado por empresa.
func AvailableFor(movements []*entity.StockMovement, warehouseID, productID string) decimal.Decimal {
	onHand, reserved := decimal.Zero, decimal.Zero
	for _, m := range movements {
		if m.WarehouseID != warehouseID || m.ProductID != productID {
			continue
		}
		switch m.Type {
		case entity.MovementTypeIN, entity.MovementTypeADJUSTMENT:
			onHand = onHand.Add(m.Quantity)
		case entity.MovementTypeOUT:
			onHand = onHand.Sub(m.Quantity)
		case entity.MovementTypeRESERVED:
			reserved = reserved.Add(m.Quantity)
		case entity.MovementTypeUNRESERVED:
			reserved = reserved.Sub(m.Quantity)
		}
	}
	return onHand.Sub(reserved)
}
