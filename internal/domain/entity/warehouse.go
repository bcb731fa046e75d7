package entity

import "time"

// Estados del ciclo de vida de una bodega. Estado explícito en lugar de un
// booleano de desactivación: una bodega RETIRED conserva su historial de
// movimientos pero no acepta nuevos.
const (
	WarehouseStatusActive  = "ACTIVE"
	WarehouseStatusRetired = "RETIRED"
)

// Warehouse representa una bodega o sucursal donde se almacena inventario.
type Warehouse struct {
	ID        string
	CompanyID string
	Code      string
	Name      string
	Address   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AcceptsMovements retorna true si la bodega admite nuevos movimientos.
func (w *Warehouse) AcceptsMovements() bool {
	return w.Status == WarehouseStatusActive
}
