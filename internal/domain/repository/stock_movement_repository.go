package repository

import (
	"time"

	"github.com/tu-usuario/backoffice-pro/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del libro de
// movimientos (DIP). El libro es append-only: no existe Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// LockPair serializa, hasta el fin de la transacción en curso, los
	// appends concurrentes sobre la pareja (bodega, producto). Debe tomarse
	// antes de plegar el disponible para validar salidas o reservas.
	LockPair(companyID, warehouseID, productID string) error
	GetByID(id string) (*entity.StockMovement, error)
	// ListForProjection retorna todos los movimientos de la empresa que
	// coincidan con los filtros (vacío = sin filtro), ordenados por fecha de
	// creación ascendente. Es la lectura que alimenta el plegado de balances.
	ListForProjection(companyID, warehouseID, productID string) ([]*entity.StockMovement, error)
	// ListByWarehouse lista movimientos de una bodega en un rango de fechas (paginado).
	ListByWarehouse(companyID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// ListByProduct lista movimientos de un producto en un rango de fechas (paginado).
	ListByProduct(companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
