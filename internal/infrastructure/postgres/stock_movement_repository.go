package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/backoffice-pro/internal/domain/entity"
	"github.com/tu-usuario/backoffice-pro/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla stock_movements es append-only: no hay UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const stockMovementColumns = `id, company_id, warehouse_id, product_id, type, quantity, reference_id, reference_type, created_at, created_by`

// Create persiste un movimiento del libro de inventario.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + stockMovementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	referenceID := (*string)(nil)
	if movement.ReferenceID != "" {
		referenceID = &movement.ReferenceID
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.CompanyID, movement.WarehouseID, movement.ProductID,
		movement.Type, movement.Quantity, referenceID, movement.ReferenceType,
		movement.CreatedAt, movement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// LockPair toma un candado consultivo de transacción sobre la pareja
// (bodega, producto). Postgres lo libera solo al terminar la tx, así que dos
// appends concurrentes sobre la misma pareja se ejecutan en serie y el
// segundo pliega el disponible ya incluyendo lo que confirmó el primero.
func (r *StockMovementRepo) LockPair(companyID, warehouseID, productID string) error {
	query := `SELECT pg_advisory_xact_lock(hashtextextended($1 || '/' || $2 || '/' || $3, 0))`
	_, err := r.q.Exec(context.Background(), query, companyID, warehouseID, productID)
	if err != nil {
		return fmt.Errorf("lock stock pair: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	m, err := scanStockMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// ListForProjection retorna los movimientos de la empresa (filtros opcionales)
// en orden de creación ascendente, para el plegado de balances.
func (r *StockMovementRepo) ListForProjection(companyID, warehouseID, productID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if warehouseID != "" {
		query += fmt.Sprintf(" AND warehouse_id = $%d", pos)
		args = append(args, warehouseID)
		pos++
	}
	if productID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, productID)
		pos++
	}
	query += " ORDER BY created_at ASC, id ASC"
	return r.list(query, args)
}

// ListByWarehouse lista movimientos de una bodega en un rango de fechas (paginado).
func (r *StockMovementRepo) ListByWarehouse(companyID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements WHERE company_id = $1 AND warehouse_id = $2`
	return r.listFiltered(query, []any{companyID, warehouseID}, from, to, limit, offset)
}

// ListByProduct lista movimientos de un producto en un rango de fechas (paginado).
func (r *StockMovementRepo) ListByProduct(companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements WHERE company_id = $1 AND product_id = $2`
	return r.listFiltered(query, []any{companyID, productID}, from, to, limit, offset)
}

func (r *StockMovementRepo) listFiltered(query string, args []any, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	pos := len(args) + 1
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.list(query, args)
}

func (r *StockMovementRepo) list(query string, args []any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockMovement
	for rows.Next() {
		m, err := scanStockMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanStockMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var referenceID, referenceType *string
	err := row.Scan(
		&m.ID, &m.CompanyID, &m.WarehouseID, &m.ProductID, &m.Type,
		&m.Quantity, &referenceID, &referenceType, &m.CreatedAt, &m.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	if referenceID != nil {
		m.ReferenceID = *referenceID
	}
	if referenceType != nil {
		m.ReferenceType = *referenceType
	}
	return &m, nil
}
