package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/backoffice-pro/internal/application/audit"
	"github.com/tu-usuario/backoffice-pro/internal/application/dto"
	"github.com/tu-usuario/backoffice-pro/internal/domain"
	"github.com/tu-usuario/backoffice-pro/internal/domain/entity"
	"github.com/tu-usuario/backoffice-pro/internal/domain/inventory"
	"github.com/tu-usuario/backoffice-pro/internal/domain/repository"
	"github.com/tu-usuario/backoffice-pro/internal/infrastructure/cache"
)

// LedgerUseCase anota movimientos en el libro de inventario de forma
// transaccional. El libro es append-only: este caso de uso valida el evento
// y lo agrega; no existe ruta de actualización ni borrado, las correcciones
// son nuevos movimientos ADJUSTMENT.
type LedgerUseCase struct {
	txRunner       TxRunner
	movementRepo   repository.StockMovementRepository
	productRepo    repository.ProductRepository
	warehouseRepo  repository.WarehouseRepository
	productCache   *cache.TTLCache[*entity.Product]
	warehouseCache *cache.TTLCache[*entity.Warehouse]
}

// NewLedgerUseCase construye el caso de uso. Las cachés TTL amortiguan la
// resolución de llaves foráneas bajo ráfagas de movimientos.
func NewLedgerUseCase(
	txRunner TxRunner,
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	productCache *cache.TTLCache[*entity.Product],
	warehouseCache *cache.TTLCache[*entity.Warehouse],
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:       txRunner,
		movementRepo:   movementRepo,
		productRepo:    productRepo,
		warehouseRepo:  warehouseRepo,
		productCache:   productCache,
		warehouseCache: warehouseCache,
	}
}

// Append valida y agrega un movimiento al libro. Rechaza con
// ErrInvalidMovement cantidades no positivas, tipos desconocidos, ítems de
// servicio, bodegas retiradas y referencias de otra empresa; con
// ErrInsufficientStock salidas o reservas por encima del disponible. El append y su registro de auditoría son una
// sola unidad de trabajo.
func (uc *LedgerUseCase) Append(ctx context.Context, companyID, userID string, in dto.RegisterMovementRequest) (*entity.StockMovement, error) {
	if companyID == "" || in.ProductID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsValidMovementType(in.Type) || !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidMovement
	}

	product, err := uc.resolveProduct(in.ProductID)
	if err != nil {
		return nil, err
	}
	// Referencias de otra empresa hacen inválido el movimiento, igual que un
	// tipo desconocido: la pareja bodega/producto debe pertenecer al tenant.
	if product.CompanyID != companyID {
		return nil, domain.ErrInvalidMovement
	}
	// Ítems de servicio no llevan inventario.
	if product.IsService {
		return nil, domain.ErrInvalidMovement
	}

	warehouse, err := uc.resolveWarehouse(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse.CompanyID != companyID {
		return nil, domain.ErrInvalidMovement
	}
	if !warehouse.AcceptsMovements() {
		return nil, domain.ErrInvalidMovement
	}

	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		WarehouseID:   in.WarehouseID,
		ProductID:     in.ProductID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		ReferenceID:   in.ReferenceID,
		ReferenceType: in.ReferenceType,
		CreatedAt:     time.Now(),
		CreatedBy:     userID,
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		auditRepo repository.AuditRepository,
	) error {
		// Salidas y reservas no pueden exceder el disponible actual de la
		// pareja (bodega, producto). El candado serializa los appends sobre la
		// pareja: sin él, dos salidas concurrentes plegarían el mismo saldo
		// previo y ambas pasarían la validación.
		if in.Type == entity.MovementTypeOUT || in.Type == entity.MovementTypeRESERVED {
			if err := movRepo.LockPair(companyID, in.WarehouseID, in.ProductID); err != nil {
				return err
			}
			previos, err := movRepo.ListForProjection(companyID, in.WarehouseID, in.ProductID)
			if err != nil {
				return err
			}
			disponible := inventory.AvailableFor(previos, in.WarehouseID, in.ProductID)
			if disponible.LessThan(in.Quantity) {
				return domain.ErrInsufficientStock
			}
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		return auditRepo.Create(audit.Entry(
			companyID, userID, entity.AuditActionCreate, "stock_movement", mov.ID, nil, mov,
		))
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// ListByWarehouse lista movimientos de una bodega (consulta paginada, sin tx).
func (uc *LedgerUseCase) ListByWarehouse(ctx context.Context, companyID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	warehouse, err := uc.resolveWarehouse(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return uc.movementRepo.ListByWarehouse(companyID, warehouseID, from, to, limit, offset)
}

// ListByProduct lista movimientos de un producto (consulta paginada, sin tx).
func (uc *LedgerUseCase) ListByProduct(ctx context.Context, companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	product, err := uc.resolveProduct(productID)
	if err != nil {
		return nil, err
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return uc.movementRepo.ListByProduct(companyID, productID, from, to, limit, offset)
}

func (uc *LedgerUseCase) resolveProduct(id string) (*entity.Product, error) {
	if p, ok := uc.productCache.Get(id); ok {
		return p, nil
	}
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	uc.productCache.Set(id, p)
	return p, nil
}

func (uc *LedgerUseCase) resolveWarehouse(id string) (*entity.Warehouse, error) {
	if w, ok := uc.warehouseCache.Get(id); ok {
		return w, nil
	}
	w, err := uc.warehouseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	uc.warehouseCache.Set(id, w)
	return w, nil
}
