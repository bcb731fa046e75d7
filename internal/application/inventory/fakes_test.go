package inventory_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/backoffice-pro/internal/domain/entity"
	"github.com/tu-usuario/backoffice-pro/internal/domain/repository"
	"github.com/tu-usuario/backoffice-pro/internal/infrastructure/cache"
)

// Fakes en memoria para los casos de uso de inventario. El mutex del
// fakeMovementRepo emula la serialización que da la BD a los appends.

type fakeMovementRepo struct {
	mu        sync.Mutex
	movements []*entity.StockMovement
}

func (f *fakeMovementRepo) Create(m *entity.StockMovement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copia := *m
	f.movements = append(f.movements, &copia)
	return nil
}

func (f *fakeMovementRepo) LockPair(companyID, warehouseID, productID string) error {
	// El candado por pareja lo emula el mutex del fakeTxRunner, que retiene
	// la unidad de trabajo completa.
	return nil
}

func (f *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMovementRepo) ListForProjection(companyID, warehouseID, productID string) ([]*entity.StockMovement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range f.movements {
		if m.CompanyID != companyID {
			continue
		}
		if warehouseID != "" && m.WarehouseID != warehouseID {
			continue
		}
		if productID != "" && m.ProductID != productID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMovementRepo) ListByWarehouse(companyID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return f.ListForProjection(companyID, warehouseID, "")
}

func (f *fakeMovementRepo) ListByProduct(companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return f.ListForProjection(companyID, "", productID)
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*entity.AuditLog
}

func (f *fakeAuditRepo) Create(log *entity.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, log)
	return nil
}

// fakeTxRunner ejecuta el callback directamente sobre los fakes. Su mutex
// serializa las unidades de trabajo completas, como hace el candado por
// pareja que la transacción retiene hasta el commit.
type fakeTxRunner struct {
	mu        sync.Mutex
	movRepo   *fakeMovementRepo
	auditRepo *fakeAuditRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	auditRepo repository.AuditRepository,
) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(f.movRepo, f.auditRepo)
}

func (f *fakeTxRunner) RunSnapshot(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
) error) error {
	return fn(f.movRepo)
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	lecturas int // cuántas veces se consultó el repo (para verificar la caché)
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lecturas++
	return f.products[id], nil
}

type fakeWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

func (f *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return f.warehouses[id], nil
}

// entorno arma un juego completo de fakes con un producto y una bodega activos.
type entorno struct {
	txRunner  *fakeTxRunner
	movRepo   *fakeMovementRepo
	auditRepo *fakeAuditRepo
	prodRepo  *fakeProductRepo
	whRepo    *fakeWarehouseRepo
}

func nuevoEntorno() *entorno {
	movRepo := &fakeMovementRepo{}
	auditRepo := &fakeAuditRepo{}
	return &entorno{
		txRunner:  &fakeTxRunner{movRepo: movRepo, auditRepo: auditRepo},
		movRepo:   movRepo,
		auditRepo: auditRepo,
		prodRepo: &fakeProductRepo{products: map[string]*entity.Product{
			"P1": {ID: "P1", CompanyID: "empresa-1", SKU: "SKU-1", Name: "Tornillo", Price: decimal.NewFromInt(100)},
			"P-servicio": {ID: "P-servicio", CompanyID: "empresa-1", Name: "Instalación", IsService: true},
			"P-ajeno":    {ID: "P-ajeno", CompanyID: "empresa-2", Name: "De otra empresa"},
		}},
		whRepo: &fakeWarehouseRepo{warehouses: map[string]*entity.Warehouse{
			"W1": {ID: "W1", CompanyID: "empresa-1", Code: "BOD-1", Status: entity.WarehouseStatusActive},
			"W-retirada": {ID: "W-retirada", CompanyID: "empresa-1", Status: entity.WarehouseStatusRetired},
			"W-ajena":    {ID: "W-ajena", CompanyID: "empresa-2", Status: entity.WarehouseStatusActive},
		}},
	}
}

func cachesDePrueba() (*cache.TTLCache[*entity.Product], *cache.TTLCache[*entity.Warehouse]) {
	return cache.New[*entity.Product](time.Minute), cache.New[*entity.Warehouse](time.Minute)
}
