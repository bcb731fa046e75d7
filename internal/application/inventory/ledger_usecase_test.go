package inventory_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appinv "github.com/tu-usuario/backoffice-pro/internal/application/inventory"
	"github.com/tu-usuario/backoffice-pro/internal/application/dto"
	"github.com/tu-usuario/backoffice-pro/internal/domain"
	"github.com/tu-usuario/backoffice-pro/internal/domain/entity"
	"github.com/tu-usuario/backoffice-pro/internal/domain/inventory"
)

func nuevoLedger(e *entorno) *appinv.LedgerUseCase {
	pc, wc := cachesDePrueba()
	return appinv.NewLedgerUseCase(e.txRunner, e.movRepo, e.prodRepo, e.whRepo, pc, wc)
}

func pedirMovimiento(tipo string, qty int64) dto.RegisterMovementRequest {
	return dto.RegisterMovementRequest{
		WarehouseID: "W1",
		ProductID:   "P1",
		Type:        tipo,
		Quantity:    decimal.NewFromInt(qty),
	}
}

func TestAppend_EntradaValida(t *testing.T) {
	e := nuevoEntorno()
	uc := nuevoLedger(e)

	mov, err := uc.Append(context.Background(), "empresa-1", "user-1", dto.RegisterMovementRequest{
		WarehouseID:   "W1",
		ProductID:     "P1",
		Type:          entity.MovementTypeIN,
		Quantity:      decimal.NewFromInt(50),
		ReferenceID:   "recepcion-9",
		ReferenceType: "goods_receipt",
	})
	require.NoError(t, err)
	require.NotNil(t, mov)

	assert.NotEmpty(t, mov.ID)
	assert.Equal(t, "empresa-1", mov.CompanyID)
	assert.Len(t, e.movRepo.movements, 1)

	// Toda mutación del núcleo deja registro de auditoría en la misma unidad de trabajo.
	require.Len(t, e.auditRepo.entries, 1)
	assert.Equal(t, entity.AuditActionCreate, e.auditRepo.entries[0].Action)
	assert.Equal(t, "stock_movement", e.auditRepo.entries[0].EntityType)
	assert.Equal(t, mov.ID, e.auditRepo.entries[0].EntityID)
	assert.Nil(t, e.auditRepo.entries[0].OldValues)
	assert.NotNil(t, e.auditRepo.entries[0].NewValues)
}

func TestAppend_RechazosDeValidacion(t *testing.T) {
	e := nuevoEntorno()
	uc := nuevoLedger(e)
	ctx := context.Background()

	casos := []struct {
		nombre   string
		in       dto.RegisterMovementRequest
		esperado error
	}{
		{"cantidad cero", pedirMovimiento(entity.MovementTypeIN, 0), domain.ErrInvalidMovement},
		{"cantidad negativa", dto.RegisterMovementRequest{WarehouseID: "W1", ProductID: "P1", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(-5)}, domain.ErrInvalidMovement},
		{"tipo desconocido", dto.RegisterMovementRequest{WarehouseID: "W1", ProductID: "P1", Type: "TRANSFER", Quantity: decimal.NewFromInt(1)}, domain.ErrInvalidMovement},
		{"item de servicio", dto.RegisterMovementRequest{WarehouseID: "W1", ProductID: "P-servicio", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1)}, domain.ErrInvalidMovement},
		{"producto de otra empresa", dto.RegisterMovementRequest{WarehouseID: "W1", ProductID: "P-ajeno", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1)}, domain.ErrInvalidMovement},
		{"bodega de otra empresa", dto.RegisterMovementRequest{WarehouseID: "W-ajena", ProductID: "P1", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1)}, domain.ErrInvalidMovement},
		{"bodega retirada", dto.RegisterMovementRequest{WarehouseID: "W-retirada", ProductID: "P1", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1)}, domain.ErrInvalidMovement},
		{"producto inexistente", dto.RegisterMovementRequest{WarehouseID: "W1", ProductID: "no-existe", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1)}, domain.ErrNotFound},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := uc.Append(ctx, "empresa-1", "user-1", c.in)
			assert.ErrorIs(t, err, c.esperado)
		})
	}
	// Ningún rechazo dejó rastro en el libro ni en la auditoría.
	assert.Empty(t, e.movRepo.movements)
	assert.Empty(t, e.auditRepo.entries)
}

func TestAppend_SalidaSinStock(t *testing.T) {
	e := nuevoEntorno()
	uc := nuevoLedger(e)
	ctx := context.Background()

	_, err := uc.Append(ctx, "empresa-1", "user-1", pedirMovimiento(entity.MovementTypeIN, 10))
	require.NoError(t, err)

	_, err = uc.Append(ctx, "empresa-1", "user-1", pedirMovimiento(entity.MovementTypeOUT, 11))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La reserva también respeta el disponible, no solo el onHand.
	_, err = uc.Append(ctx, "empresa-1", "user-1", pedirMovimiento(entity.MovementTypeRESERVED, 8))
	require.NoError(t, err)
	_, err = uc.Append(ctx, "empresa-1", "user-1", pedirMovimiento(entity.MovementTypeOUT, 3))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = uc.Append(ctx, "empresa-1", "user-1", pedirMovimiento(entity.MovementTypeOUT, 2))
	require.NoError(t, err)
}

// Bajo salidas concurrentes sobre la misma pareja (bodega, producto) el
// disponible nunca puede quedar negativo: solo deben pasar tantas salidas
// como unidades haya, el resto recibe ErrInsufficientStock.
func TestAppend_SalidasConcurrentesNoDejanSaldoNegativo(t *testing.T) {
	e := nuevoEntorno()
	uc := nuevoLedger(e)
	ctx := context.Background()

	_, err := uc.Append(ctx, "empresa-1", "user-1", pedirMovimiento(entity.MovementTypeIN, 10))
	require.NoError(t, err)

	const intentos = 20
	var wg sync.WaitGroup
	var exitosas, rechazadas atomic.Int64
	for i := 0; i < intentos; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Append(ctx, "empresa-1", "user-1", pedirMovimiento(entity.MovementTypeOUT, 1))
			switch {
			case err == nil:
				exitosas.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock):
				rechazadas.Add(1)
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(10), exitosas.Load())
	assert.Equal(t, int64(intentos-10), rechazadas.Load())
	// 1 entrada + exactamente 10 salidas; el disponible cerró en cero.
	assert.Len(t, e.movRepo.movements, 11)
	movs, err := e.movRepo.ListForProjection("empresa-1", "W1", "P1")
	require.NoError(t, err)
	assert.True(t, inventory.AvailableFor(movs, "W1", "P1").IsZero())
}

func TestAppend_UsaCacheDeProductos(t *testing.T) {
	e := nuevoEntorno()
	uc := nuevoLedger(e)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := uc.Append(ctx, "empresa-1", "user-1", pedirMovimiento(entity.MovementTypeIN, 1))
		require.NoError(t, err)
	}
	assert.Equal(t, 1, e.prodRepo.lecturas, "el producto debe resolverse una sola vez dentro del TTL")
}

func TestListByWarehouse_ValidaTenant(t *testing.T) {
	e := nuevoEntorno()
	uc := nuevoLedger(e)
	ctx := context.Background()

	_, err := uc.Append(ctx, "empresa-1", "user-1", pedirMovimiento(entity.MovementTypeIN, 5))
	require.NoError(t, err)

	movs, err := uc.ListByWarehouse(ctx, "empresa-1", "W1", nil, nil, 20, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1)

	_, err = uc.ListByWarehouse(ctx, "empresa-1", "W-ajena", nil, nil, 20, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
