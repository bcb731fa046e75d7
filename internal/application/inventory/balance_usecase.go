package inventory

import (
	"context"

	"github.com/tu-usuario/backoffice-pro/internal/domain"
	"github.com/tu-usuario/backoffice-pro/internal/domain/entity"
	"github.com/tu-usuario/backoffice-pro/internal/domain/inventory"
	"github.com/tu-usuario/backoffice-pro/internal/domain/repository"
)

// BalanceUseCase deriva balances actuales plegando el libro de movimientos
// bajo demanda. No mantiene una tabla resumen aparte, así no hay una segunda
// ruta de escritura que sincronizar: el libro es la única fuente de verdad.
type BalanceUseCase struct {
	txRunner TxRunner
}

// NewBalanceUseCase construye el proyector de balances.
func NewBalanceUseCase(txRunner TxRunner) *BalanceUseCase {
	return &BalanceUseCase{txRunner: txRunner}
}

// CurrentBalance pliega los movimientos que coincidan con los filtros
// (vacío = sin filtro) dentro de un snapshot REPEATABLE READ, de modo que un
// append concurrente nunca produce un plegado a medias. Solo retorna parejas
// con onHand > 0 o reserved > 0.
func (uc *BalanceUseCase) CurrentBalance(ctx context.Context, companyID, warehouseID, productID string) ([]*entity.StockBalance, error) {
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	var balances []*entity.StockBalance
	err := uc.txRunner.RunSnapshot(ctx, func(movRepo repository.StockMovementRepository) error {
		movements, err := movRepo.ListForProjection(companyID, warehouseID, productID)
		if err != nil {
			return err
		}
		balances = inventory.Fold(movements)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return balances, nil
}

// Recalculate recalcula todos los balances de la empresa. Hoy equivale a
// CurrentBalance sin filtros; existe para detectar deriva si algún día se
// introduce un resumen materializado, sin cambiar la fuente autoritativa.
func (uc *BalanceUseCase) Recalculate(ctx context.Context, companyID string) ([]*entity.StockBalance, error) {
	return uc.CurrentBalance(ctx, companyID, "", "")
}
