package numbering

import (
	"context"
	"errors"
	"fmt"

	"github.com/tu-usuario/backoffice-pro/internal/domain"
	"github.com/tu-usuario/backoffice-pro/internal/domain/entity"
	"github.com/tu-usuario/backoffice-pro/internal/domain/repository"
)

// maxSuffix mayor sufijo representable con 6 dígitos.
const maxSuffix = 999999

// maxAttempts reintentos internos ante conflicto de concurrencia benigno.
const maxAttempts = 3

// Allocator emite consecutivos de documento por alcance (empresa, tipo, año).
// La reserva del número es atómica en el repositorio; aquí solo se acota el
// reintento ante contención y se aplica el formato PREFIX-AÑO-NNNNNN.
type Allocator struct {
	seqRepo repository.SequenceRepository
}

// NewAllocator construye el asignador de consecutivos.
func NewAllocator(seqRepo repository.SequenceRepository) *Allocator {
	return &Allocator{seqRepo: seqRepo}
}

// Next reserva el siguiente número del alcance y lo retorna ya formateado
// (ej. "INV-2026-000042") junto con el sufijo crudo. Conflictos de
// concurrencia se reintentan hasta maxAttempts veces; agotado el rango de 6
// dígitos falla con ErrSequenceExhausted.
func (a *Allocator) Next(ctx context.Context, companyID, kind string, year int) (string, int64, error) {
	if companyID == "" || !entity.IsValidDocumentKind(kind) || year <= 0 {
		return "", 0, domain.ErrInvalidInput
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		n, err := a.seqRepo.NextNumber(companyID, kind, year)
		if err != nil {
			if errors.Is(err, domain.ErrConcurrency) {
				lastErr = err
				continue
			}
			return "", 0, err
		}
		if n > maxSuffix {
			return "", 0, domain.ErrSequenceExhausted
		}
		return Format(kind, year, n), n, nil
	}
	return "", 0, fmt.Errorf("%w: asignación de consecutivo agotó %d intentos: %v",
		domain.ErrConcurrency, maxAttempts, lastErr)
}

// Format arma el número de documento: "{PREFIX}-{año}-{sufijo a 6 dígitos}".
func Format(kind string, year int, n int64) string {
	return fmt.Sprintf("%s-%d-%06d", kind, year, n)
}
