package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/backoffice-pro/internal/domain"
	"github.com/tu-usuario/backoffice-pro/internal/domain/entity"
	"github.com/tu-usuario/backoffice-pro/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo implementación del consecutivo de documentos sobre PostgreSQL.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// NextNumber reserva el siguiente número del alcance (empresa, tipo, año) en
// una sola sentencia atómica. El upsert con RETURNING incrementa bajo el
// candado de fila que toma el propio UPDATE: nunca hay read-max-then-write y
// dos llamadores concurrentes jamás reciben el mismo número.
func (r *SequenceRepo) NextNumber(companyID, kind string, year int) (int64, error) {
	if !entity.IsValidDocumentKind(kind) {
		return 0, domain.ErrInvalidInput
	}
	query := `
		INSERT INTO document_sequences (company_id, kind, year, last_number)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (company_id, kind, year)
		DO UPDATE SET last_number = document_sequences.last_number + 1
		RETURNING last_number`
	var n int64
	err := r.q.QueryRow(context.Background(), query, companyID, kind, year).Scan(&n)
	if err != nil {
		if isConcurrencyFailure(err) {
			return 0, domain.ErrConcurrency
		}
		return 0, fmt.Errorf("next sequence number: %w", err)
	}
	return n, nil
}
