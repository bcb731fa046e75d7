package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/backoffice-pro/internal/domain/entity"
)

// Entry arma un registro de auditoría con snapshots antes/después serializados
// a JSON. oldValue nil en CREATE, newValue nil en DELETE. Se escribe dentro de
// la misma unidad de trabajo que la mutación auditada: nunca se omite en la
// ruta de éxito.
func Entry(companyID, userID, action, entityType, entityID string, oldValue, newValue any) *entity.AuditLog {
	return &entity.AuditLog{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		OldValues:  snapshot(oldValue),
		NewValues:  snapshot(newValue),
		CreatedAt:  time.Now(),
	}
}

// snapshot serializa el valor a JSON; nil o fallo de serialización producen
// un snapshot vacío en lugar de abortar la mutación auditada.
func snapshot(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return raw
}
