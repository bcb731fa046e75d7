package entity

import (
	"encoding/json"
	"time"
)

// Acciones auditables.
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

// AuditLog es el registro de auditoría de una mutación del núcleo: snapshot
// antes/después de la entidad afectada. Se escribe una vez por mutación,
// dentro de la misma unidad de trabajo.
type AuditLog struct {
	ID         string
	CompanyID  string
	UserID     string
	Action     string // CREATE, UPDATE, DELETE
	EntityType string // invoice, payment, stock_movement, order
	EntityID   string
	OldValues  json.RawMessage // nil en CREATE
	NewValues  json.RawMessage // nil en DELETE
	CreatedAt  time.Time
}
