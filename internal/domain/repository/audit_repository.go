package repository

import "github.com/tu-usuario/backoffice-pro/internal/domain/entity"

// AuditRepository define el puerto de persistencia del registro de auditoría (DIP).
type AuditRepository interface {
	Create(log *entity.AuditLog) error
}
