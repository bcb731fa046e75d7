package repository

import "github.com/tu-usuario/backoffice-pro/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice (DIP).
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	// GetForUpdate obtiene la factura y bloquea su fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción; es el candado que
	// linealiza aplicar/reversar pagos sobre la misma factura.
	GetForUpdate(id string) (*entity.Invoice, error)
	Update(invoice *entity.Invoice) error
	ListByCompany(companyID string, status string, limit, offset int) ([]*entity.Invoice, error)
}
