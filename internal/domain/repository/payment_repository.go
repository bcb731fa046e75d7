package repository

import "github.com/tu-usuario/backoffice-pro/internal/domain/entity"

// PaymentRepository define el puerto de persistencia para Payment (DIP).
// Crear y eliminar pagos solo ocurre dentro de la transacción que actualiza
// la factura dueña; el candado vive en la fila de la factura, no aquí.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	Delete(id string) error
	ListByInvoice(invoiceID string) ([]*entity.Payment, error)
}
