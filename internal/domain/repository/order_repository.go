package repository

import "github.com/tu-usuario/backoffice-pro/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order y sus líneas (DIP).
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	GetItemsByOrderID(orderID string) ([]*entity.OrderItem, error)
	Update(order *entity.Order) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Order, error)
}
