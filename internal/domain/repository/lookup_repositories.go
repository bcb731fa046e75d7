package repository

import "github.com/tu-usuario/backoffice-pro/internal/domain/entity"

// Puertos de solo lectura hacia el CRUD externo: el núcleo los usa únicamente
// para resolver y validar llaves foráneas por empresa.

// ProductRepository resuelve productos por ID.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
}

// WarehouseRepository resuelve bodegas por ID.
type WarehouseRepository interface {
	GetByID(id string) (*entity.Warehouse, error)
}

// CustomerRepository resuelve clientes por ID.
type CustomerRepository interface {
	GetByID(id string) (*entity.Customer, error)
}

// CompanyRepository resuelve empresas por ID.
type CompanyRepository interface {
	GetByID(id string) (*entity.Company, error)
}
