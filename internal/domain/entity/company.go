package entity

import "time"

// Company representa una organización/tenant del sistema. Es la unidad de
// aislamiento de datos: todas las entidades del núcleo llevan CompanyID.
type Company struct {
	ID        string
	Name      string
	TaxID     string
	Address   string
	Phone     string
	Email     string
	Currency  string // moneda por defecto de facturación (ISO 4217)
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
