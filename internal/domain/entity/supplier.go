package entity

import "time"

// Supplier representa un proveedor (compras).
type Supplier struct {
	ID            string
	Name          string
	ContactPerson string
	Address       string
	Phone         string
	Email         string
	TaxID         string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
