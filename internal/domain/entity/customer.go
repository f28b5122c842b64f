package entity

import "time"

// Customer representa un cliente (ventas).
type Customer struct {
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
