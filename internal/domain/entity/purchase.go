package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa una orden de compra a un proveedor.
// Mismas invariantes de montos que Sale. Los precios unitarios de sus líneas
// pasan a ser la nueva base de costeo del artículo (promedio ponderado).
type Purchase struct {
	ID             string
	InvoiceNumber  string // único, secuencial por tipo (PUR-000001)
	SupplierID     string
	Date           time.Time
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	NetAmount      decimal.Decimal
	Status         string // pending, completed, cancelled
	Notes          string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PurchaseItem es una línea de una orden de compra.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ItemID     string
	Quantity   int64
	UnitPrice  decimal.Decimal // precio de compra unitario
	TotalPrice decimal.Decimal
}
