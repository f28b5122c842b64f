package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de órdenes de venta y compra.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Sale representa una orden de venta (factura de venta).
// Invariantes: TotalAmount = Σ(quantity × unit_price) de sus líneas;
// NetAmount = TotalAmount − DiscountAmount + TaxAmount.
// Inmutable una vez completed, salvo la transición a cancelled.
type Sale struct {
	ID             string
	InvoiceNumber  string // único, secuencial por tipo (INV-000001)
	CustomerID     string
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

// SaleItem es una línea de una orden de venta.
type SaleItem struct {
	ID         string
	SaleID     string
	ItemID     string
	Quantity   int64
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal // Quantity × UnitPrice
}
