package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest línea de una orden de venta o compra.
// UnitPrice en cero usa el precio del catálogo (precio de venta para ventas;
// en compras el precio es obligatorio porque fija la nueva base de costeo).
type OrderLineRequest struct {
	ItemID    string          `json:"item_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest request para crear una venta.
type CreateSaleRequest struct {
	CustomerID     string             `json:"customer_id"`
	Date           string             `json:"date"` // YYYY-MM-DD; vacío = hoy
	Items          []OrderLineRequest `json:"items"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	Notes          string             `json:"notes"`
}

// CreatePurchaseRequest request para crear una compra.
type CreatePurchaseRequest struct {
	SupplierID     string             `json:"supplier_id"`
	Date           string             `json:"date"`
	Items          []OrderLineRequest `json:"items"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	Notes          string             `json:"notes"`
}

// OrderLineResponse línea persistida de una orden.
type OrderLineResponse struct {
	ID         string          `json:"id"`
	ItemID     string          `json:"item_id"`
	ItemName   string          `json:"item_name,omitempty"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// SaleResponse venta persistida con sus líneas.
type SaleResponse struct {
	ID             string              `json:"id"`
	InvoiceNumber  string              `json:"invoice_number"`
	CustomerID     string              `json:"customer_id"`
	Date           time.Time           `json:"date"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	TaxAmount      decimal.Decimal     `json:"tax_amount"`
	NetAmount      decimal.Decimal     `json:"net_amount"`
	Status         string              `json:"status"`
	Notes          string              `json:"notes,omitempty"`
	Items          []OrderLineResponse `json:"items,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

// PurchaseResponse compra persistida con sus líneas.
type PurchaseResponse struct {
	ID             string              `json:"id"`
	InvoiceNumber  string              `json:"invoice_number"`
	SupplierID     string              `json:"supplier_id"`
	Date           time.Time           `json:"date"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	TaxAmount      decimal.Decimal     `json:"tax_amount"`
	NetAmount      decimal.Decimal     `json:"net_amount"`
	Status         string              `json:"status"`
	Notes          string              `json:"notes,omitempty"`
	Items          []OrderLineResponse `json:"items,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}
